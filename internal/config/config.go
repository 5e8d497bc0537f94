// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/dvidump/internal/dumper"
	"github.com/retroenv/dvidump/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings, debug output
// takes precedence over quiet mode.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// DumperOptions returns the dumper configuration for the program options.
func DumperOptions(opts options.Program) dumper.Options {
	return dumper.Options{
		Format:     dumper.Format(opts.Format),
		Offsets:    opts.Offsets,
		Separators: opts.Separators,
	}
}
