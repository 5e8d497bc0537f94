// Package main implements the main entry point for the DVI opcode dumper
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/dvidump/internal/cli"
	"github.com/retroenv/dvidump/internal/config"
	"github.com/retroenv/dvidump/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args)
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
			if usageErr.NoArguments() {
				os.Exit(0)
			}
			logger.Error(usageErr.Error())
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if opts.Table {
		if err := fileprocessor.PrintTable(opts); err != nil {
			logger.Error("Printing opcode table failed", log.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Dumping failed", log.Err(err))
		os.Exit(1)
	}
}
