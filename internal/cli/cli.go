// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/dvidump/internal/dumper"
	"github.com/retroenv/dvidump/internal/options"
)

// ParseFlags parses the given command line arguments, the first argument
// is the program name.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(args[1:])
	positional := flags.Args()
	if errors.Is(err, flag.ErrHelp) {
		return opts, &UsageError{flags: flags}
	}
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(positional) == 0 && !opts.Table {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(positional); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(positional) > 0 {
		opts.Input = positional[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information.
// An empty message signals that the program was started without a file.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information to stdout.
func (e *UsageError) ShowUsage() {
	e.WriteUsage(os.Stdout)
}

// WriteUsage writes the usage information to the given writer.
func (e *UsageError) WriteUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: dvidump [options] <file.dvi>\n\n")
	fmt.Fprintf(w, "Print a human-friendly dump of the opcodes in a dvi file.\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
		e.flags.SetOutput(io.Discard)
	}
	fmt.Fprintln(w)
}

// NoArguments returns whether the usage error is caused by a missing input
// file or an explicit help request, which is not treated as a failure.
func (e *UsageError) NoArguments() bool {
	return e.msg == ""
}

// validateArgs checks that only a single file is passed and that no flags
// follow it.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to dump, please pass the file to dump as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{msg: fmt.Sprintf("only one file to dump is supported, got %d", len(args))}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Format = strings.ToLower(opts.Format)

	validFormats := []string{string(dumper.FormatText), string(dumper.FormatSpew)}
	for _, valid := range validFormats {
		if opts.Format == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported output format: %s. Valid options: %s",
		opts.Format, strings.Join(validFormats, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Format, "format", string(dumper.FormatText), "output format (text/spew)")
	flags.BoolVar(&opts.Offsets, "offsets", false, "output the file offset of every opcode")
	flags.BoolVar(&opts.Separators, "separators", true, "output an empty line after the preamble and every page end")
	flags.BoolVar(&opts.Table, "table", false, "print the opcode table and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
