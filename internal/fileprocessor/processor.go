// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/dvidump/internal/config"
	"github.com/retroenv/dvidump/internal/decoder"
	"github.com/retroenv/dvidump/internal/detector"
	"github.com/retroenv/dvidump/internal/dumper"
	"github.com/retroenv/dvidump/internal/opcode"
	"github.com/retroenv/dvidump/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile dumps all opcodes of the input file in a single decode session.
// The input file is closed on all return paths.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	file, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("opening file '%s': %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	writer, err := createWriter(opts)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	detector.New(logger).CheckFile(opts.Input)
	logger.Debug("Dumping file",
		log.String("file", opts.Input),
		log.String("format", opts.Format))

	if err := Process(ctx, logger, file, writer, opts); err != nil {
		return err
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// Process decodes the stream from reader and writes the dump to writer.
func Process(ctx context.Context, logger *log.Logger, reader io.Reader, writer io.Writer, opts options.Program) error {
	dec := decoder.NewReader(reader, decoder.WithLogger(logger))
	source := &inspectingSource{
		source:   dec,
		detector: detector.New(logger),
	}
	dump := dumper.New(writer, config.DumperOptions(opts))

	count, err := dump.Dump(ctx, source)
	logger.Debug("Dump finished",
		log.Int("opcodes", count),
		log.Int("bytes", int(dec.Offset())))
	if err != nil {
		return fmt.Errorf("dumping file after %d opcodes: %w", count, err)
	}
	return nil
}

// PrintTable writes the opcode table in the configured output format.
func PrintTable(opts options.Program) error {
	writer, err := createWriter(opts)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	dump := dumper.New(writer, config.DumperOptions(opts))
	if err := dump.WriteTable(opcode.NewTable()); err != nil {
		return fmt.Errorf("writing opcode table: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("dvidump - DVI opcode dumper",
		log.String("version", buildinfo.Version(version, commit, date)))
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file '%s': %w", opts.Output, err)
	}
	return &onceCloser{file: file}, nil
}

// inspectingSource passes the first decoded opcode to the format detector.
type inspectingSource struct {
	source    dumper.Source
	detector  *detector.Detector
	inspected bool
}

func (s *inspectingSource) Next() (*decoder.Opcode, error) {
	op, err := s.source.Next()
	if err == nil && !s.inspected {
		s.inspected = true
		s.detector.CheckPreamble(op)
	}
	return op, err
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// onceCloser allows the deferred cleanup close after an explicit close
// whose error is reported.
type onceCloser struct {
	file   *os.File
	closed bool
}

func (c *onceCloser) Write(p []byte) (int, error) {
	return c.file.Write(p)
}

func (c *onceCloser) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.file.Close()
}
