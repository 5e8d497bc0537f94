// Package dumper implements the human readable output of decoded DVI opcodes.
package dumper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/dvidump/internal/decoder"
	"github.com/retroenv/dvidump/internal/opcode"
)

// Format defines the output format of the dumper.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatSpew Format = "spew"
)

// indentation of parameter lines, aligned after the header name column
const paramIndent = 21

// offset column width including the separating spaces
const offsetColumn = 10

// Source provides decoded opcodes until it returns io.EOF.
type Source interface {
	Next() (*decoder.Opcode, error)
}

// Options of the dumper.
type Options struct {
	Format     Format
	Offsets    bool // prefix every opcode with its stream offset
	Separators bool // output an empty line after structural boundaries
}

// Dumper writes decoded opcodes as text.
type Dumper struct {
	options Options
	writer  io.Writer
	spew    *spew.ConfigState
}

// New creates a new dumper.
func New(writer io.Writer, options Options) *Dumper {
	if options.Format == "" {
		options.Format = FormatText
	}
	return &Dumper{
		options: options,
		writer:  writer,
		spew: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		},
	}
}

// Dump reads all opcodes from the source and writes them until the source
// signals the end of the stream. It returns the number of written opcodes.
func (d *Dumper) Dump(ctx context.Context, source Source) (int, error) {
	var count int
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		op, err := source.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("decoding opcode: %w", err)
		}

		if err := d.WriteOpcode(op); err != nil {
			return count, err
		}
		count++
	}
}

// WriteOpcode writes a single decoded opcode.
func (d *Dumper) WriteOpcode(op *decoder.Opcode) error {
	switch d.options.Format {
	case FormatSpew:
		d.spew.Fdump(d.writer, op)
		return nil

	case FormatText:
		return d.writeText(op)

	default:
		return fmt.Errorf("unsupported output format '%s'", d.options.Format)
	}
}

// WriteTable writes all descriptors of the opcode table and the layout of
// their parameters.
func (d *Dumper) WriteTable(table *opcode.Table) error {
	for i, desc := range table.Descriptors() {
		if err := d.writeHeader(int64(i), byte(i), desc.Name, desc.Comment); err != nil {
			return err
		}
		for _, param := range desc.Params {
			line := fmt.Sprintf("%s [%s] %s", param.Name, param.Length, param.Kind)
			if err := d.writeParamLine(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dumper) writeText(op *decoder.Opcode) error {
	if err := d.writeHeader(op.Offset, op.Code, op.Name, op.Comment); err != nil {
		return err
	}

	for _, v := range op.Values {
		if err := d.writeParamLine(v.Name + " = " + FormatValue(v.Value)); err != nil {
			return err
		}
	}

	if d.options.Separators && (op.Code == opcode.Eop || op.Code == opcode.Pre) {
		if _, err := fmt.Fprintln(d.writer); err != nil {
			return fmt.Errorf("writing separator: %w", err)
		}
	}
	return nil
}

func (d *Dumper) writeHeader(offset int64, code byte, name, comment string) error {
	buf := &strings.Builder{}
	if d.options.Offsets {
		fmt.Fprintf(buf, "%08x  ", offset)
	}
	fmt.Fprintf(buf, "%03d   %12s", code, name)
	if comment != "" {
		buf.WriteString("   ")
		buf.WriteString(formatComment(comment))
	}

	if _, err := fmt.Fprintln(d.writer, buf.String()); err != nil {
		return fmt.Errorf("writing opcode header: %w", err)
	}
	return nil
}

func (d *Dumper) writeParamLine(line string) error {
	indent := paramIndent
	if d.options.Offsets {
		indent += offsetColumn
	}
	if _, err := fmt.Fprintf(d.writer, "%*s%s\n", indent, "", line); err != nil {
		return fmt.Errorf("writing parameter line: %w", err)
	}
	return nil
}

// FormatValue returns the display form of a decoded value: integers are
// written as decimal, byte strings as UTF-8 text. Byte strings that are not
// valid UTF-8 are written quoted with escapes instead.
func FormatValue(value decoder.Value) string {
	switch v := value.(type) {
	case decoder.Integer:
		return strconv.FormatInt(v.Value, 10)

	case decoder.Bytes:
		if utf8.Valid(v) {
			return string(v)
		}
		return fmt.Sprintf("%q (invalid utf-8)", []byte(v))

	default:
		panic(fmt.Sprintf("unsupported value type %T", value))
	}
}

// formatComment escapes comments of non graphic characters like the
// whitespace characters of set_char_9 to set_char_13, so that every opcode
// header stays on a single line.
func formatComment(comment string) string {
	if len(comment) == 1 && (comment[0] < ' ' || comment[0] == 0x7f) {
		return strconv.Quote(comment)
	}
	return comment
}
