// Package decoder decodes a DVI byte stream into a sequence of opcodes with
// their typed parameter values.
package decoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/dvidump/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

type state int

const (
	stateReading state = iota
	stateEndOfStream
	stateFailed
)

// Reader decodes one opcode per call to Next from the underlying stream.
// It is not safe for concurrent use.
type Reader struct {
	r      *countingReader
	table  *opcode.Session
	logger *log.Logger

	state state
	err   error
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for debug output of the reader.
func WithLogger(logger *log.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithTable sets the base opcode table that the reader session uses.
func WithTable(table *opcode.Table) Option {
	return func(r *Reader) {
		r.table = opcode.NewSession(table)
	}
}

// NewReader returns a new reader that starts a fresh decode session on r.
func NewReader(r io.Reader, options ...Option) *Reader {
	reader := &Reader{
		r: &countingReader{r: bufio.NewReader(r)},
	}
	for _, option := range options {
		option(reader)
	}
	if reader.table == nil {
		reader.table = opcode.NewSession(nil)
	}
	return reader
}

// Next decodes the next opcode of the stream. At the clean end of the stream
// it returns io.EOF. Any other error aborts the session, no opcode is
// returned for a partially decoded opcode and all following calls return
// the same error.
func (r *Reader) Next() (*Opcode, error) {
	switch r.state {
	case stateEndOfStream:
		return nil, io.EOF
	case stateFailed:
		return nil, r.err
	}

	offset := r.r.offset
	code, err := r.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.state = stateEndOfStream
			return nil, io.EOF
		}
		return nil, r.fail(fmt.Errorf("reading opcode at offset %d: %w", offset, err))
	}

	desc := r.table.Lookup(code)
	op := &Opcode{
		Offset:  offset,
		Code:    code,
		Name:    desc.Name,
		Comment: desc.Comment,
		Values:  make([]NamedValue, 0, len(desc.Params)),
	}

	for _, param := range desc.Params {
		value, err := r.decodeParam(op, param)
		if err != nil {
			return nil, r.fail(err)
		}
		op.Values = append(op.Values, NamedValue{Name: param.Name, Value: value})
	}

	if desc.Name == opcode.NamePostPost {
		r.table.Rebind(opcode.FinalPadding, opcode.FinalPad())
		if r.logger != nil {
			r.logger.Debug("Postamble end found, rebinding padding byte",
				log.Int("offset", int(offset)),
				log.Uint8("code", opcode.FinalPadding),
				log.String("name", opcode.NameFinalPad))
		}
	}

	return op, nil
}

// Offset returns the number of bytes consumed from the stream.
func (r *Reader) Offset() int64 {
	return r.r.offset
}

// Table returns the opcode table of the reader session.
func (r *Reader) Table() *opcode.Session {
	return r.table
}

func (r *Reader) decodeParam(op *Opcode, param opcode.Param) (Value, error) {
	length, err := resolveLength(param.Length, op.Values)
	if err != nil {
		return nil, fmt.Errorf("resolving length of parameter '%s' of opcode '%s': %w", param.Name, op.Name, err)
	}

	value, err := readValue(r.r, length, param.Kind)
	if err != nil {
		var truncErr *TruncationError
		if errors.As(err, &truncErr) {
			truncErr.Offset = op.Offset
			truncErr.Opcode = op.Name
			truncErr.Param = param.Name
			return nil, truncErr
		}
		return nil, fmt.Errorf("reading parameter '%s' of opcode '%s': %w", param.Name, op.Name, err)
	}
	return value, nil
}

func (r *Reader) fail(err error) error {
	r.state = stateFailed
	r.err = err
	return err
}
