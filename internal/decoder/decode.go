package decoder

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/dvidump/internal/opcode"
)

const maxIntegerWidth = 8

// countingReader tracks the number of bytes consumed from the buffered stream.
type countingReader struct {
	r      *bufio.Reader
	offset int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.offset += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.offset++
	}
	return b, err
}

// resolveLength returns the byte length of a parameter. Computed lengths are
// resolved against the values decoded so far for the current opcode.
func resolveLength(length opcode.Length, values []NamedValue) (int64, error) {
	switch l := length.(type) {
	case opcode.Fixed:
		return int64(l), nil

	case opcode.Computed:
		var sum int64
		for _, idx := range l {
			if idx < 0 || idx >= len(values) {
				return 0, fmt.Errorf("%w: index %d with %d decoded values", ErrInvalidReference, idx, len(values))
			}
			i, ok := values[idx].Value.(Integer)
			if !ok {
				return 0, fmt.Errorf("%w: parameter '%s' is not an integer", ErrInvalidReference, values[idx].Name)
			}
			sum += i.Value
		}
		if sum < 0 {
			return 0, fmt.Errorf("%w: negative length %d", ErrInvalidReference, sum)
		}
		return sum, nil

	default:
		return 0, fmt.Errorf("%w: unsupported length type %T", ErrInvalidReference, length)
	}
}

// readValue reads exactly length bytes and interprets them as the given kind.
// A short read returns a TruncationError with the wanted and read byte counts.
func readValue(r io.Reader, length int64, kind opcode.Kind) (Value, error) {
	switch kind {
	case opcode.Unsigned, opcode.Signed:
		if length > maxIntegerWidth {
			return nil, fmt.Errorf("%w: %d bytes", ErrIntegerWidth, length)
		}

		var buf [maxIntegerWidth]byte
		data := buf[:length]
		n, err := io.ReadFull(r, data)
		if err != nil {
			return nil, readError(err, length, int64(n))
		}

		if kind == opcode.Signed {
			return Integer{Value: decodeSigned(data), Signed: true}, nil
		}
		return Integer{Value: int64(decodeUnsigned(data))}, nil

	case opcode.Bytes:
		// copy incrementally, a corrupt length field must not cause a
		// huge allocation before the stream runs out of data
		buf := &bytes.Buffer{}
		n, err := io.CopyN(buf, r, length)
		if err != nil {
			return nil, readError(err, length, n)
		}
		return Bytes(buf.Bytes()), nil

	default:
		return nil, fmt.Errorf("unsupported parameter kind %s", kind)
	}
}

func readError(err error, want, got int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncationError{Want: want, Got: got}
	}
	return fmt.Errorf("reading %d bytes: %w", want, err)
}

func decodeUnsigned(data []byte) uint64 {
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v
}

func decodeSigned(data []byte) int64 {
	if len(data) == 0 {
		return 0
	}
	shift := 64 - 8*len(data)
	return int64(decodeUnsigned(data)<<shift) >> shift
}
