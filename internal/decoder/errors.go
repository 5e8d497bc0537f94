package decoder

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidReference is returned when a computed parameter length references
	// a parameter that has not been decoded yet or is not an integer.
	ErrInvalidReference = errors.New("invalid parameter length reference")

	// ErrIntegerWidth is returned for integer parameters wider than 8 bytes.
	ErrIntegerWidth = errors.New("unsupported integer width")
)

// TruncationError is returned when the stream ends before all bytes of an
// opcode parameter could be read. It aborts the decode session.
type TruncationError struct {
	Offset int64 // stream offset of the opcode byte
	Opcode string
	Param  string
	Want   int64
	Got    int64
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("truncated parameter '%s' of opcode '%s' at offset %d: need %d bytes, got %d",
		e.Param, e.Opcode, e.Offset, e.Want, e.Got)
}

// Unwrap allows matching truncation errors with io.ErrUnexpectedEOF.
func (e *TruncationError) Unwrap() error {
	return io.ErrUnexpectedEOF
}
