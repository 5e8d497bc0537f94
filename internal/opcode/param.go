package opcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind defines how the bytes of a parameter are interpreted.
type Kind uint8

// Parameter kinds.
const (
	Unsigned Kind = iota + 1 // big-endian unsigned integer
	Signed                   // big-endian two's complement integer
	Bytes                    // opaque byte string
)

func (k Kind) String() string {
	switch k {
	case Unsigned:
		return "U"
	case Signed:
		return "S"
	case Bytes:
		return "str"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsInteger returns whether the kind decodes to an integer value.
func (k Kind) IsInteger() bool {
	return k == Unsigned || k == Signed
}

// Length specifies the byte length of a parameter. It is either a Fixed
// byte count or Computed from previously decoded values of the same opcode.
type Length interface {
	fmt.Stringer
	isLength()
}

// Fixed is a constant parameter length in bytes.
type Fixed int

// Computed is a parameter length that equals the sum of the integer values
// decoded earlier in the same opcode at the given parameter indices.
type Computed []int

func (Fixed) isLength()    {}
func (Computed) isLength() {}

func (f Fixed) String() string {
	return strconv.Itoa(int(f))
}

func (c Computed) String() string {
	parts := make([]string, len(c))
	for i, idx := range c {
		parts[i] = "#" + strconv.Itoa(idx)
	}
	return strings.Join(parts, "+")
}

// Param describes a single parameter of an opcode.
type Param struct {
	Name   string
	Length Length
	Kind   Kind
}

func (p Param) String() string {
	return fmt.Sprintf("%s[%s]%s", p.Name, p.Length, p.Kind)
}
