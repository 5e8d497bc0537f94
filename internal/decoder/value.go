package decoder

import (
	"strconv"
)

// Value is a decoded parameter value, either an Integer or Bytes.
type Value interface {
	isValue()
}

// Integer is a decoded signed or unsigned integer parameter.
type Integer struct {
	Value  int64
	Signed bool
}

// Bytes is a decoded opaque byte string parameter.
type Bytes []byte

func (Integer) isValue() {}
func (Bytes) isValue()   {}

func (i Integer) String() string {
	return strconv.FormatInt(i.Value, 10)
}

// NamedValue is a decoded value together with the name of its parameter.
type NamedValue struct {
	Name  string
	Value Value
}

// Opcode is a single decoded opcode with all its parameter values.
type Opcode struct {
	Offset  int64 // stream offset of the opcode byte
	Code    byte
	Name    string
	Comment string
	Values  []NamedValue
}

// Integer returns the integer value of the named parameter.
func (o *Opcode) Integer(name string) (int64, bool) {
	for _, v := range o.Values {
		if v.Name != name {
			continue
		}
		i, ok := v.Value.(Integer)
		return i.Value, ok
	}
	return 0, false
}

// Bytes returns the byte string value of the named parameter.
func (o *Opcode) Bytes(name string) ([]byte, bool) {
	for _, v := range o.Values {
		if v.Name != name {
			continue
		}
		b, ok := v.Value.(Bytes)
		return b, ok
	}
	return nil, false
}
