package opcode

import "strings"

// Descriptor describes an opcode: its name, an optional literal comment and
// the ordered list of parameters that follow the opcode byte.
type Descriptor struct {
	Name    string
	Comment string
	Params  []Param
}

func (d *Descriptor) String() string {
	if len(d.Params) == 0 {
		return d.Name
	}

	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.String()
	}
	return d.Name + " " + strings.Join(params, " ")
}

// undefined is shared by all byte values without an explicit assignment.
var undefined = &Descriptor{Name: NameUndefined}

// Undefined returns the descriptor used for byte values that have no
// explicit opcode assigned.
func Undefined() *Descriptor {
	return undefined
}
