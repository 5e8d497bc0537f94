package opcode

// Session is the opcode table view of a single decode session. It combines
// the immutable base table with an overlay that holds late rebinds of single
// byte values, like the final padding byte after the postamble.
type Session struct {
	base *Table

	overlayCode byte
	overlay     *Descriptor
}

// NewSession returns a new session view of the given base table.
// If base is nil, a freshly built table is used.
func NewSession(base *Table) *Session {
	if base == nil {
		base = NewTable()
	}
	return &Session{base: base}
}

// Lookup returns the descriptor for the given byte value, a rebound
// descriptor takes precedence over the base table entry.
func (s *Session) Lookup(code byte) *Descriptor {
	if s.overlay != nil && s.overlayCode == code {
		return s.overlay
	}
	return s.base.Lookup(code)
}

// Rebind replaces the descriptor of the given byte value for the remainder
// of the session. The overlay holds a single slot, a rebind of a different
// byte value replaces the previous one.
func (s *Session) Rebind(code byte, d *Descriptor) {
	s.overlayCode = code
	s.overlay = d
}

// Rebound returns whether the given byte value has been rebound.
func (s *Session) Rebound(code byte) bool {
	return s.overlay != nil && s.overlayCode == code
}

// Base returns the immutable base table of the session.
func (s *Session) Base() *Table {
	return s.base
}

// FinalPad returns the descriptor that replaces the padding byte value
// once the postamble has been observed.
func FinalPad() *Descriptor {
	return &Descriptor{Name: NameFinalPad}
}
