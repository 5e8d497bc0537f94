// Package opcode contains the DVI opcode table that maps every possible
// leading byte of a DVI stream to the layout of the parameters that follow it.
package opcode

import (
	"fmt"
	"strconv"
	"strings"
)

// TableSize is the number of entries in an opcode table, one per byte value.
const TableSize = 256

// Byte values of opcodes that are referenced outside of the table construction.
const (
	Bop          = 139
	Eop          = 140
	Pre          = 247
	Post         = 248
	PostPost     = 249
	FinalPadding = 223 // byte value of the padding that follows post_post
)

// Names of opcodes that are referenced outside of the table construction.
const (
	NameUndefined = "undefined"
	NamePre       = "pre"
	NamePostPost  = "post_post"
	NameFinalPad  = "final_pad"
)

// printable mirrors the set of printable ASCII characters as used by the
// dvitype style tools: digits, letters, punctuation and whitespace.
const printable = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\x0b\x0c"

// Table is an immutable mapping of all 256 byte values to their descriptors.
type Table struct {
	entries [TableSize]*Descriptor
}

// NewTable builds the DVI opcode table.
func NewTable() *Table {
	b := &tableBuilder{}

	// 0-127 set_char_i
	for i := range 128 {
		var comment string
		if isPrintable(byte(i)) {
			comment = string(rune(i))
		}
		b.add(&Descriptor{Name: "set_char_" + strconv.Itoa(i), Comment: comment})
	}

	b.addSized("set", 'c', Unsigned) // 128-131
	b.add(rule("set_rule"))          // 132
	b.addSized("put", 'c', Unsigned) // 133-136
	b.add(rule("put_rule"))          // 137
	b.add(&Descriptor{Name: "nop"})  // 138
	b.add(bop())                     // 139
	b.add(&Descriptor{Name: "eop"})  // 140
	b.add(&Descriptor{Name: "push"}) // 141
	b.add(&Descriptor{Name: "pop"})  // 142

	b.addSized("right", 'b', Signed) // 143-146
	b.add(&Descriptor{Name: "w0"})   // 147
	b.addSized("w", 'b', Signed)     // 148-151
	b.add(&Descriptor{Name: "x0"})   // 152
	b.addSized("x", 'b', Signed)     // 153-156
	b.addSized("down", 'a', Signed)  // 157-160
	b.add(&Descriptor{Name: "y0"})   // 161
	b.addSized("y", 'a', Signed)     // 162-165
	b.add(&Descriptor{Name: "z0"})   // 166
	b.addSized("z", 'a', Signed)     // 167-170

	// 171-234 fnt_num_i
	for i := range 64 {
		b.add(&Descriptor{Name: "fnt_num_" + strconv.Itoa(i)})
	}

	b.addSized("fnt", 'k', Unsigned) // 235-238

	// 239-242 xxx1..xxx4, the special string length is given by k
	for i := 1; i <= 4; i++ {
		b.add(&Descriptor{
			Name: "xxx" + strconv.Itoa(i),
			Params: []Param{
				{Name: "k", Length: Fixed(i), Kind: Unsigned},
				{Name: "x", Length: Computed{0}, Kind: Bytes},
			},
		})
	}

	// 243-246 fnt_def1..fnt_def4, the font name length is a+l
	for i := 1; i <= 4; i++ {
		b.add(&Descriptor{
			Name: "fnt_def" + strconv.Itoa(i),
			Params: []Param{
				{Name: "k", Length: Fixed(i), Kind: Unsigned},
				{Name: "c", Length: Fixed(4), Kind: Unsigned},
				{Name: "s", Length: Fixed(4), Kind: Unsigned},
				{Name: "d", Length: Fixed(4), Kind: Unsigned},
				{Name: "a", Length: Fixed(1), Kind: Unsigned},
				{Name: "l", Length: Fixed(1), Kind: Unsigned},
				{Name: "n", Length: Computed{4, 5}, Kind: Bytes},
			},
		})
	}

	// 247
	b.add(&Descriptor{
		Name: NamePre,
		Params: []Param{
			{Name: "i", Length: Fixed(1), Kind: Unsigned},
			{Name: "num", Length: Fixed(4), Kind: Unsigned},
			{Name: "den", Length: Fixed(4), Kind: Unsigned},
			{Name: "mag", Length: Fixed(4), Kind: Unsigned},
			{Name: "k", Length: Fixed(1), Kind: Unsigned},
			{Name: "x", Length: Computed{4}, Kind: Bytes},
		},
	})

	// 248
	b.add(&Descriptor{
		Name: "post",
		Params: []Param{
			{Name: "p", Length: Fixed(4), Kind: Unsigned},
			{Name: "num", Length: Fixed(4), Kind: Unsigned},
			{Name: "den", Length: Fixed(4), Kind: Unsigned},
			{Name: "mag", Length: Fixed(4), Kind: Unsigned},
			{Name: "l", Length: Fixed(4), Kind: Unsigned},
			{Name: "u", Length: Fixed(4), Kind: Unsigned},
			{Name: "s", Length: Fixed(2), Kind: Unsigned},
			{Name: "t", Length: Fixed(2), Kind: Unsigned},
		},
	})

	// 249
	b.add(&Descriptor{
		Name: NamePostPost,
		Params: []Param{
			{Name: "q", Length: Fixed(4), Kind: Unsigned},
			{Name: "i", Length: Fixed(1), Kind: Unsigned},
		},
	})

	if b.next != PostPost+1 {
		panic(fmt.Sprintf("opcode table construction ended at %d instead of %d", b.next, PostPost+1))
	}

	// 250-255 stay undefined
	for i := b.next; i < TableSize; i++ {
		b.table.entries[i] = undefined
	}
	return &b.table
}

// Lookup returns the descriptor for the given byte value. It never returns
// nil, unassigned values resolve to the undefined descriptor.
func (t *Table) Lookup(code byte) *Descriptor {
	return t.entries[code]
}

// Descriptors returns all descriptors ordered by their byte value.
func (t *Table) Descriptors() []*Descriptor {
	descriptors := make([]*Descriptor, TableSize)
	copy(descriptors, t.entries[:])
	return descriptors
}

type tableBuilder struct {
	table Table
	next  int
}

func (b *tableBuilder) add(d *Descriptor) {
	b.table.entries[b.next] = d
	b.next++
}

// addSized adds the 4 variants name1..name4 of an opcode that has a single
// parameter whose byte length equals the variant number.
func (b *tableBuilder) addSized(name string, param rune, kind Kind) {
	for i := 1; i <= 4; i++ {
		b.add(&Descriptor{
			Name:   name + strconv.Itoa(i),
			Params: []Param{{Name: string(param), Length: Fixed(i), Kind: kind}},
		})
	}
}

func rule(name string) *Descriptor {
	return &Descriptor{
		Name: name,
		Params: []Param{
			{Name: "a", Length: Fixed(4), Kind: Signed},
			{Name: "b", Length: Fixed(4), Kind: Signed},
		},
	}
}

// bop has the 10 page counters c_0..c_9 followed by the pointer to the
// previous bop.
func bop() *Descriptor {
	params := make([]Param, 0, 11)
	for i := range 10 {
		params = append(params, Param{Name: "c_" + strconv.Itoa(i), Length: Fixed(4), Kind: Unsigned})
	}
	params = append(params, Param{Name: "p", Length: Fixed(4), Kind: Signed})
	return &Descriptor{Name: "bop", Params: params}
}

func isPrintable(c byte) bool {
	return strings.IndexByte(printable, c) >= 0
}
