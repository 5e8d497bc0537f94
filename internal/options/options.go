// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // DVI file to dump
	Output string // output file, printed on console if empty
}

// Flags contains behavior options.
type Flags struct {
	Table bool // print the opcode table instead of dumping a file
	Debug bool
	Quiet bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Format     string // text or spew
	Offsets    bool   // prefix opcodes with their file offset
	Separators bool   // empty line after page ends and the preamble
}

// Program options of the dumper.
type Program struct {
	Parameters
	Flags
	OutputFlags
}
