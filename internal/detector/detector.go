// Package detector handles input format detection.
package detector

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/retroenv/dvidump/internal/decoder"
	"github.com/retroenv/dvidump/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// Format is the DVI variant identified by the id byte of the preamble.
type Format string

// Known DVI variants.
const (
	Unknown Format = "unknown"
	DVI     Format = "dvi"  // TeX
	PTeX    Format = "ptex" // pTeX vertical typesetting
	XDV     Format = "xdv"  // XeTeX extended DVI
)

var extensions = []string{".dvi", ".xdv"}

// Detector checks whether an input looks like a DVI stream. It only logs
// its findings, the stream is dumped regardless of the result.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// CheckFile returns whether the file name has a known DVI extension.
func (d *Detector) CheckFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if slices.Contains(extensions, ext) {
		return true
	}

	d.logger.Warn("Input file does not have a DVI file extension",
		log.String("file", filename))
	return false
}

// CheckPreamble determines the DVI variant from the first opcode of a stream.
func (d *Detector) CheckPreamble(op *decoder.Opcode) Format {
	if op.Code != opcode.Pre {
		d.logger.Warn("Stream does not start with a preamble",
			log.Uint8("code", op.Code),
			log.String("name", op.Name))
		return Unknown
	}

	id, _ := op.Integer("i")
	format := formatFromID(id)
	if format == Unknown {
		d.logger.Warn("Unknown DVI id byte in preamble", log.Int("id", int(id)))
		return format
	}

	d.logger.Debug("Detected format",
		log.String("format", string(format)),
		log.Int("id", int(id)))
	return format
}

func formatFromID(id int64) Format {
	switch id {
	case 2:
		return DVI
	case 3:
		return PTeX
	case 5, 6, 7:
		return XDV
	default:
		return Unknown
	}
}
