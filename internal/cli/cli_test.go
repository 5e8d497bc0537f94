package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/dvidump/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.dvi"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "test.dvi"},
				OutputFlags: options.OutputFlags{Format: "text", Separators: true},
			},
		},
		{
			name: "output and offsets",
			args: []string{"prog", "-o", "out.txt", "-offsets", "test.dvi"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "test.dvi", Output: "out.txt"},
				OutputFlags: options.OutputFlags{Format: "text", Offsets: true, Separators: true},
			},
		},
		{
			name: "no separators",
			args: []string{"prog", "-separators=false", "test.dvi"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "test.dvi"},
				OutputFlags: options.OutputFlags{Format: "text"},
			},
		},
		{
			name: "spew format is normalized",
			args: []string{"prog", "-format", "SPEW", "-debug", "test.dvi"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "test.dvi"},
				Flags:       options.Flags{Debug: true},
				OutputFlags: options.OutputFlags{Format: "spew", Separators: true},
			},
		},
		{
			name: "table without file",
			args: []string{"prog", "-table", "-q"},
			want: options.Program{
				Flags:       options.Flags{Table: true, Quiet: true},
				OutputFlags: options.OutputFlags{Format: "text", Separators: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Usage(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		noArguments bool
	}{
		{"no arguments", []string{"prog"}, true},
		{"help", []string{"prog", "-h"}, true},
		{"unknown flag", []string{"prog", "-unknown", "test.dvi"}, false},
		{"flag after file", []string{"prog", "test.dvi", "-offsets"}, false},
		{"multiple files", []string{"prog", "a.dvi", "b.dvi"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.noArguments, usageErr.NoArguments())
		})
	}
}

func TestParseFlags_InvalidFormat(t *testing.T) {
	_, err := ParseFlags([]string{"prog", "-format", "xml", "test.dvi"})
	assert.ErrorContains(t, err, "unsupported output format: xml")

	var usageErr *UsageError
	assert.False(t, errors.As(err, &usageErr))
}

func TestUsageError_WriteUsage(t *testing.T) {
	_, err := ParseFlags([]string{"prog"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	buf := &bytes.Buffer{}
	usageErr.WriteUsage(buf)
	assert.Contains(t, buf.String(), "usage: dvidump [options] <file.dvi>")
	assert.Contains(t, buf.String(), "-offsets")
	assert.Contains(t, buf.String(), "-table")
}
