package dumper

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/dvidump/internal/decoder"
	"github.com/retroenv/dvidump/internal/opcode"
	"github.com/retroenv/retrogolib/assert"
)

// sample contains a minimal document: preamble, one page with a font
// definition, a special and a character, followed by the postamble.
var sample = []byte{
	247, 2,                 // pre
	0x01, 0x83, 0x92, 0xc0, // num
	0x1c, 0x3b, 0x00, 0x00, // den
	0x00, 0x00, 0x03, 0xe8, // mag
	2, 'o', 'k',            // comment
	139,                    // bop
	0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0xff, 0xff, 0xff, 0xff,
	243, 0, // fnt_def1
	0, 0, 0, 0, 0, 0x0a, 0, 0, 0, 0x0a, 0, 0,
	0, 5, 'c', 'm', 'r', '1', '0',
	239, 3, 'a', 'b', 'c', // xxx1
	65,                    // set_char_65
	140,                   // eop
	249, 0, 0, 0, 0, 2,    // post_post
	223, 223,              // padding
}

var expectedSample = `247            pre
                     i = 2
                     num = 25400000
                     den = 473628672
                     mag = 1000
                     x = ok

139            bop
                     c_0 = 1
                     c_1 = 0
                     c_2 = 0
                     c_3 = 0
                     c_4 = 0
                     c_5 = 0
                     c_6 = 0
                     c_7 = 0
                     c_8 = 0
                     c_9 = 0
                     p = -1
243       fnt_def1
                     k = 0
                     c = 0
                     s = 655360
                     d = 655360
                     a = 0
                     l = 5
                     n = cmr10
239           xxx1
                     k = 3
                     x = abc
065    set_char_65   A
140            eop

249      post_post
                     q = 0
                     i = 2
223      final_pad
223      final_pad
`

func TestDumper_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(buf, Options{Separators: true})

	count, err := d.Dump(context.Background(), decoder.NewReader(bytes.NewReader(sample)))
	assert.NoError(t, err)
	assert.Equal(t, 9, count)
	assert.Equal(t, expectedSample, buf.String())
}

func TestDumper_NoSeparators(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(buf, Options{})

	_, err := d.Dump(context.Background(), decoder.NewReader(bytes.NewReader(sample)))
	assert.NoError(t, err)
	assert.False(t, strings.Contains(buf.String(), "\n\n"))
}

func TestDumper_Offsets(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(buf, Options{Offsets: true})

	_, err := d.Dump(context.Background(), decoder.NewReader(bytes.NewReader([]byte{141, 143, 0xfe})))
	assert.NoError(t, err)

	expected := "00000000  141           push\n" +
		"00000001  143         right1\n" +
		"                               b = -2\n"
	assert.Equal(t, expected, buf.String())
}

func TestDumper_Truncated(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(buf, Options{})

	count, err := d.Dump(context.Background(), decoder.NewReader(bytes.NewReader([]byte{138, 249, 0, 0})))
	assert.Equal(t, 1, count)

	var truncErr *decoder.TruncationError
	assert.True(t, errors.As(err, &truncErr))
	// no partial record is written for the truncated opcode
	assert.Equal(t, "138            nop\n", buf.String())
}

func TestDumper_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(&bytes.Buffer{}, Options{})
	count, err := d.Dump(ctx, decoder.NewReader(bytes.NewReader(sample)))
	assert.Equal(t, 0, count)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDumper_Spew(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(buf, Options{Format: FormatSpew})

	_, err := d.Dump(context.Background(), decoder.NewReader(bytes.NewReader([]byte{235, 7})))
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "fnt1")
	assert.Contains(t, buf.String(), "Value: (int64) 7")
}

func TestDumper_UnsupportedFormat(t *testing.T) {
	d := New(&bytes.Buffer{}, Options{Format: "xml"})

	_, err := d.Dump(context.Background(), decoder.NewReader(bytes.NewReader([]byte{138})))
	assert.ErrorContains(t, err, "unsupported output format 'xml'")
}

func TestDumper_WriteTable(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(buf, Options{})

	assert.NoError(t, d.WriteTable(opcode.NewTable()))

	output := buf.String()
	assert.Contains(t, output, "065    set_char_65   A\n")
	assert.Contains(t, output, "010    set_char_10   \"\\n\"\n")
	assert.Contains(t, output, "243       fnt_def1\n                     k [1] U\n")
	assert.Contains(t, output, "                     n [#4+#5] str\n")
	assert.Contains(t, output, "255      undefined\n")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    decoder.Value
		expected string
	}{
		{"unsigned", decoder.Integer{Value: 4294967295}, "4294967295"},
		{"signed", decoder.Integer{Value: -1, Signed: true}, "-1"},
		{"text", decoder.Bytes("cmr10"), "cmr10"},
		{"utf-8 text", decoder.Bytes("grün"), "grün"},
		{"empty", decoder.Bytes(nil), ""},
		{"invalid utf-8", decoder.Bytes{'a', 0xff}, `"a\xff" (invalid utf-8)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.value))
		})
	}
}
