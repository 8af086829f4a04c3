package colormath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
	}{
		{"#fff", RGB(255, 255, 255)},
		{"#202020", RGB(32, 32, 32)},
		{"#FF8000", RGB(255, 128, 0)},
		{"#ff800080", RGBA(255, 128, 0, 128.0 / 255)},
		{"rgb(32, 64, 128)", RGB(32, 64, 128)},
		{"rgb(32 64 128)", RGB(32, 64, 128)},
		{"rgba(32, 64, 128, 0.5)", RGBA(32, 64, 128, 0.5)},
		{"rgb(32 64 128 / 0.25)", RGBA(32, 64, 128, 0.25)},
		{"color(srgb 1 0.5 0)", RGB(255, 128, 0)},
		{"color(srgb 1 0.5 0 / 0.5)", RGBA(255, 128, 0, 0.5)},
		{"  #abc  ", RGB(170, 187, 204)},
	}

	for _, test := range tests {
		got, err := ParseColor(test.in)
		assert.NoError(t, err, test.in)
		assert.Equal(t, test.expected, got, test.in)
	}
}

func TestParseColorRejectsIndirectSyntax(t *testing.T) {
	for _, in := range []string{
		"var(--accent)",
		"color-mix(in srgb, var(--a), var(--b))",
		"linear-gradient(#fff, #000)",
		"#12",
		"#xyzxyz",
		"rgb(1,2)",
		"",
	} {
		_, err := ParseColor(in)
		if !errors.Is(err, ErrUnparseable) {
			t.Errorf("ParseColor(%q) = %v, want ErrUnparseable", in, err)
		}
	}
}

func TestColorEqualTreatsAlphaAsChannel(t *testing.T) {
	assert.True(t, RGB(1, 2, 3).Equal(RGBA(1, 2, 3, 1)))
	assert.False(t, RGB(1, 2, 3).Equal(RGBA(1, 2, 3, 0.5)))
}

func TestHexFormats(t *testing.T) {
	assert.Equal(t, "#20ff00", RGB(32, 255, 0).Hex())
	assert.Equal(t, "#20ff0080", RGBA(32, 255, 0, 128.0/255).Hex())
	assert.Equal(t, "32,255,0", RGB(32, 255, 0).Decimal())
}
