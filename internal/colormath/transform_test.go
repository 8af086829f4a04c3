package colormath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMix(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(255, 255, 255)

	assert.Equal(t, RGB(128, 128, 128), Mix([]Color{a, b}, nil))
	assert.Equal(t, RGB(191, 191, 191), Mix([]Color{a, b}, []float64{1, 3}))

	// Non-positive weights are skipped entirely.
	assert.Equal(t, b, Mix([]Color{a, b}, []float64{0, 1}))
	assert.Equal(t, b, Mix([]Color{a, b}, []float64{-2, 1}))

	// Nothing to mix falls back to black.
	assert.Equal(t, RGB(0, 0, 0), Mix(nil, nil))
	assert.Equal(t, RGB(0, 0, 0), Mix([]Color{a, b}, []float64{0, 0}))
}

func TestInvert(t *testing.T) {
	c := RGBA(32, 32, 32, 0.5)

	full := Invert(c, 1)
	assert.Equal(t, RGBA(223, 223, 223, 0.5), full)

	none := Invert(c, 0)
	assert.Equal(t, c, none)

	// Half inversion lands every channel on the midpoint.
	half := Invert(RGB(0, 255, 100), 0.5)
	assert.Equal(t, RGB(128, 128, 128), half)
}

func TestHueRotate(t *testing.T) {
	red := RGB(255, 0, 0)

	green := HueRotate(red, 120)
	assert.Equal(t, RGB(0, 255, 0), green)

	// A full turn is the identity.
	same := HueRotate(red, 360)
	assert.Equal(t, red, same)
}

func TestAdjustHSL(t *testing.T) {
	c := RGB(255, 0, 0)

	// Neutral factors change nothing.
	assert.Equal(t, c, AdjustHSL(c, 0, 1, 1))

	// Zero saturation collapses to gray at the same lightness.
	gray := AdjustHSL(c, 0, 0, 1)
	assert.Equal(t, gray.R, gray.G)
	assert.Equal(t, gray.G, gray.B)

	// Lightness factors above the clamp saturate at white.
	white := AdjustHSL(c, 0, 1, 10)
	assert.Equal(t, RGB(255, 255, 255), white)
}
