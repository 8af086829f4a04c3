package colormath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastRatioBounds(t *testing.T) {
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)

	assert.InDelta(t, 21, ContrastRatio(black, white), 0.01)
	assert.InDelta(t, 21, ContrastRatio(white, black), 0.01)
	assert.InDelta(t, 1, ContrastRatio(black, black), 0.001)

	c := RGB(120, 80, 200)
	assert.InDelta(t, 1, ContrastRatio(c, c), 0.001)
}

func TestContrastRatioAlphaBlending(t *testing.T) {
	// A fully transparent foreground contributes nothing of its own
	// luminance, so contrast collapses toward 1.
	ghost := RGBA(255, 255, 255, 0)
	black := RGB(0, 0, 0)
	assert.InDelta(t, 1, ContrastRatio(ghost, black), 0.001)

	// Half-transparent white over black lands strictly between the
	// opaque extremes.
	half := RGBA(255, 255, 255, 0.5)
	ratio := ContrastRatio(half, black)
	assert.Greater(t, ratio, 1.0)
	assert.Less(t, ratio, 21.0)
}

func TestNeededLuminanceRange(t *testing.T) {
	lo, hi := NeededLuminanceRange(0.5, 4.5)

	// Anything at or outside the bounds must satisfy the requirement.
	assert.GreaterOrEqual(t, (0.5+0.05)/(lo+0.05), 4.5-1e-9)
	assert.GreaterOrEqual(t, (hi+0.05)/(0.5+0.05), 4.5-1e-9)
	assert.Less(t, lo, 0.5)
	assert.Greater(t, hi, 0.5)

	// minContrast below 1 excludes nothing.
	lo, hi = NeededLuminanceRange(0.3, 0.5)
	assert.Equal(t, 0.3, lo)
	assert.Equal(t, 0.3, hi)
}

func TestSetRelativeLuminance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		c := RGB(rng.Intn(256), rng.Intn(256), rng.Intn(256))
		target := rng.Float64()

		got := SetRelativeLuminance(c, target)
		lum := RelativeLuminance(got)

		// Quantizing back to 8-bit channels can add a little on top of
		// the search tolerance.
		if math.Abs(lum-target) > 0.02 {
			t.Fatalf("SetRelativeLuminance(%v, %.3f) -> %v with luminance %.3f",
				c, target, got, lum)
		}
	}
}

func TestSetRelativeLuminancePreservesAlpha(t *testing.T) {
	c := RGBA(200, 40, 40, 0.5)
	got := SetRelativeLuminance(c, 0.8)
	assert.Equal(t, 0.5, got.A)
}
