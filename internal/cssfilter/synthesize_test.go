package cssfilter

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kat/huegraph/internal/colormath"
)

func TestPrimitivesMatchReferenceValues(t *testing.T) {
	// invert(0.5) maps black onto mid gray, the solver's anchor input.
	mid := pixel{}.invert(0.5)
	assert.InDelta(t, 127.5, mid.r, 1e-9)
	assert.InDelta(t, 127.5, mid.g, 1e-9)
	assert.InDelta(t, 127.5, mid.b, 1e-9)

	// Full sepia of white clamps the red and green rows and leaves the
	// canonical warm blue channel.
	sep := pixel{255, 255, 255}.sepia(1)
	assert.InDelta(t, 255, sep.r, 1e-9)
	assert.InDelta(t, 255, sep.g, 1e-9)
	assert.InDelta(t, 255*0.937, sep.b, 0.5)

	// saturate(1) and hueRotate(0) are identities up to float noise.
	p := pixel{120, 33, 198}
	assert.InDelta(t, p.r, p.saturate(1).r, 1e-6)
	assert.InDelta(t, p.g, p.hueRotate(0).g, 1e-6)

	// brightness scales and clamps.
	assert.Equal(t, pixel{255, 100, 0}, pixel{200, 50, 0}.brightness(2))
}

func TestSynthesizeBlackIsTrivial(t *testing.T) {
	res := Synthesize(colormath.RGB(0, 0, 0))
	assert.Less(t, res.Error, 3)
}

func TestSynthesizeKnownColors(t *testing.T) {
	for _, hex := range []string{
		"#ff0000", "#00ff00", "#0000ff", "#ffffff",
		"#808080", "#ffa500", "#123456", "#e0e0e0",
	} {
		target, err := colormath.ParseColor(hex)
		assert.NoError(t, err)

		res := Synthesize(target)
		if res.Error >= 10 {
			t.Errorf("Synthesize(%s): error %d, filter %q", hex, res.Error, res.Filter)
		}
		assert.True(t, strings.HasPrefix(res.Filter, "invert(50%) sepia(100%)"), res.Filter)
	}
}

// The solver is a damped fixed-point refinement; it is expected to land
// within a channel-sum error of 3 for the vast majority of targets.
func TestSynthesizeAccuracy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const samples = 100
	within := 0
	for i := 0; i < samples; i++ {
		target := colormath.RGB(rng.Intn(256), rng.Intn(256), rng.Intn(256))
		res := Synthesize(target)
		if res.Error < 3 {
			within++
		}
		if res.Error > 30 {
			t.Errorf("Synthesize(%v): outlier error %d", target, res.Error)
		}
	}
	if within < samples*95/100 {
		t.Errorf("only %d/%d targets within error budget", within, samples)
	}
}
