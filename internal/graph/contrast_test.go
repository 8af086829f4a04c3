package graph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kat/huegraph/internal/colormath"
)

func TestContrastClassification(t *testing.T) {
	g := newTestGraph()
	require.NoError(t, g.SetValue("--text", "#000000", true))
	require.NoError(t, g.SetValue("--page", "#ffffff", true))

	link, err := g.AddContrastLink("--text", "--page", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinContrast, link.MinContrast())
	assert.Equal(t, ContrastSufficient, link.Class())
	assert.InDelta(t, 21, link.Contrast(), 0.01)

	// Degrade the subject into the insufficient band, then past it.
	require.NoError(t, g.SetColor("--text", colormath.RGB(130, 130, 130)))
	assert.Equal(t, ContrastInsufficient, link.Class())
	require.NoError(t, g.SetColor("--text", colormath.RGB(150, 150, 150)))
	assert.Equal(t, ContrastBad, link.Class())
}

func TestContrastLinkFollowsEitherEndpoint(t *testing.T) {
	g := newTestGraph()
	require.NoError(t, g.SetValue("--text", "#000000", true))
	require.NoError(t, g.SetValue("--page", "#ffffff", true))
	link, err := g.AddContrastLink("--text", "--page", 4.5)
	require.NoError(t, err)

	before := link.Contrast()
	require.NoError(t, g.SetColor("--page", colormath.RGB(32, 32, 32)))
	assert.Less(t, link.Contrast(), before, "target edits re-measure the link")
}

func TestFixContrastNoOpWhenSufficient(t *testing.T) {
	g := newTestGraph()
	// Near-black on near-white is already ~11.9:1.
	require.NoError(t, g.SetValue("--text", "#212121", true))
	require.NoError(t, g.SetValue("--page", "#f5f5f5", true))
	link, err := g.AddContrastLink("--text", "--page", 4.5)
	require.NoError(t, err)
	require.Equal(t, ContrastSufficient, link.Class())

	text, _ := g.Get("--text")
	before, _ := text.Color()
	require.NoError(t, g.FixContrastWithLightness("--text", []*ContrastLink{link}))
	after, _ := text.Color()
	assert.Equal(t, before, after, "repair must not touch a passing subject")
}

func TestFixContrastRepairsFailingSubject(t *testing.T) {
	g := newTestGraph()
	require.NoError(t, g.SetValue("--text", "#777777", true))
	require.NoError(t, g.SetValue("--page", "#888888", true))
	link, err := g.AddContrastLink("--text", "--page", 4.5)
	require.NoError(t, err)
	require.NotEqual(t, ContrastSufficient, link.Class())

	require.NoError(t, g.FixContrastWithLightness("--text", []*ContrastLink{link}))
	assert.GreaterOrEqual(t, link.Contrast(), 4.5-0.01)
}

func TestFixContrastDetachesIndirectSubject(t *testing.T) {
	g := newTestGraph()
	require.NoError(t, g.SetValue("--page", "#808080", true))
	require.NoError(t, g.SetValue("--text", "var(--page)", true))
	link, err := g.AddContrastLink("--text", "--page", 4.5)
	require.NoError(t, err)

	require.NoError(t, g.FixContrastWithLightness("--text", []*ContrastLink{link}))
	text, _ := g.Get("--text")
	assert.False(t, text.Indirect(), "repair bakes a concrete color")
	assert.Empty(t, text.DependsOn())
	require.NoError(t, g.CheckInvariants())
}

func TestFixContrastInfeasibleFallsBackToExtreme(t *testing.T) {
	g := newTestGraph()
	// Two targets at opposite extremes with a minimum nothing in
	// between can satisfy simultaneously.
	require.NoError(t, g.SetValue("--subject", "#808080", true))
	require.NoError(t, g.SetValue("--dark", "#000000", true))
	require.NoError(t, g.SetValue("--light", "#ffffff", true))

	l1, err := g.AddContrastLink("--subject", "--dark", 7)
	require.NoError(t, err)
	l2, err := g.AddContrastLink("--subject", "--light", 7)
	require.NoError(t, err)

	require.NoError(t, g.FixContrastWithLightness("--subject", []*ContrastLink{l1, l2}))
	subject, _ := g.Get("--subject")
	c, _ := subject.Color()
	isExtreme := c.Equal(colormath.RGB(0, 0, 0)) || c.Equal(colormath.RGB(255, 255, 255))
	assert.True(t, isExtreme, "got %v", c)

	// One of the links is necessarily still failing; classification
	// reports it rather than the repair erroring.
	stillFailing := l1.Class() != ContrastSufficient || l2.Class() != ContrastSufficient
	assert.True(t, stillFailing)
}

func TestFixContrastConvergesOnRandomPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(23))

	for i := 0; i < 200; i++ {
		g := newTestGraph()
		subject := colormath.RGB(rng.Intn(256), rng.Intn(256), rng.Intn(256))
		target := colormath.RGB(rng.Intn(256), rng.Intn(256), rng.Intn(256))
		min := 1 + rng.Float64()*20

		require.NoError(t, g.SetValue("--subject", subject.Hex(), true))
		require.NoError(t, g.SetValue("--target", target.Hex(), true))

		// Skip knife-edge cases where the requirement sits at the
		// theoretical ceiling for this target.
		tl := colormath.RelativeLuminance(target)
		ceiling := (tl + 0.05) / 0.05
		if white := (1.05) / (tl + 0.05); white > ceiling {
			ceiling = white
		}
		if min > ceiling-0.5 {
			continue
		}

		link, err := g.AddContrastLink("--subject", "--target", min)
		require.NoError(t, err)
		require.NoError(t, g.FixContrastWithLightness("--subject", []*ContrastLink{link}))

		// The luminance search tolerance plus 8-bit quantization can
		// leave a small shortfall, largest against very dark targets.
		if link.Contrast() < min-0.15 {
			t.Fatalf("case %d: subject %v target %v min %.2f got %.2f",
				i, subject, target, min, link.Contrast())
		}
	}
}
