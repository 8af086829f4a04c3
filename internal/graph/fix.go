package graph

import (
	"fmt"

	"github.com/kat/huegraph/internal/colormath"
)

// repairPadding widens the blocked luminance range on both sides to
// absorb floating point rounding in the luminance search.
const repairPadding = 0.005

// FixContrastWithLightness adjusts the subject's luminance until every
// given contrast link is satisfied, keeping its hue and saturation.
// When no single luminance can satisfy all links it falls back to pure
// black or pure white, whichever sits farther from the targets; the
// links' ordinary classification then reports the shortfall. The
// repaired color goes through the normal explicit-set path, so an
// indirect subject is detached from its definition.
func (g *Graph) FixContrastWithLightness(subject string, links []*ContrastLink) error {
	v, ok := g.vars[subject]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, subject)
	}
	current, ok := v.Color()
	if !ok {
		return fmt.Errorf("cannot repair %s: no resolved color", subject)
	}

	// Union the luminance intervals excluded by each link into one
	// blocked range.
	blockedLo, blockedHi := 1.0, 0.0
	targetSum, targetCount := 0.0, 0
	for _, link := range links {
		tc, ok := link.Target().Color()
		if !ok {
			continue
		}
		tl := colormath.RelativeLuminance(tc)
		lo, hi := colormath.NeededLuminanceRange(tl, link.MinContrast())
		if lo < blockedLo {
			blockedLo = lo
		}
		if hi > blockedHi {
			blockedHi = hi
		}
		targetSum += tl
		targetCount++
	}
	if targetCount == 0 || blockedLo >= blockedHi {
		return nil
	}

	lum := colormath.RelativeLuminance(current)
	if lum <= blockedLo || lum >= blockedHi {
		// Already outside the blocked range: every link is satisfied.
		return nil
	}

	blockedLo -= repairPadding
	blockedHi += repairPadding
	meanTarget := targetSum / float64(targetCount)

	var repaired colormath.Color
	switch {
	case blockedLo <= 0 && blockedHi >= 1:
		// No luminance satisfies everything. Pick the extreme farther
		// from the targets and let classification report what remains.
		if meanTarget > 0.5 {
			repaired = colormath.RGBA(0, 0, 0, current.A)
		} else {
			repaired = colormath.RGBA(255, 255, 255, current.A)
		}
	case meanTarget > 0.5:
		// Light targets: push the subject darker first.
		if blockedLo >= 0 {
			repaired = colormath.SetRelativeLuminance(current, blockedLo)
		} else {
			repaired = colormath.SetRelativeLuminance(current, blockedHi)
		}
	default:
		// Dark targets: push the subject lighter first.
		if blockedHi <= 1 {
			repaired = colormath.SetRelativeLuminance(current, blockedHi)
		} else {
			repaired = colormath.SetRelativeLuminance(current, blockedLo)
		}
	}

	if v.indirect {
		g.logger.Warn("contrast repair detaches indirect definition",
			"variable", subject, "was", v.value)
	}
	return g.SetColor(subject, repaired)
}
