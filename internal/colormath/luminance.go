package colormath

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// luminanceTolerance is how close SetRelativeLuminance is required to
// get to the requested luminance before it stops searching.
const luminanceTolerance = 0.005

// RelativeLuminance computes the WCAG relative luminance of a color,
// in [0, 1].
func RelativeLuminance(c Color) float64 {
	return luminanceRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func luminanceRGB(r, g, b float64) float64 {
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// linearize gamma-decodes a single sRGB channel in [0, 1].
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG contrast ratio between two colors,
// in [1, 21]. When either color is translucent, its luminance is first
// blended toward the other color's proportionally to its own alpha.
// That is a heuristic, not a standards formula: true contrast depends
// on the actual backdrop, which is unknown here.
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if a.A < 1 || b.A < 1 {
		la, lb = la*a.A+lb*(1-a.A), lb*b.A+la*(1-b.A)
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// NeededLuminanceRange returns the open interval (lo, hi) of luminances
// that fail to reach minContrast against the given luminance. Values at
// or below lo, or at or above hi, satisfy the requirement. The interval
// is empty (lo == hi == luminance) when minContrast < 1.
func NeededLuminanceRange(luminance, minContrast float64) (lo, hi float64) {
	if minContrast < 1 {
		return luminance, luminance
	}
	lo = (luminance+0.05)/minContrast - 0.05
	hi = (luminance+0.05)*minContrast - 0.05
	return lo, hi
}

// SetRelativeLuminance returns a color with the same hue and saturation
// as c whose relative luminance is within luminanceTolerance of target.
// Luminance is monotonic non-decreasing in HSL lightness, so a binary
// search over lightness converges in at most 20 steps.
func SetRelativeLuminance(c Color, target float64) Color {
	target = clampF(target, 0, 1)
	h, s, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()

	lo, hi := 0.0, 1.0
	best := colorful.Hsl(h, s, 0.5)
	for i := 0; i < 20; i++ {
		l := (lo + hi) / 2
		best = colorful.Hsl(h, s, l)
		lum := luminanceRGB(best.R, best.G, best.B)
		if math.Abs(lum-target) <= luminanceTolerance {
			break
		}
		if lum < target {
			lo = l
		} else {
			hi = l
		}
	}
	return RGBA(round(best.R*255), round(best.G*255), round(best.B*255), c.A)
}
