package colormath

// Mix returns the weighted per-channel average of the given colors.
// Weights default to 1 each when nil or shorter than colors; entries
// with non-positive weight are skipped. Mixing nothing yields opaque
// black.
func Mix(colors []Color, weights []float64) Color {
	var r, g, b, a, total float64
	for i, c := range colors {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		if w <= 0 {
			continue
		}
		r += float64(c.R) * w
		g += float64(c.G) * w
		b += float64(c.B) * w
		a += c.A * w
		total += w
	}
	if total == 0 {
		return RGB(0, 0, 0)
	}
	return RGBA(round(r/total), round(g/total), round(b/total), a/total)
}

// Invert interpolates between the identity (amount 0) and the full
// channel inversion 255-c (amount 1). Alpha is untouched.
func Invert(c Color, amount float64) Color {
	inv := func(v int) int {
		return round(float64(v) + amount*float64(255-2*v))
	}
	return RGBA(inv(c.R), inv(c.G), inv(c.B), c.A)
}

// HueRotate shifts the color's hue by the given number of degrees.
// No modulo is needed; the HSL round trip is periodic in hue.
func HueRotate(c Color, degrees float64) Color {
	h := ToHSVSL(c)
	return HSLToRGB(float64(h.H)+degrees, float64(h.SL), float64(h.L), c.A)
}

// AdjustHSL shifts the hue by hueOffset degrees and scales the HSL
// saturation and lightness by the given factors (1 = no change),
// clamping both to [0, 100] after scaling.
func AdjustHSL(c Color, hueOffset, satFactor, lightFactor float64) Color {
	h := ToHSVSL(c)
	s := clampF(float64(h.SL)*satFactor, 0, 100)
	l := clampF(float64(h.L)*lightFactor, 0, 100)
	return HSLToRGB(float64(h.H)+hueOffset, s, l, c.A)
}
