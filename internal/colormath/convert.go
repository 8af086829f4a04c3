package colormath

import "math"

// HSVSL holds the result of a combined HSV/HSL readout of a color:
// hue in degrees, HSV saturation and value, and HSL saturation and
// lightness, all rounded to integer percentages (hue to whole degrees).
type HSVSL struct {
	H  int // hue, 0-360
	SV int // HSV saturation, 0-100
	V  int // HSV value, 0-100
	SL int // HSL saturation, 0-100
	L  int // HSL lightness, 0-100
}

// ToHSVSL converts a color to combined HSV/HSL channels. The hue is 0
// for achromatic colors.
func ToHSVSL(c Color) HSVSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	d := max - min

	var h float64
	switch {
	case d == 0:
		h = 0
	case max == r:
		h = 60 * math.Mod((g-b)/d, 6)
	case max == g:
		h = 60 * ((b-r)/d + 2)
	default:
		h = 60 * ((r-g)/d + 4)
	}
	if h < 0 {
		h += 360
	}

	v := max
	l := (max + min) / 2

	var sv float64
	if max > 0 {
		sv = d / max
	}
	var sl float64
	if d > 0 {
		sl = d / (1 - math.Abs(2*l-1))
	}

	return HSVSL{
		H:  round(h),
		SV: round(sv * 100),
		V:  round(v * 100),
		SL: round(sl * 100),
		L:  round(l * 100),
	}
}

// HSVToRGB converts hue (degrees), saturation and value (percent) to a
// color with the given alpha. Hue is periodic, so out-of-range values
// are fine.
func HSVToRGB(h, s, v float64, alpha float64) Color {
	s = clampF(s/100, 0, 1)
	v = clampF(v/100, 0, 1)
	h = wrapHue(h)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	r, g, b := sector(h, c, x)
	return RGBA(round((r+m)*255), round((g+m)*255), round((b+m)*255), alpha)
}

// HSLToRGB converts hue (degrees), saturation and lightness (percent)
// to a color with the given alpha. Hue is periodic.
func HSLToRGB(h, s, l float64, alpha float64) Color {
	s = clampF(s/100, 0, 1)
	l = clampF(l/100, 0, 1)
	h = wrapHue(h)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2
	r, g, b := sector(h, c, x)
	return RGBA(round((r+m)*255), round((g+m)*255), round((b+m)*255), alpha)
}

// sector maps a hue sector to unscaled r, g, b contributions.
func sector(h, c, x float64) (r, g, b float64) {
	switch {
	case h < 60:
		return c, x, 0
	case h < 120:
		return x, c, 0
	case h < 180:
		return 0, c, x
	case h < 240:
		return 0, x, c
	case h < 300:
		return x, 0, c
	default:
		return c, 0, x
	}
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
