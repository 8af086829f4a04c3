// Package cssfilter approximates an arbitrary sRGB color by a CSS
// filter chain applied to pure black. The chain shape is fixed:
//
//	invert(50%) sepia(100%) hue-rotate(H) brightness(B) saturate(S)
//
// and the solver searches for H, B and S. The filter primitives follow
// the W3C Filter Effects matrix definitions, operating on float
// channels in [0, 255] with per-channel clamping.
package cssfilter

import "math"

// pixel is a color in filter space. Channels stay floating point
// between primitives; rounding only happens when comparing against the
// 8-bit target.
type pixel struct {
	r, g, b float64
}

func (p pixel) clamp() pixel {
	c := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return pixel{c(p.r), c(p.g), c(p.b)}
}

// invert interpolates each channel toward its inverse by amount.
func (p pixel) invert(amount float64) pixel {
	f := func(v float64) float64 {
		return v + amount*(255-2*v)
	}
	return pixel{f(p.r), f(p.g), f(p.b)}.clamp()
}

// sepia applies the sepia color matrix at the given strength.
func (p pixel) sepia(amount float64) pixel {
	return p.multiply([9]float64{
		0.393 + 0.607*(1-amount), 0.769 - 0.769*(1-amount), 0.189 - 0.189*(1-amount),
		0.349 - 0.349*(1-amount), 0.686 + 0.314*(1-amount), 0.168 - 0.168*(1-amount),
		0.272 - 0.272*(1-amount), 0.534 - 0.534*(1-amount), 0.131 + 0.869*(1-amount),
	})
}

// saturate applies the saturation matrix; amount 1 is the identity.
func (p pixel) saturate(amount float64) pixel {
	return p.multiply([9]float64{
		0.213 + 0.787*amount, 0.715 - 0.715*amount, 0.072 - 0.072*amount,
		0.213 - 0.213*amount, 0.715 + 0.285*amount, 0.072 - 0.072*amount,
		0.213 - 0.213*amount, 0.715 - 0.715*amount, 0.072 + 0.928*amount,
	})
}

// hueRotate applies the hue rotation matrix for the given angle in
// degrees.
func (p pixel) hueRotate(degrees float64) pixel {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return p.multiply([9]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072,
	})
}

// brightness scales every channel linearly.
func (p pixel) brightness(amount float64) pixel {
	return pixel{p.r * amount, p.g * amount, p.b * amount}.clamp()
}

func (p pixel) multiply(m [9]float64) pixel {
	return pixel{
		r: m[0]*p.r + m[1]*p.g + m[2]*p.b,
		g: m[3]*p.r + m[4]*p.g + m[5]*p.b,
		b: m[6]*p.r + m[7]*p.g + m[8]*p.b,
	}.clamp()
}
