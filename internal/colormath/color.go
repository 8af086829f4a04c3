// Package colormath provides the pure color arithmetic used by the
// variable engine: parsing CSS color literals, RGB/HSV/HSL conversion,
// mixing, channel transforms, and WCAG luminance and contrast math.
// Everything here is stateless.
package colormath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparseable is returned by ParseColor for any syntax it does not
// recognize. Callers treat it as "this is an indirect definition", not
// as a failure.
var ErrUnparseable = errors.New("unparseable color literal")

// Color is an sRGB color with 8-bit integer channels and a unit-interval
// alpha. Alpha 1 means opaque; construct through RGB or RGBA so the
// alpha is never accidentally zero.
type Color struct {
	R, G, B int
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with an explicit alpha in [0, 1].
func RGBA(r, g, b int, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Equal reports whether two colors have identical channels, treating
// alpha as part of the value.
func (c Color) Equal(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B && c.A == o.A
}

// Opaque reports whether the color has full alpha.
func (c Color) Opaque() bool {
	return c.A >= 1
}

// Hex returns the lowercase #rrggbb form, or #rrggbbaa when the color
// is translucent.
func (c Color) Hex() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, round(c.A*255))
}

// Decimal returns the "R,G,B" companion form used for --rgb variables.
func (c Color) Decimal() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// String implements fmt.Stringer using the hex form.
func (c Color) String() string {
	return c.Hex()
}

// ParseColor parses a CSS color literal. Recognized syntaxes are
// #rgb, #rrggbb, #rrggbbaa, rgb()/rgba(), and color(srgb r g b [/ a]).
// Anything else (var() references, color-mix(), gradients) returns
// ErrUnparseable, which signals an indirect definition to the caller.
func ParseColor(text string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[5 : len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBFunc(s[4 : len(s)-1])
	case strings.HasPrefix(s, "color(srgb") && strings.HasSuffix(s, ")"):
		return parseSRGBFunc(s[10 : len(s)-1])
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
}

func parseHex(hex string) (Color, error) {
	switch len(hex) {
	case 3:
		r, err1 := strconv.ParseUint(hex[0:1], 16, 8)
		g, err2 := strconv.ParseUint(hex[1:2], 16, 8)
		b, err3 := strconv.ParseUint(hex[2:3], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("%w: #%s", ErrUnparseable, hex)
		}
		return RGB(int(r*17), int(g*17), int(b*17)), nil
	case 6, 8:
		r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("%w: #%s", ErrUnparseable, hex)
		}
		if len(hex) == 8 {
			a, err := strconv.ParseUint(hex[6:8], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: #%s", ErrUnparseable, hex)
			}
			return RGBA(int(r), int(g), int(b), float64(a)/255), nil
		}
		return RGB(int(r), int(g), int(b)), nil
	}
	return Color{}, fmt.Errorf("%w: #%s", ErrUnparseable, hex)
}

// parseRGBFunc parses the argument list of rgb()/rgba(), accepting both
// comma-separated and space-separated forms, with the alpha either as a
// fourth argument or after a slash.
func parseRGBFunc(args string) (Color, error) {
	fields := splitArgs(args)
	if len(fields) < 3 || len(fields) > 4 {
		return Color{}, fmt.Errorf("%w: rgb(%s)", ErrUnparseable, args)
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: rgb(%s)", ErrUnparseable, args)
		}
		ch[i] = round(v)
	}
	alpha := 1.0
	if len(fields) == 4 {
		v, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: rgb(%s)", ErrUnparseable, args)
		}
		alpha = v
	}
	return RGBA(ch[0], ch[1], ch[2], alpha), nil
}

// parseSRGBFunc parses the argument list of color(srgb ...), whose
// components are fractions in [0, 1] scaled to 8-bit channels.
func parseSRGBFunc(args string) (Color, error) {
	fields := splitArgs(args)
	if len(fields) < 3 || len(fields) > 4 {
		return Color{}, fmt.Errorf("%w: color(srgb%s)", ErrUnparseable, args)
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color(srgb%s)", ErrUnparseable, args)
		}
		ch[i] = round(v * 255)
	}
	alpha := 1.0
	if len(fields) == 4 {
		v, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color(srgb%s)", ErrUnparseable, args)
		}
		alpha = v
	}
	return RGBA(ch[0], ch[1], ch[2], alpha), nil
}

// splitArgs tokenizes a CSS function argument list on commas, spaces,
// and the alpha slash.
func splitArgs(args string) []string {
	return strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '/'
	})
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
