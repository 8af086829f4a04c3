package cssfilter

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kat/huegraph/internal/colormath"
)

const (
	maxIterations = 40
	// targetError is the summed channel error (out of 765) below which
	// the search stops early.
	targetError = 3
	// damping applied to each correction step to avoid oscillation.
	damping = 0.5
)

// Result is a synthesized filter chain and how close it gets.
type Result struct {
	HueRotate  float64 // degrees
	Brightness float64 // multiplier, 1 = unchanged
	Saturate   float64 // multiplier, 1 = unchanged
	Error      int     // sum of absolute channel differences vs the target
	Filter     string  // CSS filter value reproducing the color from black
}

// Synthesize searches for hue-rotate, brightness and saturate values
// that make the fixed chain reproduce target from pure black. It runs
// a damped fixed-point refinement for up to 40 iterations and returns
// the lowest-error chain seen, which is not necessarily the last one.
func Synthesize(target colormath.Color) Result {
	anchor := pixel{}.invert(0.5).sepia(1)
	th, ts, tl := hsl(pixel{float64(target.R), float64(target.G), float64(target.B)})

	hueCorr := 0.0
	brightCorr := 1.0
	satCorr := 1.0

	best := Result{Error: math.MaxInt}
	for i := 0; i < maxIterations; i++ {
		cur := anchor

		h0, _, _ := hsl(cur)
		hue := th + hueCorr - h0
		cur = cur.hueRotate(hue)

		_, _, l1 := hsl(cur)
		bright := 1.0
		if l1 > 0 {
			bright = tl * brightCorr / l1
		}
		cur = cur.brightness(bright)

		_, s2, _ := hsl(cur)
		sat := 1.0
		if s2 > 0 {
			sat = ts * satCorr / s2
		}
		cur = cur.saturate(sat)

		if err := channelError(cur, target); err < best.Error {
			best = Result{
				HueRotate:  hue,
				Brightness: bright,
				Saturate:   sat,
				Error:      err,
				Filter:     filterString(hue, bright, sat),
			}
			if err < targetError {
				break
			}
		}

		rh, rs, rl := hsl(cur)
		hueCorr += damping * angleDiff(th, rh)
		if rl > 0 {
			brightCorr *= 1 + damping*(tl/rl-1)
		}
		if rs > 0 {
			satCorr *= 1 + damping*(ts/rs-1)
		}
	}
	return best
}

// hsl reads a pixel back as hue (degrees) plus saturation and
// lightness fractions.
func hsl(p pixel) (h, s, l float64) {
	return colorful.Color{R: p.r / 255, G: p.g / 255, B: p.b / 255}.Hsl()
}

// angleDiff returns the shortest signed angular distance from b to a.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}

func channelError(p pixel, target colormath.Color) int {
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(int(math.Round(p.r))-target.R) +
		abs(int(math.Round(p.g))-target.G) +
		abs(int(math.Round(p.b))-target.B)
}

func filterString(hue, bright, sat float64) string {
	return fmt.Sprintf("invert(50%%) sepia(100%%) hue-rotate(%ddeg) brightness(%d%%) saturate(%d%%)",
		int(math.Round(hue)), int(math.Round(bright*100)), int(math.Round(sat*100)))
}
