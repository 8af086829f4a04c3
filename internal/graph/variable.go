package graph

import (
	"sort"

	"github.com/kat/huegraph/internal/colormath"
	"github.com/kat/huegraph/internal/throttle"
)

// Options are the per-variable adjustments applied on top of an
// indirect definition, plus the output flags. The factor fields use 1
// as their neutral value.
type Options struct {
	// SaveExplicitRGB bakes the computed color into exported output
	// instead of the indirect expression.
	SaveExplicitRGB bool
	// Invert applies a full channel inversion to the computed color.
	Invert bool
	// HueRotate shifts the computed hue, in degrees.
	HueRotate float64
	// SaturationFactor scales HSL saturation.
	SaturationFactor float64
	// LightnessFactor scales HSL lightness.
	LightnessFactor float64
}

// DefaultOptions returns the neutral adjustment set.
func DefaultOptions() Options {
	return Options{SaturationFactor: 1, LightnessFactor: 1}
}

// Neutral reports whether the options change nothing and can be
// omitted from exported output.
func (o Options) Neutral() bool {
	return o == DefaultOptions()
}

// apply runs the adjustments on a computed color.
func (o Options) apply(c colormath.Color) colormath.Color {
	if o.Invert {
		c = colormath.Invert(c, 1)
	}
	if o.HueRotate != 0 || o.SaturationFactor != 1 || o.LightnessFactor != 1 {
		c = colormath.AdjustHSL(c, o.HueRotate, o.SaturationFactor, o.LightnessFactor)
	}
	return c
}

// Variable is a single named color in the dependency graph. All
// mutation goes through the owning Graph so the bidirectional edge
// sets and the resolved colors stay consistent.
type Variable struct {
	graph *Graph
	name  string

	value    string // last-assigned raw definition
	rgb      colormath.Color
	resolved bool

	baseValue    string
	baseColor    colormath.Color
	baseResolved bool

	indirect bool
	expr     Expr
	opts     Options

	hasFormatRGB bool

	dependsOn map[string]*Variable
	affects   map[string]*Variable
	links     []*ContrastLink

	notify *throttle.Limiter
}

// Name returns the variable's CSS custom property name, including the
// leading dashes.
func (v *Variable) Name() string { return v.name }

// Value returns the raw definition text last assigned to the variable.
func (v *Variable) Value() string { return v.value }

// Color returns the currently resolved color. ok is false when the
// definition could not be resolved to any color.
func (v *Variable) Color() (colormath.Color, bool) { return v.rgb, v.resolved }

// BaseValue returns the theme-default definition text.
func (v *Variable) BaseValue() string { return v.baseValue }

// BaseColor returns the theme-default color, if one was established.
func (v *Variable) BaseColor() (colormath.Color, bool) { return v.baseColor, v.baseResolved }

// Indirect reports whether the resolved color is derived from other
// variables rather than set explicitly.
func (v *Variable) Indirect() bool { return v.indirect }

// Options returns the variable's adjustment options.
func (v *Variable) Options() Options { return v.opts }

// HasFormatRGB reports whether a companion comma-separated decimal
// representation must be emitted alongside the color.
func (v *Variable) HasFormatRGB() bool { return v.hasFormatRGB }

// DependsOn returns the names of the variables this one reads from,
// sorted.
func (v *Variable) DependsOn() []string { return sortedKeys(v.dependsOn) }

// Affects returns the names of the variables that read this one,
// sorted.
func (v *Variable) Affects() []string { return sortedKeys(v.affects) }

// Links returns the contrast links this variable participates in, as
// subject or target.
func (v *Variable) Links() []*ContrastLink { return v.links }

// ChangedFromBase reports whether the resolved color currently differs
// from the theme-default color.
func (v *Variable) ChangedFromBase() bool {
	if !v.resolved || !v.baseResolved {
		return v.resolved != v.baseResolved
	}
	return !v.rgb.Equal(v.baseColor)
}

// CSSValue returns the CSS-ready value for the variable: a hex literal
// for explicit (or baked) colors, otherwise the indirect expression
// text.
func (v *Variable) CSSValue() string {
	if (!v.indirect || v.opts.SaveExplicitRGB) && v.resolved {
		return v.rgb.Hex()
	}
	return v.value
}

// ShouldExport reports whether the variable belongs in exported
// output: its definition must be eligible (baked output requested, an
// explicit definition, or edited away from the base definition) and
// its resolved color must actually differ from the base color.
func (v *Variable) ShouldExport() bool {
	eligible := v.opts.SaveExplicitRGB || !v.indirect || v.value != v.baseValue
	if !eligible {
		return false
	}
	return v.resolved && (!v.baseResolved || !v.rgb.Equal(v.baseColor))
}

// emit pushes the variable's current output to every registered sink.
// It runs behind the per-variable throttle, so it always reads the
// state at fire time rather than the state at trigger time.
func (v *Variable) emit() {
	decimal := ""
	if v.hasFormatRGB && v.resolved {
		decimal = v.rgb.Decimal()
	}
	value := v.CSSValue()
	for _, s := range v.graph.sinks {
		s.ApplyColor(v.name, value, decimal)
	}
}

// queueNotify schedules a sink notification through the throttle.
func (v *Variable) queueNotify() {
	if len(v.graph.sinks) == 0 {
		return
	}
	if v.notify == nil {
		v.notify = throttle.New(v.graph.cooldown, v.emit)
	}
	v.notify.Trigger()
}

func sortedKeys(m map[string]*Variable) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedVars(m map[string]*Variable) []*Variable {
	vars := make([]*Variable, 0, len(m))
	for _, name := range sortedKeys(m) {
		vars = append(vars, m[name])
	}
	return vars
}
