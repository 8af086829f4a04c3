// Package graph implements the reactive color-variable engine: a DAG
// of named color variables where some are defined directly and others
// as expressions over their dependencies, with synchronous propagation
// of every edit to dependent variables and contrast links.
package graph

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kat/huegraph/internal/colormath"
)

var (
	// ErrCycle is returned when an edit would make a variable depend on
	// itself, directly or transitively. The edit is rejected and the
	// variable keeps its previous definition.
	ErrCycle = errors.New("cyclic variable dependency")
	// ErrUnknownVariable is returned for operations naming a variable
	// that was never defined.
	ErrUnknownVariable = errors.New("unknown variable")
)

// DefaultCooldown is the sink notification window: at most one visual
// update per variable per window, with a trailing update guaranteed.
const DefaultCooldown = 20 * time.Millisecond

// RenderSink receives resolved-color output for a rendering or
// persistence collaborator. The decimal companion is empty unless the
// variable carries an --rgb format requirement.
type RenderSink interface {
	ApplyColor(name, value, decimal string)
}

// Graph owns the variable set. It is not safe for concurrent use; all
// mutation is expected on a single goroutine, matching the
// event-driven editing model.
type Graph struct {
	vars     map[string]*Variable
	order    []string
	sinks    []RenderSink
	cooldown time.Duration
	logger   *log.Logger
}

// New creates an empty graph with the default notification cooldown.
func New() *Graph {
	return &Graph{
		vars:     make(map[string]*Variable),
		cooldown: DefaultCooldown,
		logger:   log.New(os.Stderr),
	}
}

// SetCooldown changes the sink notification window. Zero disables
// coalescing entirely, which tests rely on.
func (g *Graph) SetCooldown(d time.Duration) { g.cooldown = d }

// SetLogger replaces the graph's logger.
func (g *Graph) SetLogger(logger *log.Logger) { g.logger = logger }

// AddSink registers a render sink. Sinks added after edits only see
// subsequent changes.
func (g *Graph) AddSink(s RenderSink) { g.sinks = append(g.sinks, s) }

// Define returns the named variable, creating an empty explicit one if
// it does not exist yet.
func (g *Graph) Define(name string) *Variable {
	if v, ok := g.vars[name]; ok {
		return v
	}
	v := &Variable{
		graph:     g,
		name:      name,
		opts:      DefaultOptions(),
		dependsOn: make(map[string]*Variable),
		affects:   make(map[string]*Variable),
	}
	g.vars[name] = v
	g.order = append(g.order, name)
	return v
}

// Get looks up a variable by name.
func (g *Graph) Get(name string) (*Variable, bool) {
	v, ok := g.vars[name]
	return v, ok
}

// Names returns all variable names in definition order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// SetValue assigns a raw definition to a variable. A parseable color
// literal makes the variable explicit; anything else is treated as an
// indirect definition and re-evaluated against its references. With
// asBase, the definition also becomes the theme baseline. An edit that
// would introduce a dependency cycle is rejected with ErrCycle and
// leaves the variable unchanged.
func (g *Graph) SetValue(name, raw string, asBase bool) error {
	v := g.Define(name)

	if c, err := colormath.ParseColor(raw); err == nil {
		v.value = raw
		if asBase {
			v.baseValue = raw
		}
		v.indirect = false
		v.expr = nil
		g.relink(v, nil)
		g.setColor(v, c, asBase, make(map[*Variable]bool))
		return nil
	}

	// Indirect definition: parse once, link structurally, then
	// evaluate. Cycle and self-reference checks happen before any
	// state is committed. A reference to a variable that does not
	// exist yet creates an unresolved node, so the edge is in place
	// when a later definition arrives.
	expr := ParseExpr(raw)
	deps := make(map[string]*Variable)
	for _, ref := range dedup(expr.Refs(nil)) {
		if ref == name {
			return fmt.Errorf("%w: %s references itself", ErrCycle, name)
		}
		d, ok := g.vars[ref]
		if !ok {
			g.logger.Debug("forward reference to undefined variable",
				"variable", name, "ref", ref)
			d = g.Define(ref)
		}
		if g.reaches(d, v) {
			return fmt.Errorf("%w: %s -> %s", ErrCycle, name, ref)
		}
		deps[ref] = d
	}

	v.value = raw
	if asBase {
		v.baseValue = raw
	}
	v.indirect = true
	v.expr = expr
	g.relink(v, deps)

	c, ok := g.eval(v)
	if !ok {
		g.logger.Warn("indirect definition resolves to no color", "variable", name)
		g.unresolve(v, make(map[*Variable]bool))
		return nil
	}
	if asBase {
		v.baseColor = c
		v.baseResolved = true
	}
	g.setColor(v, c, false, make(map[*Variable]bool))
	return nil
}

// SetColor assigns an explicit color to a variable, detaching any
// indirect definition, and propagates the change.
func (g *Graph) SetColor(name string, c colormath.Color) error {
	v, ok := g.vars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	v.indirect = false
	v.expr = nil
	v.value = c.Hex()
	g.relink(v, nil)
	g.setColor(v, c, false, make(map[*Variable]bool))
	return nil
}

// SetOptions replaces a variable's adjustment options and, for
// indirect variables, recomputes the resolved color with the new
// adjustments.
func (g *Graph) SetOptions(name string, opts Options) error {
	v, ok := g.vars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	v.opts = opts
	if v.indirect {
		g.updateFromDependencies(v, make(map[*Variable]bool))
	} else {
		v.queueNotify()
	}
	return nil
}

// SetFormatRGB marks a variable as requiring the decimal R,G,B
// companion output.
func (g *Graph) SetFormatRGB(name string, on bool) error {
	v, ok := g.vars[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	v.hasFormatRGB = on
	return nil
}

// Rebase re-roots the theme baseline of every variable at its current
// definition and resolved color. Indirect variables capture the color
// their expression evaluates to right now; the live color is left
// untouched.
func (g *Graph) Rebase() {
	for _, name := range g.order {
		v := g.vars[name]
		v.baseValue = v.value
		if v.indirect {
			if c, ok := g.eval(v); ok {
				v.baseColor = c
				v.baseResolved = true
			} else {
				v.baseResolved = false
			}
			continue
		}
		v.baseColor = v.rgb
		v.baseResolved = v.resolved
	}
}

// Reset reverts every variable to its base definition, propagating as
// usual.
func (g *Graph) Reset() {
	for _, name := range g.order {
		v := g.vars[name]
		if v.baseValue == "" {
			continue
		}
		if err := g.SetValue(name, v.baseValue, false); err != nil {
			g.logger.Warn("reset skipped variable", "variable", name, "error", err)
		}
	}
}

// Flush forces out any sink notifications still held by the throttle.
func (g *Graph) Flush() {
	for _, name := range g.order {
		if v := g.vars[name]; v.notify != nil {
			v.notify.Flush()
		}
	}
}

// CheckInvariants verifies that the depends-on and affects relations
// are exact mutual inverses. It returns the first inconsistency found,
// or nil. Intended for tests and debugging.
func (g *Graph) CheckInvariants() error {
	for _, v := range g.vars {
		for name, d := range v.dependsOn {
			if _, ok := d.affects[v.name]; !ok {
				return fmt.Errorf("%s depends on %s but has no back-link", v.name, name)
			}
		}
		for name, a := range v.affects {
			if _, ok := a.dependsOn[v.name]; !ok {
				return fmt.Errorf("%s affects %s but has no forward link", v.name, name)
			}
		}
	}
	return nil
}

// relink is the single mutator for the bidirectional dependency
// relation: it removes this variable from the affects set of every
// dropped dependency and adds it to every new one, atomically with
// replacing the depends-on set. No other code touches either side.
func (g *Graph) relink(v *Variable, newDeps map[string]*Variable) {
	if newDeps == nil {
		newDeps = make(map[string]*Variable)
	}
	for name, old := range v.dependsOn {
		if _, keep := newDeps[name]; !keep {
			delete(old.affects, v.name)
		}
	}
	for _, d := range newDeps {
		d.affects[v.name] = v
	}
	v.dependsOn = newDeps
}

// reaches reports whether target is reachable from v along depends-on
// edges. Used to reject edits that would close a cycle.
func (g *Graph) reaches(v, target *Variable) bool {
	if v == target {
		return true
	}
	for _, d := range v.dependsOn {
		if g.reaches(d, target) {
			return true
		}
	}
	return false
}

// eval resolves a variable's expression against the current colors of
// the whole graph, then applies the variable's own adjustments.
func (g *Graph) eval(v *Variable) (colormath.Color, bool) {
	if v.expr == nil {
		return colormath.Color{}, false
	}
	c, ok := v.expr.Eval(func(name string) (colormath.Color, bool) {
		d, ok := g.vars[name]
		if !ok || !d.resolved {
			return colormath.Color{}, false
		}
		return d.rgb, true
	})
	if !ok {
		return colormath.Color{}, false
	}
	return v.opts.apply(c), true
}

// setColor stores a resolved color and drives propagation: dependents
// first, then every contrast link the variable participates in, then
// the (throttled) sink notification. Unchanged colors do not re-fire
// propagation. The visited set guards against cycles that slipped past
// edit-time checks; hitting one is a configuration error, not a loop.
func (g *Graph) setColor(v *Variable, c colormath.Color, asBase bool, visited map[*Variable]bool) {
	if visited[v] {
		g.logger.Error("dependency cycle detected during propagation", "variable", v.name)
		return
	}
	visited[v] = true

	if asBase {
		v.baseColor = c
		v.baseResolved = true
	}
	if v.resolved && v.rgb.Equal(c) {
		return
	}
	v.rgb = c
	v.resolved = true

	for _, dependent := range sortedVars(v.affects) {
		g.updateFromDependencies(dependent, visited)
	}
	for _, link := range v.links {
		link.update()
	}
	v.queueNotify()
}

// updateFromDependencies recomputes an indirect variable from the
// current resolved colors of its dependencies. Explicit variables and
// indirect ones with no live dependency are left alone.
func (g *Graph) updateFromDependencies(v *Variable, visited map[*Variable]bool) {
	if !v.indirect || len(v.dependsOn) == 0 {
		return
	}
	c, ok := g.eval(v)
	if !ok {
		g.unresolve(v, visited)
		return
	}
	g.setColor(v, c, false, visited)
}

// unresolve marks a variable as having no resolved color and lets its
// dependents recompute without its contribution.
func (g *Graph) unresolve(v *Variable, visited map[*Variable]bool) {
	if !v.resolved || visited[v] {
		return
	}
	visited[v] = true
	v.resolved = false
	for _, dependent := range sortedVars(v.affects) {
		g.updateFromDependencies(dependent, visited)
	}
	for _, link := range v.links {
		link.update()
	}
	v.queueNotify()
}

func dedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
