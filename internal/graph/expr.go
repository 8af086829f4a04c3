package graph

import (
	"strconv"
	"strings"

	"github.com/kat/huegraph/internal/colormath"
)

// Expr is a parsed indirect definition. Parsing the raw text once into
// a small tree keeps dependency extraction and re-evaluation
// structural; nothing re-scans strings during propagation.
type Expr interface {
	// Eval resolves the expression against the current colors of the
	// referenced variables. ok is false when nothing in the expression
	// could be resolved.
	Eval(resolve ResolveFunc) (c colormath.Color, ok bool)
	// Refs appends the names of every variable the expression reads,
	// including fallbacks.
	Refs(names []string) []string
}

// ResolveFunc looks up the current resolved color of a named variable.
// ok is false for unknown or unresolved variables.
type ResolveFunc func(name string) (colormath.Color, bool)

// ParseExpr parses an indirect definition. The recognized shapes are a
// single var() reference (with optional fallback), a color-mix() of
// references and literals, and free-form text containing one or more
// var() references, which evaluates as their equal-weight mix. Text
// with no references parses to an expression that never resolves.
func ParseExpr(text string) Expr {
	s := strings.TrimSpace(text)

	if inner, ok := callBody(s, "color-mix"); ok {
		if mix := parseColorMix(inner); mix != nil {
			return mix
		}
	}
	if ref := parseComponent(s); ref != nil {
		return ref
	}

	// Free-form text: every embedded var() contributes equally.
	var parts []Expr
	rest := s
	for {
		idx := strings.Index(rest, "var(")
		if idx < 0 {
			break
		}
		end := matchParen(rest, idx+len("var("))
		if end < 0 {
			break
		}
		if ref := parseVar(rest[idx+len("var(") : end]); ref != nil {
			parts = append(parts, ref)
		}
		rest = rest[end+1:]
	}
	return listExpr(parts)
}

// refExpr is a var(--name) reference with an optional fallback.
type refExpr struct {
	name     string
	fallback Expr
}

func (r *refExpr) Eval(resolve ResolveFunc) (colormath.Color, bool) {
	if c, ok := resolve(r.name); ok {
		return c, true
	}
	if r.fallback != nil {
		return r.fallback.Eval(resolve)
	}
	return colormath.Color{}, false
}

func (r *refExpr) Refs(names []string) []string {
	names = append(names, r.name)
	if r.fallback != nil {
		names = r.fallback.Refs(names)
	}
	return names
}

// literalExpr is a color literal appearing inside an expression.
type literalExpr struct {
	color colormath.Color
}

func (l *literalExpr) Eval(ResolveFunc) (colormath.Color, bool) {
	return l.color, true
}

func (l *literalExpr) Refs(names []string) []string { return names }

// listExpr mixes its resolvable parts with equal weight.
type listExpr []Expr

func (e listExpr) Eval(resolve ResolveFunc) (colormath.Color, bool) {
	var colors []colormath.Color
	for _, part := range e {
		if c, ok := part.Eval(resolve); ok {
			colors = append(colors, c)
		}
	}
	if len(colors) == 0 {
		return colormath.Color{}, false
	}
	return colormath.Mix(colors, nil), true
}

func (e listExpr) Refs(names []string) []string {
	for _, part := range e {
		names = part.Refs(names)
	}
	return names
}

// mixExpr is a color-mix() with explicit weights.
type mixExpr struct {
	parts   []Expr
	weights []float64
}

func (e *mixExpr) Eval(resolve ResolveFunc) (colormath.Color, bool) {
	var colors []colormath.Color
	var weights []float64
	for i, part := range e.parts {
		if c, ok := part.Eval(resolve); ok {
			colors = append(colors, c)
			weights = append(weights, e.weights[i])
		}
	}
	if len(colors) == 0 {
		return colormath.Color{}, false
	}
	return colormath.Mix(colors, weights), true
}

func (e *mixExpr) Refs(names []string) []string {
	for _, part := range e.parts {
		names = part.Refs(names)
	}
	return names
}

// parseComponent parses a single expression component: a var()
// reference or a color literal. Returns nil for anything else.
func parseComponent(s string) Expr {
	s = strings.TrimSpace(s)
	if inner, ok := callBody(s, "var"); ok {
		return parseVar(inner)
	}
	if c, err := colormath.ParseColor(s); err == nil {
		return &literalExpr{color: c}
	}
	return nil
}

// parseVar parses the body of a var() call: a custom property name and
// an optional fallback after the first top-level comma.
func parseVar(body string) Expr {
	name := body
	var fallback Expr
	if cut := topLevelComma(body); cut >= 0 {
		name = body[:cut]
		fallback = parseComponent(body[cut+1:])
	}
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "--") {
		return nil
	}
	return &refExpr{name: name, fallback: fallback}
}

// parseColorMix parses the body of color-mix(in srgb, a p%, b p%).
// Unspecified percentages share the remainder equally, matching how
// CSS normalizes mix weights.
func parseColorMix(body string) Expr {
	args := splitTopLevel(body)
	if len(args) < 3 || !strings.HasPrefix(strings.TrimSpace(args[0]), "in ") {
		return nil
	}

	mix := &mixExpr{}
	missing := []int{}
	specified := 0.0
	for _, arg := range args[1:] {
		component, pct, hasPct := splitPercent(arg)
		part := parseComponent(component)
		if part == nil {
			return nil
		}
		mix.parts = append(mix.parts, part)
		if hasPct {
			mix.weights = append(mix.weights, pct)
			specified += pct
		} else {
			mix.weights = append(mix.weights, 0)
			missing = append(missing, len(mix.weights)-1)
		}
	}
	if len(missing) > 0 {
		share := (100 - specified) / float64(len(missing))
		if share < 0 {
			share = 0
		}
		for _, i := range missing {
			mix.weights[i] = share
		}
	}
	return mix
}

// splitPercent splits a trailing percentage off a mix component.
func splitPercent(arg string) (component string, pct float64, ok bool) {
	arg = strings.TrimSpace(arg)
	if !strings.HasSuffix(arg, "%") {
		return arg, 0, false
	}
	cut := strings.LastIndexAny(arg[:len(arg)-1], " \t)")
	if cut < 0 {
		return arg, 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(arg[cut+1:len(arg)-1]), 64)
	if err != nil {
		return arg, 0, false
	}
	return strings.TrimSpace(arg[:cut+1]), v, true
}

// callBody returns the argument text of fn(...) when s is exactly one
// call to fn with balanced parentheses.
func callBody(s, fn string) (string, bool) {
	prefix := fn + "("
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	end := matchParen(s, len(prefix))
	if end != len(s)-1 {
		return "", false
	}
	return s[len(prefix):end], true
}

// matchParen returns the index of the ')' matching the '(' just before
// start, or -1.
func matchParen(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on commas outside parentheses.
func splitTopLevel(s string) []string {
	var out []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[last:i])
				last = i + 1
			}
		}
	}
	return append(out, s[last:])
}

// topLevelComma returns the index of the first comma outside
// parentheses, or -1.
func topLevelComma(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
