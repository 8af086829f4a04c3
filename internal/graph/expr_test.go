package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kat/huegraph/internal/colormath"
)

func resolver(colors map[string]colormath.Color) ResolveFunc {
	return func(name string) (colormath.Color, bool) {
		c, ok := colors[name]
		return c, ok
	}
}

func TestParseExprSingleReference(t *testing.T) {
	e := ParseExpr("var(--accent)")
	assert.Equal(t, []string{"--accent"}, e.Refs(nil))

	c, ok := e.Eval(resolver(map[string]colormath.Color{
		"--accent": colormath.RGB(10, 20, 30),
	}))
	assert.True(t, ok)
	assert.Equal(t, colormath.RGB(10, 20, 30), c)

	_, ok = e.Eval(resolver(nil))
	assert.False(t, ok)
}

func TestParseExprReferenceWithFallback(t *testing.T) {
	e := ParseExpr("var(--accent, #ff0000)")
	assert.Equal(t, []string{"--accent"}, e.Refs(nil))

	// Unknown reference falls back to the literal.
	c, ok := e.Eval(resolver(nil))
	assert.True(t, ok)
	assert.Equal(t, colormath.RGB(255, 0, 0), c)

	// Fallbacks can themselves be references.
	e = ParseExpr("var(--accent, var(--backup))")
	assert.ElementsMatch(t, []string{"--accent", "--backup"}, e.Refs(nil))
	c, ok = e.Eval(resolver(map[string]colormath.Color{
		"--backup": colormath.RGB(1, 2, 3),
	}))
	assert.True(t, ok)
	assert.Equal(t, colormath.RGB(1, 2, 3), c)
}

func TestParseExprColorMix(t *testing.T) {
	e := ParseExpr("color-mix(in srgb, var(--a) 25%, var(--b))")
	assert.ElementsMatch(t, []string{"--a", "--b"}, e.Refs(nil))

	c, ok := e.Eval(resolver(map[string]colormath.Color{
		"--a": colormath.RGB(0, 0, 0),
		"--b": colormath.RGB(255, 255, 255),
	}))
	assert.True(t, ok)
	// 25% black, 75% white.
	assert.Equal(t, colormath.RGB(191, 191, 191), c)
}

func TestParseExprColorMixWithLiteral(t *testing.T) {
	e := ParseExpr("color-mix(in srgb, #000000, #ffffff)")
	assert.Empty(t, e.Refs(nil))

	c, ok := e.Eval(resolver(nil))
	assert.True(t, ok)
	assert.Equal(t, colormath.RGB(128, 128, 128), c)
}

func TestParseExprFreeFormText(t *testing.T) {
	e := ParseExpr("linear-gradient(to right, var(--from), var(--to))")
	assert.ElementsMatch(t, []string{"--from", "--to"}, e.Refs(nil))

	// Equal-weight mix of whatever resolves.
	c, ok := e.Eval(resolver(map[string]colormath.Color{
		"--from": colormath.RGB(0, 0, 0),
		"--to":   colormath.RGB(255, 255, 255),
	}))
	assert.True(t, ok)
	assert.Equal(t, colormath.RGB(128, 128, 128), c)

	// A missing reference contributes nothing instead of failing.
	c, ok = e.Eval(resolver(map[string]colormath.Color{
		"--to": colormath.RGB(255, 255, 255),
	}))
	assert.True(t, ok)
	assert.Equal(t, colormath.RGB(255, 255, 255), c)
}

func TestParseExprNoReferences(t *testing.T) {
	e := ParseExpr("url(noise.png)")
	assert.Empty(t, e.Refs(nil))

	_, ok := e.Eval(resolver(nil))
	assert.False(t, ok)
}
