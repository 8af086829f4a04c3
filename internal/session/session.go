// Package session tracks the transient editing context around the
// graph: which variable the user is holding, which picker is open, and
// the copy/paste color buffer bridged to the system clipboard.
package session

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/kat/huegraph/internal/colormath"
	"github.com/kat/huegraph/internal/graph"
)

// PickerKind identifies which picker surface is currently open.
type PickerKind int

const (
	PickerNone PickerKind = iota
	PickerColor
	PickerTheme
	PickerOptions
)

// String returns the string representation of PickerKind
func (k PickerKind) String() string {
	switch k {
	case PickerNone:
		return "none"
	case PickerColor:
		return "color"
	case PickerTheme:
		return "theme"
	case PickerOptions:
		return "options"
	default:
		return "unknown"
	}
}

// Clipboard abstracts the system clipboard so the session can be
// exercised without a display server.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Context is the per-session editing state. Like the graph it belongs
// to, it is single-goroutine state driven by UI events.
type Context struct {
	graph *graph.Graph

	held         string
	picker       PickerKind
	pickerTarget string

	copied    colormath.Color
	hasCopied bool

	clip   Clipboard
	logger *log.Logger
}

// New creates a session context over a graph, wired to the system
// clipboard.
func New(g *graph.Graph) *Context {
	return &Context{
		graph:  g,
		clip:   systemClipboard{},
		logger: log.New(os.Stderr),
	}
}

// SetClipboard replaces the clipboard implementation.
func (c *Context) SetClipboard(clip Clipboard) { c.clip = clip }

// SetLogger replaces the session's logger.
func (c *Context) SetLogger(logger *log.Logger) { c.logger = logger }

// Hold marks a variable as the one under edit.
func (c *Context) Hold(name string) error {
	if _, ok := c.graph.Get(name); !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownVariable, name)
	}
	c.held = name
	return nil
}

// Held returns the variable under edit, if any.
func (c *Context) Held() (*graph.Variable, bool) {
	if c.held == "" {
		return nil, false
	}
	return c.graph.Get(c.held)
}

// Release clears the held variable and closes any open picker.
func (c *Context) Release() {
	c.held = ""
	c.picker = PickerNone
	c.pickerTarget = ""
}

// OpenPicker opens a picker surface for a variable. Pickers that do
// not edit a single variable pass an empty target.
func (c *Context) OpenPicker(kind PickerKind, target string) error {
	if target != "" {
		if _, ok := c.graph.Get(target); !ok {
			return fmt.Errorf("%w: %s", graph.ErrUnknownVariable, target)
		}
	}
	c.picker = kind
	c.pickerTarget = target
	return nil
}

// Picker returns the open picker surface and its target variable.
func (c *Context) Picker() (PickerKind, string) { return c.picker, c.pickerTarget }

// ClosePicker closes whatever picker is open.
func (c *Context) ClosePicker() {
	c.picker = PickerNone
	c.pickerTarget = ""
}

// CopyColor puts a variable's resolved color into the session buffer
// and onto the system clipboard as a hex literal. A clipboard failure
// is logged but does not lose the in-session copy.
func (c *Context) CopyColor(name string) error {
	v, ok := c.graph.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownVariable, name)
	}
	col, ok := v.Color()
	if !ok {
		return fmt.Errorf("%s has no resolved color to copy", name)
	}
	c.copied = col
	c.hasCopied = true
	if err := c.clip.WriteAll(col.Hex()); err != nil {
		c.logger.Warn("clipboard write failed", "variable", name, "error", err)
	}
	return nil
}

// PasteColor assigns the session buffer to a variable, falling back to
// parsing the system clipboard when nothing was copied in-session.
func (c *Context) PasteColor(name string) error {
	col, ok := c.copied, c.hasCopied
	if !ok {
		text, err := c.clip.ReadAll()
		if err != nil {
			return fmt.Errorf("nothing to paste: %w", err)
		}
		col, err = colormath.ParseColor(text)
		if err != nil {
			return fmt.Errorf("clipboard does not hold a color: %w", err)
		}
	}
	return c.graph.SetColor(name, col)
}

// Copied returns the session copy buffer.
func (c *Context) Copied() (colormath.Color, bool) { return c.copied, c.hasCopied }
