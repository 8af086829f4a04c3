// Package theme manages named snapshots of variable definitions (the
// values a host stylesheet declares for "light", "dark" and friends),
// seeds the dependency graph from them, and implements the text format
// used to export edited variables and import them back.
package theme

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/kat/huegraph/internal/graph"
)

// Snapshot maps variable names to their raw CSS definition text.
type Snapshot map[string]string

// Requirement declares a contrast constraint between two variables.
// MinContrast 0 means the WCAG AA default.
type Requirement struct {
	Subject     string  `json:"subject"`
	Target      string  `json:"target"`
	MinContrast float64 `json:"min_contrast,omitempty"`
}

// Store holds the theme snapshots and contrast requirements discovered
// by the host-markup collaborator. It is the seeding side of the
// engine; how the snapshots were found is not its business.
type Store struct {
	themes       map[string]Snapshot
	order        []string
	requirements []Requirement
	formatRGB    map[string]bool
	logger       *log.Logger
}

// NewStore creates an empty theme store.
func NewStore() *Store {
	return &Store{
		themes:    make(map[string]Snapshot),
		formatRGB: make(map[string]bool),
		logger:    log.New(os.Stderr),
	}
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *log.Logger) { s.logger = logger }

// Add registers a named snapshot, replacing any previous one with the
// same name.
func (s *Store) Add(name string, snap Snapshot) {
	if _, exists := s.themes[name]; !exists {
		s.order = append(s.order, name)
	}
	s.themes[name] = snap
}

// Get returns a snapshot by name.
func (s *Store) Get(name string) (Snapshot, bool) {
	snap, ok := s.themes[name]
	return snap, ok
}

// Themes lists the snapshot names in registration order.
func (s *Store) Themes() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// AddRequirement registers a contrast requirement to be wired when a
// theme is applied.
func (s *Store) AddRequirement(r Requirement) {
	s.requirements = append(s.requirements, r)
}

// Requirements returns the registered contrast requirements.
func (s *Store) Requirements() []Requirement {
	return s.requirements
}

// MarkFormatRGB records that a variable needs the decimal companion
// output.
func (s *Store) MarkFormatRGB(name string) {
	s.formatRGB[name] = true
}

// AddSheet parses a stylesheet and registers every rule block as a
// theme named by its selector.
func (s *Store) AddSheet(text string) error {
	rules, err := ParseAll(text)
	if err != nil {
		return err
	}
	for _, r := range rules {
		snap := make(Snapshot, len(r.Decls))
		for _, d := range r.Decls {
			snap[d.Name] = d.Value
		}
		s.Add(r.Selector, snap)
	}
	return nil
}

// Apply seeds the graph from the named snapshot: every variable is
// defined first so cross-references link up regardless of declaration
// order, then each definition is assigned as the theme baseline, and
// finally the contrast requirements are attached. Definitions that
// would introduce cycles are skipped with a warning; the seed must
// never fail wholesale because one declaration is broken.
func (s *Store) Apply(g *graph.Graph, name string) error {
	snap, ok := s.themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}

	names := make([]string, 0, len(snap))
	for varName := range snap {
		names = append(names, varName)
	}
	sort.Strings(names)

	for _, varName := range names {
		g.Define(varName)
	}
	for _, varName := range names {
		if err := g.SetValue(varName, snap[varName], true); err != nil {
			s.logger.Warn("theme definition skipped", "theme", name,
				"variable", varName, "error", err)
		}
	}
	// Forward references resolve only once the whole snapshot is in, so
	// re-root the baseline now that every definition has settled.
	g.Rebase()
	for varName := range s.formatRGB {
		if err := g.SetFormatRGB(varName, true); err != nil {
			s.logger.Warn("format-rgb mark skipped", "variable", varName, "error", err)
		}
	}
	for _, r := range s.requirements {
		if _, err := g.AddContrastLink(r.Subject, r.Target, r.MinContrast); err != nil {
			s.logger.Warn("contrast requirement skipped", "subject", r.Subject,
				"target", r.Target, "error", err)
		}
	}
	return nil
}
