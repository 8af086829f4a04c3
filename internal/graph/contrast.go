package graph

import (
	"fmt"

	"github.com/kat/huegraph/internal/colormath"
)

// DefaultMinContrast is the WCAG AA ratio used when a contrast
// requirement does not specify its own minimum.
const DefaultMinContrast = 4.5

// ContrastClass classifies a measured contrast ratio against a
// required minimum.
type ContrastClass int

const (
	// ContrastSufficient means the ratio meets the minimum.
	ContrastSufficient ContrastClass = iota
	// ContrastInsufficient means the ratio is below the minimum but
	// within 80% of it.
	ContrastInsufficient
	// ContrastBad means the ratio is below 80% of the minimum.
	ContrastBad
	// ContrastUnknown means one of the endpoints has no resolved color.
	ContrastUnknown
)

// String returns the classification name.
func (c ContrastClass) String() string {
	switch c {
	case ContrastSufficient:
		return "sufficient"
	case ContrastInsufficient:
		return "insufficient"
	case ContrastBad:
		return "bad"
	default:
		return "unknown"
	}
}

// ContrastLink is a contrast requirement between a subject variable
// and a target variable. It re-measures itself whenever either
// endpoint's resolved color changes.
type ContrastLink struct {
	subject *Variable
	target  *Variable

	minContrast float64
	contrast    float64
	class       ContrastClass
}

// Subject returns the variable whose color gets repaired.
func (l *ContrastLink) Subject() *Variable { return l.subject }

// Target returns the variable the subject is measured against.
func (l *ContrastLink) Target() *Variable { return l.target }

// MinContrast returns the required minimum ratio.
func (l *ContrastLink) MinContrast() float64 { return l.minContrast }

// Contrast returns the last measured ratio.
func (l *ContrastLink) Contrast() float64 { return l.contrast }

// Class returns the last classification.
func (l *ContrastLink) Class() ContrastClass { return l.class }

// update re-measures and re-classifies the link.
func (l *ContrastLink) update() {
	sc, sok := l.subject.Color()
	tc, tok := l.target.Color()
	if !sok || !tok {
		l.contrast = 0
		l.class = ContrastUnknown
		return
	}
	l.contrast = colormath.ContrastRatio(sc, tc)
	switch {
	case l.contrast >= l.minContrast:
		l.class = ContrastSufficient
	case l.contrast >= 0.8*l.minContrast:
		l.class = ContrastInsufficient
	default:
		l.class = ContrastBad
	}
}

// AddContrastLink declares a contrast requirement between two existing
// variables. A minContrast of 0 uses the WCAG AA default. The link is
// registered on both endpoints so either side's changes re-measure it.
func (g *Graph) AddContrastLink(subject, target string, minContrast float64) (*ContrastLink, error) {
	s, ok := g.vars[subject]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, subject)
	}
	t, ok := g.vars[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, target)
	}
	if minContrast == 0 {
		minContrast = DefaultMinContrast
	}
	link := &ContrastLink{subject: s, target: t, minContrast: minContrast}
	s.links = append(s.links, link)
	if t != s {
		t.links = append(t.links, link)
	}
	link.update()
	return link, nil
}

// SubjectLinks returns the contrast links where the named variable is
// the subject.
func (g *Graph) SubjectLinks(name string) []*ContrastLink {
	v, ok := g.vars[name]
	if !ok {
		return nil
	}
	var out []*ContrastLink
	for _, l := range v.links {
		if l.subject == v {
			out = append(out, l)
		}
	}
	return out
}
