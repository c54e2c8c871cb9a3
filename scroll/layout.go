// Package scroll binds a virtual document's scroll offset to transitions.
package scroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/starfolio/section"
)

// Span is one section of the document, sized in viewport heights.
type Span struct {
	Section section.Section
	Height  float64
}

// Layout is the vertical arrangement of the document. Offsets are in pixels.
type Layout struct {
	Viewport float64
	Spans    []Span
}

// DefaultSpans is the shipped document: each content section is taller than
// the hero so its trigger has room to play out.
func DefaultSpans() []Span {
	return []Span{
		{section.Hero, 1},
		{section.About, 1.5},
		{section.Projects, 2},
		{section.Skills, 1.5},
		{section.Contact, 1.25},
	}
}

func NewLayout(viewport float64, spans []Span) Layout {
	return Layout{Viewport: viewport, Spans: append([]Span(nil), spans...)}
}

// Anchor is a section element's extent in document pixels.
type Anchor struct {
	ID     string
	Top    float64
	Bottom float64
}

// Anchor returns the element of sec. It is absent when sec has no span.
func (l Layout) Anchor(sec section.Section) (Anchor, bool) {
	top := 0.0
	for _, sp := range l.Spans {
		h := sp.Height * l.Viewport
		if sp.Section == sec {
			return Anchor{ID: sec.Anchor(), Top: top, Bottom: top + h}, true
		}
		top += h
	}
	return Anchor{}, false
}

// Height is the full document height.
func (l Layout) Height() float64 {
	h := 0.0
	for _, sp := range l.Spans {
		h += sp.Height * l.Viewport
	}
	return h
}

// MaxOffset is the largest scroll offset.
func (l Layout) MaxOffset() float64 {
	if m := l.Height() - l.Viewport; m > 0 {
		return m
	}
	return 0
}

// WithViewport returns the layout for a resized viewport.
func (l Layout) WithViewport(viewport float64) Layout {
	return NewLayout(viewport, l.Spans)
}

// Line is a gsap-style trigger line such as "top center": the first word
// picks a point on the element, the second a point in the viewport.
type Line struct {
	Element  float64
	Viewport float64
}

func ParseLine(s string) (Line, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return Line{}, fmt.Errorf("scroll: line %q must have two positions", s)
	}
	el, err := parsePosition(fields[0])
	if err != nil {
		return Line{}, fmt.Errorf("scroll: line %q: %w", s, err)
	}
	vp, err := parsePosition(fields[1])
	if err != nil {
		return Line{}, fmt.Errorf("scroll: line %q: %w", s, err)
	}
	return Line{Element: el, Viewport: vp}, nil
}

func parsePosition(s string) (float64, error) {
	switch s {
	case "top":
		return 0, nil
	case "center":
		return 0.5, nil
	case "bottom":
		return 1, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	return 0, fmt.Errorf("unknown position %q", s)
}

// Offset is the scroll offset at which the line is crossed for a.
func (ln Line) Offset(a Anchor, viewport float64) float64 {
	return a.Top + ln.Element*(a.Bottom-a.Top) - ln.Viewport*viewport
}

func (ln Line) String() string {
	return fmt.Sprintf("%g%% %g%%", ln.Element*100, ln.Viewport*100)
}
