// Package section defines the ordered page sections the scene moves through.
package section

import (
	"fmt"
	"strings"
)

// Section is one logical page region with its own feature object and camera
// preset. The zero value is Hero.
type Section int

const (
	Hero Section = iota
	About
	Projects
	Skills
	Contact
)

// All lists every section in document order.
var All = []Section{Hero, About, Projects, Skills, Contact}

var names = [...]string{"hero", "about", "projects", "skills", "contact"}

func (s Section) Valid() bool {
	return s >= Hero && s <= Contact
}

func (s Section) String() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return names[s]
}

// Next returns the following section, or false for Contact.
func (s Section) Next() (Section, bool) {
	if !s.Valid() || s == Contact {
		return s, false
	}
	return s + 1, true
}

// Prev returns the preceding section, or false for Hero.
func (s Section) Prev() (Section, bool) {
	if !s.Valid() || s == Hero {
		return s, false
	}
	return s - 1, true
}

// Anchor is the document anchor id used for the section, e.g. "about-section".
func (s Section) Anchor() string {
	return s.String() + "-section"
}

// Parse resolves a section name or anchor id.
func Parse(name string) (Section, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "#")
	n = strings.TrimSuffix(n, "-section")
	for i, candidate := range names {
		if candidate == n {
			return Section(i), nil
		}
	}
	return Hero, fmt.Errorf("section: unknown section %q", name)
}

func (s Section) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("section: invalid section %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Section) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Pair is an adjacent (From, To) section boundary in forward order.
type Pair struct {
	From Section
	To   Section
}

func (p Pair) String() string {
	return p.From.String() + "->" + p.To.String()
}

// Pairs returns every adjacent boundary in document order.
func Pairs() []Pair {
	out := make([]Pair, 0, len(All)-1)
	for i := 0; i+1 < len(All); i++ {
		out = append(out, Pair{From: All[i], To: All[i+1]})
	}
	return out
}

// Set is a small membership set of sections.
type Set uint8

func (s Set) Has(sec Section) bool {
	return sec.Valid() && s&(1<<uint(sec)) != 0
}

func (s Set) With(sec Section) Set {
	if !sec.Valid() {
		return s
	}
	return s | 1<<uint(sec)
}

func (s Set) Without(sec Section) Set {
	if !sec.Valid() {
		return s
	}
	return s &^ (1 << uint(sec))
}

func (s Set) Len() int {
	n := 0
	for _, sec := range All {
		if s.Has(sec) {
			n++
		}
	}
	return n
}

// Slice returns the members in document order.
func (s Set) Slice() []Section {
	var out []Section
	for _, sec := range All {
		if s.Has(sec) {
			out = append(out, sec)
		}
	}
	return out
}

func (s Set) String() string {
	parts := make([]string, 0, len(All))
	for _, sec := range s.Slice() {
		parts = append(parts, sec.String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
