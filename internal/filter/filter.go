// Package filter selects records by facet: a record passes when, for every
// facet with at least one selected value, it matches one of those values.
package filter

import (
	"errors"
	"strings"
)

type Facet string

const (
	FacetExperienceLevel Facet = "experience_level"
	FacetAcademicYear    Facet = "academic_year"
	FacetMajor           Facet = "major"
	FacetSkills          Facet = "skills"
	FacetAvailability    Facet = "availability"
	FacetCategory        Facet = "category"
	FacetDuration        Facet = "duration"
)

type Kind int

const (
	// KindExact matches when the record's single value is selected.
	KindExact Kind = iota
	// KindOverlap matches when any of the record's values is selected.
	KindOverlap
)

type FacetSpec struct {
	Facet Facet
	Kind  Kind
}

var StudentFacets = []FacetSpec{
	{Facet: FacetExperienceLevel, Kind: KindExact},
	{Facet: FacetAcademicYear, Kind: KindExact},
	{Facet: FacetMajor, Kind: KindExact},
	{Facet: FacetSkills, Kind: KindOverlap},
	{Facet: FacetAvailability, Kind: KindExact},
}

var ProjectFacets = []FacetSpec{
	{Facet: FacetCategory, Kind: KindExact},
	{Facet: FacetSkills, Kind: KindOverlap},
	{Facet: FacetDuration, Kind: KindExact},
}

var (
	ErrUnknownFacet = errors.New("unknown facet")
	ErrEmptyValue   = errors.New("empty filter value")
)

// Record exposes the already-normalized values of a facet.
type Record interface {
	FacetValues(f Facet) []string
}

// Engine is not safe for concurrent use.
type Engine struct {
	specs    []FacetSpec
	selected map[Facet][]string
}

func New(specs []FacetSpec) *Engine {
	cp := make([]FacetSpec, len(specs))
	copy(cp, specs)
	return &Engine{specs: cp, selected: make(map[Facet][]string, len(cp))}
}

func (e *Engine) spec(f Facet) (FacetSpec, bool) {
	for _, s := range e.specs {
		if s.Facet == f {
			return s, true
		}
	}
	return FacetSpec{}, false
}

// Toggle selects value on facet, or deselects it when already selected.
func (e *Engine) Toggle(f Facet, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}
	if _, ok := e.spec(f); !ok {
		return ErrUnknownFacet
	}

	cur := e.selected[f]
	if i := indexOf(cur, value); i >= 0 {
		e.selected[f] = append(cur[:i:i], cur[i+1:]...)
		return nil
	}
	e.selected[f] = append(cur, value)
	return nil
}

// Remove drops value from every facet it is selected on.
func (e *Engine) Remove(value string) {
	value = strings.TrimSpace(value)
	for f, cur := range e.selected {
		if i := indexOf(cur, value); i >= 0 {
			e.selected[f] = append(cur[:i:i], cur[i+1:]...)
		}
	}
}

func (e *Engine) Clear() {
	e.selected = make(map[Facet][]string, len(e.specs))
}

// Active lists every selected value, facets in declaration order and values
// in selection order.
func (e *Engine) Active() []string {
	out := make([]string, 0)
	for _, s := range e.specs {
		out = append(out, e.selected[s.Facet]...)
	}
	return out
}

func (e *Engine) Selected(f Facet) []string {
	cur := e.selected[f]
	out := make([]string, len(cur))
	copy(out, cur)
	return out
}

func (e *Engine) Empty() bool {
	for _, s := range e.specs {
		if len(e.selected[s.Facet]) > 0 {
			return false
		}
	}
	return true
}

func (e *Engine) Matches(r Record) bool {
	if e == nil {
		return true
	}
	for _, s := range e.specs {
		sel := e.selected[s.Facet]
		if len(sel) == 0 {
			continue
		}
		vals := r.FacetValues(s.Facet)
		switch s.Kind {
		case KindOverlap:
			if !overlaps(sel, vals) {
				return false
			}
		default:
			if len(vals) == 0 || indexOf(sel, vals[0]) < 0 {
				return false
			}
		}
	}
	return true
}

// Apply returns the records e matches, in input order.
func Apply[T Record](e *Engine, records []T) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if e.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FromQuery builds an engine from repeated query parameters named after each
// facet. Unknown parameters are ignored; duplicates select once.
func FromQuery(specs []FacetSpec, lookup func(key string) []string) *Engine {
	e := New(specs)
	if lookup == nil {
		return e
	}
	for _, s := range e.specs {
		for _, v := range lookup(string(s.Facet)) {
			v = strings.TrimSpace(v)
			if v == "" || indexOf(e.selected[s.Facet], v) >= 0 {
				continue
			}
			e.selected[s.Facet] = append(e.selected[s.Facet], v)
		}
	}
	return e
}

func indexOf(xs []string, v string) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func overlaps(sel, vals []string) bool {
	for _, v := range vals {
		if indexOf(sel, v) >= 0 {
			return true
		}
	}
	return false
}
