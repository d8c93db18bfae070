package variation

import (
	"errors"
	"fmt"
	"strings"

	"variation-manager/core/matrix"
)

var (
	// ErrFacetIndexOutOfRange is returned for a facet index outside the set.
	ErrFacetIndexOutOfRange = errors.New("facet index out of range")
	// ErrEmptyValue is returned when a blank value is committed.
	ErrEmptyValue = errors.New("facet value is empty")
	// ErrValueNotFound is returned when removing or moving an unknown value.
	ErrValueNotFound = errors.New("facet value not found")
)

// Editor edits a facet set. Each facet has a pending input slot holding the
// text typed for its next value; CommitPending turns it into a value.
type Editor struct {
	facets  matrix.FacetSet
	pending map[int]string
}

// NewEditor creates an editor over a copy of facets.
func NewEditor(facets matrix.FacetSet) *Editor {
	return &Editor{
		facets:  facets.Clone(),
		pending: make(map[int]string),
	}
}

// Facets returns a copy of the edited set.
func (e *Editor) Facets() matrix.FacetSet {
	return e.facets.Clone()
}

// Pending returns a copy of the non-empty pending slots keyed by facet index.
func (e *Editor) Pending() map[int]string {
	out := make(map[int]string, len(e.pending))
	for i, v := range e.pending {
		out[i] = v
	}
	return out
}

// Replace swaps the whole set after validating it. Pending input is dropped.
func (e *Editor) Replace(facets matrix.FacetSet) error {
	if err := facets.Validate(); err != nil {
		return err
	}
	e.facets = facets.Clone()
	e.pending = make(map[int]string)
	return nil
}

// AddFacet appends an empty facet and returns its index.
func (e *Editor) AddFacet(kind matrix.Kind, customLabel string) (int, error) {
	f := matrix.Facet{Kind: kind, CustomLabel: strings.TrimSpace(customLabel)}
	if kind != matrix.KindOther {
		f.CustomLabel = ""
	}
	if err := e.validateWith(len(e.facets), f); err != nil {
		return -1, err
	}
	e.facets = append(e.facets, f)
	return len(e.facets) - 1, nil
}

// RemoveFacet deletes the facet at i. Pending slots of later facets shift down.
func (e *Editor) RemoveFacet(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.facets = append(e.facets[:i:i], e.facets[i+1:]...)

	shifted := make(map[int]string, len(e.pending))
	for idx, v := range e.pending {
		switch {
		case idx < i:
			shifted[idx] = v
		case idx > i:
			shifted[idx-1] = v
		}
	}
	e.pending = shifted
	return nil
}

// SetKind changes the kind (and custom label) of facet i, keeping its values.
func (e *Editor) SetKind(i int, kind matrix.Kind, customLabel string) error {
	if err := e.check(i); err != nil {
		return err
	}
	f := e.facets[i].Clone()
	f.Kind = kind
	f.CustomLabel = ""
	if kind == matrix.KindOther {
		f.CustomLabel = strings.TrimSpace(customLabel)
	}
	if err := e.validateWith(i, f); err != nil {
		return err
	}
	e.facets[i] = f
	return nil
}

// SetPending stores the text typed for facet i's next value.
func (e *Editor) SetPending(i int, text string) error {
	if err := e.check(i); err != nil {
		return err
	}
	if text == "" {
		delete(e.pending, i)
		return nil
	}
	e.pending[i] = text
	return nil
}

// CommitPending adds the trimmed pending text of facet i as a value and clears
// the slot. The slot is kept when the value is rejected.
func (e *Editor) CommitPending(i int) (string, error) {
	if err := e.check(i); err != nil {
		return "", err
	}
	value := strings.TrimSpace(e.pending[i])
	if err := e.AddValue(i, value); err != nil {
		return "", err
	}
	delete(e.pending, i)
	return value, nil
}

// AddValue appends value to facet i.
func (e *Editor) AddValue(i int, value string) error {
	if err := e.check(i); err != nil {
		return err
	}
	if value == "" {
		return ErrEmptyValue
	}
	if e.facets[i].HasValue(value) {
		return fmt.Errorf("%w: %q", matrix.ErrDuplicateValue, value)
	}
	e.facets[i].Values = append(e.facets[i].Values, value)
	return nil
}

// RemoveValue deletes value from facet i.
func (e *Editor) RemoveValue(i int, value string) error {
	if err := e.check(i); err != nil {
		return err
	}
	pos := indexOf(e.facets[i].Values, value)
	if pos < 0 {
		return fmt.Errorf("%w: %q", ErrValueNotFound, value)
	}
	values := e.facets[i].Values
	e.facets[i].Values = append(values[:pos:pos], values[pos+1:]...)
	return nil
}

// MoveValue moves the value at position from to position to within facet i.
func (e *Editor) MoveValue(i, from, to int) error {
	if err := e.check(i); err != nil {
		return err
	}
	values := e.facets[i].Values
	if from < 0 || from >= len(values) || to < 0 || to >= len(values) {
		return fmt.Errorf("%w: position %d → %d (have %d)", ErrValueNotFound, from, to, len(values))
	}

	v := values[from]
	rest := append(values[:from:from], values[from+1:]...)
	moved := make([]string, 0, len(values))
	moved = append(moved, rest[:to]...)
	moved = append(moved, v)
	moved = append(moved, rest[to:]...)
	e.facets[i].Values = moved
	return nil
}

func (e *Editor) check(i int) error {
	if i < 0 || i >= len(e.facets) {
		return fmt.Errorf("%w: %d (have %d)", ErrFacetIndexOutOfRange, i, len(e.facets))
	}
	return nil
}

// validateWith validates the set as it would be with f at position i.
func (e *Editor) validateWith(i int, f matrix.Facet) error {
	candidate := e.facets.Clone()
	if i == len(candidate) {
		candidate = append(candidate, f)
	} else {
		candidate[i] = f
	}
	return candidate.Validate()
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}
