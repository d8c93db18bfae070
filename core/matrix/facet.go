package matrix

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names the axis of variation a facet represents.
type Kind string

const (
	KindSize     Kind = "SIZE"
	KindColor    Kind = "COLOR"
	KindPack     Kind = "PACK"
	KindFlavor   Kind = "FLAVOR"
	KindMaterial Kind = "MATERIAL"
	KindStyle    Kind = "STYLE"
	KindVolume   Kind = "VOLUME"
	// KindOther uses the facet's CustomLabel as its label.
	KindOther Kind = "OTHER"
)

// Kinds lists every supported facet kind in display order.
var Kinds = []Kind{
	KindSize, KindColor, KindPack, KindFlavor, KindMaterial, KindStyle, KindVolume, KindOther,
}

var (
	// ErrUnknownKind is returned when a facet kind is not one of Kinds.
	ErrUnknownKind = errors.New("unknown facet kind")
	// ErrMissingCustomLabel is returned when an OTHER facet has no custom label.
	ErrMissingCustomLabel = errors.New("custom label is required for OTHER facets")
	// ErrDuplicateValue is returned when a facet already holds a value.
	ErrDuplicateValue = errors.New("duplicate facet value")
	// ErrDuplicateLabel is returned when two facets resolve to the same label.
	ErrDuplicateLabel = errors.New("duplicate facet label")
)

// IsValid reports whether k is a supported kind.
func (k Kind) IsValid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Facet is one axis of variation with its ordered values.
type Facet struct {
	Kind        Kind     `json:"kind" yaml:"kind"`
	CustomLabel string   `json:"customLabel,omitempty" yaml:"customLabel,omitempty"`
	Values      []string `json:"values" yaml:"values"`
}

// Label returns the attribute key this facet contributes to a combination.
func (f Facet) Label() string {
	if f.Kind == KindOther {
		return f.CustomLabel
	}
	return string(f.Kind)
}

// HasValue reports whether value is already declared (case-sensitive).
func (f Facet) HasValue(value string) bool {
	for _, v := range f.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Validate checks the kind, the custom label and value uniqueness.
func (f Facet) Validate() error {
	if !f.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, f.Kind)
	}
	if f.Kind == KindOther && strings.TrimSpace(f.CustomLabel) == "" {
		return ErrMissingCustomLabel
	}
	seen := make(map[string]struct{}, len(f.Values))
	for _, v := range f.Values {
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: %q in %s", ErrDuplicateValue, v, f.Label())
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Clone returns a copy that shares no backing arrays with f.
func (f Facet) Clone() Facet {
	out := f
	out.Values = append([]string(nil), f.Values...)
	return out
}

// FacetSet is the ordered list of facets declared by a product.
type FacetSet []Facet

// Validate validates every facet and rejects repeated labels.
func (fs FacetSet) Validate() error {
	labels := make(map[string]struct{}, len(fs))
	for i, f := range fs {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("facet %d: %w", i, err)
		}
		if _, dup := labels[f.Label()]; dup {
			return fmt.Errorf("facet %d: %w: %q", i, ErrDuplicateLabel, f.Label())
		}
		labels[f.Label()] = struct{}{}
	}
	return nil
}

// IsPopulated reports whether the set yields a non-empty matrix:
// at least one facet, and every facet holds at least one value.
func (fs FacetSet) IsPopulated() bool {
	if len(fs) == 0 {
		return false
	}
	for _, f := range fs {
		if len(f.Values) == 0 {
			return false
		}
	}
	return true
}

// Size returns the number of combinations Generate will produce.
func (fs FacetSet) Size() int {
	if !fs.IsPopulated() {
		return 0
	}
	n := 1
	for _, f := range fs {
		n *= len(f.Values)
	}
	return n
}

// Clone deep-copies the set.
func (fs FacetSet) Clone() FacetSet {
	if fs == nil {
		return nil
	}
	out := make(FacetSet, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}
