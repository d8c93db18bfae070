package store

import (
	"errors"
	"fmt"

	"variation-manager/core/matrix"
	"variation-manager/core/reconcile"
)

var (
	// ErrIndexOutOfRange is returned for a combination index outside the list.
	ErrIndexOutOfRange = errors.New("combination index out of range")
	// ErrUnknownField is returned when a field name is not editable.
	ErrUnknownField = errors.New("unknown combination field")
)

// State is the observable state of a store.
type State string

const (
	// StateEmpty means no facet set is fully populated; there are no rows.
	StateEmpty State = "empty"
	// StatePopulated means every facet has at least one value.
	StatePopulated State = "populated"
)

// Field names an editable scalar payload field.
type Field string

const (
	FieldSKU      Field = "sku"
	FieldUPC      Field = "upc"
	FieldWeight   Field = "weight"
	FieldLength   Field = "length"
	FieldWidth    Field = "width"
	FieldHeight   Field = "height"
	FieldImageURL Field = "imageUrl"
)

// Store is the combination collection of a single editing session.
type Store struct {
	facets       matrix.FacetSet
	combinations []matrix.Combination
	// retained holds the last populated rows while the store is EMPTY so the
	// next populated matrix reconciles against them.
	retained  []matrix.Combination
	companies []string
	lastPlan     *reconcile.Plan
	version      int
}

// New creates an empty store. companies lists the known company ids used by
// ApplyPriceToAllCompanies.
func New(companies ...string) *Store {
	return &Store{
		combinations: []matrix.Combination{},
		companies:    append([]string(nil), companies...),
	}
}

// Restore creates a store from saved state without reconciling. The
// combinations are taken as-is; callers are expected to pass the list that was
// produced for facets.
func Restore(facets matrix.FacetSet, combinations []matrix.Combination, companies ...string) *Store {
	s := New(companies...)
	s.facets = facets.Clone()
	s.combinations = cloneAll(combinations)
	return s
}

// Facets returns a copy of the current facet set.
func (s *Store) Facets() matrix.FacetSet {
	return s.facets.Clone()
}

// Combinations returns the current snapshot. The slice is never written to
// after it is returned; treat it as read-only.
func (s *Store) Combinations() []matrix.Combination {
	return s.combinations
}

// Len returns the number of combinations.
func (s *Store) Len() int {
	return len(s.combinations)
}

// Companies returns the known company ids.
func (s *Store) Companies() []string {
	return append([]string(nil), s.companies...)
}

// SetCompanies replaces the known company ids.
func (s *Store) SetCompanies(companies []string) {
	s.companies = append([]string(nil), companies...)
}

// State reports whether the store holds a populated matrix.
func (s *Store) State() State {
	if s.facets.IsPopulated() {
		return StatePopulated
	}
	return StateEmpty
}

// Version increases on every mutation.
func (s *Store) Version() int {
	return s.version
}

// LastPlan returns the plan of the most recent SetFacets, or nil.
func (s *Store) LastPlan() *reconcile.Plan {
	return s.lastPlan
}

// SetFacets regenerates the matrix for facets and carries payload over from the
// current list. The list is replaced in one step.
//
// A facet set that is not fully populated yields no rows. The rows it replaced
// are kept aside and become the reconciliation source of the next populated
// matrix, so adding a facet and then its first value does not lose data.
func (s *Store) SetFacets(facets matrix.FacetSet) *reconcile.Plan {
	source := s.combinations
	if len(source) == 0 {
		source = s.retained
	}

	next := facets.Clone()
	plan := reconcile.NewPlan(matrix.Generate(next), source)

	s.retained = nil
	if len(plan.Combinations) == 0 && len(source) > 0 {
		s.retained = source
	}
	s.facets = next
	s.combinations = plan.Combinations
	s.lastPlan = plan
	s.version++
	return plan
}

// Retained returns how many rows are held for the next populated matrix.
func (s *Store) Retained() int {
	return len(s.retained)
}

// UpdateField sets one scalar payload field of the combination at index.
func (s *Store) UpdateField(index int, field Field, value string) error {
	return s.mutate(index, func(c *matrix.Combination) error {
		switch field {
		case FieldSKU:
			c.SKU = value
		case FieldUPC:
			c.UPC = value
		case FieldWeight:
			c.Weight = value
		case FieldLength:
			c.Length = value
		case FieldWidth:
			c.Width = value
		case FieldHeight:
			c.Height = value
		case FieldImageURL:
			c.ImageURL = value
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return nil
	})
}

// UpdateCompanyPrice sets the price for one company on the combination at index.
// An empty price removes the entry.
func (s *Store) UpdateCompanyPrice(index int, companyID, price string) error {
	return s.mutate(index, func(c *matrix.Combination) error {
		setOrDelete(c.CompanyPrices, companyID, price)
		return nil
	})
}

// UpdateCompanySku sets the SKU for one company on the combination at index.
// An empty SKU removes the entry.
func (s *Store) UpdateCompanySku(index int, companyID, sku string) error {
	return s.mutate(index, func(c *matrix.Combination) error {
		setOrDelete(c.CompanySkus, companyID, sku)
		return nil
	})
}

// mutate applies fn to a copy of the combination at index and publishes a new
// list containing it. Other rows are shared with the previous snapshot.
func (s *Store) mutate(index int, fn func(c *matrix.Combination) error) error {
	if index < 0 || index >= len(s.combinations) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.combinations))
	}

	updated := s.combinations[index].Clone()
	if err := fn(&updated); err != nil {
		return err
	}

	next := make([]matrix.Combination, len(s.combinations))
	copy(next, s.combinations)
	next[index] = updated

	s.combinations = next
	s.version++
	return nil
}

func setOrDelete(m map[string]string, key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}

func cloneAll(in []matrix.Combination) []matrix.Combination {
	out := make([]matrix.Combination, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
