package store

import (
	"sort"

	"variation-manager/core/matrix"
)

// ApplyPriceToAllCompanies sets price for every known company on the
// combination at index. Known companies are the store's company list plus any
// company already priced on that row. An empty price removes every entry, as
// UpdateCompanyPrice does for one. Company SKUs are left alone.
func (s *Store) ApplyPriceToAllCompanies(index int, price string) error {
	return s.mutate(index, func(c *matrix.Combination) error {
		for _, id := range s.knownCompanies(*c) {
			setOrDelete(c.CompanyPrices, id, price)
		}
		return nil
	})
}

// ClearAllCombinationData blanks SKU, UPC, weight, dimensions and both company
// maps on every row, including rows held while the store is EMPTY.
// Attributes, keys and images are kept.
func (s *Store) ClearAllCombinationData() {
	s.combinations = clearAll(s.combinations)
	if len(s.retained) > 0 {
		s.retained = clearAll(s.retained)
	}
	s.version++
}

func clearAll(in []matrix.Combination) []matrix.Combination {
	next := make([]matrix.Combination, len(in))
	for i, c := range in {
		next[i] = c.ClearData()
	}
	return next
}

func (s *Store) knownCompanies(c matrix.Combination) []string {
	seen := make(map[string]struct{}, len(s.companies)+len(c.CompanyPrices))
	ids := make([]string, 0, len(s.companies)+len(c.CompanyPrices))
	for _, id := range s.companies {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var extra []string
	for id := range c.CompanyPrices {
		if _, ok := seen[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}
