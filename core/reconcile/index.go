package reconcile

import "variation-manager/core/matrix"

// Index holds the previous combinations prepared for matching. It is built once
// per reconciliation and never mutated, so any entry may serve several rows.
type Index struct {
	// Previous is the list in stored order.
	Previous []matrix.Combination

	// ByKey maps a combination key to its position in Previous. When keys
	// collide the later combination wins.
	ByKey map[string]int

	// ValueSets holds the attribute values of each entry in Previous.
	ValueSets []map[string]struct{}
}

// BuildIndex indexes previous by combination key and by value set.
func BuildIndex(previous []matrix.Combination) *Index {
	idx := &Index{
		Previous:  previous,
		ByKey:     make(map[string]int, len(previous)),
		ValueSets: make([]map[string]struct{}, len(previous)),
	}
	for i, c := range previous {
		idx.ByKey[c.CombinationKey] = i
		idx.ValueSets[i] = c.Attributes.ValueSet()
	}
	return idx
}

// Len returns the number of indexed combinations.
func (idx *Index) Len() int {
	return len(idx.Previous)
}
