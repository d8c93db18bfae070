package matrix

// Generate expands facets into the cartesian product of their values.
// The last facet varies fastest. Every skeleton has blank payload.
// It returns an empty slice when facets is empty or any facet has no values.
func Generate(facets FacetSet) []Combination {
	if !facets.IsPopulated() {
		return []Combination{}
	}

	out := make([]Combination, 0, facets.Size())
	// Odometer over value indexes; the rightmost digit advances first.
	idx := make([]int, len(facets))
	for {
		attrs := make(Attributes, len(facets))
		for i, f := range facets {
			attrs[i] = Attribute{Label: f.Label(), Value: f.Values[idx[i]]}
		}
		out = append(out, NewSkeleton(attrs))

		pos := len(facets) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(facets[pos].Values) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
