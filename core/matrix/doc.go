// Package matrix defines the variation facet model and the combination generator.
//
// A product declares an ordered FacetSet (Size, Color, ...). Each facet holds an
// ordered list of unique values. Generate expands the set into the full cartesian
// product, one Combination skeleton per cell, with blank payload.
//
// # Ordering
//
// Enumeration order is lexicographic in facet order and then in value order within
// each facet, so the values of the last facet vary fastest:
//
//	facets := matrix.FacetSet{
//	    {Kind: matrix.KindSize, Values: []string{"S", "M"}},
//	    {Kind: matrix.KindColor, Values: []string{"Red", "Blue"}},
//	}
//	combos := matrix.Generate(facets)
//	// S-Red, S-Blue, M-Red, M-Blue
//
// # Combination Keys
//
// A combination key joins the attribute values with KeySeparator. It is the primary
// identity signal used by the reconcile package, but it is not unique across
// differently shaped facet sets ("A-B" + "C" and "A" + "B-C" both yield "A-B-C").
//
// Generate is total: an empty FacetSet, or any facet without values, yields an empty
// list and never an error.
package matrix
