package reconcile

import (
	"testing"

	"variation-manager/core/matrix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizes(values ...string) matrix.Facet {
	return matrix.Facet{Kind: matrix.KindSize, Values: values}
}

func colors(values ...string) matrix.Facet {
	return matrix.Facet{Kind: matrix.KindColor, Values: values}
}

// fill gives every combination a payload derived from its key.
func fill(combos []matrix.Combination) []matrix.Combination {
	for i := range combos {
		k := combos[i].CombinationKey
		combos[i].SKU = "SKU-" + k
		combos[i].UPC = "UPC-" + k
		combos[i].Weight = "1.25"
		combos[i].Length, combos[i].Width, combos[i].Height = "10", "20", "30"
		combos[i].ImageURL = "https://img/" + k
		combos[i].CompanyPrices["acme"] = "9.99"
		combos[i].CompanySkus["acme"] = "AC-" + k
	}
	return combos
}

func TestReconcile_IdempotentOnUnchangedFacets(t *testing.T) {
	facets := matrix.FacetSet{sizes("S", "M"), colors("Red", "Blue")}
	prev := fill(matrix.Generate(facets))

	inner := Reconcile(matrix.Generate(facets), prev)
	outer := Reconcile(matrix.Generate(facets), inner)

	assert.Equal(t, inner, outer)
	assert.Equal(t, prev, inner)
}

func TestReconcile_FacetAdditionPreservesData(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S", "M", "L")}))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("S", "M", "L"), colors("Red")}), prev)
	require.Len(t, next, 3)

	for i, size := range []string{"S", "M", "L"} {
		assert.Equal(t, size+"-Red", next[i].CombinationKey)
		assert.Equal(t, "SKU-"+size, next[i].SKU)
		assert.Equal(t, "AC-"+size, next[i].CompanySkus["acme"])
		assert.Equal(t, "9.99", next[i].CompanyPrices["acme"])
		assert.Equal(t, "https://img/"+size, next[i].ImageURL)
	}
}

func TestReconcile_ValueAdditionCreatesBlank(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S", "M", "L")}))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("S", "M", "L", "XL")}), prev)
	require.Len(t, next, 4)

	for i, size := range []string{"S", "M", "L"} {
		assert.Equal(t, "SKU-"+size, next[i].SKU)
	}
	assert.Equal(t, "XL", next[3].CombinationKey)
	assert.False(t, next[3].HasPayload())
}

func TestReconcile_ValueRemovalDiscards(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S", "M", "L")}))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("S", "L")}), prev)
	require.Len(t, next, 2)
	assert.Equal(t, "SKU-S", next[0].SKU)
	assert.Equal(t, "SKU-L", next[1].SKU)
}

func TestReconcile_ReorderKeepsDataByKey(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S", "M")}))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("M", "S")}), prev)
	assert.Equal(t, "SKU-M", next[0].SKU)
	assert.Equal(t, "SKU-S", next[1].SKU)
}

func TestReconcile_FacetRemovalFallsBackToBlank(t *testing.T) {
	// Old rows have more values than the new ones, so no subset match applies.
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S"), colors("Red")}))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("S")}), prev)
	require.Len(t, next, 1)
	assert.False(t, next[0].HasPayload())
}

func TestReconcile_SourceCopiedNotAliased(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S")}))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("S"), colors("Red", "Blue")}), prev)
	require.Len(t, next, 2)
	assert.Equal(t, "SKU-S", next[0].SKU)
	assert.Equal(t, "SKU-S", next[1].SKU)

	next[0].CompanyPrices["acme"] = "1.00"
	assert.Equal(t, "9.99", next[1].CompanyPrices["acme"])
	assert.Equal(t, "9.99", prev[0].CompanyPrices["acme"])
}

func TestReconcile_SubsetIsFirstMatchNotBestMatch(t *testing.T) {
	// Both previous rows are subsets of "S-Red-Cotton"; the first stored wins
	// even though the second shares more values.
	s := matrix.NewSkeleton(matrix.Attributes{{Label: "SIZE", Value: "S"}})
	s.SKU = "first"
	sr := matrix.NewSkeleton(matrix.Attributes{{Label: "SIZE", Value: "S"}, {Label: "COLOR", Value: "Red"}})
	sr.SKU = "second"

	skeletons := matrix.Generate(matrix.FacetSet{
		sizes("S"), colors("Red"), {Kind: matrix.KindMaterial, Values: []string{"Cotton"}},
	})

	next := Reconcile(skeletons, []matrix.Combination{s, sr})
	assert.Equal(t, "first", next[0].SKU)

	plan := NewPlan(skeletons, []matrix.Combination{s, sr})
	assert.Equal(t, "first", plan.Combinations[0].SKU)
	assert.Equal(t, TierSubset, plan.Matches[0].Tier)
	assert.Equal(t, 0, plan.Matches[0].Source)
	assert.Equal(t, 2, plan.Matches[0].Candidates)
	assert.True(t, plan.Matches[0].Ambiguous())
	assert.Equal(t, 1, plan.Summary.Ambiguous)
}

func TestReconcile_SubsetIgnoresFacetLabels(t *testing.T) {
	prev := matrix.NewSkeleton(matrix.Attributes{{Label: "COLOR", Value: "12"}})
	prev.SKU = "twelve"

	skeletons := matrix.Generate(matrix.FacetSet{
		sizes("S"), {Kind: matrix.KindPack, Values: []string{"12"}},
	})
	next := Reconcile(skeletons, []matrix.Combination{prev})
	assert.Equal(t, "twelve", next[0].SKU)
}

func TestReconcile_KeyCollisionLaterWins(t *testing.T) {
	a := matrix.NewSkeleton(matrix.Attributes{{Label: "SIZE", Value: "A-B"}, {Label: "COLOR", Value: "C"}})
	a.SKU = "first"
	b := matrix.NewSkeleton(matrix.Attributes{{Label: "SIZE", Value: "A"}, {Label: "COLOR", Value: "B-C"}})
	b.SKU = "second"
	require.Equal(t, a.CombinationKey, b.CombinationKey)

	skeleton := matrix.NewSkeleton(matrix.Attributes{{Label: "PACK", Value: "A-B-C"}})
	skeleton.CombinationKey = a.CombinationKey

	next := Reconcile([]matrix.Combination{skeleton}, []matrix.Combination{a, b})
	assert.Equal(t, "second", next[0].SKU)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	assert.Empty(t, Reconcile(nil, nil))
	assert.Empty(t, Reconcile(matrix.Generate(nil), fill(matrix.Generate(matrix.FacetSet{sizes("S")}))))

	next := Reconcile(matrix.Generate(matrix.FacetSet{sizes("S")}), nil)
	require.Len(t, next, 1)
	assert.False(t, next[0].HasPayload())
}

func TestNewPlan_Summary(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S", "M", "L")}))

	// M removed, XL added, Color added.
	skeletons := matrix.Generate(matrix.FacetSet{sizes("S", "L", "XL"), colors("Red")})
	plan := NewPlan(skeletons, prev)

	require.Len(t, plan.Matches, 3)
	assert.Equal(t, TierSubset, plan.Matches[0].Tier)
	assert.Equal(t, "S", plan.Matches[0].SourceKey)
	assert.Equal(t, TierSubset, plan.Matches[1].Tier)
	assert.Equal(t, 2, plan.Matches[1].Source)
	assert.Equal(t, TierBlank, plan.Matches[2].Tier)
	assert.Equal(t, -1, plan.Matches[2].Source)

	assert.Equal(t, PlanSummary{
		Total:    3,
		Previous: 3,
		Subset:   2,
		Blank:    1,
		Dropped:  1,
	}, plan.Summary)
}

func TestNewPlan_MatchesReconcile(t *testing.T) {
	prev := fill(matrix.Generate(matrix.FacetSet{sizes("S", "M"), colors("Red")}))
	skeletons := matrix.Generate(matrix.FacetSet{sizes("S", "M"), colors("Red", "Blue")})

	assert.Equal(t, Reconcile(skeletons, prev), NewPlan(skeletons, prev).Combinations)
}
