package matrix_test

import (
	"testing"

	"variation-manager/core/matrix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Example(t *testing.T) {
	facets := matrix.FacetSet{
		{Kind: matrix.KindSize, Values: []string{"S", "M"}},
		{Kind: matrix.KindColor, Values: []string{"Red", "Blue"}},
	}

	combos := matrix.Generate(facets)
	require.Len(t, combos, 4)

	wantValues := [][]string{{"S", "Red"}, {"S", "Blue"}, {"M", "Red"}, {"M", "Blue"}}
	wantKeys := []string{"S-Red", "S-Blue", "M-Red", "M-Blue"}
	for i, c := range combos {
		assert.Equal(t, wantValues[i], c.Attributes.Values())
		assert.Equal(t, wantKeys[i], c.CombinationKey)
		assert.Equal(t, "SIZE", c.Attributes[0].Label)
		assert.Equal(t, "COLOR", c.Attributes[1].Label)
		assert.False(t, c.HasPayload())
		assert.NotNil(t, c.CompanyPrices)
		assert.NotNil(t, c.CompanySkus)
	}
}

func TestGenerate_Cardinality(t *testing.T) {
	tests := []struct {
		name   string
		facets matrix.FacetSet
		want   int
	}{
		{"Nil", nil, 0},
		{"Empty", matrix.FacetSet{}, 0},
		{"Single", matrix.FacetSet{{Kind: matrix.KindSize, Values: []string{"S", "M", "L"}}}, 3},
		{"ThreeFacets", matrix.FacetSet{
			{Kind: matrix.KindSize, Values: []string{"S", "M", "L"}},
			{Kind: matrix.KindColor, Values: []string{"Red", "Blue"}},
			{Kind: matrix.KindMaterial, Values: []string{"Cotton", "Wool", "Silk", "Linen"}},
		}, 24},
		{"OneFacetWithoutValues", matrix.FacetSet{
			{Kind: matrix.KindSize, Values: []string{"S", "M"}},
			{Kind: matrix.KindColor},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combos := matrix.Generate(tt.facets)
			assert.Len(t, combos, tt.want)
			assert.Equal(t, tt.want, tt.facets.Size())
			assert.NotNil(t, combos)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	facets := matrix.FacetSet{
		{Kind: matrix.KindFlavor, Values: []string{"Mint", "Lemon", "Cherry"}},
		{Kind: matrix.KindPack, Values: []string{"6", "12"}},
	}

	first := matrix.Generate(facets)
	second := matrix.Generate(facets)
	assert.Equal(t, first, second)
}

func TestGenerate_LastFacetVariesFastest(t *testing.T) {
	facets := matrix.FacetSet{
		{Kind: matrix.KindSize, Values: []string{"S", "M"}},
		{Kind: matrix.KindColor, Values: []string{"Red", "Blue"}},
		{Kind: matrix.KindPack, Values: []string{"1", "2"}},
	}

	var keys []string
	for _, c := range matrix.Generate(facets) {
		keys = append(keys, c.CombinationKey)
	}

	assert.Equal(t, []string{
		"S-Red-1", "S-Red-2", "S-Blue-1", "S-Blue-2",
		"M-Red-1", "M-Red-2", "M-Blue-1", "M-Blue-2",
	}, keys)
}

func TestGenerate_OtherUsesCustomLabel(t *testing.T) {
	facets := matrix.FacetSet{
		{Kind: matrix.KindOther, CustomLabel: "Finish", Values: []string{"Matte"}},
	}

	combos := matrix.Generate(facets)
	require.Len(t, combos, 1)
	v, ok := combos[0].Attributes.Get("Finish")
	assert.True(t, ok)
	assert.Equal(t, "Matte", v)
	_, ok = combos[0].Attributes.Get("OTHER")
	assert.False(t, ok)
}

func TestGenerate_SkeletonsDoNotShareMaps(t *testing.T) {
	combos := matrix.Generate(matrix.FacetSet{{Kind: matrix.KindSize, Values: []string{"S", "M"}}})
	combos[0].CompanyPrices["acme"] = "1.00"
	assert.Empty(t, combos[1].CompanyPrices)
}
