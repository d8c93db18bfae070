package variation

import (
	"testing"

	"variation-manager/core/matrix"
	"variation-manager/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	combos := []matrix.Combination{
		{
			ID:             "v1",
			Attributes:     matrix.Attributes{{Label: "SIZE", Value: "S"}},
			CombinationKey: "S",
			SKU:            " SKU-S ",
			Weight:         "1.5",
			Length:         "10",
			Width:          "20",
			Height:         "30",
			CompanyPrices:  map[string]string{"zeta": "3", "acme": "9.990", "beta": "1"},
			CompanySkus:    map[string]string{"acme": "A-S", "omega": "O-S"},
		},
		{
			Attributes:     matrix.Attributes{{Label: "SIZE", Value: "M"}},
			CombinationKey: "M",
			Length:         "10",
			Width:          "20",
		},
	}

	out, err := Normalize(combos, []string{"beta", "acme"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	s := out[0]
	assert.Equal(t, "v1", s.ID)
	assert.Equal(t, "SKU-S", s.SKU)
	require.NotNil(t, s.Weight)
	assert.Equal(t, 1.5, *s.Weight)
	require.NotNil(t, s.Dimensions)
	assert.Equal(t, "10×20×30", *s.Dimensions)
	assert.Equal(t, []CompanyPrice{
		{CompanyID: "beta", Price: "1"},
		{CompanyID: "acme", Price: "9.99", CompanySku: "A-S"},
		{CompanyID: "omega", CompanySku: "O-S"},
		{CompanyID: "zeta", Price: "3"},
	}, s.CompanyPrices)

	m := out[1]
	assert.Nil(t, m.Weight)
	assert.Nil(t, m.Dimensions)
	assert.NotNil(t, m.CompanyPrices)
	assert.Empty(t, m.CompanyPrices)
}

func TestNormalize_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		combo matrix.Combination
	}{
		{"Weight", matrix.Combination{Weight: "heavy"}},
		{"Dimension", matrix.Combination{Length: "1", Width: "x", Height: "2"}},
		{"Price", matrix.Combination{CompanyPrices: map[string]string{"acme": "-1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]matrix.Combination{tt.combo}, nil)
			assert.ErrorIs(t, err, utils.ErrInvalidAmount)
		})
	}
}
