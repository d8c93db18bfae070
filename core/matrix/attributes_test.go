package matrix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_JSONKeepsOrder(t *testing.T) {
	attrs := Attributes{
		{Label: "SIZE", Value: "M"},
		{Label: "COLOR", Value: "Blue"},
		{Label: "Finish", Value: "Matte \"soft\""},
	}

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.Equal(t, `{"SIZE":"M","COLOR":"Blue","Finish":"Matte \"soft\""}`, string(data))

	var decoded Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"COLOR":"Blue","SIZE":"M"}`), &decoded))
	assert.Equal(t, Attributes{{Label: "COLOR", Value: "Blue"}, {Label: "SIZE", Value: "M"}}, decoded)
	assert.Equal(t, "Blue-M", decoded.Key())
}

func TestAttributes_UnmarshalRejectsNonObject(t *testing.T) {
	var a Attributes
	assert.Error(t, json.Unmarshal([]byte(`["S"]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"SIZE":1}`), &a))
}

func TestAttributes_EmptyObject(t *testing.T) {
	data, err := json.Marshal(Attributes{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCombination_WithPayloadFrom(t *testing.T) {
	src := NewSkeleton(Attributes{{Label: "SIZE", Value: "S"}})
	src.SKU = "SKU-S"
	src.Weight = "1.5"
	src.CompanyPrices["acme"] = "9.99"
	src.CompanySkus["acme"] = "AC-S"

	dst := NewSkeleton(Attributes{{Label: "SIZE", Value: "S"}, {Label: "COLOR", Value: "Red"}})
	out := dst.WithPayloadFrom(src)

	assert.Equal(t, "S-Red", out.CombinationKey)
	assert.Equal(t, dst.Attributes, out.Attributes)
	assert.Equal(t, "SKU-S", out.SKU)
	assert.Equal(t, "1.5", out.Weight)

	out.CompanyPrices["acme"] = "1.00"
	assert.Equal(t, "9.99", src.CompanyPrices["acme"])
}

func TestCombination_ClearData(t *testing.T) {
	c := NewSkeleton(Attributes{{Label: "SIZE", Value: "S"}})
	c.SKU, c.UPC, c.Weight = "A", "B", "1"
	c.Length, c.Width, c.Height = "1", "2", "3"
	c.ImageURL = "http://img"
	c.CompanyPrices["acme"] = "2"
	c.CompanySkus["acme"] = "X"

	cleared := c.ClearData()
	assert.Equal(t, "http://img", cleared.ImageURL)
	assert.Equal(t, "S", cleared.CombinationKey)
	assert.Empty(t, cleared.SKU)
	assert.Empty(t, cleared.Height)
	assert.Empty(t, cleared.CompanyPrices)
	assert.Empty(t, cleared.CompanySkus)
	assert.Equal(t, "A", c.SKU)
}
