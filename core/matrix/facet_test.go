package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		facet   Facet
		wantErr error
	}{
		{"Valid", Facet{Kind: KindSize, Values: []string{"S", "M"}}, nil},
		{"NoValues", Facet{Kind: KindColor}, nil},
		{"CaseSensitiveValues", Facet{Kind: KindColor, Values: []string{"red", "Red"}}, nil},
		{"UnknownKind", Facet{Kind: "WEIGHT"}, ErrUnknownKind},
		{"OtherWithoutLabel", Facet{Kind: KindOther, CustomLabel: "  "}, ErrMissingCustomLabel},
		{"Duplicate", Facet{Kind: KindSize, Values: []string{"S", "S"}}, ErrDuplicateValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.facet.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFacetSet_Validate_DuplicateLabel(t *testing.T) {
	fs := FacetSet{
		{Kind: KindOther, CustomLabel: "SIZE", Values: []string{"A"}},
		{Kind: KindSize, Values: []string{"S"}},
	}
	assert.ErrorIs(t, fs.Validate(), ErrDuplicateLabel)
}

func TestFacetSet_IsPopulated(t *testing.T) {
	assert.False(t, FacetSet{}.IsPopulated())
	assert.False(t, FacetSet{{Kind: KindSize}}.IsPopulated())
	assert.True(t, FacetSet{{Kind: KindSize, Values: []string{"S"}}}.IsPopulated())
}

func TestFacetSet_Clone(t *testing.T) {
	fs := FacetSet{{Kind: KindSize, Values: []string{"S"}}}
	cp := fs.Clone()
	cp[0].Values[0] = "XL"
	assert.Equal(t, "S", fs[0].Values[0])
}
