package variation

import (
	"testing"

	"variation-manager/core/matrix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_AddFacet(t *testing.T) {
	e := NewEditor(nil)

	i, err := e.AddFacet(matrix.KindSize, "ignored")
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Empty(t, e.Facets()[0].CustomLabel)

	_, err = e.AddFacet(matrix.KindSize, "")
	assert.ErrorIs(t, err, matrix.ErrDuplicateLabel)

	_, err = e.AddFacet(matrix.KindOther, "  ")
	assert.ErrorIs(t, err, matrix.ErrMissingCustomLabel)

	_, err = e.AddFacet("SHAPE", "")
	assert.ErrorIs(t, err, matrix.ErrUnknownKind)

	i, err = e.AddFacet(matrix.KindOther, " Finish ")
	require.NoError(t, err)
	assert.Equal(t, "Finish", e.Facets()[i].Label())
	assert.Len(t, e.Facets(), 2)
}

func TestEditor_PendingCommit(t *testing.T) {
	e := NewEditor(matrix.FacetSet{{Kind: matrix.KindColor, Values: []string{"Red"}}})

	require.NoError(t, e.SetPending(0, "  Blue "))
	assert.Equal(t, map[int]string{0: "  Blue "}, e.Pending())

	v, err := e.CommitPending(0)
	require.NoError(t, err)
	assert.Equal(t, "Blue", v)
	assert.Equal(t, []string{"Red", "Blue"}, e.Facets()[0].Values)
	assert.Empty(t, e.Pending())

	t.Run("Duplicate keeps slot", func(t *testing.T) {
		require.NoError(t, e.SetPending(0, "Red"))
		_, err := e.CommitPending(0)
		assert.ErrorIs(t, err, matrix.ErrDuplicateValue)
		assert.Equal(t, "Red", e.Pending()[0])
	})

	t.Run("Blank", func(t *testing.T) {
		require.NoError(t, e.SetPending(0, "   "))
		_, err := e.CommitPending(0)
		assert.ErrorIs(t, err, ErrEmptyValue)
	})

	t.Run("Clearing", func(t *testing.T) {
		require.NoError(t, e.SetPending(0, ""))
		assert.Empty(t, e.Pending())
	})

	assert.ErrorIs(t, e.SetPending(3, "x"), ErrFacetIndexOutOfRange)
}

func TestEditor_RemoveFacetShiftsPending(t *testing.T) {
	e := NewEditor(matrix.FacetSet{
		{Kind: matrix.KindSize, Values: []string{"S"}},
		{Kind: matrix.KindColor, Values: []string{"Red"}},
		{Kind: matrix.KindPack, Values: []string{"1"}},
	})
	require.NoError(t, e.SetPending(0, "M"))
	require.NoError(t, e.SetPending(1, "Blue"))
	require.NoError(t, e.SetPending(2, "6"))

	require.NoError(t, e.RemoveFacet(1))
	facets := e.Facets()
	require.Len(t, facets, 2)
	assert.Equal(t, matrix.KindPack, facets[1].Kind)
	assert.Equal(t, map[int]string{0: "M", 1: "6"}, e.Pending())

	assert.ErrorIs(t, e.RemoveFacet(-1), ErrFacetIndexOutOfRange)
}

func TestEditor_SetKind(t *testing.T) {
	e := NewEditor(matrix.FacetSet{
		{Kind: matrix.KindSize, Values: []string{"S", "M"}},
		{Kind: matrix.KindColor, Values: []string{"Red"}},
	})

	require.NoError(t, e.SetKind(0, matrix.KindOther, "Fit"))
	assert.Equal(t, "Fit", e.Facets()[0].Label())
	assert.Equal(t, []string{"S", "M"}, e.Facets()[0].Values)

	err := e.SetKind(0, matrix.KindColor, "")
	assert.ErrorIs(t, err, matrix.ErrDuplicateLabel)
	assert.Equal(t, matrix.KindOther, e.Facets()[0].Kind)

	require.NoError(t, e.SetKind(0, matrix.KindSize, "stale"))
	assert.Empty(t, e.Facets()[0].CustomLabel)
}

func TestEditor_Values(t *testing.T) {
	e := NewEditor(matrix.FacetSet{{Kind: matrix.KindSize, Values: []string{"S", "M", "L"}}})

	require.NoError(t, e.MoveValue(0, 2, 0))
	assert.Equal(t, []string{"L", "S", "M"}, e.Facets()[0].Values)

	require.NoError(t, e.MoveValue(0, 0, 2))
	assert.Equal(t, []string{"S", "M", "L"}, e.Facets()[0].Values)

	assert.ErrorIs(t, e.MoveValue(0, 0, 3), ErrValueNotFound)

	require.NoError(t, e.RemoveValue(0, "M"))
	assert.Equal(t, []string{"S", "L"}, e.Facets()[0].Values)
	assert.ErrorIs(t, e.RemoveValue(0, "M"), ErrValueNotFound)

	assert.ErrorIs(t, e.AddValue(0, ""), ErrEmptyValue)
	assert.ErrorIs(t, e.AddValue(0, "S"), matrix.ErrDuplicateValue)
	require.NoError(t, e.AddValue(0, "s"))
}

func TestEditor_ReturnsCopies(t *testing.T) {
	src := matrix.FacetSet{{Kind: matrix.KindSize, Values: []string{"S"}}}
	e := NewEditor(src)
	src[0].Values[0] = "XL"

	out := e.Facets()
	out[0].Values[0] = "XS"
	assert.Equal(t, "S", e.Facets()[0].Values[0])
}

func TestEditor_Replace(t *testing.T) {
	e := NewEditor(matrix.FacetSet{{Kind: matrix.KindSize, Values: []string{"S"}}})
	require.NoError(t, e.SetPending(0, "M"))

	bad := matrix.FacetSet{{Kind: matrix.KindSize}, {Kind: matrix.KindSize}}
	assert.ErrorIs(t, e.Replace(bad), matrix.ErrDuplicateLabel)
	assert.Len(t, e.Facets(), 1)

	require.NoError(t, e.Replace(matrix.FacetSet{{Kind: matrix.KindColor, Values: []string{"Red"}}}))
	assert.Equal(t, matrix.KindColor, e.Facets()[0].Kind)
	assert.Empty(t, e.Pending())
}
