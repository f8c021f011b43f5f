package uom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetra/internal/core/apperror"
	"invetra/internal/core/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSet(t *testing.T) *UnitSet {
	t.Helper()
	set, err := NewUnitSet("prod-1", "pcs", []Unit{
		{Name: "Box", Factor: dec("12")},
		{Name: "Pallet", Factor: dec("480")},
	})
	require.NoError(t, err)
	return set
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "box", Normalize("  BOX "))
	assert.Equal(t, "pcs", Normalize("pcs"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNewUnitSet_Validation(t *testing.T) {
	_, err := NewUnitSet("p", "", nil)
	require.Error(t, err)

	_, err = NewUnitSet("p", "pcs", []Unit{{Name: "box", Factor: decimal.Zero}})
	require.Error(t, err)

	_, err = NewUnitSet("p", "pcs", []Unit{{Name: "box", Factor: dec("-3")}})
	require.Error(t, err)

	// Alternate shadowing the base unit after normalization
	_, err = NewUnitSet("p", "pcs", []Unit{{Name: " PCS ", Factor: dec("2")}})
	require.Error(t, err)

	_, err = NewUnitSet("p", "pcs", []Unit{
		{Name: "box", Factor: dec("12")},
		{Name: "BOX", Factor: dec("24")},
	})
	require.Error(t, err)
}

func TestResolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	set := testSet(t)

	u, err := set.Resolve(" bOx ")
	require.NoError(t, err)
	assert.Equal(t, "Box", u.Name)
	assert.False(t, u.IsBase)

	u, err = set.Resolve("PCS")
	require.NoError(t, err)
	assert.True(t, u.IsBase)
	assert.True(t, u.Factor.Equal(decimal.NewFromInt(1)))
}

func TestResolve_UnknownUnit(t *testing.T) {
	set := testSet(t)

	_, err := set.Resolve("crate")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnknownUnit, appErr.Code)
	assert.Equal(t, "prod-1", appErr.Details["product_id"])
	assert.ElementsMatch(t, []string{"pcs", "Box", "Pallet"}, appErr.Details["known_units"])
}

func TestToBase(t *testing.T) {
	set := testSet(t)

	q, err := set.ToBase(dec("3"), "box")
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromFloat64(36), q)

	q, err = set.ToBase(dec("2.5"), "pcs")
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromFloat64(2.5), q)

	// Zero converts to zero
	q, err = set.ToBase(decimal.Zero, "pallet")
	require.NoError(t, err)
	assert.True(t, q.IsZero())
}

func TestFromBase(t *testing.T) {
	set := testSet(t)

	d, err := set.FromBase(types.NewQuantityFromFloat64(36), "box")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("3")), d.String())

	// Non-integral result keeps 4 decimal places
	d, err = set.FromBase(types.NewQuantityFromFloat64(10), "box")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("0.8333")), d.String())
}

func TestConvert(t *testing.T) {
	set := testSet(t)

	// box -> pallet: 480/12 = 40 boxes per pallet
	d, err := set.Convert(dec("80"), "box", "pallet")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("2")), d.String())

	// Identity conversion is exact, no rounding applied
	d, err = set.Convert(dec("1.23456789"), "BOX", " box ")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("1.23456789")))

	_, err = set.Convert(dec("1"), "box", "crate")
	require.Error(t, err)
}

func TestUnitCostToBase(t *testing.T) {
	set := testSet(t)

	// 24.00 per box of 12 = 2.00 per piece
	c, err := set.UnitCostToBase(dec("24"), "box")
	require.NoError(t, err)
	assert.True(t, c.Equal(dec("2")), c.String())

	// Rounds to 4 decimal places
	c, err = set.UnitCostToBase(dec("10"), "box")
	require.NoError(t, err)
	assert.True(t, c.Equal(dec("0.8333")), c.String())

	c, err = set.UnitCostToBase(dec("5.5"), "pcs")
	require.NoError(t, err)
	assert.True(t, c.Equal(dec("5.5")))
}

func TestCostPerUnit(t *testing.T) {
	set := testSet(t)

	c, err := set.CostPerUnit(dec("2.1"), "box")
	require.NoError(t, err)
	assert.True(t, c.Equal(dec("25.2")), c.String())
}
