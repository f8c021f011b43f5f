package receipt

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/types"
	"invetra/internal/domain/posting"
	"invetra/internal/domain/uom"
)

type fakeResolver struct {
	units map[id.ID]*uom.UnitSet
}

func (r *fakeResolver) ProductInfo(_ context.Context, productID id.ID) (posting.ProductInfo, error) {
	return posting.ProductInfo{Units: r.units[productID]}, nil
}

func (r *fakeResolver) BalanceForUpdate(_ context.Context, _, _ id.ID) (entity.StockBalance, error) {
	return entity.StockBalance{}, nil
}

func TestReceipt_Totals(t *testing.T) {
	doc := NewReceipt(id.New())
	doc.AddLine(id.New(), decimal.NewFromInt(3), "", decimal.NewFromInt(10))
	doc.AddLine(id.New(), decimal.NewFromInt(2), "", decimal.NewFromFloat(5.5))

	assert.True(t, doc.TotalAmount.Equal(decimal.NewFromInt(41)), "got %s", doc.TotalAmount)
}

func TestReceipt_GenerateMovements_ConvertsToBaseUnit(t *testing.T) {
	productID := id.New()
	units, err := uom.NewUnitSet(productID.String(), "pcs", []uom.Unit{
		{Name: "box", Factor: decimal.NewFromInt(12)},
	})
	require.NoError(t, err)
	res := &fakeResolver{units: map[id.ID]*uom.UnitSet{productID: units}}

	doc := NewReceipt(id.New())
	// 3 boxes at 24.00 per box = 36 pcs at 2.00 per piece
	doc.AddLine(productID, decimal.NewFromInt(3), "box", decimal.NewFromInt(24))

	set, err := doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)

	movements := set.Stock()
	require.Len(t, movements, 1)

	m := movements[0]
	assert.Equal(t, entity.MovementTypeReceipt, m.MovementType)
	assert.Equal(t, types.NewQuantityFromFloat64(36), m.Quantity)
	assert.True(t, m.UnitCost.Equal(decimal.NewFromInt(2)), "got %s", m.UnitCost)
	assert.True(t, m.Amount.Equal(decimal.NewFromInt(72)), "got %s", m.Amount)
}

func TestReceipt_Validate_RejectsNegativePrice(t *testing.T) {
	doc := NewReceipt(id.New())
	doc.AddLine(id.New(), decimal.NewFromInt(1), "", decimal.NewFromInt(-3))

	require.Error(t, doc.Validate(context.Background()))
}
