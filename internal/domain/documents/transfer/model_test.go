package transfer

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

func TestTransfer_Validate(t *testing.T) {
	source, dest := id.New(), id.New()
	productID := id.New()

	t.Run("valid", func(t *testing.T) {
		doc := NewTransfer(source, dest)
		doc.AddLine(productID, decimal.NewFromInt(5), "")
		require.NoError(t, doc.Validate(context.Background()))
	})

	t.Run("same warehouse", func(t *testing.T) {
		doc := NewTransfer(source, source)
		doc.AddLine(productID, decimal.NewFromInt(5), "")
		require.Error(t, doc.Validate(context.Background()))
	})

	t.Run("duplicate product", func(t *testing.T) {
		doc := NewTransfer(source, dest)
		doc.AddLine(productID, decimal.NewFromInt(5), "")
		doc.AddLine(productID, decimal.NewFromInt(2), "")
		require.Error(t, doc.Validate(context.Background()))
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		doc := NewTransfer(source, dest)
		doc.AddLine(productID, decimal.Zero, "")
		require.Error(t, doc.Validate(context.Background()))
	})
}

func TestTransfer_GenerateMovements_TwoLegsPerLine(t *testing.T) {
	source, dest := id.New(), id.New()
	productID := id.New()

	units, err := uom.NewUnitSet(productID.String(), "pcs", []uom.Unit{
		{Name: "box", Factor: decimal.NewFromInt(6)},
	})
	require.NoError(t, err)
	res := &fakeResolver{units: map[id.ID]*uom.UnitSet{productID: units}}

	doc := NewTransfer(source, dest)
	doc.AddLine(productID, decimal.NewFromInt(2), "box")

	set, err := doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)

	movements := set.Stock()
	require.Len(t, movements, 2)

	out, in := movements[0], movements[1]
	assert.Equal(t, entity.MovementTypeTransferOut, out.MovementType)
	assert.Equal(t, entity.RecordTypeExpense, out.RecordType)
	assert.Equal(t, source, out.WarehouseID)

	assert.Equal(t, entity.MovementTypeTransferIn, in.MovementType)
	assert.Equal(t, entity.RecordTypeReceipt, in.RecordType)
	assert.Equal(t, dest, in.WarehouseID)

	// Both legs carry the same base quantity
	assert.Equal(t, types.NewQuantityFromFloat64(12), out.Quantity)
	assert.Equal(t, types.NewQuantityFromFloat64(12), in.Quantity)
}
