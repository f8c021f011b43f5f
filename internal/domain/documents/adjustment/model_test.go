package adjustment

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/types"
	"invetra/internal/domain/posting"
	"invetra/internal/domain/uom"
)

type fakeResolver struct {
	units    map[id.ID]*uom.UnitSet
	balances map[id.ID]types.Quantity
}

func (r *fakeResolver) ProductInfo(_ context.Context, productID id.ID) (posting.ProductInfo, error) {
	units, ok := r.units[productID]
	if !ok {
		return posting.ProductInfo{}, apperror.NewNotFound("product", productID.String())
	}
	return posting.ProductInfo{Units: units, StandardCost: decimal.NewFromInt(5)}, nil
}

func (r *fakeResolver) BalanceForUpdate(_ context.Context, _, productID id.ID) (entity.StockBalance, error) {
	return entity.StockBalance{
		ProductID: productID,
		Quantity:  r.balances[productID],
	}, nil
}

func newFakeResolver(t *testing.T, productID id.ID, balance types.Quantity) *fakeResolver {
	t.Helper()
	units, err := uom.NewUnitSet(productID.String(), "pcs", []uom.Unit{
		{Name: "box", Factor: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	return &fakeResolver{
		units:    map[id.ID]*uom.UnitSet{productID: units},
		balances: map[id.ID]types.Quantity{productID: balance},
	}
}

func TestAdjustment_Validate(t *testing.T) {
	productID := id.New()

	t.Run("valid", func(t *testing.T) {
		doc := NewAdjustment(id.New())
		doc.AddLine(productID, KindRelative, decimal.NewFromInt(-3), "")
		require.NoError(t, doc.Validate(context.Background()))
	})

	t.Run("zero relative delta", func(t *testing.T) {
		doc := NewAdjustment(id.New())
		doc.AddLine(productID, KindRelative, decimal.Zero, "")
		require.Error(t, doc.Validate(context.Background()))
	})

	t.Run("negative counted quantity", func(t *testing.T) {
		doc := NewAdjustment(id.New())
		doc.AddLine(productID, KindAbsolute, decimal.NewFromInt(-1), "")
		require.Error(t, doc.Validate(context.Background()))
	})

	t.Run("duplicate product", func(t *testing.T) {
		doc := NewAdjustment(id.New())
		doc.AddLine(productID, KindRelative, decimal.NewFromInt(2), "")
		doc.AddLine(productID, KindAbsolute, decimal.NewFromInt(7), "")
		require.Error(t, doc.Validate(context.Background()))
	})

	t.Run("no lines", func(t *testing.T) {
		doc := NewAdjustment(id.New())
		require.Error(t, doc.Validate(context.Background()))
	})
}

func TestAdjustment_GenerateMovements_Relative(t *testing.T) {
	productID := id.New()
	res := newFakeResolver(t, productID, types.NewQuantityFromFloat64(100))

	doc := NewAdjustment(id.New())
	doc.AddLine(productID, KindRelative, decimal.NewFromInt(-3), "")

	set, err := doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)

	movements := set.Stock()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movements[0].MovementType)
	assert.Equal(t, entity.RecordTypeExpense, movements[0].RecordType)
	assert.Equal(t, types.NewQuantityFromFloat64(3), movements[0].Quantity)
}

func TestAdjustment_GenerateMovements_AbsoluteUsesLockedBalance(t *testing.T) {
	productID := id.New()
	res := newFakeResolver(t, productID, types.NewQuantityFromFloat64(80))

	doc := NewAdjustment(id.New())
	doc.AddLine(productID, KindAbsolute, decimal.NewFromInt(95), "")

	set, err := doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)

	movements := set.Stock()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.RecordTypeReceipt, movements[0].RecordType)
	assert.Equal(t, types.NewQuantityFromFloat64(15), movements[0].Quantity)

	// Balance moved between entry and posting: the delta follows the balance
	res.balances[productID] = types.NewQuantityFromFloat64(98)
	set, err = doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)

	movements = set.Stock()
	require.Len(t, movements, 1)
	assert.Equal(t, entity.RecordTypeExpense, movements[0].RecordType)
	assert.Equal(t, types.NewQuantityFromFloat64(3), movements[0].Quantity)
}

func TestAdjustment_GenerateMovements_ZeroDeltaSuppressed(t *testing.T) {
	productID := id.New()
	res := newFakeResolver(t, productID, types.NewQuantityFromFloat64(50))

	doc := NewAdjustment(id.New())
	doc.AddLine(productID, KindAbsolute, decimal.NewFromInt(50), "")

	set, err := doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestAdjustment_GenerateMovements_AlternateUnit(t *testing.T) {
	productID := id.New()
	res := newFakeResolver(t, productID, 0)

	doc := NewAdjustment(id.New())
	doc.AddLine(productID, KindRelative, decimal.NewFromInt(2), "Box")

	set, err := doc.GenerateMovements(context.Background(), res)
	require.NoError(t, err)

	movements := set.Stock()
	require.Len(t, movements, 1)
	assert.Equal(t, types.NewQuantityFromFloat64(20), movements[0].Quantity)
}

func TestAdjustment_GenerateMovements_UnknownUnit(t *testing.T) {
	productID := id.New()
	res := newFakeResolver(t, productID, 0)

	doc := NewAdjustment(id.New())
	doc.AddLine(productID, KindRelative, decimal.NewFromInt(2), "pallet")

	_, err := doc.GenerateMovements(context.Background(), res)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnknownUnit, appErr.Code)
}
