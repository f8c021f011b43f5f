package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/types"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	balances  map[string]entity.StockBalance
	movements []entity.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{balances: make(map[string]entity.StockBalance)}
}

func balKey(warehouseID, productID id.ID) string {
	return warehouseID.String() + "/" + productID.String()
}

func (r *fakeRepo) CreateMovements(_ context.Context, movements []entity.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *fakeRepo) GetMovementsByRecorder(_ context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBalance(_ context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	if b, ok := r.balances[balKey(warehouseID, productID)]; ok {
		return b, nil
	}
	return entity.StockBalance{WarehouseID: warehouseID, ProductID: productID}, nil
}

func (r *fakeRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return r.GetBalance(ctx, warehouseID, productID)
}

func (r *fakeRepo) UpsertBalance(_ context.Context, balance entity.StockBalance) error {
	r.balances[balKey(balance.WarehouseID, balance.ProductID)] = balance
	return nil
}

func (r *fakeRepo) GetBalancesByWarehouse(_ context.Context, warehouseID id.ID, _ BalanceFilter) ([]entity.StockBalance, error) {
	var out []entity.StockBalance
	for _, b := range r.balances {
		if b.WarehouseID == warehouseID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBalancesByProduct(_ context.Context, productID id.ID) ([]entity.StockBalance, error) {
	var out []entity.StockBalance
	for _, b := range r.balances {
		if b.ProductID == productID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBalancesAtDate(context.Context, id.ID, id.ID, time.Time) (types.Quantity, error) {
	return 0, nil
}

func (r *fakeRepo) GetMovementHistory(context.Context, id.ID, MovementFilter) ([]entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeRepo) GetTurnover(context.Context, TurnoverFilter) (Turnover, error) {
	return Turnover{}, nil
}

func (r *fakeRepo) RecalculateBalances(context.Context, *id.ID, *id.ID) error {
	return nil
}

// fakePolicy is a fixed-answer NegativeStockPolicy.
type fakePolicy struct{ allow bool }

func (p fakePolicy) AllowNegativeStock(context.Context, id.ID) (bool, error) {
	return p.allow, nil
}

func newMovement(recorder id.ID, mt entity.MovementType, rt entity.RecordType, wh, prod id.ID, q float64, cost string) entity.StockMovement {
	return entity.NewStockMovement(
		recorder, "Test", 1, time.Now().UTC(), mt, rt, wh, prod,
		types.NewQuantityFromFloat64(q), dec(cost),
	)
}

func TestRecordMovements_ReceiptSetsBalanceAndAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod, recorder := id.New(), id.New(), id.New()

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{
		newMovement(recorder, entity.MovementTypeReceipt, entity.RecordTypeReceipt, wh, prod, 10, "2.5"),
	})
	require.NoError(t, err)

	bal := repo.balances[balKey(wh, prod)]
	assert.Equal(t, qty(10), bal.Quantity)
	assert.True(t, bal.AverageCost.Equal(dec("2.5")), bal.AverageCost.String())

	require.Len(t, repo.movements, 1)
	assert.True(t, repo.movements[0].Amount.Equal(dec("25")), repo.movements[0].Amount.String())
}

func TestRecordMovements_ReceiptBlendsAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod := id.New(), id.New()

	ctx := context.Background()
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, wh, prod, 10, "2"),
	}))
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, wh, prod, 5, "5"),
	}))

	bal := repo.balances[balKey(wh, prod)]
	assert.Equal(t, qty(15), bal.Quantity)
	assert.True(t, bal.AverageCost.Equal(dec("3")), bal.AverageCost.String())
}

func TestRecordMovements_ExpenseValuedAtAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod := id.New(), id.New()
	ctx := context.Background()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, wh, prod, 10, "4"),
	}))

	issue := id.New()
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(issue, entity.MovementTypeIssue, entity.RecordTypeExpense, wh, prod, 6, "0"),
	}))

	bal := repo.balances[balKey(wh, prod)]
	assert.Equal(t, qty(4), bal.Quantity)
	// Deductions never move the average
	assert.True(t, bal.AverageCost.Equal(dec("4")), bal.AverageCost.String())

	movs, _ := repo.GetMovementsByRecorder(ctx, issue)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].UnitCost.Equal(dec("4")), movs[0].UnitCost.String())
	assert.True(t, movs[0].Amount.Equal(dec("24")), movs[0].Amount.String())
}

func TestRecordMovements_InsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{allow: false})
	wh, prod := id.New(), id.New()

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeIssue, entity.RecordTypeExpense, wh, prod, 3, "0"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, wh.String(), appErr.Details["warehouse_id"])

	// Nothing written on failure
	assert.Empty(t, repo.movements)
}

func TestRecordMovements_NegativeStockOverride(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{allow: true})
	wh, prod := id.New(), id.New()

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeIssue, entity.RecordTypeExpense, wh, prod, 3, "0"),
	})
	require.NoError(t, err)

	bal := repo.balances[balKey(wh, prod)]
	assert.Equal(t, qty(-3), bal.Quantity)
}

func TestRecordMovements_TransferInInheritsOutCost(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	src, dst, prod := id.New(), id.New(), id.New()
	ctx := context.Background()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, src, prod, 20, "1.5"),
	}))

	transfer := id.New()
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(transfer, entity.MovementTypeTransferOut, entity.RecordTypeExpense, src, prod, 8, "0"),
		newMovement(transfer, entity.MovementTypeTransferIn, entity.RecordTypeReceipt, dst, prod, 8, "0"),
	}))

	srcBal := repo.balances[balKey(src, prod)]
	dstBal := repo.balances[balKey(dst, prod)]
	assert.Equal(t, qty(12), srcBal.Quantity)
	assert.Equal(t, qty(8), dstBal.Quantity)
	// Value travels with the goods at the source average
	assert.True(t, dstBal.AverageCost.Equal(dec("1.5")), dstBal.AverageCost.String())
	assert.True(t, srcBal.AverageCost.Equal(dec("1.5")))
}

func TestRecordMovements_AdjustmentIncreaseAtCurrentAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod := id.New(), id.New()
	ctx := context.Background()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, wh, prod, 10, "2"),
	}))

	// Surplus found during a count: valued at the current average, even
	// though the document supplied a different seed cost.
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeAdjustment, entity.RecordTypeReceipt, wh, prod, 5, "99"),
	}))

	bal := repo.balances[balKey(wh, prod)]
	assert.Equal(t, qty(15), bal.Quantity)
	assert.True(t, bal.AverageCost.Equal(dec("2")), bal.AverageCost.String())
}

func TestRecordMovements_AdjustmentSeedsEmptyAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod := id.New(), id.New()

	// No cost history: the supplied standard cost seeds the average.
	require.NoError(t, svc.RecordMovements(context.Background(), []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeAdjustment, entity.RecordTypeReceipt, wh, prod, 5, "3.25"),
	}))

	bal := repo.balances[balKey(wh, prod)]
	assert.True(t, bal.AverageCost.Equal(dec("3.25")), bal.AverageCost.String())
}

func TestRecordMovements_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newFakeRepo(), fakePolicy{})

	err := svc.RecordMovements(context.Background(), []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, id.New(), id.New(), 0, "1"),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestReverseMovements_RestoresBalances(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod := id.New(), id.New()
	ctx := context.Background()

	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(id.New(), entity.MovementTypeReceipt, entity.RecordTypeReceipt, wh, prod, 10, "2"),
	}))

	issue := id.New()
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(issue, entity.MovementTypeIssue, entity.RecordTypeExpense, wh, prod, 4, "0"),
	}))
	require.Equal(t, qty(6), repo.balances[balKey(wh, prod)].Quantity)

	require.NoError(t, svc.ReverseMovements(ctx, issue, 2))

	bal := repo.balances[balKey(wh, prod)]
	assert.Equal(t, qty(10), bal.Quantity)
	assert.True(t, bal.AverageCost.Equal(dec("2")), bal.AverageCost.String())

	// The original expense stays in the log; the reversal is appended as a
	// receipt at the recorded cost under the next recorder version.
	movs, _ := repo.GetMovementsByRecorder(ctx, issue)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.RecordTypeExpense, movs[0].RecordType)
	assert.Equal(t, 1, movs[0].RecorderVersion)
	assert.Equal(t, entity.RecordTypeReceipt, movs[1].RecordType)
	assert.Equal(t, 2, movs[1].RecorderVersion)
	assert.Equal(t, qty(4), movs[1].Quantity)
	assert.True(t, movs[1].UnitCost.Equal(dec("2")), movs[1].UnitCost.String())
}

func TestReverseMovements_KeepsReceiptRowsAndZeroesBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakePolicy{})
	wh, prod := id.New(), id.New()
	ctx := context.Background()

	receipt := id.New()
	require.NoError(t, svc.RecordMovements(ctx, []entity.StockMovement{
		newMovement(receipt, entity.MovementTypeAdjustment, entity.RecordTypeReceipt, wh, prod, 5, "3"),
	}))

	require.NoError(t, svc.ReverseMovements(ctx, receipt, 2))

	assert.Equal(t, qty(0), repo.balances[balKey(wh, prod)].Quantity)

	movs, _ := repo.GetMovementsByRecorder(ctx, receipt)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.RecordTypeReceipt, movs[0].RecordType)
	assert.Equal(t, entity.RecordTypeExpense, movs[1].RecordType)
	assert.True(t, movs[1].UnitCost.Equal(dec("3")), movs[1].UnitCost.String())
}
