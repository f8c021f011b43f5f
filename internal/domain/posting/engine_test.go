package posting

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/types"
)

// passthroughTxManager runs the callback without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRecorder struct {
	recorded []entity.StockMovement
	reversed []id.ID
	failWith error
}

func (r *fakeRecorder) RecordMovements(_ context.Context, movements []entity.StockMovement) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.recorded = append(r.recorded, movements...)
	return nil
}

func (r *fakeRecorder) ReverseMovements(_ context.Context, recorderID id.ID, _ int) error {
	r.reversed = append(r.reversed, recorderID)
	return nil
}

type nilResolver struct{}

func (nilResolver) ProductInfo(context.Context, id.ID) (ProductInfo, error) {
	return ProductInfo{StandardCost: decimal.Zero}, nil
}

func (nilResolver) BalanceForUpdate(context.Context, id.ID, id.ID) (entity.StockBalance, error) {
	return entity.StockBalance{}, nil
}

// testDoc is a minimal Postable emitting one receipt movement per post.
type testDoc struct {
	entity.Document
	warehouseID id.ID
	productID   id.ID
}

func newTestDoc() *testDoc {
	return &testDoc{
		Document:    entity.NewDocument(),
		warehouseID: id.New(),
		productID:   id.New(),
	}
}

func (d *testDoc) GetDocumentType() string { return "TestDoc" }

func (d *testDoc) GenerateMovements(_ context.Context, _ Resolver) (*MovementSet, error) {
	set := NewMovementSet()
	set.AddStock(entity.NewStockMovement(
		d.ID, d.GetDocumentType(), d.PostedVersion+1, d.Date,
		entity.MovementTypeReceipt, entity.RecordTypeReceipt,
		d.warehouseID, d.productID,
		types.NewQuantityFromFloat64(1), decimal.NewFromInt(10),
	))
	return set, nil
}

func TestEngine_Post(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := NewEngine(recorder, nilResolver{}, passthroughTxManager{})
	doc := newTestDoc()

	updated := false
	err := engine.Post(context.Background(), doc, func(ctx context.Context) error {
		updated = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, updated)
	assert.True(t, doc.IsPosted())
	assert.Equal(t, 1, doc.GetPostedVersion())
	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, doc.ID, recorder.recorded[0].RecorderID)
}

func TestEngine_Post_RejectsNonDraft(t *testing.T) {
	engine := NewEngine(&fakeRecorder{}, nilResolver{}, passthroughTxManager{})
	doc := newTestDoc()
	doc.MarkPosted("tester")

	err := engine.Post(context.Background(), doc, func(ctx context.Context) error { return nil })
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestEngine_Post_LedgerFailureLeavesDocumentDraft(t *testing.T) {
	recorder := &fakeRecorder{failWith: errors.New("boom")}
	engine := NewEngine(recorder, nilResolver{}, passthroughTxManager{})
	doc := newTestDoc()

	err := engine.Post(context.Background(), doc, func(ctx context.Context) error {
		t.Fatal("updateDoc must not run when the ledger write fails")
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, entity.StatusDraft, doc.GetStatus())
}

type fakePublisher struct {
	eventTypes []string
	aggregates []id.ID
}

func (p *fakePublisher) PublishEvent(_ context.Context, _ string, aggregateID id.ID, eventType string, _ any) error {
	p.eventTypes = append(p.eventTypes, eventType)
	p.aggregates = append(p.aggregates, aggregateID)
	return nil
}

func TestEngine_PublishesLifecycleEvents(t *testing.T) {
	publisher := &fakePublisher{}
	engine := NewEngine(&fakeRecorder{}, nilResolver{}, passthroughTxManager{}).WithEvents(publisher)
	doc := newTestDoc()

	noop := func(ctx context.Context) error { return nil }

	require.NoError(t, engine.Post(context.Background(), doc, noop))
	require.NoError(t, engine.Cancel(context.Background(), doc, noop))

	assert.Equal(t, []string{"TestDocPosted", "TestDocCancelled"}, publisher.eventTypes)
	assert.Equal(t, []id.ID{doc.ID, doc.ID}, publisher.aggregates)
}

func TestEngine_Cancel(t *testing.T) {
	recorder := &fakeRecorder{}
	engine := NewEngine(recorder, nilResolver{}, passthroughTxManager{})
	doc := newTestDoc()
	doc.MarkPosted("tester")

	err := engine.Cancel(context.Background(), doc, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, entity.StatusCancelled, doc.GetStatus())
	require.Len(t, recorder.reversed, 1)
	assert.Equal(t, doc.ID, recorder.reversed[0])
}

func TestEngine_Cancel_RejectsDraft(t *testing.T) {
	engine := NewEngine(&fakeRecorder{}, nilResolver{}, passthroughTxManager{})
	doc := newTestDoc()

	err := engine.Cancel(context.Background(), doc, func(ctx context.Context) error { return nil })
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}
