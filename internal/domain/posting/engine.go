// Package posting provides the document posting engine.
//
// Posting turns a draft document into ledger fact: movements are generated,
// recorded in the stock register, and the document is flipped to posted,
// all inside one transaction. Cancellation reverses the movements and moves
// the document to its terminal status the same way.
package posting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	appctx "invetra/internal/core/context"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/tx"
	"invetra/internal/domain/uom"
	"invetra/pkg/logger"
)

// Postable is implemented by documents that produce register movements.
// entity.Document provides defaults for everything except GetDocumentType
// and GenerateMovements.
type Postable interface {
	GetID() id.ID
	GetDocumentType() string
	GetPostedVersion() int
	GetStatus() entity.DocumentStatus
	IsPosted() bool

	// CanPost validates document state and content before posting
	CanPost(ctx context.Context) error

	// MarkPosted/MarkCancelled flip lifecycle status
	MarkPosted(actor string)
	MarkCancelled()

	// GenerateMovements builds the movement set for the next posted version
	GenerateMovements(ctx context.Context, res Resolver) (*MovementSet, error)
}

// ProductInfo is what movement generation needs to know about a product.
type ProductInfo struct {
	// Units converts entered quantities and costs to the base unit
	Units *uom.UnitSet

	// StandardCost seeds the average cost when a product has no cost history
	StandardCost decimal.Decimal
}

// Resolver supplies reference data and locked balances to GenerateMovements.
// Implementations read within the posting transaction, so balance reads
// hold their row locks until commit.
type Resolver interface {
	// ProductInfo loads unit definitions and costing defaults for a product
	ProductInfo(ctx context.Context, productID id.ID) (ProductInfo, error)

	// BalanceForUpdate reads the current stock level under a row lock.
	// Absolute adjustments compute their delta against this value, never
	// against a snapshot taken while the document was a draft.
	BalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error)
}

// StockRecorder is the slice of the stock register service the engine uses.
type StockRecorder interface {
	RecordMovements(ctx context.Context, movements []entity.StockMovement) error
	ReverseMovements(ctx context.Context, recorderID id.ID, version int) error
}

// EventPublisher records integration events inside the posting transaction.
// The transactional outbox implements it; a nil publisher disables events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, aggregateType string, aggregateID id.ID, eventType string, payload any) error
}

// Engine posts and cancels documents.
type Engine struct {
	stock     StockRecorder
	resolver  Resolver
	txManager tx.Manager
	events    EventPublisher
}

// NewEngine creates a posting engine.
func NewEngine(stock StockRecorder, resolver Resolver, txManager tx.Manager) *Engine {
	return &Engine{
		stock:     stock,
		resolver:  resolver,
		txManager: txManager,
	}
}

// WithEvents attaches an event publisher. Posted and cancelled documents
// then emit outbox events in the same transaction as the ledger writes.
func (e *Engine) WithEvents(events EventPublisher) *Engine {
	e.events = events
	return e
}

func (e *Engine) publish(ctx context.Context, doc Postable, eventType string, payload any) error {
	if e.events == nil {
		return nil
	}
	return e.events.PublishEvent(ctx, doc.GetDocumentType(), doc.GetID(), eventType, payload)
}

// Post records document movements and marks the document posted, atomically.
// updateDoc persists the document with an optimistic version check; when two
// requests post the same draft concurrently, the slower one fails there and
// the whole transaction rolls back, leaving exactly one set of movements.
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	return e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := doc.CanPost(ctx); err != nil {
			return err
		}

		movements, err := doc.GenerateMovements(ctx, e.resolver)
		if err != nil {
			return fmt.Errorf("generate movements: %w", err)
		}

		if err := e.stock.RecordMovements(ctx, movements.Stock()); err != nil {
			return err
		}

		doc.MarkPosted(appctx.GetUserID(ctx))

		if err := updateDoc(ctx); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		err = e.publish(ctx, doc, doc.GetDocumentType()+"Posted", map[string]any{
			"posted_version": doc.GetPostedVersion(),
			"movements":      len(movements.Stock()),
		})
		if err != nil {
			return fmt.Errorf("publish event: %w", err)
		}

		logger.Info(ctx, "document posted",
			"type", doc.GetDocumentType(),
			"id", doc.GetID(),
			"posted_version", doc.GetPostedVersion(),
			"movements", len(movements.Stock()),
		)

		return nil
	})
}

func errCancelState(doc Postable) error {
	return apperror.NewInvalidState(
		doc.GetDocumentType(), doc.GetID().String(), string(doc.GetStatus()), "cancel")
}

// Cancel appends compensating movements for a posted document and marks it
// cancelled, atomically. Cancelled is terminal. The original movements stay
// in the log; the reversing rows carry the next recorder version.
func (e *Engine) Cancel(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	return e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if !doc.IsPosted() {
			return errCancelState(doc)
		}

		if err := e.stock.ReverseMovements(ctx, doc.GetID(), doc.GetPostedVersion()+1); err != nil {
			return err
		}

		doc.MarkCancelled()

		if err := updateDoc(ctx); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		err := e.publish(ctx, doc, doc.GetDocumentType()+"Cancelled", map[string]any{
			"posted_version": doc.GetPostedVersion(),
		})
		if err != nil {
			return fmt.Errorf("publish event: %w", err)
		}

		logger.Info(ctx, "document cancelled",
			"type", doc.GetDocumentType(),
			"id", doc.GetID(),
		)

		return nil
	})
}
