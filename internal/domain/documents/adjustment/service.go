// Package adjustment provides the Adjustment document service.
package adjustment

import (
	"context"
	"fmt"
	"time"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/numerator"
	"invetra/internal/core/tx"
	"invetra/internal/domain"
	"invetra/internal/domain/posting"
	"invetra/pkg/logger"
)

// MovementReader loads the movements a posted document recorded.
type MovementReader interface {
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)
}

// Service provides business operations for adjustment documents.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     numerator.Generator
	txManager     tx.Manager
	movements     MovementReader
	hooks         *domain.HookRegistry[*Adjustment]
}

// NewService creates a new adjustment service.
func NewService(
	repo Repository,
	postingEngine *posting.Engine,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:          repo,
		postingEngine: postingEngine,
		numerator:     numerator,
		txManager:     txManager,
		hooks:         domain.NewHookRegistry[*Adjustment](),
	}
}

// WithMovementReader enables Reverse by giving the service access to the
// movement log.
func (s *Service) WithMovementReader(movements MovementReader) *Service {
	s.movements = movements
	return s
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Adjustment] {
	return s.hooks
}

// Create creates a new adjustment document.
func (s *Service) Create(ctx context.Context, doc *Adjustment) error {
	// Run before-create hooks (for enrichment, validation, etc.)
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	// Validate
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Generate number if empty
	if doc.Number == "" {
		number, err := s.generateNumber(ctx)
		if err != nil {
			return err
		}
		doc.Number = number
	}

	// Create in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Run after-create hooks
	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "adjustment created",
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves an adjustment with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates an adjustment document. Only drafts are editable.
func (s *Service) Update(ctx context.Context, doc *Adjustment) error {
	// Run before-update hooks
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	// Check if can modify
	if err := doc.CanModify(); err != nil {
		return err
	}

	// Validate
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Update in transaction
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
}

// Delete soft-deletes a draft adjustment.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// Post records document movements to the stock register.
// The document row is locked first, so concurrent posts of the same draft
// serialize and the loser fails the draft-status check.
func (s *Service) Post(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.getForPosting(ctx, docID)
		if err != nil {
			return err
		}

		return s.postingEngine.Post(ctx, doc, func(ctx context.Context) error {
			return s.repo.Update(ctx, doc)
		})
	})
}

// Cancel reverses a posted adjustment. Cancelled is terminal.
func (s *Service) Cancel(ctx context.Context, docID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.getForPosting(ctx, docID)
		if err != nil {
			return err
		}

		return s.postingEngine.Cancel(ctx, doc, func(ctx context.Context) error {
			return s.repo.Update(ctx, doc)
		})
	})
}

// Copy creates a new draft with the source document's warehouse and lines.
func (s *Service) Copy(ctx context.Context, docID id.ID) (*Adjustment, error) {
	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	doc := NewAdjustment(src.WarehouseID)
	doc.Reason = src.Reason
	doc.Comment = src.Comment
	for _, line := range src.Lines {
		doc.AddLine(line.ProductID, line.Kind, line.Quantity, line.Unit)
	}

	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Reverse builds a new draft that undoes a posted adjustment's ledger
// effect. Lines come from the recorded movements in base units, so an
// absolute count is reversed by the delta it actually posted, not by
// whatever the level happens to be now. The draft still goes through the
// normal posting flow.
func (s *Service) Reverse(ctx context.Context, docID id.ID) (*Adjustment, error) {
	if s.movements == nil {
		return nil, apperror.NewInternal(fmt.Errorf("movement reader not configured"))
	}

	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !src.IsPosted() {
		return nil, apperror.NewInvalidState(
			src.GetDocumentType(), docID.String(), string(src.Status), "reverse")
	}

	recorded, err := s.movements.GetMovementsByRecorder(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("load movements: %w", err)
	}
	if len(recorded) == 0 {
		return nil, apperror.NewValidation("document has no recorded movements").
			WithDetail("id", docID.String())
	}

	doc := NewAdjustment(src.WarehouseID)
	doc.Reason = "Reversal of " + src.Number
	for _, m := range recorded {
		doc.AddLine(m.ProductID, KindRelative, m.SignedQuantity().Neg().Decimal(), "")
	}

	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves adjustments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Adjustment], error) {
	return s.repo.List(ctx, filter)
}

// getForPosting loads the document with a row lock and its lines.
func (s *Service) getForPosting(ctx context.Context, docID id.ID) (*Adjustment, error) {
	doc, err := s.repo.GetForUpdate(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

func (s *Service) generateNumber(ctx context.Context) (string, error) {
	cfg := numerator.DocumentConfig(NumberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
	if err != nil {
		return "", fmt.Errorf("generate number: %w", err)
	}
	return number, nil
}
