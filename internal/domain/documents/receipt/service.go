// Package receipt provides the Receipt document service.
package receipt

import (
	"context"
	"fmt"
	"time"

	"invetra/internal/core/id"
	"invetra/internal/core/numerator"
	"invetra/internal/core/tx"
	"invetra/internal/domain"
	"invetra/internal/domain/posting"
	"invetra/pkg/logger"
)

// Service provides business operations for receipt documents.
type Service struct {
	repo          Repository
	postingEngine *posting.Engine
	numerator     numerator.Generator
	txManager     tx.Manager
	hooks         *domain.HookRegistry[*Receipt]
}

// NewService creates a new receipt service.
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
		hooks:         domain.NewHookRegistry[*Receipt](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Receipt] {
	return s.hooks
}

// Create creates a new receipt document.
func (s *Service) Create(ctx context.Context, doc *Receipt) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		number, err := s.generateNumber(ctx)
		if err != nil {
			return err
		}
		doc.Number = number
	}

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

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "receipt created",
		"id", doc.ID,
		"number", doc.Number)

	return nil
}

// GetByID retrieves a receipt with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Receipt, error) {
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

// Update updates a receipt document. Only drafts are editable.
func (s *Service) Update(ctx context.Context, doc *Receipt) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

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

// Delete soft-deletes a draft receipt.
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

// Cancel reverses a posted receipt. Cancelled is terminal.
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

// Copy creates a new draft with the source document's lines.
func (s *Service) Copy(ctx context.Context, docID id.ID) (*Receipt, error) {
	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	doc := NewReceipt(src.WarehouseID)
	doc.SupplierRef = src.SupplierRef
	doc.Comment = src.Comment
	for _, line := range src.Lines {
		doc.AddLine(line.ProductID, line.Quantity, line.Unit, line.UnitPrice)
	}

	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves receipts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error) {
	return s.repo.List(ctx, filter)
}

// getForPosting loads the document with a row lock and its lines.
func (s *Service) getForPosting(ctx context.Context, docID id.ID) (*Receipt, error) {
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
