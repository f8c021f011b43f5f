package warehouse

import (
	"context"
	"fmt"
	"time"

	"invetra/internal/core/id"
	"invetra/internal/core/numerator"
	"invetra/internal/core/tx"
	"invetra/internal/domain"
)

// Service provides business logic for Warehouse catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Warehouse] // Embedded for delegation
	repo                               Repository
	numerator                          numerator.Generator
}

// NewService creates a new Warehouse service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator numerator.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "warehouse",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and default flag.
func (s *Service) prepareForCreate(ctx context.Context, wh *Warehouse) error {
	// Generate code if not provided
	if wh.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("WH"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		wh.Code = code
	}

	// If setting as default, clear other defaults
	if wh.IsDefault {
		if err := s.clearDefault(ctx); err != nil {
			return err
		}
	}

	return nil
}

// prepareForUpdate handles default flag.
func (s *Service) prepareForUpdate(ctx context.Context, wh *Warehouse) error {
	if wh.IsDefault {
		if err := s.clearDefault(ctx); err != nil {
			return err
		}
	}

	return nil
}

// --- Entity-specific methods ---

// clearDefault clears the default flag on every warehouse.
func (s *Service) clearDefault(ctx context.Context) error {
	return s.repo.ClearDefault(ctx)
}

// AllowNegativeStock implements the register's negative stock policy:
// the per-warehouse flag decides whether expenses may push a balance
// below zero.
func (s *Service) AllowNegativeStock(ctx context.Context, warehouseID id.ID) (bool, error) {
	wh, err := s.repo.GetByID(ctx, warehouseID)
	if err != nil {
		return false, err
	}
	return wh.AllowNegativeStock, nil
}
