// Package adjustment provides the Adjustment document repository contract.
package adjustment

import (
	"context"
	"time"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
)

// Repository defines operations for adjustment documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Adjustment) error
	GetByID(ctx context.Context, docID id.ID) (*Adjustment, error)
	GetByNumber(ctx context.Context, number string) (*Adjustment, error)
	Update(ctx context.Context, doc *Adjustment) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]AdjustmentLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []AdjustmentLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Adjustment], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Adjustment, error)
}

// ListFilter for filtering adjustments.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	WarehouseID *id.ID
	Status      *entity.DocumentStatus
	DateFrom    *time.Time
	DateTo      *time.Time
}
