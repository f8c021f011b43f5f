// Package issue provides the Issue document repository contract.
package issue

import (
	"context"
	"time"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
)

// Repository defines operations for issue documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Issue) error
	GetByID(ctx context.Context, docID id.ID) (*Issue, error)
	GetByNumber(ctx context.Context, number string) (*Issue, error)
	Update(ctx context.Context, doc *Issue) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]IssueLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []IssueLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Issue], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Issue, error)
}

// ListFilter for filtering issues.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	WarehouseID *id.ID
	Status      *entity.DocumentStatus
	DateFrom    *time.Time
	DateTo      *time.Time
}
