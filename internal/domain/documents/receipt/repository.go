// Package receipt provides the Receipt document repository contract.
package receipt

import (
	"context"
	"time"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
)

// Repository defines operations for receipt documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Receipt) error
	GetByID(ctx context.Context, docID id.ID) (*Receipt, error)
	GetByNumber(ctx context.Context, number string) (*Receipt, error)
	Update(ctx context.Context, doc *Receipt) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]ReceiptLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []ReceiptLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Receipt, error)
}

// ListFilter for filtering receipts.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	WarehouseID *id.ID
	Status      *entity.DocumentStatus
	DateFrom    *time.Time
	DateTo      *time.Time
}
