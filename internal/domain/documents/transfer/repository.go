// Package transfer provides the Transfer document repository contract.
package transfer

import (
	"context"
	"time"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
)

// Repository defines operations for transfer documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Transfer) error
	GetByID(ctx context.Context, docID id.ID) (*Transfer, error)
	GetByNumber(ctx context.Context, number string) (*Transfer, error)
	Update(ctx context.Context, doc *Transfer) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]TransferLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []TransferLine) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transfer], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Transfer, error)
}

// ListFilter for filtering transfers.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	SourceWarehouseID *id.ID
	DestWarehouseID   *id.ID
	Status            *entity.DocumentStatus
	DateFrom          *time.Time
	DateTo            *time.Time
}
