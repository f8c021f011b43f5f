package entity

import (
	"context"
	"time"

	"invetra/internal/core/apperror"
	"invetra/internal/core/id"
)

// DocumentStatus is the lifecycle state shared by all document types.
//
// draft -> posted -> cancelled. Drafts may also be cancelled directly
// (no ledger effect). Cancelled is terminal.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPosted    DocumentStatus = "posted"
	StatusCancelled DocumentStatus = "cancelled"
)

// Document is the base type for business transactions.
// Examples: Receipt, Issue, Adjustment, Transfer.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+period)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state (draft/posted/cancelled)
	Status DocumentStatus `db:"status" json:"status"`

	// PostedVersion tracks posting iterations for movement reconciliation
	// Incremented each time document is posted/modified while posted
	PostedVersion int `db:"posted_version" json:"postedVersion"`

	// PostedAt is when the document was posted (nil for drafts)
	PostedAt *time.Time `db:"posted_at" json:"postedAt,omitempty"`

	// PostedBy is the actor that posted the document
	PostedBy string `db:"posted_by" json:"postedBy,omitempty"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new draft Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       StatusDraft,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// CanModify checks if document can be modified.
// Only drafts are editable; posted documents must be cancelled instead.
func (d *Document) CanModify() error {
	if d.Status != StatusDraft {
		return apperror.NewInvalidState("document", d.ID.String(), string(d.Status), "modify")
	}
	return nil
}

// MarkPosted sets posted status and increments posting version.
func (d *Document) MarkPosted(actor string) {
	now := time.Now().UTC()
	d.Status = StatusPosted
	d.PostedVersion++
	d.PostedAt = &now
	d.PostedBy = actor
	d.Touch()
}

// MarkCancelled moves the document to the terminal cancelled status.
func (d *Document) MarkCancelled() {
	d.Status = StatusCancelled
	d.Touch()
}

// --- Postable interface default implementations ---
// These methods provide default implementations for the Postable interface.
// Document-specific types only need to implement GetDocumentType() and GenerateMovements().

// GetID returns the document ID (Postable interface).
func (d *Document) GetID() id.ID {
	return d.ID
}

// GetPostedVersion returns the current posting version (Postable interface).
func (d *Document) GetPostedVersion() int {
	return d.PostedVersion
}

// IsPosted returns true if document is currently posted (Postable interface).
func (d *Document) IsPosted() bool {
	return d.Status == StatusPosted
}

// IsCancelled returns true for the terminal status.
func (d *Document) IsCancelled() bool {
	return d.Status == StatusCancelled
}

// GetStatus returns the lifecycle status (Postable interface).
func (d *Document) GetStatus() DocumentStatus {
	return d.Status
}

// CanPost validates if document can be posted (Postable interface default).
// Override in specific document types if additional validation is needed.
func (d *Document) CanPost(ctx context.Context) error {
	if d.Status != StatusDraft {
		return apperror.NewInvalidState("document", d.ID.String(), string(d.Status), "post")
	}
	if d.DeletionMark {
		return apperror.NewInvalidState("document", d.ID.String(), "deleted", "post")
	}
	return d.Validate(ctx)
}
