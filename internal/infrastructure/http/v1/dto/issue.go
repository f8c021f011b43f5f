package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/documents/issue"
)

// --- Request DTOs ---

// CreateIssueRequest represents a request to create a goods issue.
type CreateIssueRequest struct {
	Number       string             `json:"number,omitempty"`
	Date         time.Time          `json:"date"`
	WarehouseID  string             `json:"warehouseId" binding:"required"`
	RecipientRef string             `json:"recipientRef,omitempty"`
	Comment      string             `json:"comment,omitempty"`
	Lines        []IssueLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// IssueLineRequest represents a line in create/update request.
type IssueLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateIssueRequest) ToEntity() *issue.Issue {
	warehouseID, _ := id.Parse(r.WarehouseID)

	doc := issue.NewIssue(warehouseID)
	doc.Number = r.Number
	if !r.Date.IsZero() {
		doc.Date = r.Date
	}
	doc.RecipientRef = r.RecipientRef
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, line.Quantity, line.Unit)
	}

	return doc
}

// UpdateIssueRequest represents a request to update a draft issue.
type UpdateIssueRequest struct {
	Number       *string            `json:"number,omitempty"`
	Date         *time.Time         `json:"date,omitempty"`
	WarehouseID  *string            `json:"warehouseId,omitempty"`
	RecipientRef *string            `json:"recipientRef,omitempty"`
	Comment      *string            `json:"comment,omitempty"`
	Lines        []IssueLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateIssueRequest) ApplyTo(doc *issue.Issue) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.WarehouseID != nil {
		warehouseID, _ := id.Parse(*r.WarehouseID)
		doc.WarehouseID = warehouseID
	}
	if r.RecipientRef != nil {
		doc.RecipientRef = *r.RecipientRef
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	// If lines are provided, rebuild them
	if r.Lines != nil {
		doc.Lines = make([]issue.IssueLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			doc.AddLine(productID, line.Quantity, line.Unit)
		}
	}
}

// --- Response DTOs ---

// IssueResponse represents an issue in API responses.
type IssueResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Date          time.Time             `json:"date"`
	Status        entity.DocumentStatus `json:"status"`
	PostedVersion int                   `json:"postedVersion,omitempty"`
	PostedAt      *time.Time            `json:"postedAt,omitempty"`
	PostedBy      string                `json:"postedBy,omitempty"`
	WarehouseID   string                `json:"warehouseId"`
	RecipientRef  string                `json:"recipientRef,omitempty"`
	Comment       string                `json:"comment,omitempty"`
	Lines         []IssueLineResponse   `json:"lines,omitempty"`
	DeletionMark  bool                  `json:"deletionMark,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// IssueLineResponse represents a line in API responses.
type IssueLineResponse struct {
	LineID    string          `json:"lineId"`
	LineNo    int             `json:"lineNo"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
}

// FromIssue converts domain entity to response DTO.
func FromIssue(doc *issue.Issue) *IssueResponse {
	resp := &IssueResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		Status:        doc.Status,
		PostedVersion: doc.PostedVersion,
		PostedAt:      doc.PostedAt,
		PostedBy:      doc.PostedBy,
		WarehouseID:   doc.WarehouseID.String(),
		RecipientRef:  doc.RecipientRef,
		Comment:       doc.Comment,
		DeletionMark:  doc.DeletionMark,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}

	resp.Lines = make([]IssueLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = IssueLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			Unit:      line.Unit,
		}
	}

	return resp
}

// IssueListResponse represents a list of issues.
type IssueListResponse struct {
	Items      []*IssueResponse `json:"items"`
	TotalCount int              `json:"totalCount"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}
