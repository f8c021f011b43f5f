package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/documents/transfer"
)

// --- Request DTOs ---

// CreateTransferRequest represents a request to create a warehouse transfer.
type CreateTransferRequest struct {
	Number            string                `json:"number,omitempty"`
	Date              time.Time             `json:"date"`
	SourceWarehouseID string                `json:"sourceWarehouseId" binding:"required"`
	DestWarehouseID   string                `json:"destWarehouseId" binding:"required"`
	Comment           string                `json:"comment,omitempty"`
	Lines             []TransferLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// TransferLineRequest represents a line in create/update request.
type TransferLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreateTransferRequest) ToEntity() *transfer.Transfer {
	sourceID, _ := id.Parse(r.SourceWarehouseID)
	destID, _ := id.Parse(r.DestWarehouseID)

	doc := transfer.NewTransfer(sourceID, destID)
	doc.Number = r.Number
	if !r.Date.IsZero() {
		doc.Date = r.Date
	}
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, line.Quantity, line.Unit)
	}

	return doc
}

// UpdateTransferRequest represents a request to update a draft transfer.
type UpdateTransferRequest struct {
	Number            *string               `json:"number,omitempty"`
	Date              *time.Time            `json:"date,omitempty"`
	SourceWarehouseID *string               `json:"sourceWarehouseId,omitempty"`
	DestWarehouseID   *string               `json:"destWarehouseId,omitempty"`
	Comment           *string               `json:"comment,omitempty"`
	Lines             []TransferLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateTransferRequest) ApplyTo(doc *transfer.Transfer) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.SourceWarehouseID != nil {
		sourceID, _ := id.Parse(*r.SourceWarehouseID)
		doc.SourceWarehouseID = sourceID
	}
	if r.DestWarehouseID != nil {
		destID, _ := id.Parse(*r.DestWarehouseID)
		doc.DestWarehouseID = destID
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	// If lines are provided, rebuild them
	if r.Lines != nil {
		doc.Lines = make([]transfer.TransferLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			doc.AddLine(productID, line.Quantity, line.Unit)
		}
	}
}

// --- Response DTOs ---

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID                string                 `json:"id"`
	Number            string                 `json:"number"`
	Date              time.Time              `json:"date"`
	Status            entity.DocumentStatus  `json:"status"`
	PostedVersion     int                    `json:"postedVersion,omitempty"`
	PostedAt          *time.Time             `json:"postedAt,omitempty"`
	PostedBy          string                 `json:"postedBy,omitempty"`
	SourceWarehouseID string                 `json:"sourceWarehouseId"`
	DestWarehouseID   string                 `json:"destWarehouseId"`
	Comment           string                 `json:"comment,omitempty"`
	Lines             []TransferLineResponse `json:"lines,omitempty"`
	DeletionMark      bool                   `json:"deletionMark,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// TransferLineResponse represents a line in API responses.
type TransferLineResponse struct {
	LineID    string          `json:"lineId"`
	LineNo    int             `json:"lineNo"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
}

// FromTransfer converts domain entity to response DTO.
func FromTransfer(doc *transfer.Transfer) *TransferResponse {
	resp := &TransferResponse{
		ID:                doc.ID.String(),
		Number:            doc.Number,
		Date:              doc.Date,
		Status:            doc.Status,
		PostedVersion:     doc.PostedVersion,
		PostedAt:          doc.PostedAt,
		PostedBy:          doc.PostedBy,
		SourceWarehouseID: doc.SourceWarehouseID.String(),
		DestWarehouseID:   doc.DestWarehouseID.String(),
		Comment:           doc.Comment,
		DeletionMark:      doc.DeletionMark,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}

	resp.Lines = make([]TransferLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = TransferLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			Unit:      line.Unit,
		}
	}

	return resp
}

// TransferListResponse represents a list of transfers.
type TransferListResponse struct {
	Items      []*TransferResponse `json:"items"`
	TotalCount int                 `json:"totalCount"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}
