package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/documents/receipt"
)

// --- Request DTOs ---

// CreateReceiptRequest represents a request to create a goods receipt.
type CreateReceiptRequest struct {
	Number      string               `json:"number,omitempty"`
	Date        time.Time            `json:"date"`
	WarehouseID string               `json:"warehouseId" binding:"required"`
	SupplierRef string               `json:"supplierRef,omitempty"`
	Comment     string               `json:"comment,omitempty"`
	Lines       []ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReceiptLineRequest represents a line in create/update request.
type ReceiptLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// ToEntity converts request to domain entity.
func (r *CreateReceiptRequest) ToEntity() *receipt.Receipt {
	warehouseID, _ := id.Parse(r.WarehouseID)

	doc := receipt.NewReceipt(warehouseID)
	doc.Number = r.Number
	if !r.Date.IsZero() {
		doc.Date = r.Date
	}
	doc.SupplierRef = r.SupplierRef
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		productID, _ := id.Parse(line.ProductID)
		doc.AddLine(productID, line.Quantity, line.Unit, line.UnitPrice)
	}

	return doc
}

// UpdateReceiptRequest represents a request to update a draft receipt.
type UpdateReceiptRequest struct {
	Number      *string              `json:"number,omitempty"`
	Date        *time.Time           `json:"date,omitempty"`
	WarehouseID *string              `json:"warehouseId,omitempty"`
	SupplierRef *string              `json:"supplierRef,omitempty"`
	Comment     *string              `json:"comment,omitempty"`
	Lines       []ReceiptLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdateReceiptRequest) ApplyTo(doc *receipt.Receipt) {
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
	if r.SupplierRef != nil {
		doc.SupplierRef = *r.SupplierRef
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}

	// If lines are provided, rebuild them (totals recalculate per line)
	if r.Lines != nil {
		doc.Lines = make([]receipt.ReceiptLine, 0, len(r.Lines))
		for _, line := range r.Lines {
			productID, _ := id.Parse(line.ProductID)
			doc.AddLine(productID, line.Quantity, line.Unit, line.UnitPrice)
		}
	}
}

// --- Response DTOs ---

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Date          time.Time             `json:"date"`
	Status        entity.DocumentStatus `json:"status"`
	PostedVersion int                   `json:"postedVersion,omitempty"`
	PostedAt      *time.Time            `json:"postedAt,omitempty"`
	PostedBy      string                `json:"postedBy,omitempty"`
	WarehouseID   string                `json:"warehouseId"`
	SupplierRef   string                `json:"supplierRef,omitempty"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	Comment       string                `json:"comment,omitempty"`
	Lines         []ReceiptLineResponse `json:"lines,omitempty"`
	DeletionMark  bool                  `json:"deletionMark,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ReceiptLineResponse represents a line in API responses.
type ReceiptLineResponse struct {
	LineID    string          `json:"lineId"`
	LineNo    int             `json:"lineNo"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Amount    decimal.Decimal `json:"amount"`
}

// FromReceipt converts domain entity to response DTO.
func FromReceipt(doc *receipt.Receipt) *ReceiptResponse {
	resp := &ReceiptResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		Status:        doc.Status,
		PostedVersion: doc.PostedVersion,
		PostedAt:      doc.PostedAt,
		PostedBy:      doc.PostedBy,
		WarehouseID:   doc.WarehouseID.String(),
		SupplierRef:   doc.SupplierRef,
		TotalAmount:   doc.TotalAmount,
		Comment:       doc.Comment,
		DeletionMark:  doc.DeletionMark,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}

	resp.Lines = make([]ReceiptLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		resp.Lines[i] = ReceiptLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		}
	}

	return resp
}

// ReceiptListResponse represents a list of receipts.
type ReceiptListResponse struct {
	Items      []*ReceiptResponse `json:"items"`
	TotalCount int                `json:"totalCount"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}
