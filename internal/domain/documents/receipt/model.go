// Package receipt provides the stock Receipt document.
// Receipts bring goods into a warehouse at a known acquisition cost, which
// blends into the product's moving weighted average.
package receipt

import (
	"context"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/posting"
)

// Receipt represents a goods receipt document.
type Receipt struct {
	entity.Document

	// Warehouse where goods are received
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// SupplierRef is a free-form reference to the supplier document
	SupplierRef string `db:"supplier_ref" json:"supplierRef,omitempty"`

	// TotalAmount is the document total (calculated from lines)
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`

	// Table part: received goods
	Lines []ReceiptLine `db:"-" json:"lines"`
}

// ReceiptLine represents a line in the receipt.
type ReceiptLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity in the entered unit, must be positive
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Unit the quantity was entered in. Empty means the product's base unit.
	Unit string `db:"unit" json:"unit,omitempty"`

	// UnitPrice is the acquisition cost per entered unit
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	// Amount = Quantity x UnitPrice
	Amount decimal.Decimal `db:"amount" json:"amount"`
}

// NewReceipt creates a new receipt document.
func NewReceipt(warehouseID id.ID) *Receipt {
	return &Receipt{
		Document:    entity.NewDocument(),
		WarehouseID: warehouseID,
		TotalAmount: decimal.Zero,
		Lines:       make([]ReceiptLine, 0),
	}
}

// AddLine adds a line to the receipt and recalculates totals.
func (r *Receipt) AddLine(productID id.ID, quantity decimal.Decimal, unit string, unitPrice decimal.Decimal) {
	r.Lines = append(r.Lines, ReceiptLine{
		LineID:    id.New(),
		LineNo:    len(r.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		Unit:      unit,
		UnitPrice: unitPrice,
		Amount:    unitPrice.Mul(quantity),
	})
	r.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (r *Receipt) recalculateTotals() {
	r.TotalAmount = decimal.Zero
	for _, line := range r.Lines {
		r.TotalAmount = r.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
func (r *Receipt) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(r.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range r.Lines {
		lineNo := i + 1
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
	}

	return nil
}

// --- Postable interface implementation ---

// GetDocumentType returns the document type name.
func (r *Receipt) GetDocumentType() string {
	return "Receipt"
}

// GenerateMovements creates register movements for this document.
// Quantities and unit costs are converted to the product's base unit.
func (r *Receipt) GenerateMovements(ctx context.Context, res posting.Resolver) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := r.PostedVersion + 1

	for _, line := range r.Lines {
		info, err := res.ProductInfo(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		unitName := line.Unit
		if unitName == "" {
			unitName = info.Units.Base().Name
		}

		qty, err := info.Units.ToBase(line.Quantity, unitName)
		if err != nil {
			return nil, err
		}

		unitCost, err := info.Units.UnitCostToBase(line.UnitPrice, unitName)
		if err != nil {
			return nil, err
		}

		movements.AddStock(entity.NewStockMovement(
			r.ID,
			r.GetDocumentType(),
			newVersion,
			r.Date,
			entity.MovementTypeReceipt,
			entity.RecordTypeReceipt,
			r.WarehouseID,
			line.ProductID,
			qty,
			unitCost,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*Receipt)(nil)
