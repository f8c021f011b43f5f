// Package issue provides the stock Issue document.
// Issues take goods out of a warehouse; every expense is valued at the
// current average cost and never changes it.
package issue

import (
	"context"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/posting"
)

// Issue represents a goods issue document.
type Issue struct {
	entity.Document

	// Warehouse goods are issued from
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// RecipientRef is a free-form reference to the consumer (order, customer)
	RecipientRef string `db:"recipient_ref" json:"recipientRef,omitempty"`

	// Table part: issued goods
	Lines []IssueLine `db:"-" json:"lines"`
}

// IssueLine represents a line in the issue.
type IssueLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity in the entered unit, must be positive
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Unit the quantity was entered in. Empty means the product's base unit.
	Unit string `db:"unit" json:"unit,omitempty"`
}

// NewIssue creates a new issue document.
func NewIssue(warehouseID id.ID) *Issue {
	return &Issue{
		Document:    entity.NewDocument(),
		WarehouseID: warehouseID,
		Lines:       make([]IssueLine, 0),
	}
}

// AddLine adds a line to the issue.
func (d *Issue) AddLine(productID id.ID, quantity decimal.Decimal, unit string) {
	d.Lines = append(d.Lines, IssueLine{
		LineID:    id.New(),
		LineNo:    len(d.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		Unit:      unit,
	})
}

// Validate implements entity.Validatable.
func (d *Issue) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(d.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range d.Lines {
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
	}

	return nil
}

// --- Postable interface implementation ---

// GetDocumentType returns the document type name.
func (d *Issue) GetDocumentType() string {
	return "Issue"
}

// GenerateMovements creates register movements for this document.
// The register values each expense at the average cost it finds under the
// balance lock, so lines carry no cost here.
func (d *Issue) GenerateMovements(ctx context.Context, res posting.Resolver) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := d.PostedVersion + 1

	for _, line := range d.Lines {
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

		movements.AddStock(entity.NewStockMovement(
			d.ID,
			d.GetDocumentType(),
			newVersion,
			d.Date,
			entity.MovementTypeIssue,
			entity.RecordTypeExpense,
			d.WarehouseID,
			line.ProductID,
			qty,
			decimal.Zero,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*Issue)(nil)
