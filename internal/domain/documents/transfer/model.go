// Package transfer provides the warehouse Transfer document.
// A transfer moves stock between two warehouses; each line posts an
// outgoing leg at the source and an incoming leg at the destination, both
// valued at the source warehouse's average cost.
package transfer

import (
	"context"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/posting"
)

// Transfer represents a warehouse transfer document.
type Transfer struct {
	entity.Document

	// SourceWarehouseID is where the goods leave
	SourceWarehouseID id.ID `db:"source_warehouse_id" json:"sourceWarehouseId"`

	// DestWarehouseID is where the goods arrive
	DestWarehouseID id.ID `db:"dest_warehouse_id" json:"destWarehouseId"`

	// Table part: transferred goods
	Lines []TransferLine `db:"-" json:"lines"`
}

// TransferLine represents a line in the transfer.
type TransferLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity in the entered unit, must be positive
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Unit the quantity was entered in. Empty means the product's base unit.
	Unit string `db:"unit" json:"unit,omitempty"`
}

// NewTransfer creates a new transfer document.
func NewTransfer(sourceWarehouseID, destWarehouseID id.ID) *Transfer {
	return &Transfer{
		Document:          entity.NewDocument(),
		SourceWarehouseID: sourceWarehouseID,
		DestWarehouseID:   destWarehouseID,
		Lines:             make([]TransferLine, 0),
	}
}

// AddLine adds a line to the transfer.
func (t *Transfer) AddLine(productID id.ID, quantity decimal.Decimal, unit string) {
	t.Lines = append(t.Lines, TransferLine{
		LineID:    id.New(),
		LineNo:    len(t.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		Unit:      unit,
	})
}

// Validate implements entity.Validatable.
func (t *Transfer) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.SourceWarehouseID) {
		return apperror.NewValidation("source warehouse is required").
			WithDetail("field", "sourceWarehouseId")
	}
	if id.IsNil(t.DestWarehouseID) {
		return apperror.NewValidation("destination warehouse is required").
			WithDetail("field", "destWarehouseId")
	}
	if t.SourceWarehouseID == t.DestWarehouseID {
		return apperror.NewValidation("source and destination warehouses must differ").
			WithDetail("field", "destWarehouseId")
	}

	if len(t.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	seen := make(map[id.ID]struct{}, len(t.Lines))
	for i, line := range t.Lines {
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
		if _, dup := seen[line.ProductID]; dup {
			return apperror.NewValidation("duplicate product in transfer").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo).
				WithDetail("product_id", line.ProductID.String())
		}
		seen[line.ProductID] = struct{}{}
	}

	return nil
}

// --- Postable interface implementation ---

// GetDocumentType returns the document type name.
func (t *Transfer) GetDocumentType() string {
	return "Transfer"
}

// GenerateMovements creates the two register legs per line. The outgoing
// leg precedes the incoming one so the register can carry the source
// average cost over to the destination.
func (t *Transfer) GenerateMovements(ctx context.Context, res posting.Resolver) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := t.PostedVersion + 1

	for _, line := range t.Lines {
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
			t.ID,
			t.GetDocumentType(),
			newVersion,
			t.Date,
			entity.MovementTypeTransferOut,
			entity.RecordTypeExpense,
			t.SourceWarehouseID,
			line.ProductID,
			qty,
			decimal.Zero,
		))

		movements.AddStock(entity.NewStockMovement(
			t.ID,
			t.GetDocumentType(),
			newVersion,
			t.Date,
			entity.MovementTypeTransferIn,
			entity.RecordTypeReceipt,
			t.DestWarehouseID,
			line.ProductID,
			qty,
			decimal.Zero,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*Transfer)(nil)
