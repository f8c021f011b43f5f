// Package adjustment provides the stock Adjustment document.
// Adjustments correct ledger quantities after counts, damage or shrinkage.
package adjustment

import (
	"context"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/types"
	"invetra/internal/domain/posting"
)

// AdjustmentKind defines how a line's quantity is interpreted.
type AdjustmentKind string

const (
	// KindRelative - Quantity is a signed delta applied to the current level
	KindRelative AdjustmentKind = "relative"

	// KindAbsolute - Quantity is the counted level; the delta is computed
	// against the locked balance at post time
	KindAbsolute AdjustmentKind = "absolute"
)

// Adjustment represents a stock adjustment document.
type Adjustment struct {
	entity.Document

	// Warehouse whose stock is corrected
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// Reason is a short business justification (count, damage, shrinkage)
	Reason string `db:"reason" json:"reason,omitempty"`

	// Table part: adjusted products
	Lines []AdjustmentLine `db:"-" json:"lines"`
}

// AdjustmentLine represents a line in the adjustment.
type AdjustmentLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Kind selects relative or absolute interpretation of Quantity
	Kind AdjustmentKind `db:"kind" json:"kind"`

	// Quantity in the entered unit. Relative lines carry a signed nonzero
	// delta, absolute lines a non-negative counted level.
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`

	// Unit the quantity was entered in. Empty means the product's base unit.
	Unit string `db:"unit" json:"unit,omitempty"`
}

// NewAdjustment creates a new adjustment document.
func NewAdjustment(warehouseID id.ID) *Adjustment {
	return &Adjustment{
		Document:    entity.NewDocument(),
		WarehouseID: warehouseID,
		Lines:       make([]AdjustmentLine, 0),
	}
}

// AddLine adds a line to the adjustment.
func (a *Adjustment) AddLine(productID id.ID, kind AdjustmentKind, quantity decimal.Decimal, unit string) {
	a.Lines = append(a.Lines, AdjustmentLine{
		LineID:    id.New(),
		LineNo:    len(a.Lines) + 1,
		ProductID: productID,
		Kind:      kind,
		Quantity:  quantity,
		Unit:      unit,
	})
}

// Validate implements entity.Validatable.
func (a *Adjustment) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(a.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	if len(a.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	seen := make(map[id.ID]AdjustmentKind, len(a.Lines))
	for i, line := range a.Lines {
		lineNo := i + 1
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}

		switch line.Kind {
		case KindRelative:
			if line.Quantity.IsZero() {
				return apperror.NewValidation("relative adjustment delta cannot be zero").
					WithDetail("field", "lines").
					WithDetail("lineNo", lineNo)
			}
		case KindAbsolute:
			if line.Quantity.IsNegative() {
				return apperror.NewValidation("counted quantity cannot be negative").
					WithDetail("field", "lines").
					WithDetail("lineNo", lineNo)
			}
		default:
			return apperror.NewValidation("invalid adjustment kind").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo).
				WithDetail("kind", string(line.Kind))
		}

		// One line per product: a relative delta and an absolute count for
		// the same product would make the result order-dependent.
		if _, dup := seen[line.ProductID]; dup {
			return apperror.NewValidation("duplicate product in adjustment").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo).
				WithDetail("product_id", line.ProductID.String())
		}
		seen[line.ProductID] = line.Kind
	}

	return nil
}

// --- Postable interface implementation ---

// GetDocumentType returns the document type name.
func (a *Adjustment) GetDocumentType() string {
	return "Adjustment"
}

// GenerateMovements creates register movements for this document.
// Absolute lines read the balance under its row lock, so the delta is
// computed against the level at post time, not at entry time. Lines whose
// delta works out to zero produce no movement.
func (a *Adjustment) GenerateMovements(ctx context.Context, res posting.Resolver) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()
	newVersion := a.PostedVersion + 1

	for _, line := range a.Lines {
		info, err := res.ProductInfo(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		unitName := line.Unit
		if unitName == "" {
			unitName = info.Units.Base().Name
		}

		var delta types.Quantity
		switch line.Kind {
		case KindRelative:
			delta, err = info.Units.ToBase(line.Quantity, unitName)
			if err != nil {
				return nil, err
			}
		case KindAbsolute:
			counted, cerr := info.Units.ToBase(line.Quantity, unitName)
			if cerr != nil {
				return nil, cerr
			}
			balance, berr := res.BalanceForUpdate(ctx, a.WarehouseID, line.ProductID)
			if berr != nil {
				return nil, berr
			}
			delta = counted.Sub(balance.Quantity)
		}

		if delta.IsZero() {
			continue
		}

		recordType := entity.RecordTypeReceipt
		qty := delta
		if delta.IsNegative() {
			recordType = entity.RecordTypeExpense
			qty = delta.Neg()
		}

		movements.AddStock(entity.NewStockMovement(
			a.ID,
			a.GetDocumentType(),
			newVersion,
			a.Date,
			entity.MovementTypeAdjustment,
			recordType,
			a.WarehouseID,
			line.ProductID,
			qty,
			info.StandardCost,
		))
	}

	return movements, nil
}

var _ posting.Postable = (*Adjustment)(nil)
