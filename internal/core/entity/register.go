// Package entity provides core domain entities.
package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"invetra/internal/core/id"
	"invetra/internal/core/types"
)

// RecordType defines movement direction for accumulation registers.
type RecordType string

const (
	// RecordTypeReceipt increases balance
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases balance
	RecordTypeExpense RecordType = "expense"
)

// MovementType classifies the business cause of a stock movement.
type MovementType string

const (
	// MovementTypeReceipt - goods received into stock at a known cost
	MovementTypeReceipt MovementType = "receipt"
	// MovementTypeIssue - goods issued from stock at current average cost
	MovementTypeIssue MovementType = "issue"
	// MovementTypeTransferOut - outgoing leg of a warehouse transfer
	MovementTypeTransferOut MovementType = "transfer_out"
	// MovementTypeTransferIn - incoming leg of a warehouse transfer
	MovementTypeTransferIn MovementType = "transfer_in"
	// MovementTypeAdjustment - quantity correction (count, write-off, surplus)
	MovementTypeAdjustment MovementType = "adjustment"
)

// RegisterKind defines the type of register.
type RegisterKind string

const (
	// RegisterKindAccumulation - tracks quantities and amounts
	RegisterKindAccumulation RegisterKind = "accumulation"
	// RegisterKindInformation - stores dimensional data
	RegisterKindInformation RegisterKind = "information"
)

// MovementBase contains common fields for all register movements.
// Movements are immutable - they are never updated, only deleted and recreated.
type MovementBase struct {
	// LineID is unique identifier for this movement line (UUIDv7)
	// Used instead of hash for deterministic tracking
	LineID id.ID `db:"line_id" json:"lineId"`

	// RecorderID is the document that created this movement
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType is the document type (e.g., "Receipt", "Adjustment")
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// RecorderVersion tracks which posting iteration created this movement
	// Allows efficient cleanup: DELETE WHERE recorder_id = X AND recorder_version < Y
	RecorderVersion int `db:"recorder_version" json:"recorderVersion"`

	// Period is the business date for the movement (for period-based queries)
	Period time.Time `db:"period" json:"period"`

	// RecordType: receipt or expense
	RecordType RecordType `db:"record_type" json:"recordType"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovementBase creates a new movement base with generated LineID.
func NewMovementBase(recorderID id.ID, recorderType string, recorderVersion int, period time.Time, recordType RecordType) MovementBase {
	return MovementBase{
		LineID:          id.New(),
		RecorderID:      recorderID,
		RecorderType:    recorderType,
		RecorderVersion: recorderVersion,
		Period:          period,
		RecordType:      recordType,
		CreatedAt:       time.Now().UTC(),
	}
}

// StockMovement represents a movement in the stock accumulation register.
// Tracks quantity and valuation changes for products in warehouses.
// Quantity is always positive and expressed in the product's base unit;
// the direction comes from RecordType.
type StockMovement struct {
	MovementBase

	// MovementType is the business cause of the movement
	MovementType MovementType `db:"movement_type" json:"movementType"`

	// Dimensions
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	// Resources
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UnitCost is the valuation per base unit at record time.
	// Receipts carry the acquisition cost, expenses the average cost consumed.
	UnitCost decimal.Decimal `db:"unit_cost" json:"unitCost"`

	// Amount = Quantity x UnitCost, denormalized for turnover/valuation queries
	Amount decimal.Decimal `db:"amount" json:"amount"`

	// Reference is an optional free-form link (document number, external ref)
	Reference string `db:"reference" json:"reference,omitempty"`
}

// NewStockMovement creates a new stock movement.
func NewStockMovement(
	recorderID id.ID,
	recorderType string,
	recorderVersion int,
	period time.Time,
	movementType MovementType,
	recordType RecordType,
	warehouseID, productID id.ID,
	quantity types.Quantity,
	unitCost decimal.Decimal,
) StockMovement {
	return StockMovement{
		MovementBase: NewMovementBase(recorderID, recorderType, recorderVersion, period, recordType),
		MovementType: movementType,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		Quantity:     quantity,
		UnitCost:     unitCost,
		Amount:       unitCost.Mul(quantity.Decimal()),
	}
}

// SignedQuantity returns quantity with sign based on record type.
// Receipt = positive, Expense = negative.
func (m *StockMovement) SignedQuantity() types.Quantity {
	if m.RecordType == RecordTypeExpense {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// StockBalance represents the current level in the stock register.
// Materialized view of the movement log: quantity and moving weighted
// average cost per (warehouse, product). Always equal to the fold of all
// movements for the pair; RecalculateBalances rebuilds it from scratch.
type StockBalance struct {
	// Dimensions
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID `db:"product_id" json:"productId"`

	// Balances
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// AverageCost is the moving weighted average cost per base unit,
	// rounded to 4 decimal places. Expenses never change it.
	AverageCost decimal.Decimal `db:"average_cost" json:"averageCost"`

	// Metadata
	LastMovementAt time.Time `db:"last_movement_at" json:"lastMovementAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Value returns the balance valuation (quantity x average cost).
func (b *StockBalance) Value() decimal.Decimal {
	return b.AverageCost.Mul(b.Quantity.Decimal())
}
