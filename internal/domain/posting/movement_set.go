package posting

import (
	"invetra/internal/core/entity"
)

// MovementSet collects register movements generated by a document.
// Currently only the stock register exists; the set keeps documents
// decoupled from register internals.
type MovementSet struct {
	stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// AddStock appends a stock register movement.
func (s *MovementSet) AddStock(m entity.StockMovement) {
	s.stock = append(s.stock, m)
}

// Stock returns the collected stock movements in insertion order.
// Order matters: transfer-in legs must follow their transfer-out legs.
func (s *MovementSet) Stock() []entity.StockMovement {
	return s.stock
}

// IsEmpty reports whether the set contains no movements.
// Empty sets are legal: an adjustment whose deltas all resolve to zero
// posts without touching the ledger.
func (s *MovementSet) IsEmpty() bool {
	return len(s.stock) == 0
}
