// Package stock provides the stock accumulation register service.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/core/types"
	"invetra/pkg/logger"
)

// NegativeStockPolicy decides whether a warehouse may go below zero.
// Implemented by the warehouse catalog (per-warehouse flag); overrides are
// logged so every negative excursion is auditable.
type NegativeStockPolicy interface {
	AllowNegativeStock(ctx context.Context, warehouseID id.ID) (bool, error)
}

// Service provides business operations for the stock register.
// It is the sole mutation gate for balances: every quantity or average-cost
// change goes through RecordMovements/ReverseMovements under the balance
// row lock. Transactions are managed by the caller (posting engine).
type Service struct {
	repo   Repository
	policy NegativeStockPolicy
}

// NewService creates a new stock register service.
func NewService(repo Repository, policy NegativeStockPolicy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
	}
}

// RecordMovements records stock movements from a document posting and
// applies them to the materialized balances. Called during document posting
// within a transaction; the whole batch commits or rolls back together.
//
// Valuation rules:
//   - receipts carry their acquisition cost and blend into the moving
//     weighted average
//   - expenses are valued at the current average and never change it
//   - adjustment increases are valued at the current average (no new cost
//     information); the provided UnitCost seeds the average only when the
//     balance has no cost yet
//   - transfer-in legs inherit the cost computed for the matching
//     transfer-out leg earlier in the same batch
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
		if id.IsNil(m.ProductID) || id.IsNil(m.WarehouseID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: product and warehouse are required", i))
		}
		if m.RecordType != entity.RecordTypeReceipt && m.RecordType != entity.RecordTypeExpense {
			return apperror.NewValidation(fmt.Sprintf("movement %d: invalid record type", i))
		}
	}

	now := time.Now().UTC()
	transferCosts := make(map[id.ID]decimal.Decimal)

	for i := range movements {
		m := &movements[i]
		m.CreatedAt = now

		balance, err := s.repo.GetBalanceForUpdate(ctx, m.WarehouseID, m.ProductID)
		if err != nil {
			return fmt.Errorf("lock balance for %s: %w", m.ProductID, err)
		}

		switch m.RecordType {
		case entity.RecordTypeReceipt:
			cost := m.UnitCost
			switch m.MovementType {
			case entity.MovementTypeTransferIn:
				if c, ok := transferCosts[m.ProductID]; ok {
					cost = c
				}
			case entity.MovementTypeAdjustment:
				if balance.AverageCost.IsPositive() {
					cost = balance.AverageCost
				}
			}
			m.UnitCost = cost.Round(avgCostScale)
			balance.AverageCost = NextAverageCost(balance.Quantity, balance.AverageCost, m.Quantity, cost)
			balance.Quantity = balance.Quantity.Add(m.Quantity)

		case entity.RecordTypeExpense:
			if balance.Quantity < m.Quantity {
				allowed, perr := s.policy.AllowNegativeStock(ctx, m.WarehouseID)
				if perr != nil {
					return fmt.Errorf("resolve negative stock policy: %w", perr)
				}
				if !allowed {
					return apperror.NewInsufficientStock(
						m.ProductID.String(),
						m.WarehouseID.String(),
						m.Quantity.Float64(),
						balance.Quantity.Float64(),
					)
				}
				logger.Warn(ctx, "negative stock override",
					"warehouse_id", m.WarehouseID,
					"product_id", m.ProductID,
					"requested", m.Quantity.String(),
					"available", balance.Quantity.String(),
					"recorder_id", m.RecorderID,
				)
			}
			m.UnitCost = balance.AverageCost
			if m.MovementType == entity.MovementTypeTransferOut {
				transferCosts[m.ProductID] = balance.AverageCost
			}
			balance.Quantity = balance.Quantity.Sub(m.Quantity)
		}

		m.Amount = m.UnitCost.Mul(m.Quantity.Decimal())

		balance.WarehouseID = m.WarehouseID
		balance.ProductID = m.ProductID
		balance.LastMovementAt = now
		balance.UpdatedAt = now
		if err := s.repo.UpsertBalance(ctx, balance); err != nil {
			return fmt.Errorf("upsert balance for %s: %w", m.ProductID, err)
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements undoes a document's ledger effect during cancellation.
// The log is append-only: each recorded movement gets a compensating
// movement with the opposite record type at the given recorder version,
// and the originals stay in place. Reversed receipts go out at their
// recorded cost without touching the average; reversed expenses blend
// back in at the cost they consumed.
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID, version int) error {
	originals, err := s.repo.GetMovementsByRecorder(ctx, recorderID)
	if err != nil {
		return fmt.Errorf("load movements: %w", err)
	}

	now := time.Now().UTC()
	reversals := make([]entity.StockMovement, 0, len(originals))
	for i := len(originals) - 1; i >= 0; i-- {
		m := originals[i]

		balance, err := s.repo.GetBalanceForUpdate(ctx, m.WarehouseID, m.ProductID)
		if err != nil {
			return fmt.Errorf("lock balance for %s: %w", m.ProductID, err)
		}

		recordType := entity.RecordTypeReceipt
		if m.RecordType == entity.RecordTypeReceipt {
			recordType = entity.RecordTypeExpense
			balance.Quantity = balance.Quantity.Sub(m.Quantity)
		} else {
			balance.AverageCost = NextAverageCost(balance.Quantity, balance.AverageCost, m.Quantity, m.UnitCost)
			balance.Quantity = balance.Quantity.Add(m.Quantity)
		}

		rev := entity.NewStockMovement(
			recorderID, m.RecorderType, version, now,
			m.MovementType, recordType,
			m.WarehouseID, m.ProductID,
			m.Quantity, m.UnitCost,
		)
		rev.Reference = m.Reference
		reversals = append(reversals, rev)

		balance.LastMovementAt = now
		balance.UpdatedAt = now
		if err := s.repo.UpsertBalance(ctx, balance); err != nil {
			return fmt.Errorf("upsert balance for %s: %w", m.ProductID, err)
		}
	}

	if len(reversals) > 0 {
		if err := s.repo.CreateMovements(ctx, reversals); err != nil {
			return fmt.Errorf("create reversing movements: %w", err)
		}
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID,
		"count", len(reversals),
		"version", version,
	)

	return nil
}

// Recalculate rebuilds materialized balances from the movement log.
// Maintenance operation; the log is the source of truth and the balance
// table must always equal its fold.
func (s *Service) Recalculate(ctx context.Context, warehouseID, productID *id.ID) error {
	if err := s.repo.RecalculateBalances(ctx, warehouseID, productID); err != nil {
		return fmt.Errorf("recalculate balances: %w", err)
	}

	logger.Info(ctx, "recalculated stock balances",
		"warehouse_id", warehouseID,
		"product_id", productID,
	)
	return nil
}

// GetBalance returns the current balance for a warehouse+product pair.
func (s *Service) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return s.repo.GetBalance(ctx, warehouseID, productID)
}

// GetProductAvailability returns available quantity across warehouses.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	balances, err := s.repo.GetBalancesByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("get balances: %w", err)
	}

	var total types.Quantity
	for _, b := range balances {
		total += b.Quantity
	}

	return total, nil
}

// GetWarehouseStock returns all products with stock in a warehouse.
func (s *Service) GetWarehouseStock(ctx context.Context, warehouseID id.ID) ([]entity.StockBalance, error) {
	return s.repo.GetBalancesByWarehouse(ctx, warehouseID, BalanceFilter{
		ExcludeZero: true,
	})
}

// GetMovementHistory returns the movement log for a product.
func (s *Service) GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, productID, filter)
}

// GetStockReport generates a turnover report for the period.
func (s *Service) GetStockReport(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}
