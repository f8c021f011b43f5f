package stock

import (
	"github.com/shopspring/decimal"

	"invetra/internal/core/types"
)

// avgCostScale is the stored precision of average costs (NUMERIC(15,4)).
const avgCostScale = 4

// NextAverageCost returns the moving weighted average cost after receiving
// qty base units at unitCost over an existing balance of curQty at curAvg:
//
//	newAvg = (curQty*curAvg + qty*unitCost) / (curQty + qty)
//
// rounded to 4 decimal places. Degenerate bases short-circuit:
//   - curQty <= 0: the incoming cost becomes the average (a weighted blend
//     across a zero or negative balance is meaningless)
//   - curQty + qty == 0: the incoming cost is kept so the next receipt
//     starts from something sensible
//
// Expenses never call this; they leave the average unchanged.
func NextAverageCost(curQty types.Quantity, curAvg decimal.Decimal, qty types.Quantity, unitCost decimal.Decimal) decimal.Decimal {
	newQty := curQty.Add(qty)
	if !curQty.IsPositive() || newQty.IsZero() || newQty.IsNegative() {
		return unitCost.Round(avgCostScale)
	}

	total := curAvg.Mul(curQty.Decimal()).Add(unitCost.Mul(qty.Decimal()))
	return total.DivRound(newQty.Decimal(), avgCostScale)
}
