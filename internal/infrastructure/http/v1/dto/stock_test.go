package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invetra/internal/core/id"
	"invetra/internal/core/types"
	"invetra/internal/domain/registers/stock"
)

func TestFromStockTurnover(t *testing.T) {
	wh := id.New()

	resp := FromStockTurnover(stock.Turnover{
		WarehouseID:    wh,
		OpeningBalance: types.NewQuantityFromFloat64(10),
		Receipt:        types.NewQuantityFromFloat64(7.5),
		Expense:        types.NewQuantityFromFloat64(3),
		ClosingBalance: types.NewQuantityFromFloat64(14.5),
	})

	assert.Equal(t, wh.String(), resp.WarehouseID)
	assert.Empty(t, resp.ProductID)
	assert.Equal(t, 10.0, resp.OpeningBalance)
	assert.Equal(t, 7.5, resp.Receipt)
	assert.Equal(t, 3.0, resp.Expense)
	assert.Equal(t, 14.5, resp.ClosingBalance)
}
