package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"invetra/internal/core/types"
)

func qty(f float64) types.Quantity { return types.NewQuantityFromFloat64(f) }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNextAverageCost_WeightedBlend(t *testing.T) {
	// 10 pcs @ 2.00 + 5 pcs @ 5.00 = 45.00 / 15 = 3.00
	avg := NextAverageCost(qty(10), dec("2"), qty(5), dec("5"))
	assert.True(t, avg.Equal(dec("3")), avg.String())
}

func TestNextAverageCost_RoundsTo4Places(t *testing.T) {
	// (1*1.00 + 2*2.00) / 3 = 1.6666...
	avg := NextAverageCost(qty(1), dec("1"), qty(2), dec("2"))
	assert.True(t, avg.Equal(dec("1.6667")), avg.String())
}

func TestNextAverageCost_ZeroBase(t *testing.T) {
	avg := NextAverageCost(qty(0), decimal.Zero, qty(5), dec("7.5"))
	assert.True(t, avg.Equal(dec("7.5")), avg.String())
}

func TestNextAverageCost_NegativeBase(t *testing.T) {
	// Weighted math over a negative balance is meaningless; the incoming
	// cost wins.
	avg := NextAverageCost(qty(-3), dec("2"), qty(10), dec("4"))
	assert.True(t, avg.Equal(dec("4")), avg.String())
}

func TestNextAverageCost_SumToZero(t *testing.T) {
	avg := NextAverageCost(qty(-5), dec("2"), qty(5), dec("3"))
	assert.True(t, avg.Equal(dec("3")), avg.String())
}

func TestNextAverageCost_SameCostKeepsAverage(t *testing.T) {
	avg := NextAverageCost(qty(100), dec("1.25"), qty(50), dec("1.25"))
	assert.True(t, avg.Equal(dec("1.25")), avg.String())
}
