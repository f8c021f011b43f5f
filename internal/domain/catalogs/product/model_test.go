package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetra/internal/core/apperror"
	"invetra/internal/core/types"
)

func TestProduct_Validate(t *testing.T) {
	p := NewProduct("PR-0001", "Bolt M8", "pcs", TypeGoods)
	p.Units = AlternateUnits{
		{Name: "box", Factor: decimal.NewFromInt(100)},
	}

	require.NoError(t, p.Validate(context.Background()))
}

func TestProduct_Validate_RejectsBadUnits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Product)
	}{
		{
			name:   "missing base unit",
			mutate: func(p *Product) { p.BaseUnit = "  " },
		},
		{
			name: "zero factor",
			mutate: func(p *Product) {
				p.Units = AlternateUnits{{Name: "box", Factor: decimal.Zero}}
			},
		},
		{
			name: "negative factor",
			mutate: func(p *Product) {
				p.Units = AlternateUnits{{Name: "box", Factor: decimal.NewFromInt(-5)}}
			},
		},
		{
			name: "alternate shadows base",
			mutate: func(p *Product) {
				p.Units = AlternateUnits{{Name: " PCS ", Factor: decimal.NewFromInt(10)}}
			},
		},
		{
			name: "duplicate alternates",
			mutate: func(p *Product) {
				p.Units = AlternateUnits{
					{Name: "box", Factor: decimal.NewFromInt(10)},
					{Name: "BOX", Factor: decimal.NewFromInt(20)},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProduct("PR-0001", "Bolt M8", "pcs", TypeGoods)
			tt.mutate(p)

			err := p.Validate(context.Background())
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestProduct_Validate_RejectsNegativeCost(t *testing.T) {
	p := NewProduct("PR-0001", "Bolt M8", "pcs", TypeGoods)
	p.StandardCost = decimal.NewFromInt(-1)

	require.Error(t, p.Validate(context.Background()))
}

func TestProduct_Validate_ShelfLife(t *testing.T) {
	p := NewProduct("PR-0003", "Thermal Paste", "pcs", TypeGoods)

	days := 365
	p.ShelfLifeDays = &days
	require.NoError(t, p.Validate(context.Background()))

	zero := 0
	p.ShelfLifeDays = &zero
	require.Error(t, p.Validate(context.Background()))
}

func TestProduct_UnitSet_Conversions(t *testing.T) {
	p := NewProduct("PR-0002", "Screws", "pcs", TypeGoods)
	p.Units = AlternateUnits{
		{Name: "box", Factor: decimal.NewFromInt(12)},
		{Name: "pallet", Factor: decimal.NewFromInt(480)},
	}

	set, err := p.UnitSet()
	require.NoError(t, err)

	qty, err := set.ToBase(decimal.NewFromInt(3), "Box")
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromFloat64(36), qty)

	cost, err := set.UnitCostToBase(decimal.NewFromInt(24), "box")
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.NewFromInt(2)), "got %s", cost)

	_, err = set.Resolve("kg")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnknownUnit, appErr.Code)
}
