package warehouse

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWarehouse_Validate(t *testing.T) {
	wh := NewWarehouse("WH-001", "Main", TypeMain)
	branch := "North"
	wh.Branch = &branch

	require.NoError(t, wh.Validate(context.Background()))
}

func TestWarehouse_Validate_RejectsBadType(t *testing.T) {
	wh := NewWarehouse("WH-001", "Main", WarehouseType("hangar"))

	require.Error(t, wh.Validate(context.Background()))
}

func TestWarehouse_Validate_MaxCapacity(t *testing.T) {
	wh := NewWarehouse("WH-001", "Main", TypeMain)

	capacity := decimal.NewFromInt(50000)
	wh.MaxCapacity = &capacity
	require.NoError(t, wh.Validate(context.Background()))

	zero := decimal.Zero
	wh.MaxCapacity = &zero
	require.Error(t, wh.Validate(context.Background()))
}
