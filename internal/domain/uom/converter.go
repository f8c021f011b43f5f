// Package uom provides pure unit-of-measure conversion for product
// quantities and costs. A product defines a base unit (factor 1) plus
// alternate units, each with a factor meaning "base units per one alternate
// unit". All ledger quantities are stored in the base unit; conversion
// happens at document entry boundaries.
//
// The package performs no I/O and never mutates shared state.
package uom

import (
	"strings"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/types"
)

// costScale is the fractional precision for cost values (NUMERIC(15,4)).
const costScale = 4

// Unit is a resolved measurement unit of a product.
type Unit struct {
	// Name is the canonical unit name as defined on the product
	Name string

	// Factor is the number of base units in one of this unit (> 0).
	// The base unit has factor 1.
	Factor decimal.Decimal

	// IsBase marks the product's base unit
	IsBase bool
}

// Normalize canonicalizes a unit name for matching: surrounding whitespace
// is ignored and comparison is case-insensitive. "BOX" and " box " resolve
// to the same unit.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UnitSet is the immutable unit configuration of a single product.
type UnitSet struct {
	productID string
	base      Unit
	byName    map[string]Unit
	names     []string
}

// NewUnitSet builds a unit set from a base unit name and alternates.
// Alternate factors must be positive; duplicate names (after normalization)
// and alternates shadowing the base unit are rejected.
func NewUnitSet(productID, baseName string, alternates []Unit) (*UnitSet, error) {
	baseKey := Normalize(baseName)
	if baseKey == "" {
		return nil, apperror.NewValidation("base unit is required").
			WithDetail("product_id", productID)
	}

	base := Unit{Name: strings.TrimSpace(baseName), Factor: decimal.NewFromInt(1), IsBase: true}
	set := &UnitSet{
		productID: productID,
		base:      base,
		byName:    map[string]Unit{baseKey: base},
		names:     []string{base.Name},
	}

	for _, alt := range alternates {
		key := Normalize(alt.Name)
		if key == "" {
			return nil, apperror.NewValidation("alternate unit name is required").
				WithDetail("product_id", productID)
		}
		if !alt.Factor.IsPositive() {
			return nil, apperror.NewValidation("conversion factor must be positive").
				WithDetail("product_id", productID).
				WithDetail("unit", alt.Name).
				WithDetail("factor", alt.Factor.String())
		}
		if _, exists := set.byName[key]; exists {
			return nil, apperror.NewValidation("duplicate unit name").
				WithDetail("product_id", productID).
				WithDetail("unit", alt.Name)
		}
		u := Unit{Name: strings.TrimSpace(alt.Name), Factor: alt.Factor}
		set.byName[key] = u
		set.names = append(set.names, u.Name)
	}

	return set, nil
}

// Base returns the product's base unit.
func (s *UnitSet) Base() Unit {
	return s.base
}

// Names returns the canonical unit names (base first).
func (s *UnitSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Resolve finds a unit by name. Matching ignores case and surrounding
// whitespace. Unknown names produce an UNKNOWN_UNIT error listing the
// product's defined units.
func (s *UnitSet) Resolve(name string) (Unit, error) {
	if u, ok := s.byName[Normalize(name)]; ok {
		return u, nil
	}
	return Unit{}, apperror.NewUnknownUnit(name, s.productID, s.Names())
}

// ToBase converts a quantity expressed in the named unit to base units:
// qty x factor.
func (s *UnitSet) ToBase(qty decimal.Decimal, name string) (types.Quantity, error) {
	u, err := s.Resolve(name)
	if err != nil {
		return 0, err
	}
	return types.NewQuantityFromDecimal(qty.Mul(u.Factor)), nil
}

// FromBase converts a base-unit quantity to the named unit: qty / factor.
func (s *UnitSet) FromBase(baseQty types.Quantity, name string) (decimal.Decimal, error) {
	u, err := s.Resolve(name)
	if err != nil {
		return decimal.Zero, err
	}
	if u.IsBase {
		return baseQty.Decimal(), nil
	}
	return baseQty.Decimal().DivRound(u.Factor, costScale), nil
}

// Convert converts a quantity between two units of the product via the
// base unit. Identity when both names resolve to the same unit.
func (s *UnitSet) Convert(qty decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromUnit, err := s.Resolve(from)
	if err != nil {
		return decimal.Zero, err
	}
	toUnit, err := s.Resolve(to)
	if err != nil {
		return decimal.Zero, err
	}
	if fromUnit.Name == toUnit.Name {
		return qty, nil
	}
	return qty.Mul(fromUnit.Factor).DivRound(toUnit.Factor, costScale), nil
}

// UnitCostToBase converts a per-unit cost quoted in the named unit to the
// cost per base unit: cost / factor. A box of 12 bought for 24.00 costs
// 2.00 per piece.
func (s *UnitSet) UnitCostToBase(cost decimal.Decimal, name string) (decimal.Decimal, error) {
	u, err := s.Resolve(name)
	if err != nil {
		return decimal.Zero, err
	}
	if u.IsBase {
		return cost.Round(costScale), nil
	}
	return cost.DivRound(u.Factor, costScale), nil
}

// CostPerUnit converts a per-base-unit cost to the named unit:
// baseCost x factor. Used to present average cost in alternate units.
func (s *UnitSet) CostPerUnit(baseCost decimal.Decimal, name string) (decimal.Decimal, error) {
	u, err := s.Resolve(name)
	if err != nil {
		return decimal.Zero, err
	}
	return baseCost.Mul(u.Factor).Round(costScale), nil
}
