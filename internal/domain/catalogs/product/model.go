// Package product provides the Product catalog.
// Products carry their own unit-of-measure definitions: a base unit plus
// alternate units with conversion factors, stored as JSONB on the row.
package product

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/domain/uom"
)

// ProductType defines the type of item.
type ProductType string

const (
	TypeGoods    ProductType = "goods"
	TypeMaterial ProductType = "material"
	TypeProduct  ProductType = "product"
	TypeService  ProductType = "service"
)

// AlternateUnit is a purchasable/sellable unit of a product other than
// the base unit. Factor is the number of base units in one of this unit.
type AlternateUnit struct {
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`

	// Price is an optional default price per this unit
	Price *decimal.Decimal `json:"price,omitempty"`
}

// AlternateUnits maps to a JSONB column.
type AlternateUnits []AlternateUnit

// Scan implements sql.Scanner for reading from PostgreSQL JSONB.
func (u *AlternateUnits) Scan(src any) error {
	if src == nil {
		*u = nil
		return nil
	}

	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return fmt.Errorf("unsupported type for AlternateUnits: %T", src)
	}

	if len(source) == 0 {
		*u = nil
		return nil
	}
	return json.Unmarshal(source, u)
}

// Value implements driver.Valuer for writing to PostgreSQL JSONB.
func (u AlternateUnits) Value() (driver.Value, error) {
	if u == nil {
		return nil, nil
	}
	return json.Marshal(u)
}

// Product represents a stockable item or a service.
type Product struct {
	entity.Catalog

	// Type defines item category
	Type ProductType `db:"type" json:"type"`

	// SKU is the item article/SKU
	SKU *string `db:"sku" json:"sku,omitempty"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// BaseUnit is the unit all ledger quantities are stored in
	BaseUnit string `db:"base_unit" json:"baseUnit"`

	// Units are the alternate units convertible to the base unit
	Units AlternateUnits `db:"units" json:"units,omitempty"`

	// StandardCost seeds the average cost before any receipt history exists
	StandardCost decimal.Decimal `db:"standard_cost" json:"standardCost"`

	// MinStockLevel is the reorder threshold in base units
	MinStockLevel decimal.Decimal `db:"min_stock_level" json:"minStockLevel"`

	// ShelfLifeDays is how long the product keeps, in days. Nil means
	// non-perishable.
	ShelfLifeDays *int `db:"shelf_life_days" json:"shelfLifeDays,omitempty"`

	// IsActive indicates the product may appear on new documents
	IsActive bool `db:"is_active" json:"isActive"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name, baseUnit string, productType ProductType) *Product {
	return &Product{
		Catalog:      entity.NewCatalog(code, name),
		Type:         productType,
		BaseUnit:     baseUnit,
		StandardCost: decimal.Zero,
		IsActive:     true,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidProductType(p.Type) {
		return apperror.NewValidation("invalid product type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.StandardCost.IsNegative() {
		return apperror.NewValidation("standard cost cannot be negative").
			WithDetail("field", "standardCost")
	}

	if p.MinStockLevel.IsNegative() {
		return apperror.NewValidation("minimum stock level cannot be negative").
			WithDetail("field", "minStockLevel")
	}

	if p.ShelfLifeDays != nil && *p.ShelfLifeDays <= 0 {
		return apperror.NewValidation("shelf life must be positive").
			WithDetail("field", "shelfLifeDays")
	}

	// Building the set validates base unit presence, positive factors
	// and duplicate names.
	if _, err := p.UnitSet(); err != nil {
		return err
	}

	return nil
}

// UnitSet builds the conversion set from the product's unit definitions.
func (p *Product) UnitSet() (*uom.UnitSet, error) {
	alternates := make([]uom.Unit, 0, len(p.Units))
	for _, alt := range p.Units {
		alternates = append(alternates, uom.Unit{Name: alt.Name, Factor: alt.Factor})
	}
	return uom.NewUnitSet(p.ID.String(), p.BaseUnit, alternates)
}

// IsStockable returns true if the product's quantities live on the ledger.
func (p *Product) IsStockable() bool {
	return p.Type != TypeService
}

// --- Validation Helpers ---

func isValidProductType(t ProductType) bool {
	switch t {
	case TypeGoods, TypeMaterial, TypeProduct, TypeService:
		return true
	}
	return false
}
