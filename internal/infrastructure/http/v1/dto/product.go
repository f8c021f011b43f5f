package dto

import (
	"github.com/shopspring/decimal"

	"invetra/internal/core/entity"
	"invetra/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// AlternateUnitDTO describes one alternate unit of measure of a product.
type AlternateUnitDTO struct {
	Name   string           `json:"name" binding:"required"`
	Factor decimal.Decimal  `json:"factor" binding:"required"`
	Price  *decimal.Decimal `json:"price,omitempty"`
}

func toAlternateUnits(units []AlternateUnitDTO) product.AlternateUnits {
	if len(units) == 0 {
		return nil
	}
	result := make(product.AlternateUnits, 0, len(units))
	for _, u := range units {
		result = append(result, product.AlternateUnit{Name: u.Name, Factor: u.Factor, Price: u.Price})
	}
	return result
}

func fromAlternateUnits(units product.AlternateUnits) []AlternateUnitDTO {
	if len(units) == 0 {
		return nil
	}
	result := make([]AlternateUnitDTO, 0, len(units))
	for _, u := range units {
		result = append(result, AlternateUnitDTO{Name: u.Name, Factor: u.Factor, Price: u.Price})
	}
	return result
}

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name" binding:"required"`
	Type          product.ProductType `json:"type" binding:"required"`
	SKU           *string             `json:"sku"`
	Barcode       *string             `json:"barcode"`
	BaseUnit      string              `json:"baseUnit" binding:"required"`
	Units         []AlternateUnitDTO  `json:"units"`
	StandardCost  decimal.Decimal     `json:"standardCost"`
	MinStockLevel decimal.Decimal     `json:"minStockLevel"`
	ShelfLifeDays *int                `json:"shelfLifeDays"`
	IsActive      bool                `json:"isActive"`
	Description   *string             `json:"description"`
	ParentID      *string             `json:"parentId"`
	IsFolder      bool                `json:"isFolder"`
	Attributes    entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.BaseUnit, r.Type)
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.Units = toAlternateUnits(r.Units)
	p.StandardCost = r.StandardCost
	p.MinStockLevel = r.MinStockLevel
	p.ShelfLifeDays = r.ShelfLifeDays
	p.IsActive = r.IsActive
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name" binding:"required"`
	Type          product.ProductType `json:"type" binding:"required"`
	SKU           *string             `json:"sku,omitempty"`
	Barcode       *string             `json:"barcode,omitempty"`
	BaseUnit      string              `json:"baseUnit" binding:"required"`
	Units         []AlternateUnitDTO  `json:"units"`
	StandardCost  decimal.Decimal     `json:"standardCost"`
	MinStockLevel decimal.Decimal     `json:"minStockLevel"`
	ShelfLifeDays *int                `json:"shelfLifeDays,omitempty"`
	IsActive      bool                `json:"isActive"`
	Description   *string             `json:"description,omitempty"`
	ParentID      *string             `json:"parentId,omitempty"`
	IsFolder      bool                `json:"isFolder"`
	Attributes    entity.Attributes   `json:"attributes"`
	Version       int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = r.Type
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.BaseUnit = r.BaseUnit
	p.Units = toAlternateUnits(r.Units)
	p.StandardCost = r.StandardCost
	p.MinStockLevel = r.MinStockLevel
	p.ShelfLifeDays = r.ShelfLifeDays
	p.IsActive = r.IsActive
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID            string              `json:"id"`
	Code          string              `json:"code"`
	Name          string              `json:"name"`
	Type          product.ProductType `json:"type"`
	SKU           *string             `json:"sku,omitempty"`
	Barcode       *string             `json:"barcode,omitempty"`
	BaseUnit      string              `json:"baseUnit"`
	Units         []AlternateUnitDTO  `json:"units,omitempty"`
	StandardCost  decimal.Decimal     `json:"standardCost"`
	MinStockLevel decimal.Decimal     `json:"minStockLevel"`
	ShelfLifeDays *int                `json:"shelfLifeDays,omitempty"`
	IsActive      bool                `json:"isActive"`
	Description   *string             `json:"description,omitempty"`
	ParentID      *string             `json:"parentId,omitempty"`
	IsFolder      bool                `json:"isFolder"`
	DeletionMark  bool                `json:"deletionMark"`
	Version       int                 `json:"version"`
	Attributes    entity.Attributes   `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID.String(),
		Code:          p.Code,
		Name:          p.Name,
		Type:          p.Type,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		BaseUnit:      p.BaseUnit,
		Units:         fromAlternateUnits(p.Units),
		StandardCost:  p.StandardCost,
		MinStockLevel: p.MinStockLevel,
		ShelfLifeDays: p.ShelfLifeDays,
		IsActive:      p.IsActive,
		Description:   p.Description,
		ParentID:      p.ParentID,
		IsFolder:      p.IsFolder,
		DeletionMark:  p.DeletionMark,
		Version:       p.Version,
		Attributes:    p.Attributes,
	}
}

// ConvertQuantityResponse is the result of a unit conversion.
type ConvertQuantityResponse struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	FromUnit  string          `json:"fromUnit"`
	ToUnit    string          `json:"toUnit"`
	Result    decimal.Decimal `json:"result"`
}
