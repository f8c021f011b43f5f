// Package documents wires document types to the posting engine.
package documents

import (
	"context"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain/catalogs/product"
	"invetra/internal/domain/posting"
	"invetra/internal/domain/registers/stock"
)

// PostingResolver supplies reference data to movement generation.
// It reads through the repositories so lookups run inside the posting
// transaction and BalanceForUpdate holds its row lock until commit.
type PostingResolver struct {
	products product.Repository
	stock    stock.Repository
}

// NewPostingResolver creates a new PostingResolver.
func NewPostingResolver(products product.Repository, stockRepo stock.Repository) *PostingResolver {
	return &PostingResolver{
		products: products,
		stock:    stockRepo,
	}
}

// ProductInfo loads unit definitions and costing defaults for a product.
// Inactive and service products cannot appear on stock documents.
func (r *PostingResolver) ProductInfo(ctx context.Context, productID id.ID) (posting.ProductInfo, error) {
	p, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return posting.ProductInfo{}, err
	}

	if !p.IsActive {
		return posting.ProductInfo{}, apperror.NewValidation("product is not active").
			WithDetail("product_id", productID.String())
	}
	if !p.IsStockable() {
		return posting.ProductInfo{}, apperror.NewValidation("product is not stockable").
			WithDetail("product_id", productID.String()).
			WithDetail("type", string(p.Type))
	}

	units, err := p.UnitSet()
	if err != nil {
		return posting.ProductInfo{}, err
	}

	return posting.ProductInfo{
		Units:        units,
		StandardCost: p.StandardCost,
	}, nil
}

// BalanceForUpdate reads the current stock level under a row lock.
func (r *PostingResolver) BalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return r.stock.GetBalanceForUpdate(ctx, warehouseID, productID)
}

var _ posting.Resolver = (*PostingResolver)(nil)
