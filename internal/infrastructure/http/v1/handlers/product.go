package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"invetra/internal/core/apperror"
	"invetra/internal/core/id"
	"invetra/internal/domain"
	"invetra/internal/domain/catalogs/product"
	"invetra/internal/infrastructure/http/v1/dto"
)

// ProductHTTPHandler is a typed alias over the generic catalog handler.
type ProductHTTPHandler = CatalogHandler[
	*product.Product,
	dto.CreateProductRequest,
	dto.UpdateProductRequest,
]

// NewProductHandler wires the product catalog service into HTTP routes.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
) *ProductHTTPHandler {

	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *product.Product) any {
			return dto.FromProduct(entity)
		},
	}

	return NewCatalogHandler(base, config)
}

// ProductLookupHandler serves product routes beyond the generic catalog CRUD.
type ProductLookupHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductLookupHandler creates the lookup handler.
func NewProductLookupHandler(base *BaseHandler, service *product.Service) *ProductLookupHandler {
	return &ProductLookupHandler{BaseHandler: base, service: service}
}

// FindBySKU handles GET /products/by-sku/:sku
func (h *ProductLookupHandler) FindBySKU(c *gin.Context) {
	p, err := h.service.FindBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// FindByBarcode handles GET /products/by-barcode/:barcode
func (h *ProductLookupHandler) FindByBarcode(c *gin.Context) {
	p, err := h.service.FindByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// FindLowStock handles GET /products/low-stock - products whose total
// on-hand quantity is at or below their minimum stock level.
func (h *ProductLookupHandler) FindLowStock(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindLowStock(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromProduct(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// ConvertQuantity handles GET /products/:id/convert?quantity=&from=&to=
// It converts a quantity between any two units defined on the product.
func (h *ProductLookupHandler) ConvertQuantity(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	qty, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid quantity").WithDetail("field", "quantity"))
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		h.Error(c, apperror.NewValidation("from and to units are required"))
		return
	}

	set, err := h.service.UnitSetFor(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := set.Convert(qty, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConvertQuantityResponse{
		ProductID: productID.String(),
		Quantity:  qty,
		FromUnit:  from,
		ToUnit:    to,
		Result:    result,
	})
}
