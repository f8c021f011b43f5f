package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
	"invetra/internal/domain/documents/receipt"
	"invetra/internal/infrastructure/http/v1/dto"
)

// ReceiptHandler handles HTTP requests for Receipt documents.
type ReceiptHandler struct {
	*BaseDocumentHandler[*receipt.Receipt, dto.CreateReceiptRequest, dto.UpdateReceiptRequest]
	service *receipt.Service
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(base *BaseHandler, service *receipt.Service) *ReceiptHandler {
	cfg := BaseDocumentHandlerConfig[*receipt.Receipt, dto.CreateReceiptRequest, dto.UpdateReceiptRequest]{
		Service:    service,
		EntityName: "receipt",
		MapCreateDTO: func(req dto.CreateReceiptRequest) *receipt.Receipt {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateReceiptRequest, existing *receipt.Receipt) *receipt.Receipt {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *receipt.Receipt) any {
			return dto.FromReceipt(entity)
		},
	}

	return &ReceiptHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /documents/receipts - list with filtering.
func (h *ReceiptHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := receipt.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if warehouseID := c.Query("warehouseId"); warehouseID != "" {
		if parsed, err := id.Parse(warehouseID); err == nil {
			filter.WarehouseID = &parsed
		}
	}

	if status := c.Query("status"); status != "" {
		val := entity.DocumentStatus(status)
		filter.Status = &val
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.ReceiptResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromReceipt(doc)
	}

	c.JSON(http.StatusOK, dto.ReceiptListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers receipt routes.
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	h.BaseDocumentHandler.RegisterRoutes(rg)
}
