package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invetra/internal/core/apperror"
	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
	"invetra/internal/domain/documents/adjustment"
	"invetra/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler handles HTTP requests for Adjustment documents.
type AdjustmentHandler struct {
	*BaseDocumentHandler[*adjustment.Adjustment, dto.CreateAdjustmentRequest, dto.UpdateAdjustmentRequest]
	service *adjustment.Service
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	cfg := BaseDocumentHandlerConfig[*adjustment.Adjustment, dto.CreateAdjustmentRequest, dto.UpdateAdjustmentRequest]{
		Service:    service,
		EntityName: "adjustment",
		MapCreateDTO: func(req dto.CreateAdjustmentRequest) *adjustment.Adjustment {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateAdjustmentRequest, existing *adjustment.Adjustment) *adjustment.Adjustment {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *adjustment.Adjustment) any {
			return dto.FromAdjustment(entity)
		},
	}

	return &AdjustmentHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /documents/adjustments - list with filtering.
func (h *AdjustmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := adjustment.ListFilter{
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

	items := make([]*dto.AdjustmentResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromAdjustment(doc)
	}

	c.JSON(http.StatusOK, dto.AdjustmentListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Reverse handles POST /documents/adjustments/:id/reverse - creates a draft
// that negates the posted document's ledger effect.
func (h *AdjustmentHandler) Reverse(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Reverse(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromAdjustment(doc)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// RegisterRoutes registers adjustment routes.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("/:id/reverse", h.Reverse)
	h.BaseDocumentHandler.RegisterRoutes(rg)
}
