package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
	"invetra/internal/domain/documents/transfer"
	"invetra/internal/infrastructure/http/v1/dto"
)

// TransferHandler handles HTTP requests for Transfer documents.
type TransferHandler struct {
	*BaseDocumentHandler[*transfer.Transfer, dto.CreateTransferRequest, dto.UpdateTransferRequest]
	service *transfer.Service
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	cfg := BaseDocumentHandlerConfig[*transfer.Transfer, dto.CreateTransferRequest, dto.UpdateTransferRequest]{
		Service:    service,
		EntityName: "transfer",
		MapCreateDTO: func(req dto.CreateTransferRequest) *transfer.Transfer {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateTransferRequest, existing *transfer.Transfer) *transfer.Transfer {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *transfer.Transfer) any {
			return dto.FromTransfer(entity)
		},
	}

	return &TransferHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /documents/transfers - list with filtering.
func (h *TransferHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := transfer.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if warehouseID := c.Query("sourceWarehouseId"); warehouseID != "" {
		if parsed, err := id.Parse(warehouseID); err == nil {
			filter.SourceWarehouseID = &parsed
		}
	}

	if warehouseID := c.Query("destWarehouseId"); warehouseID != "" {
		if parsed, err := id.Parse(warehouseID); err == nil {
			filter.DestWarehouseID = &parsed
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

	items := make([]*dto.TransferResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromTransfer(doc)
	}

	c.JSON(http.StatusOK, dto.TransferListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers transfer routes.
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	h.BaseDocumentHandler.RegisterRoutes(rg)
}
