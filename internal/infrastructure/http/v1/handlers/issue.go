package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invetra/internal/core/entity"
	"invetra/internal/core/id"
	"invetra/internal/domain"
	"invetra/internal/domain/documents/issue"
	"invetra/internal/infrastructure/http/v1/dto"
)

// IssueHandler handles HTTP requests for Issue documents.
type IssueHandler struct {
	*BaseDocumentHandler[*issue.Issue, dto.CreateIssueRequest, dto.UpdateIssueRequest]
	service *issue.Service
}

// NewIssueHandler creates a new issue handler.
func NewIssueHandler(base *BaseHandler, service *issue.Service) *IssueHandler {
	cfg := BaseDocumentHandlerConfig[*issue.Issue, dto.CreateIssueRequest, dto.UpdateIssueRequest]{
		Service:    service,
		EntityName: "issue",
		MapCreateDTO: func(req dto.CreateIssueRequest) *issue.Issue {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateIssueRequest, existing *issue.Issue) *issue.Issue {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(entity *issue.Issue) any {
			return dto.FromIssue(entity)
		},
	}

	return &IssueHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

// List handles GET /documents/issues - list with filtering.
func (h *IssueHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := issue.ListFilter{
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

	items := make([]*dto.IssueResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromIssue(doc)
	}

	c.JSON(http.StatusOK, dto.IssueListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers issue routes.
func (h *IssueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	h.BaseDocumentHandler.RegisterRoutes(rg)
}
