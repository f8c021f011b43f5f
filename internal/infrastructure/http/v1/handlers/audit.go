package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invetra/internal/core/apperror"
	"invetra/internal/core/id"
	"invetra/internal/infrastructure/http/v1/dto"
	"invetra/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the entity change history.
type AuditHandler struct {
	*BaseHandler
	service *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetEntityHistory handles GET /audit/:entityType/:entityId
func (h *AuditHandler) GetEntityHistory(c *gin.Context) {
	ctx := c.Request.Context()

	entityType := c.Param("entityType")
	entityID, err := id.Parse(c.Param("entityId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid entityId format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	entries, err := h.service.GetEntityHistory(ctx, entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.FromAuditEntry(e)
	}

	c.JSON(http.StatusOK, dto.AuditHistoryResponse{Items: items})
}

// RegisterRoutes registers audit routes.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entityType/:entityId", h.GetEntityHistory)
}
