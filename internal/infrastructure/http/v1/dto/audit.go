package dto

import (
	"encoding/json"
	"time"

	"invetra/internal/infrastructure/storage/postgres"
)

// AuditEntryResponse is a single entity change record.
type AuditEntryResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	UserID     string          `json:"userId,omitempty"`
	UserEmail  string          `json:"userEmail,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FromAuditEntry converts a storage audit entry. Compressed payloads are
// already decompressed by the audit service before they reach here.
func FromAuditEntry(e postgres.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Action:     string(e.Action),
		UserID:     e.UserID,
		UserEmail:  e.UserEmail,
		Changes:    e.Changes,
		CreatedAt:  e.CreatedAt,
	}
}

// AuditHistoryResponse is the entity history list.
type AuditHistoryResponse struct {
	Items []AuditEntryResponse `json:"items"`
}
