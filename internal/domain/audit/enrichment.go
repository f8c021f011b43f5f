// Package audit provides utilities for audit field enrichment in domain entities.
package audit

import (
	"context"

	appctx "invetra/internal/core/context"
)

// actorID returns the user ID from the request context, or empty string.
func actorID(ctx context.Context) string {
	if user := appctx.GetUser(ctx); user != nil {
		return user.UserID
	}
	return ""
}

// EnrichCreatedByDirect sets CreatedBy and UpdatedBy from the context user.
// Use in BeforeCreate hooks. No-op when no user is in context.
func EnrichCreatedByDirect(ctx context.Context, createdBy, updatedBy *string) {
	userID := actorID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedByDirect sets UpdatedBy from the context user.
// Use in BeforeUpdate hooks.
func EnrichUpdatedByDirect(ctx context.Context, updatedBy *string) {
	userID := actorID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
