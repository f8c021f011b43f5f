// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "invetra/internal/core/context"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
)

// UserContext reads the actor identity from trusted headers and puts it on the
// request context. The subsystem does not authenticate; an upstream gateway is
// expected to have validated these headers.
//
// The actor is available to the domain layer via appctx.GetUser(ctx) and ends
// up in created_by/posted_by fields and audit entries.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID != "" {
			user := &appctx.UserContext{
				UserID: userID,
				Email:  c.GetHeader(HeaderUserEmail),
			}
			ctx := appctx.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
