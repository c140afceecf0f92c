package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rafid41/LMS/internal/domain/entity"
	"github.com/Rafid41/LMS/pkg/response"
)

// TokenResolver maps an opaque bearer key to its account and role.
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*entity.User, entity.Role, error)
}

// bearerKey accepts both "Token <key>" and "Bearer <key>" schemes.
func bearerKey(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Auth validates the Authorization header and sets userID, userEmail
// and userRole in the context on success.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearerKey(c.GetHeader("Authorization"))
		if key == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing or malformed authorization header", nil)
			c.Abort()
			return
		}

		u, role, err := resolver.ResolveToken(c.Request.Context(), key)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}

		c.Set("userID", u.ID)
		c.Set("userEmail", u.Email)
		c.Set("userRole", role.String())
		c.Next()
	}
}

// RequireRole gates a route group to one role; run after Auth.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != role.String() {
			response.Error[any](c, http.StatusForbidden, "insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
