package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Rafid41/LMS/internal/domain/entity"
)

type stubResolver struct {
	key  string
	user *entity.User
	role entity.Role
}

func (s *stubResolver) ResolveToken(_ context.Context, key string) (*entity.User, entity.Role, error) {
	if key == s.key {
		return s.user, s.role, nil
	}
	return nil, "", errors.New("unknown token")
}

func newAuthRouter(resolver TokenResolver, gate ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Auth(resolver)}, gate...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("userID"),
			"email":   c.GetString("userEmail"),
			"role":    c.GetString("userRole"),
		})
	})
	r.GET("/me", chain...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsTokenAndBearerSchemes(t *testing.T) {
	resolver := &stubResolver{
		key:  "abc123",
		user: &entity.User{ID: "u1", Email: "alice@example.com"},
		role: entity.RoleStudent,
	}
	r := newAuthRouter(resolver)

	for _, header := range []string{"Token abc123", "Bearer abc123", "token abc123"} {
		w := get(r, header)
		assert.Equal(t, http.StatusOK, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
		assert.Contains(t, w.Body.String(), `"role":"student"`)
	}
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter(&stubResolver{})

	for _, header := range []string{"", "abc123", "Basic abc123", "Token "} {
		w := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	r := newAuthRouter(&stubResolver{key: "abc123"})
	w := get(r, "Token nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	resolver := &stubResolver{
		key:  "abc123",
		user: &entity.User{ID: "u1", Email: "alice@example.com"},
		role: entity.RoleStudent,
	}

	admin := newAuthRouter(resolver, RequireRole(entity.RoleAdmin))
	w := get(admin, "Token abc123")
	assert.Equal(t, http.StatusForbidden, w.Code)

	student := newAuthRouter(resolver, RequireRole(entity.RoleStudent))
	w = get(student, "Token abc123")
	assert.Equal(t, http.StatusOK, w.Code)
}
