package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rafid41/LMS/internal/container"
	"github.com/Rafid41/LMS/internal/domain/entity"
	handlers "github.com/Rafid41/LMS/internal/interface/http"
	"github.com/Rafid41/LMS/internal/interface/middleware"
)

// AdminModule owns the reference-data CRUD and account search, all
// behind the admin role gate.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Resolver middleware.TokenResolver
}

func NewAdminModule(h *handlers.AdminHandler, resolver middleware.TokenResolver) *AdminModule {
	return &AdminModule{Handler: h, Resolver: resolver}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Resolver))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	admin.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID()))
	{
		admin.GET("/subject-tags", m.Handler.ListSubjectTags)
		admin.POST("/subject-tags", m.Handler.CreateSubjectTag)
		admin.PUT("/subject-tags/:id", m.Handler.UpdateSubjectTag)
		admin.DELETE("/subject-tags/:id", m.Handler.DeleteSubjectTag)

		admin.GET("/timezones", m.Handler.ListTimezones)
		admin.POST("/timezones", m.Handler.CreateTimezone)
		admin.PUT("/timezones/:id", m.Handler.UpdateTimezone)
		admin.DELETE("/timezones/:id", m.Handler.DeleteTimezone)

		admin.GET("/languages", m.Handler.ListLanguages)
		admin.POST("/languages", m.Handler.CreateLanguage)
		admin.PUT("/languages/:id", m.Handler.UpdateLanguage)
		admin.DELETE("/languages/:id", m.Handler.DeleteLanguage)

		admin.GET("/users/search", m.Handler.SearchUsers)
	}
}
