package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rafid41/LMS/internal/container"
	"github.com/Rafid41/LMS/internal/domain/entity"
	handlers "github.com/Rafid41/LMS/internal/interface/http"
	"github.com/Rafid41/LMS/internal/interface/middleware"
)

// ProfileModule owns the authenticated learner/instructor profile and
// theme routes.
type ProfileModule struct {
	Profiles *handlers.ProfileHandler
	Themes   *handlers.ThemeHandler
	Resolver middleware.TokenResolver
}

func NewProfileModule(p *handlers.ProfileHandler, t *handlers.ThemeHandler, resolver middleware.TokenResolver) *ProfileModule {
	return &ProfileModule{Profiles: p, Themes: t, Resolver: resolver}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/auth/profile", m.Profiles.GetCommon)
		auth.PATCH("/auth/profile", m.Profiles.UpdateCommon)
		auth.POST("/auth/profile/photo", m.Profiles.UploadPhoto)
		auth.GET("/theme", m.Themes.Get)
		auth.POST("/theme", m.Themes.Set)

		learner := auth.Group("/learner", middleware.RequireRole(entity.RoleStudent))
		learner.GET("/profile", m.Profiles.GetLearner)
		learner.PATCH("/profile", m.Profiles.UpdateLearner)

		instructor := auth.Group("/instructor", middleware.RequireRole(entity.RoleTeacher))
		instructor.GET("/profile", m.Profiles.GetInstructor)
		instructor.PATCH("/profile", m.Profiles.UpdateInstructor)
	}
}
