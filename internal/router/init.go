package router

import (
	"github.com/Rafid41/LMS/internal/application"
	"github.com/Rafid41/LMS/internal/container"
	pginfra "github.com/Rafid41/LMS/internal/infrastructure/postgres"
	handlers "github.com/Rafid41/LMS/internal/interface/http"
	"github.com/Rafid41/LMS/internal/router/modules"
)

// InitModules builds every service and handler from the container
// singletons and registers the feature modules with the registry.
// Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	pending := pginfra.NewPendingRegistrationRepository(pool)
	tokens := pginfra.NewTokenRepository(pool)
	common := pginfra.NewCommonProfileRepository(pool)
	learners := pginfra.NewLearnerProfileRepository(pool)
	instructors := pginfra.NewInstructorProfileRepository(pool)
	themes := pginfra.NewThemeRepository(pool)
	refs := pginfra.NewReferenceRepository(pool)

	var search *application.SearchIndexer
	if es := container.GetES(); es != nil {
		search = application.NewSearchIndexer(es, cfg.ESUsersIndex, logger)
	}

	authSvc := application.NewAuthService(users, pending, tokens,
		container.GetMailer(), container.GetRabbitPub(), container.GetRedis(),
		search, logger, cfg)
	profileSvc := application.NewProfileService(users, common, learners, instructors,
		container.GetGCS(), search, logger, cfg)
	refSvc := application.NewReferenceService(refs)
	themeSvc := application.NewThemeService(themes)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), authSvc))
	r.Add(modules.NewProfileModule(
		handlers.NewProfileHandler(profileSvc, logger),
		handlers.NewThemeHandler(themeSvc, logger),
		authSvc,
	))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(refSvc, search, logger), authSvc))
}
