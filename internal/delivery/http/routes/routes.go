package routes

import (
	"jobmatch/internal/delivery/http/handler"
	"jobmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	jobs   *handler.JobsHandler
}

func NewRegistry(matches usecase.MatchUsecase) *Registry {
	return &Registry{
		health: handler.NewHealthHandler(),
		jobs:   handler.NewJobsHandler(matches),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	api := app.Group("/api")
	r.health.RegisterRoutes(api)
	r.jobs.RegisterRoutes(api.Group("/jobs"))
}
