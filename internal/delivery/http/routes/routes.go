package routes

import (
	"job-connect/internal/access"
	"job-connect/internal/delivery/http/handler"
	"job-connect/internal/delivery/http/middleware"
	v1 "job-connect/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	auth   *middleware.AuthMiddleware
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, auth *middleware.AuthMiddleware, handlers v1.Handlers) *Registry {
	return &Registry{health: health, auth: auth, v1: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group(access.APIPrefix)
	if r.auth != nil {
		api.Use(r.auth.Middleware())
	}
	RegisterV1(api, r.v1)
}
