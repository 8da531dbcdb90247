package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-connect/internal/config"
	"job-connect/internal/delivery/http/handler"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/delivery/http/routes"
	v1 "job-connect/internal/delivery/http/routes/v1"
	"job-connect/internal/pkg/logger"
	"job-connect/internal/usecase"
	"job-connect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of c.
func New(c *Container) *App {
	cfg := c.Config
	log := logger.OrDiscard(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: int(cfg.Storage.MaxUploadSize) + 1<<20,
	})

	registerGlobalMiddleware(f, c)

	notifier := ws.NewNotifier(c.Hub)
	auth := usecase.NewAuthUsecase(c.Store, nil, c.JWT, c.Cache, log)
	skills := usecase.NewSkillUsecase(c.Store)

	handlers := v1.Handlers{
		Auth:             handler.NewAuthHandler(auth, middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst, log).Middleware()),
		Skill:            handler.NewSkillHandler(skills),
		Job:              handler.NewJobHandler(usecase.NewJobUsecase(c.Store, c.Cache, notifier, log)),
		ApplicantProfile: handler.NewApplicantProfileHandler(usecase.NewApplicantProfileUsecase(c.Store, c.Files, log), skills),
		RecruiterProfile: handler.NewRecruiterProfileHandler(usecase.NewRecruiterProfileUsecase(c.Store, c.Cache, log)),
		Application:      handler.NewApplicationHandler(usecase.NewApplicationUsecase(c.Store, c.Files, notifier, log)),
		Message:          handler.NewMessageHandler(usecase.NewMessageUsecase(c.Store, notifier)),
		Notifications:    ws.NewHandler(c.Hub, auth, log),
	}

	checks := map[string]handler.Pinger{"cache": c.Cache}
	if c.DB != nil {
		checks["database"] = c.DB
	}

	routes.NewRegistry(handler.NewHealthHandler(checks), middleware.NewAuthMiddleware(auth), handlers).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and app and starts the notification hub.
// The returned cleanup stops the hub and releases connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	log := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessLog.Middleware())
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
