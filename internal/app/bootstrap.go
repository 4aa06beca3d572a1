package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobmatch/internal/config"
	"jobmatch/internal/delivery/http/middleware"
	"jobmatch/internal/delivery/http/routes"
	"jobmatch/internal/scheduler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Scheduler *scheduler.Scheduler
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(c.Matches).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, the HTTP app and the optional warm-up
// scheduler. The returned cleanup stops the scheduler and releases backends.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)

	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Refresh.Interval > 0 {
		s, err := scheduler.New(c.Matches, cfg.Refresh.Interval, c.Logger)
		if err != nil {
			cancel()
			_ = c.Close()
			return nil, nil, err
		}
		if err := s.Start(ctx); err != nil {
			cancel()
			_ = c.Close()
			return nil, nil, err
		}
		app.Scheduler = s
	}

	cleanup := func() error {
		cancel()
		if app.Scheduler != nil {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			app.Scheduler.Stop(stopCtx)
		}
		return c.Close()
	}

	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: c.Config.App.CORSOrigins}))
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
