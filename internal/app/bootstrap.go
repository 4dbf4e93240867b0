package app

import (
	"fmt"
	"log"
	"strings"

	"job-board/internal/config"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap builds the container (DB, migrations, cache), wires middleware
// and routes, and returns the app plus its cleanup.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: container.Config.App.AppName,
	})

	logger := log.Default()
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	routes.Register(f, routes.Deps{
		Config: container.Config,
		DB:     container.DB,
		Cache:  container.Cache,
		Logger: logger,
	})

	return &App{Fiber: f}, container.Close, nil
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
