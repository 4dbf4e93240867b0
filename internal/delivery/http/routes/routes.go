package routes

import (
	"log"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  usecase.SearchCache
	Logger *log.Logger
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(deps.DB).RegisterRoutes(app)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), deps)
}
