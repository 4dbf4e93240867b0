package v1

import (
	"log"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/sanitize"
	"job-board/internal/repository"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  usecase.SearchCache
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	searchUC := usecase.NewJobSearchUsecase(jobRepo, deps.Cache, deps.Logger)
	jobUC := usecase.NewJobUsecase(jobRepo, sanitize.NewDescription(), deps.Cache, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	jobsHandler := handler.NewJobsHandler(searchUC, jobUC, deps.Config.Search.PageSize)
	locationsHandler := handler.NewLocationsHandler()

	authHandler.RegisterRoutes(r.Group("/auth"))
	locationsHandler.RegisterRoutes(r)
	jobsHandler.RegisterPublicRoutes(r)

	protected := r.Group("", authMw.Middleware())
	jobsHandler.RegisterProtectedRoutes(protected)
}
