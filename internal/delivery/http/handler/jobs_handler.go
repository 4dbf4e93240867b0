package handler

import (
	"errors"
	"strconv"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const maxPageSize = 50

type JobsHandler struct {
	search usecase.JobSearchUsecase
	jobs   usecase.JobUsecase

	defaultPageSize int
}

func NewJobsHandler(search usecase.JobSearchUsecase, jobs usecase.JobUsecase, defaultPageSize int) *JobsHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &JobsHandler{search: search, jobs: jobs, defaultPageSize: defaultPageSize}
}

func (h *JobsHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs", h.List)
	r.Get("/jobs/:id", h.Get)
}

func (h *JobsHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me/jobs", h.ListMine)
	r.Post("/jobs", h.Create)
	r.Put("/jobs/:id", h.Update)
	r.Delete("/jobs/:id", h.Delete)
}

// List serves the public listing: no owner constraint.
func (h *JobsHandler) List(c fiber.Ctx) error {
	params, err := h.searchParamsFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	page, err := h.search.Search(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.FromResultPage(page, params.Page, params.PageSize))
}

// ListMine serves the dashboard listing, constrained to the authenticated
// principal. The owner id comes from the validated token, never the request.
func (h *JobsHandler) ListMine(c fiber.Ctx) error {
	ownerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params, err := h.searchParamsFromQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	params.OwnerID = &ownerID

	page, err := h.search.Search(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.FromResultPage(page, params.Page, params.PageSize))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	job, err := h.jobs.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.FromJob(job))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	ownerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, err := h.jobs.Create(c.Context(), ownerID, jobInputFromRequest(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "created", dto.FromJob(job))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	ownerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	job, err := h.jobs.Update(c.Context(), id, ownerID, jobInputFromRequest(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.FromJob(job))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	ownerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.jobs.Delete(c.Context(), id, ownerID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "deleted", nil)
}

func (h *JobsHandler) searchParamsFromQuery(c fiber.Ctx) (usecase.SearchParams, error) {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return usecase.SearchParams{}, err
	}
	pageSize, err := parseQueryIntStrict(c, "page_size", h.defaultPageSize)
	if err != nil {
		return usecase.SearchParams{}, err
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return usecase.SearchParams{
		Term:     c.Query("q"),
		JobType:  c.Query("job_type"),
		Country:  c.Query("country"),
		State:    c.Query("state"),
		PageSize: pageSize,
		Page:     page,
	}, nil
}

func jobInputFromRequest(req dto.JobRequest) usecase.JobInput {
	return usecase.JobInput{
		Title:           req.Title,
		CompanyName:     req.CompanyName,
		Description:     req.Description,
		LocationCountry: req.LocationCountry,
		LocationState:   req.LocationState,
		LocationCity:    req.LocationCity,
		JobType:         req.JobType,
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
