package handler

import (
	"job-board/internal/location"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// LocationsHandler serves the reference data behind the cascading
// country/state/city selectors. Lookups are pure; children of an unknown
// parent are simply empty.
type LocationsHandler struct{}

func NewLocationsHandler() *LocationsHandler {
	return &LocationsHandler{}
}

func (h *LocationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/locations/countries", h.Countries)
	r.Get("/locations/countries/:country/states", h.States)
	r.Get("/locations/countries/:country/states/:state/cities", h.Cities)
}

func (h *LocationsHandler) Countries(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, "success", location.Countries())
}

func (h *LocationsHandler) States(c fiber.Ctx) error {
	states := location.StatesOf(c.Params("country"))
	if states == nil {
		states = []location.State{}
	}
	return response.Success(c, fiber.StatusOK, "success", states)
}

func (h *LocationsHandler) Cities(c fiber.Ctx) error {
	cities := location.CitiesOf(c.Params("country"), c.Params("state"))
	if cities == nil {
		cities = []string{}
	}
	return response.Success(c, fiber.StatusOK, "success", cities)
}
