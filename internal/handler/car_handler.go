package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/service"
)

// CarHandler handles car inventory endpoints.
type CarHandler struct {
	carService service.CarService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CreateCarRequest represents a car creation request.
type CreateCarRequest struct {
	Brand        string          `json:"brand" validate:"required"`
	Model        string          `json:"model" validate:"required"`
	Year         int             `json:"year" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Color        string          `json:"color" validate:"required"`
	Mileage      int             `json:"mileage"`
	FuelType     string          `json:"fuelType" validate:"required,oneof=gasoline diesel electric hybrid"`
	Transmission string          `json:"transmission" validate:"required,oneof=manual automatic"`
	BodyType     string          `json:"bodyType" validate:"required"`
	Engine       string          `json:"engine" validate:"required"`
	Features     []string        `json:"features"`
	IsAvailable  *bool           `json:"isAvailable"`
	Category     string          `json:"category" validate:"required,uuid"`
	Images       []string        `json:"images"`
	Description  string          `json:"description"`
}

// UpdateCarRequest represents a partial car update request.
type UpdateCarRequest struct {
	Brand        *string          `json:"brand"`
	Model        *string          `json:"model"`
	Year         *int             `json:"year"`
	Price        *decimal.Decimal `json:"price"`
	Color        *string          `json:"color"`
	Mileage      *int             `json:"mileage"`
	FuelType     *string          `json:"fuelType" validate:"omitempty,oneof=gasoline diesel electric hybrid"`
	Transmission *string          `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	BodyType     *string          `json:"bodyType"`
	Engine       *string          `json:"engine"`
	Features     *[]string        `json:"features"`
	IsAvailable  *bool            `json:"isAvailable"`
	Category     *string          `json:"category" validate:"omitempty,uuid"`
	Images       *[]string        `json:"images"`
	Description  *string          `json:"description"`
}

// ListCars godoc
// @Summary List cars with filters, search and pagination
// @Tags cars
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Param search query string false "Free-text search; ignores all other filters"
// @Param brand query string false "Brand substring"
// @Param model query string false "Model substring"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minYear query int false "Minimum year"
// @Param maxYear query int false "Maximum year"
// @Param minMileage query int false "Minimum mileage"
// @Param maxMileage query int false "Maximum mileage"
// @Param color query string false "Color substring"
// @Param fuelType query string false "Fuel type"
// @Param transmission query string false "Transmission"
// @Param bodyType query string false "Body type substring"
// @Param isAvailable query string false "true for available, any other value for unavailable"
// @Param category query string false "Category ID"
// @Success 200 {object} Response
// @Router /cars [get]
func (h *CarHandler) ListCars(c echo.Context) error {
	values := c.QueryParams()
	opts := service.ParseCarListOptions(values)

	// Free-text search is mutually exclusive with structured filters
	// and carries no pagination envelope.
	if term := values.Get("search"); term != "" {
		cars, err := h.carService.SearchCars(c.Request().Context(), term, opts.Limit)
		if err != nil {
			return respondError(c, err)
		}
		count := len(cars)
		return c.JSON(http.StatusOK, Response{
			Success: true,
			Message: "Search results retrieved successfully",
			Data:    cars,
			Count:   &count,
		})
	}

	filters := service.ParseCarFilters(values)
	cars, pagination, err := h.carService.ListCars(c.Request().Context(), filters, opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, "Cars retrieved successfully", cars, pagination)
}

// GetCar godoc
// @Summary Get a car by ID
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /cars/{id} [get]
func (h *CarHandler) GetCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCarNotFound)
	}

	car, err := h.carService.GetCar(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Car retrieved successfully", car)
}

// CreateCar godoc
// @Summary Create a car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCarRequest true "Car data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /cars [post]
func (h *CarHandler) CreateCar(c echo.Context) error {
	var req CreateCarRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	categoryID, err := uuid.Parse(req.Category)
	if err != nil {
		return respondBadRequest(c, "invalid category ID")
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	car := &model.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Color:        req.Color,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Engine:       req.Engine,
		Features:     req.Features,
		IsAvailable:  available,
		CategoryID:   categoryID,
		Images:       req.Images,
		Description:  req.Description,
	}

	created, err := h.carService.CreateCar(c.Request().Context(), car)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Car created successfully", created)
}

// UpdateCar godoc
// @Summary Update a car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body UpdateCarRequest true "Car fields"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /cars/{id} [put]
func (h *CarHandler) UpdateCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCarNotFound)
	}

	var req UpdateCarRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	patch := service.CarPatch{
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Color:        req.Color,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Engine:       req.Engine,
		Features:     req.Features,
		IsAvailable:  req.IsAvailable,
		Images:       req.Images,
		Description:  req.Description,
	}
	if req.Category != nil {
		categoryID, err := uuid.Parse(*req.Category)
		if err != nil {
			return respondBadRequest(c, "invalid category ID")
		}
		patch.CategoryID = &categoryID
	}

	car, err := h.carService.UpdateCar(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Car updated successfully", car)
}

// DeleteCar godoc
// @Summary Delete a car
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /cars/{id} [delete]
func (h *CarHandler) DeleteCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCarNotFound)
	}

	if err := h.carService.DeleteCar(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Car deleted successfully", nil)
}

// GetCarStats godoc
// @Summary Car inventory statistics
// @Tags cars
// @Produce json
// @Success 200 {object} Response
// @Router /cars/stats [get]
func (h *CarHandler) GetCarStats(c echo.Context) error {
	stats, err := h.carService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Car statistics retrieved successfully", stats)
}
