package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
	"motorlot/internal/service"
)

// CustomerHandler handles customer administration endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// UpdateCustomerRequest represents a partial customer update request.
type UpdateCustomerRequest struct {
	Address         *AddressPayload `json:"address"`
	DrivingLicense  *string         `json:"drivingLicense"`
	PreferredBrands *[]string       `json:"preferredBrands"`
}

// AddPurchaseRequest represents a purchase-history append request.
type AddPurchaseRequest struct {
	CarID string `json:"carId" validate:"required,uuid"`
}

// ListCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Param city query string false "City substring"
// @Param state query string false "State substring"
// @Success 200 {object} Response
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	values := c.QueryParams()
	opts := service.ParsePersonListOptions(values)

	var filters repository.CustomerFilters
	if city := values.Get("city"); city != "" {
		filters.City = &city
	}
	if state := values.Get("state"); state != "" {
		filters.State = &state
	}

	customers, pagination, err := h.customerService.ListCustomers(c.Request().Context(), filters, opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, "Customers retrieved successfully", customers, pagination)
}

// GetCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCustomerNotFound)
	}

	customer, err := h.customerService.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customer retrieved successfully", customer)
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body UpdateCustomerRequest true "Customer fields"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCustomerNotFound)
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	patch := service.CustomerPatch{
		DrivingLicense:  req.DrivingLicense,
		PreferredBrands: req.PreferredBrands,
	}
	if req.Address != nil {
		patch.Address = &model.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
			Country: req.Address.Country,
		}
	}

	customer, err := h.customerService.UpdateCustomer(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customer updated successfully", customer)
}

// DeleteCustomer godoc
// @Summary Delete a customer and its user account
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCustomerNotFound)
	}

	if err := h.customerService.DeleteCustomer(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customer deleted successfully", nil)
}

// AddPurchase godoc
// @Summary Add a car to a customer's purchase history
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body AddPurchaseRequest true "Car reference"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /customers/{id}/purchase [post]
func (h *CustomerHandler) AddPurchase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrCustomerNotFound)
	}

	var req AddPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return respondBadRequest(c, "invalid car ID")
	}

	customer, err := h.customerService.AddPurchase(c.Request().Context(), id, carID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Car added to purchase history successfully", customer)
}

// GetCustomerStats godoc
// @Summary Customer statistics
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /customers/stats [get]
func (h *CustomerHandler) GetCustomerStats(c echo.Context) error {
	stats, err := h.customerService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Customer statistics retrieved successfully", stats)
}
