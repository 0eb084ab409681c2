package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"motorlot/internal/errors"
	"motorlot/internal/repository"
	"motorlot/internal/service"
)

// ManagerHandler handles manager administration endpoints.
type ManagerHandler struct {
	managerService service.ManagerService
}

// NewManagerHandler creates a new manager handler.
func NewManagerHandler(managerService service.ManagerService) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// CreateManagerRequest represents a manager provisioning request.
type CreateManagerRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=6"`
	FirstName   string          `json:"firstName" validate:"required"`
	LastName    string          `json:"lastName" validate:"required"`
	Phone       string          `json:"phone"`
	EmployeeID  string          `json:"employeeId" validate:"required"`
	Department  string          `json:"department" validate:"required"`
	Salary      decimal.Decimal `json:"salary"`
	Permissions []string        `json:"permissions"`
}

// UpdateManagerRequest represents a partial manager update request.
type UpdateManagerRequest struct {
	EmployeeID  *string          `json:"employeeId"`
	Department  *string          `json:"department"`
	Salary      *decimal.Decimal `json:"salary"`
	Permissions *[]string        `json:"permissions"`
}

// ListManagers godoc
// @Summary List managers
// @Tags managers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Param department query string false "Department substring"
// @Success 200 {object} Response
// @Router /managers [get]
func (h *ManagerHandler) ListManagers(c echo.Context) error {
	values := c.QueryParams()
	opts := service.ParsePersonListOptions(values)

	var filters repository.ManagerFilters
	if department := values.Get("department"); department != "" {
		filters.Department = &department
	}

	managers, pagination, err := h.managerService.ListManagers(c.Request().Context(), filters, opts)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, "Managers retrieved successfully", managers, pagination)
}

// GetManager godoc
// @Summary Get a manager by ID
// @Tags managers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manager ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /managers/{id} [get]
func (h *ManagerHandler) GetManager(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrManagerNotFound)
	}

	manager, err := h.managerService.GetManager(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Manager retrieved successfully", manager)
}

// CreateManager godoc
// @Summary Create a manager with its user account
// @Tags managers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateManagerRequest true "Manager data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /managers [post]
func (h *ManagerHandler) CreateManager(c echo.Context) error {
	var req CreateManagerRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	manager, err := h.managerService.CreateManager(c.Request().Context(), service.CreateManagerInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		EmployeeID:  req.EmployeeID,
		Department:  req.Department,
		Salary:      req.Salary,
		Permissions: req.Permissions,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Manager created successfully", manager)
}

// UpdateManager godoc
// @Summary Update a manager
// @Tags managers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manager ID"
// @Param request body UpdateManagerRequest true "Manager fields"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /managers/{id} [put]
func (h *ManagerHandler) UpdateManager(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrManagerNotFound)
	}

	var req UpdateManagerRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	manager, err := h.managerService.UpdateManager(c.Request().Context(), id, service.ManagerPatch{
		EmployeeID:  req.EmployeeID,
		Department:  req.Department,
		Salary:      req.Salary,
		Permissions: req.Permissions,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Manager updated successfully", manager)
}

// DeleteManager godoc
// @Summary Delete a manager and its user account
// @Tags managers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Manager ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /managers/{id} [delete]
func (h *ManagerHandler) DeleteManager(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errors.ErrManagerNotFound)
	}

	if err := h.managerService.DeleteManager(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Manager deleted successfully", nil)
}

// GetManagerStats godoc
// @Summary Manager statistics
// @Tags managers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /managers/stats [get]
func (h *ManagerHandler) GetManagerStats(c echo.Context) error {
	stats, err := h.managerService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Manager statistics retrieved successfully", stats)
}
