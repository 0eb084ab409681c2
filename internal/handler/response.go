package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motorlot/internal/errors"
	"motorlot/internal/service"
)

// Response is the standard API envelope.
type Response struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *service.Pagination `json:"pagination,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Token      string              `json:"token,omitempty"`
	User       interface{}         `json:"user,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, message string, data interface{}, pagination service.Pagination) error {
	return c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
	})
}

// respondError maps a domain error onto the envelope with its status
// code. The handler layer is the only place taxonomy meets HTTP.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, Response{Success: false, Message: httpErr.Message})
}

func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}
