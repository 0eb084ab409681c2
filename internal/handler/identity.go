package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"motorlot/internal/auth"
	"motorlot/internal/service"
)

// identityFromContext extracts the authenticated identity parsed by
// the JWT middleware.
func identityFromContext(c echo.Context) (service.Identity, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return service.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return service.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return service.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	return service.Identity{UserID: userID, Role: claims.Role}, nil
}
