package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"motorlot/internal/auth"
	"motorlot/internal/config"
	"motorlot/internal/handler"
	"motorlot/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	carHandler *handler.CarHandler,
	categoryHandler *handler.CategoryHandler,
	customerHandler *handler.CustomerHandler,
	managerHandler *handler.ManagerHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/cars", carHandler.ListCars)
	api.GET("/cars/stats", carHandler.GetCarStats)
	api.GET("/cars/:id", carHandler.GetCar)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)

	// Secured routes (require JWT authentication)
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	secured := api.Group("", jwtMiddleware)

	secured.GET("/auth/profile", authHandler.GetProfile)
	secured.PUT("/auth/profile", authHandler.UpdateProfile)
	secured.PUT("/auth/profile/account", authHandler.UpdateAccount)

	// Staff routes (manager or admin)
	staff := api.Group("", jwtMiddleware, RequireRoles(model.RoleManager, model.RoleAdmin))

	staff.POST("/cars", carHandler.CreateCar)
	staff.PUT("/cars/:id", carHandler.UpdateCar)
	staff.DELETE("/cars/:id", carHandler.DeleteCar)

	staff.POST("/categories", categoryHandler.CreateCategory)
	staff.PUT("/categories/:id", categoryHandler.UpdateCategory)
	staff.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	staff.GET("/customers", customerHandler.ListCustomers)
	staff.GET("/customers/stats", customerHandler.GetCustomerStats)
	staff.GET("/customers/:id", customerHandler.GetCustomer)
	staff.PUT("/customers/:id", customerHandler.UpdateCustomer)
	staff.POST("/customers/:id/purchase", customerHandler.AddPurchase)

	// Admin-only routes
	admin := api.Group("", jwtMiddleware, RequireRoles(model.RoleAdmin))

	admin.DELETE("/customers/:id", customerHandler.DeleteCustomer)

	admin.GET("/managers", managerHandler.ListManagers)
	admin.GET("/managers/stats", managerHandler.GetManagerStats)
	admin.GET("/managers/:id", managerHandler.GetManager)
	admin.POST("/managers", managerHandler.CreateManager)
	admin.PUT("/managers/:id", managerHandler.UpdateManager)
	admin.DELETE("/managers/:id", managerHandler.DeleteManager)
}

// RequireRoles rejects authenticated requests whose token role is not
// in the allowed set.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
