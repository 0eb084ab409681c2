package main

import (
	"log"
	"net/http"
	"os"

	_ "motorlot/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"motorlot/internal/auth"
	"motorlot/internal/cache"
	"motorlot/internal/config"
	"motorlot/internal/db"
	"motorlot/internal/handler"
	"motorlot/internal/model"
	"motorlot/internal/repository"
	"motorlot/internal/router"
	"motorlot/internal/service"
)

// @title Motorlot Dealership API
// @version 1.0
// @description Car dealership API with inventory search, customer and manager administration, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			"customer_purchases",
			&model.Car{},
			&model.Category{},
			&model.Customer{},
			&model.Manager{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Car{},
		&model.Customer{},
		&model.Manager{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	customerRepo := repository.NewCustomerRepository(gormDB)
	managerRepo := repository.NewManagerRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, customerRepo, managerRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, customerRepo, managerRepo, jwtService)
	carService := service.NewCarService(carRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, carRepo)
	customerService := service.NewCustomerService(customerRepo, carRepo)
	managerService := service.NewManagerService(managerRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, profileService)
	carHandler := handler.NewCarHandler(carService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	customerHandler := handler.NewCustomerHandler(customerService)
	managerHandler := handler.NewManagerHandler(managerService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		carHandler,
		categoryHandler,
		customerHandler,
		managerHandler,
	)

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
