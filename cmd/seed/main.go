package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motorlot/internal/config"
	"motorlot/internal/db"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Car{},
		&model.Customer{},
		&model.Manager{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	categoryRepo := repository.NewCategoryRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	ctx := context.Background()

	categories, err := seedCategories(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	created, err := seedCars(ctx, carRepo, categories)
	if err != nil {
		log.Fatalf("Failed to seed cars: %v", err)
	}

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Categories present: %d", len(categories))
	log.Printf("  - New cars created: %d", created)
}

// seedCategories creates the default categories if missing and returns
// all of them keyed by name.
func seedCategories(ctx context.Context, repo repository.CategoryRepository) (map[string]*model.Category, error) {
	defaults := []model.Category{
		{Name: "Sedan", Description: "Four-door passenger cars"},
		{Name: "SUV", Description: "Sport utility vehicles"},
		{Name: "Hatchback", Description: "Compact cars with a rear hatch"},
		{Name: "Truck", Description: "Pickup trucks and light commercial vehicles"},
		{Name: "Electric", Description: "Battery electric vehicles"},
	}

	result := make(map[string]*model.Category, len(defaults))
	for i := range defaults {
		existing, err := repo.FindByName(ctx, defaults[i].Name)
		if err == nil {
			result[existing.Name] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err := repo.Create(ctx, &defaults[i]); err != nil {
			return nil, err
		}
		log.Printf("Created category %q", defaults[i].Name)
		result[defaults[i].Name] = &defaults[i]
	}
	return result, nil
}

// seedCars inserts demo inventory when the inventory is empty.
func seedCars(ctx context.Context, repo repository.CarRepository, categories map[string]*model.Category) (int, error) {
	_, total, err := repo.List(ctx, repository.CarFilters{}, repository.ListOptions{Page: 1, Limit: 1})
	if err != nil {
		return 0, err
	}
	if total > 0 {
		log.Printf("Inventory already has %d cars, skipping car seed", total)
		return 0, nil
	}

	cars := []model.Car{
		{
			Brand: "Toyota", Model: "Camry", Year: 2023,
			Price: decimal.NewFromInt(28500), Color: "white", Mileage: 12000,
			FuelType: model.FuelGasoline, Transmission: model.TransmissionAutomatic,
			BodyType: "sedan", Engine: "2.5L I4",
			Features:    []string{"backup camera", "lane assist", "apple carplay"},
			IsAvailable: true, CategoryID: categories["Sedan"].ID,
			Description: "Well maintained mid-size sedan with a single previous owner.",
		},
		{
			Brand: "Honda", Model: "CR-V", Year: 2022,
			Price: decimal.NewFromInt(31900), Color: "blue", Mileage: 24500,
			FuelType: model.FuelGasoline, Transmission: model.TransmissionAutomatic,
			BodyType: "suv", Engine: "1.5L Turbo I4",
			Features:    []string{"all wheel drive", "heated seats", "sunroof"},
			IsAvailable: true, CategoryID: categories["SUV"].ID,
			Description: "Popular compact SUV with all wheel drive and full service history.",
		},
		{
			Brand: "Tesla", Model: "Model 3", Year: 2024,
			Price: decimal.NewFromInt(42990), Color: "black", Mileage: 3200,
			FuelType: model.FuelElectric, Transmission: model.TransmissionAutomatic,
			BodyType: "sedan", Engine: "Dual Motor",
			Features:    []string{"autopilot", "glass roof", "premium audio"},
			IsAvailable: true, CategoryID: categories["Electric"].ID,
			Description: "Nearly new long range electric sedan.",
		},
		{
			Brand: "Ford", Model: "F-150", Year: 2021,
			Price: decimal.NewFromInt(38750), Color: "red", Mileage: 41000,
			FuelType: model.FuelGasoline, Transmission: model.TransmissionAutomatic,
			BodyType: "truck", Engine: "3.5L V6 EcoBoost",
			Features:    []string{"tow package", "bed liner", "crew cab"},
			IsAvailable: true, CategoryID: categories["Truck"].ID,
			Description: "Full-size pickup with tow package, ready for work.",
		},
		{
			Brand: "Volkswagen", Model: "Golf", Year: 2020,
			Price: decimal.NewFromInt(18200), Color: "gray", Mileage: 56000,
			FuelType: model.FuelGasoline, Transmission: model.TransmissionManual,
			BodyType: "hatchback", Engine: "1.4L TSI",
			Features:    []string{"bluetooth", "cruise control"},
			IsAvailable: true, CategoryID: categories["Hatchback"].ID,
			Description: "Economical manual hatchback, great first car.",
		},
		{
			Brand: "Toyota", Model: "Prius", Year: 2022,
			Price: decimal.NewFromInt(26400), Color: "silver", Mileage: 19800,
			FuelType: model.FuelHybrid, Transmission: model.TransmissionAutomatic,
			BodyType: "hatchback", Engine: "1.8L Hybrid",
			Features:    []string{"adaptive cruise", "head-up display"},
			IsAvailable: false, CategoryID: categories["Hatchback"].ID,
			Description: "Hybrid hatchback currently reserved for a customer.",
		},
	}

	created := 0
	for i := range cars {
		if err := repo.Create(ctx, &cars[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedAdmin creates the bootstrap admin account if it does not exist.
// Credentials come from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD with
// development defaults.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@motorlot.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		log.Printf("Admin user %q already exists, skipping", email)
		return nil
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		FirstName:    "Admin",
		LastName:     "User",
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %q", email)
	return nil
}
