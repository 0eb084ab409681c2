package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

const topBrandsLimit = 10

// CarPatch is a partial car update; nil fields are left untouched.
type CarPatch struct {
	Brand        *string
	Model        *string
	Year         *int
	Price        *decimal.Decimal
	Color        *string
	Mileage      *int
	FuelType     *string
	Transmission *string
	BodyType     *string
	Engine       *string
	Features     *[]string
	IsAvailable  *bool
	CategoryID   *uuid.UUID
	Images       *[]string
	Description  *string
}

// CarOverview summarises the fleet.
type CarOverview struct {
	TotalCars      int64   `json:"totalCars"`
	AvailableCars  int64   `json:"availableCars"`
	AveragePrice   float64 `json:"averagePrice"`
	AverageMileage float64 `json:"averageMileage"`
}

// CarStats is the car statistics payload.
type CarStats struct {
	Overview  CarOverview            `json:"overview"`
	TopBrands []repository.BrandCount `json:"topBrands"`
}

// CarService exposes car inventory operations.
type CarService interface {
	ListCars(ctx context.Context, filters repository.CarFilters, opts repository.ListOptions) ([]model.Car, Pagination, error)
	SearchCars(ctx context.Context, term string, limit int) ([]model.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error)
	CreateCar(ctx context.Context, car *model.Car) (*model.Car, error)
	UpdateCar(ctx context.Context, id uuid.UUID, patch CarPatch) (*model.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*CarStats, error)
}

type carService struct {
	carRepo      repository.CarRepository
	categoryRepo repository.CategoryRepository
}

// NewCarService creates a new car service.
func NewCarService(carRepo repository.CarRepository, categoryRepo repository.CategoryRepository) CarService {
	return &carService{carRepo: carRepo, categoryRepo: categoryRepo}
}

// ListCars runs the compiled predicate and returns the page slice with
// its pagination descriptor. A page beyond the last one yields an
// empty slice, not an error.
func (s *carService) ListCars(ctx context.Context, filters repository.CarFilters, opts repository.ListOptions) ([]model.Car, Pagination, error) {
	cars, total, err := s.carRepo.List(ctx, filters, opts)
	if err != nil {
		return nil, Pagination{}, err
	}
	return cars, NewPagination(opts.Page, opts.Limit, total), nil
}

func (s *carService) SearchCars(ctx context.Context, term string, limit int) ([]model.Car, error) {
	return s.carRepo.Search(ctx, term, limit)
}

func (s *carService) GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCarNotFound
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) CreateCar(ctx context.Context, car *model.Car) (*model.Car, error) {
	if err := validateCarValues(car.Year, car.Price, car.Mileage, car.FuelType, car.Transmission); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, car.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}
	return s.carRepo.FindByID(ctx, car.ID)
}

func (s *carService) UpdateCar(ctx context.Context, id uuid.UUID, patch CarPatch) (*model.Car, error) {
	car, err := s.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Brand != nil {
		fields["brand"] = *patch.Brand
	}
	if patch.Model != nil {
		fields["model"] = *patch.Model
	}
	if patch.Year != nil {
		fields["year"] = *patch.Year
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Color != nil {
		fields["color"] = *patch.Color
	}
	if patch.Mileage != nil {
		fields["mileage"] = *patch.Mileage
	}
	if patch.FuelType != nil {
		fields["fuel_type"] = *patch.FuelType
	}
	if patch.Transmission != nil {
		fields["transmission"] = *patch.Transmission
	}
	if patch.BodyType != nil {
		fields["body_type"] = *patch.BodyType
	}
	if patch.Engine != nil {
		fields["engine"] = *patch.Engine
	}
	if patch.Features != nil {
		fields["features"] = *patch.Features
	}
	if patch.IsAvailable != nil {
		fields["is_available"] = *patch.IsAvailable
	}
	if patch.Images != nil {
		fields["images"] = *patch.Images
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *patch.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, err
		}
		fields["category_id"] = *patch.CategoryID
	}

	if len(fields) == 0 {
		return car, nil
	}

	// Re-validate the record post-merge.
	merged := *car
	if patch.Year != nil {
		merged.Year = *patch.Year
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Mileage != nil {
		merged.Mileage = *patch.Mileage
	}
	if patch.FuelType != nil {
		merged.FuelType = *patch.FuelType
	}
	if patch.Transmission != nil {
		merged.Transmission = *patch.Transmission
	}
	if err := validateCarValues(merged.Year, merged.Price, merged.Mileage, merged.FuelType, merged.Transmission); err != nil {
		return nil, err
	}

	return s.carRepo.UpdateFields(ctx, id, fields)
}

func (s *carService) DeleteCar(ctx context.Context, id uuid.UUID) error {
	if err := s.carRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCarNotFound
		}
		return err
	}
	return nil
}

// Stats aggregates the fleet overview and the top-10 brand counts.
// The average price rounds to 2 decimals, mileage to whole units.
func (s *carService) Stats(ctx context.Context) (*CarStats, error) {
	agg, err := s.carRepo.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := s.carRepo.TopBrands(ctx, topBrandsLimit)
	if err != nil {
		return nil, err
	}
	return &CarStats{
		Overview: CarOverview{
			TotalCars:      agg.TotalCars,
			AvailableCars:  agg.AvailableCars,
			AveragePrice:   round2(agg.AveragePrice),
			AverageMileage: math.Round(agg.AverageMileage),
		},
		TopBrands: brands,
	}, nil
}

func validateCarValues(year int, price decimal.Decimal, mileage int, fuelType, transmission string) error {
	if year < 1900 || year > time.Now().Year()+1 {
		return errors.ErrInvalidCarData
	}
	if price.IsNegative() {
		return errors.ErrInvalidCarData
	}
	if mileage < 0 {
		return errors.ErrInvalidCarData
	}
	if !model.ValidFuelType(fuelType) {
		return errors.ErrInvalidCarData
	}
	if !model.ValidTransmission(transmission) {
		return errors.ErrInvalidCarData
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
