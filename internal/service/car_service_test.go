package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

func validCar(categoryID uuid.UUID) *model.Car {
	return &model.Car{
		Brand:        "Toyota",
		Model:        "Camry",
		Year:         2022,
		Price:        decimal.NewFromInt(25000),
		Color:        "white",
		Mileage:      10000,
		FuelType:     model.FuelGasoline,
		Transmission: model.TransmissionAutomatic,
		BodyType:     "sedan",
		Engine:       "2.5L I4",
		IsAvailable:  true,
		CategoryID:   categoryID,
	}
}

func TestCarService_CreateCar(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name          string
		mutate        func(*model.Car)
		setupMock     func(*MockCarRepository, *MockCategoryRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			setupMock: func(carRepo *MockCarRepository, categoryRepo *MockCategoryRepository) {
				categoryRepo.On("FindByID", mock.Anything, categoryID).Return(&model.Category{ID: categoryID, Name: "Sedan"}, nil)
				carRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Car")).Return(nil)
				carRepo.On("FindByID", mock.Anything, mock.Anything).Return(validCar(categoryID), nil)
			},
		},
		{
			name:   "zero price allowed",
			mutate: func(c *model.Car) { c.Price = decimal.Zero },
			setupMock: func(carRepo *MockCarRepository, categoryRepo *MockCategoryRepository) {
				categoryRepo.On("FindByID", mock.Anything, categoryID).Return(&model.Category{ID: categoryID, Name: "Sedan"}, nil)
				carRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Car) bool {
					return c.Price.IsZero()
				})).Return(nil)
				carRepo.On("FindByID", mock.Anything, mock.Anything).Return(validCar(categoryID), nil)
			},
		},
		{
			name:          "year before 1900",
			mutate:        func(c *model.Car) { c.Year = 1800 },
			setupMock:     func(*MockCarRepository, *MockCategoryRepository) {},
			expectedError: errors.ErrInvalidCarData,
		},
		{
			name:          "year too far in the future",
			mutate:        func(c *model.Car) { c.Year = 2999 },
			setupMock:     func(*MockCarRepository, *MockCategoryRepository) {},
			expectedError: errors.ErrInvalidCarData,
		},
		{
			name:          "negative price",
			mutate:        func(c *model.Car) { c.Price = decimal.NewFromInt(-1) },
			setupMock:     func(*MockCarRepository, *MockCategoryRepository) {},
			expectedError: errors.ErrInvalidCarData,
		},
		{
			name:          "negative mileage",
			mutate:        func(c *model.Car) { c.Mileage = -5 },
			setupMock:     func(*MockCarRepository, *MockCategoryRepository) {},
			expectedError: errors.ErrInvalidCarData,
		},
		{
			name:          "unknown fuel type",
			mutate:        func(c *model.Car) { c.FuelType = "steam" },
			setupMock:     func(*MockCarRepository, *MockCategoryRepository) {},
			expectedError: errors.ErrInvalidCarData,
		},
		{
			name:          "unknown transmission",
			mutate:        func(c *model.Car) { c.Transmission = "cvt-ish" },
			setupMock:     func(*MockCarRepository, *MockCategoryRepository) {},
			expectedError: errors.ErrInvalidCarData,
		},
		{
			name: "missing category",
			setupMock: func(carRepo *MockCarRepository, categoryRepo *MockCategoryRepository) {
				categoryRepo.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carRepo := new(MockCarRepository)
			categoryRepo := new(MockCategoryRepository)
			tt.setupMock(carRepo, categoryRepo)

			car := validCar(categoryID)
			if tt.mutate != nil {
				tt.mutate(car)
			}

			service := NewCarService(carRepo, categoryRepo)
			created, err := service.CreateCar(context.Background(), car)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
			}

			carRepo.AssertExpectations(t)
			categoryRepo.AssertExpectations(t)
		})
	}
}

func TestCarService_UpdateCar(t *testing.T) {
	carID := uuid.New()
	categoryID := uuid.New()

	t.Run("empty patch returns the car untouched", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		existing := validCar(categoryID)
		existing.ID = carID
		carRepo.On("FindByID", mock.Anything, carID).Return(existing, nil)

		service := NewCarService(carRepo, new(MockCategoryRepository))
		car, err := service.UpdateCar(context.Background(), carID, CarPatch{})

		assert.NoError(t, err)
		assert.Equal(t, existing, car)
		carRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("patched record is validated post-merge", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		existing := validCar(categoryID)
		existing.ID = carID
		carRepo.On("FindByID", mock.Anything, carID).Return(existing, nil)

		badYear := 1500
		service := NewCarService(carRepo, new(MockCategoryRepository))
		car, err := service.UpdateCar(context.Background(), carID, CarPatch{Year: &badYear})

		assert.Equal(t, errors.ErrInvalidCarData, err)
		assert.Nil(t, car)
		carRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("category change requires the category to exist", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		categoryRepo := new(MockCategoryRepository)
		existing := validCar(categoryID)
		existing.ID = carID
		carRepo.On("FindByID", mock.Anything, carID).Return(existing, nil)

		missing := uuid.New()
		categoryRepo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

		service := NewCarService(carRepo, categoryRepo)
		car, err := service.UpdateCar(context.Background(), carID, CarPatch{CategoryID: &missing})

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, car)
	})

	t.Run("valid patch writes only the supplied fields", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		existing := validCar(categoryID)
		existing.ID = carID
		carRepo.On("FindByID", mock.Anything, carID).Return(existing, nil)

		price := decimal.NewFromInt(23000)
		available := false
		updated := validCar(categoryID)
		updated.ID = carID
		updated.Price = price
		updated.IsAvailable = available
		carRepo.On("UpdateFields", mock.Anything, carID, map[string]interface{}{
			"price":        price,
			"is_available": available,
		}).Return(updated, nil)

		service := NewCarService(carRepo, new(MockCategoryRepository))
		car, err := service.UpdateCar(context.Background(), carID, CarPatch{Price: &price, IsAvailable: &available})

		assert.NoError(t, err)
		assert.Equal(t, updated, car)
		carRepo.AssertExpectations(t)
	})

	t.Run("unknown car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, carID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCarService(carRepo, new(MockCategoryRepository))
		car, err := service.UpdateCar(context.Background(), carID, CarPatch{})

		assert.Equal(t, errors.ErrCarNotFound, err)
		assert.Nil(t, car)
	})
}

func TestCarService_DeleteCar(t *testing.T) {
	carID := uuid.New()

	t.Run("deletes existing car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("Delete", mock.Anything, carID).Return(nil)

		service := NewCarService(carRepo, new(MockCategoryRepository))
		assert.NoError(t, service.DeleteCar(context.Background(), carID))
	})

	t.Run("unknown car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("Delete", mock.Anything, carID).Return(gorm.ErrRecordNotFound)

		service := NewCarService(carRepo, new(MockCategoryRepository))
		assert.Equal(t, errors.ErrCarNotFound, service.DeleteCar(context.Background(), carID))
	})
}

func TestCarService_ListCars(t *testing.T) {
	carRepo := new(MockCarRepository)
	opts := repository.ListOptions{Page: 2, Limit: 10, SortBy: "created_at", SortOrder: "desc"}
	carRepo.On("List", mock.Anything, repository.CarFilters{}, opts).Return([]model.Car{}, int64(31), nil)

	service := NewCarService(carRepo, new(MockCategoryRepository))
	cars, pagination, err := service.ListCars(context.Background(), repository.CarFilters{}, opts)

	assert.NoError(t, err)
	assert.Empty(t, cars)
	assert.Equal(t, int64(31), pagination.Total)
	assert.Equal(t, int64(4), pagination.Pages)
	assert.Equal(t, 2, pagination.Page)
}

func TestCarService_Stats(t *testing.T) {
	carRepo := new(MockCarRepository)
	carRepo.On("Aggregates", mock.Anything).Return(&repository.CarAggregates{
		TotalCars:      12,
		AvailableCars:  9,
		AveragePrice:   25123.4567,
		AverageMileage: 30100.6,
	}, nil)
	carRepo.On("TopBrands", mock.Anything, 10).Return([]repository.BrandCount{
		{Brand: "Toyota", Count: 5},
		{Brand: "Honda", Count: 3},
	}, nil)

	service := NewCarService(carRepo, new(MockCategoryRepository))
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.Overview.TotalCars)
	assert.Equal(t, int64(9), stats.Overview.AvailableCars)
	assert.Equal(t, 25123.46, stats.Overview.AveragePrice)
	assert.Equal(t, 30101.0, stats.Overview.AverageMileage)
	assert.Len(t, stats.TopBrands, 2)
	assert.Equal(t, "Toyota", stats.TopBrands[0].Brand)
}
