package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"motorlot/internal/model"
	"motorlot/internal/repository"
	"motorlot/internal/service"
)

type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) ListCars(ctx context.Context, filters repository.CarFilters, opts repository.ListOptions) ([]model.Car, service.Pagination, error) {
	args := m.Called(ctx, filters, opts)
	cars, _ := args.Get(0).([]model.Car)
	pagination, _ := args.Get(1).(service.Pagination)
	return cars, pagination, args.Error(2)
}

func (m *MockCarService) SearchCars(ctx context.Context, term string, limit int) ([]model.Car, error) {
	args := m.Called(ctx, term, limit)
	cars, _ := args.Get(0).([]model.Car)
	return cars, args.Error(1)
}

func (m *MockCarService) GetCar(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	args := m.Called(ctx, id)
	car, _ := args.Get(0).(*model.Car)
	return car, args.Error(1)
}

func (m *MockCarService) CreateCar(ctx context.Context, car *model.Car) (*model.Car, error) {
	args := m.Called(ctx, car)
	created, _ := args.Get(0).(*model.Car)
	return created, args.Error(1)
}

func (m *MockCarService) UpdateCar(ctx context.Context, id uuid.UUID, patch service.CarPatch) (*model.Car, error) {
	args := m.Called(ctx, id, patch)
	car, _ := args.Get(0).(*model.Car)
	return car, args.Error(1)
}

func (m *MockCarService) DeleteCar(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCarService) Stats(ctx context.Context) (*service.CarStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*service.CarStats)
	return stats, args.Error(1)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newCreateCarContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &requestValidator{validate: validator.New()}
	req := httptest.NewRequest(http.MethodPost, "/api/cars", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCarHandler_CreateCar(t *testing.T) {
	categoryID := uuid.New()
	body := `{
		"brand": "Toyota",
		"model": "Camry",
		"year": 2022,
		"price": %s,
		"color": "white",
		"fuelType": "gasoline",
		"transmission": "automatic",
		"bodyType": "sedan",
		"engine": "2.5L I4",
		"category": "` + categoryID.String() + `"
	}`

	t.Run("zero price passes request validation", func(t *testing.T) {
		carService := new(MockCarService)
		carService.On("CreateCar", mock.Anything, mock.MatchedBy(func(c *model.Car) bool {
			return c.Price.IsZero() && c.CategoryID == categoryID
		})).Return(&model.Car{Brand: "Toyota", CategoryID: categoryID}, nil)

		c, rec := newCreateCarContext(strings.Replace(body, "%s", "0", 1))
		handler := NewCarHandler(carService)

		assert.NoError(t, handler.CreateCar(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		carService.AssertExpectations(t)
	})

	t.Run("missing brand still rejected", func(t *testing.T) {
		carService := new(MockCarService)
		c, rec := newCreateCarContext(`{"model": "Camry", "year": 2022, "price": 100}`)
		handler := NewCarHandler(carService)

		assert.NoError(t, handler.CreateCar(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		carService.AssertNotCalled(t, "CreateCar", mock.Anything, mock.Anything)
	})
}
