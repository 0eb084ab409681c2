package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"motorlot/internal/model"
)

// CarFilters is the compiled predicate for car list queries. A nil
// field leaves that dimension unconstrained; applying any subset of
// fields yields the intersection of the individual predicates.
type CarFilters struct {
	Brand        *string
	Model        *string
	Color        *string
	BodyType     *string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinYear      *int
	MaxYear      *int
	MinMileage   *int
	MaxMileage   *int
	FuelType     *string
	Transmission *string
	IsAvailable  *bool
	CategoryID   *uuid.UUID
}

// BrandCount is one row of the top-brands breakdown.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int64  `json:"count"`
}

// CarAggregates holds the raw fleet aggregation row.
type CarAggregates struct {
	TotalCars      int64   `json:"totalCars"`
	AvailableCars  int64   `json:"availableCars"`
	AveragePrice   float64 `json:"averagePrice"`
	AverageMileage float64 `json:"averageMileage"`
}

// CarRepository defines car persistence operations.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	List(ctx context.Context, filters CarFilters, opts ListOptions) ([]model.Car, int64, error)
	Search(ctx context.Context, term string, limit int) ([]model.Car, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Car, error)
	Aggregates(ctx context.Context) (*CarAggregates, error)
	TopBrands(ctx context.Context, limit int) ([]BrandCount, error)
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("id = ?", id).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// applyFilters translates the predicate onto a query. Order of
// application does not matter: every field ANDs one condition.
func applyFilters(q *gorm.DB, f CarFilters) *gorm.DB {
	if f.Brand != nil {
		q = q.Where("LOWER(brand) LIKE LOWER(?)", "%"+*f.Brand+"%")
	}
	if f.Model != nil {
		q = q.Where("LOWER(model) LIKE LOWER(?)", "%"+*f.Model+"%")
	}
	if f.Color != nil {
		q = q.Where("LOWER(color) LIKE LOWER(?)", "%"+*f.Color+"%")
	}
	if f.BodyType != nil {
		q = q.Where("LOWER(body_type) LIKE LOWER(?)", "%"+*f.BodyType+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinYear != nil {
		q = q.Where("year >= ?", *f.MinYear)
	}
	if f.MaxYear != nil {
		q = q.Where("year <= ?", *f.MaxYear)
	}
	if f.MinMileage != nil {
		q = q.Where("mileage >= ?", *f.MinMileage)
	}
	if f.MaxMileage != nil {
		q = q.Where("mileage <= ?", *f.MaxMileage)
	}
	if f.FuelType != nil {
		q = q.Where("fuel_type = ?", *f.FuelType)
	}
	if f.Transmission != nil {
		q = q.Where("transmission = ?", *f.Transmission)
	}
	if f.IsAvailable != nil {
		q = q.Where("is_available = ?", *f.IsAvailable)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// List runs the count and the page fetch against the same filter
// snapshot. The two reads are independent; pagination is eventually
// consistent under concurrent writes.
func (r *carRepository) List(ctx context.Context, filters CarFilters, opts ListOptions) ([]model.Car, int64, error) {
	base := applyFilters(r.db.WithContext(ctx).Model(&model.Car{}), filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []model.Car
	if err := base.Session(&gorm.Session{}).
		Preload("Category").
		Order(opts.OrderClause()).
		Offset(opts.Offset()).
		Limit(opts.Limit).
		Find(&cars).Error; err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

// Search runs a relevance-ranked full-text match over brand, model and
// description, with a pattern fallback over the features list.
func (r *carRepository) Search(ctx context.Context, term string, limit int) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).
		Model(&model.Car{}).
		Select("cars.*, MATCH(brand, model, description) AGAINST (?) AS relevance", term).
		Where("MATCH(brand, model, description) AGAINST (?) OR LOWER(features) LIKE LOWER(?)",
			term, "%"+term+"%").
		Preload("Category").
		Order("relevance DESC").
		Limit(limit).
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

// UpdateFields applies a partial update and returns the record post-merge.
func (r *carRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Car, error) {
	res := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	return r.FindByID(ctx, id)
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Car{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *carRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *carRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) Aggregates(ctx context.Context) (*CarAggregates, error) {
	var agg CarAggregates
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Select("COUNT(*) AS total_cars, " +
			"COALESCE(SUM(CASE WHEN is_available THEN 1 ELSE 0 END), 0) AS available_cars, " +
			"COALESCE(AVG(price), 0) AS average_price, " +
			"COALESCE(AVG(mileage), 0) AS average_mileage").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *carRepository) TopBrands(ctx context.Context, limit int) ([]BrandCount, error) {
	var brands []BrandCount
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Select("brand, COUNT(*) AS count").
		Group("brand").
		Order("count DESC").
		Limit(limit).
		Scan(&brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}
