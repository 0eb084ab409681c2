package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"motorlot/internal/model"
)

// CustomerFilters narrows customer list queries.
type CustomerFilters struct {
	City  *string
	State *string
}

// CustomerAggregates holds the raw customer aggregation row.
type CustomerAggregates struct {
	TotalCustomers          int64   `json:"totalCustomers"`
	TotalPurchases          int64   `json:"totalPurchases"`
	AvgPurchasesPerCustomer float64 `json:"avgPurchasesPerCustomer"`
}

// LocationCount is one row of the top-locations breakdown.
type LocationCount struct {
	State string `json:"state"`
	City  string `json:"city"`
	Count int64  `json:"count"`
}

// CustomerRepository defines customer persistence operations.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	CreateWithUser(ctx context.Context, user *model.User, customer *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, filters CustomerFilters, opts ListOptions) ([]model.Customer, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Customer, error)
	DeleteWithUser(ctx context.Context, customerID, userID uuid.UUID) error
	AddPurchase(ctx context.Context, customerID, carID uuid.UUID) error
	Aggregates(ctx context.Context) (*CustomerAggregates, error)
	TopLocations(ctx context.Context, limit int) ([]LocationCount, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// CreateWithUser persists the user and its customer record in one
// transaction so a failed second write cannot leave an orphan user.
func (r *customerRepository) CreateWithUser(ctx context.Context, user *model.User, customer *model.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		customer.UserID = user.ID
		return tx.Create(customer).Error
	})
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("PurchaseHistory").
		Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("PurchaseHistory").
		Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, filters CustomerFilters, opts ListOptions) ([]model.Customer, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Customer{})
	if filters.City != nil {
		base = base.Where("LOWER(address_city) LIKE LOWER(?)", "%"+*filters.City+"%")
	}
	if filters.State != nil {
		base = base.Where("LOWER(address_state) LIKE LOWER(?)", "%"+*filters.State+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	if err := base.Session(&gorm.Session{}).
		Preload("User").
		Preload("PurchaseHistory").
		Order(opts.OrderClause()).
		Offset(opts.Offset()).
		Limit(opts.Limit).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *customerRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Customer, error) {
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// DeleteWithUser removes the customer and its owning user atomically.
func (r *customerRepository) DeleteWithUser(ctx context.Context, customerID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM customer_purchases WHERE customer_id = ?", customerID).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", customerID).Delete(&model.Customer{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
}

// AddPurchase appends a car to the purchase history. The join-table
// upsert gives set semantics: appending an already-owned car is a
// no-op.
func (r *customerRepository) AddPurchase(ctx context.Context, customerID, carID uuid.UUID) error {
	customer := model.Customer{ID: customerID}
	return r.db.WithContext(ctx).Model(&customer).
		Association("PurchaseHistory").
		Append(&model.Car{ID: carID})
}

func (r *customerRepository) Aggregates(ctx context.Context) (*CustomerAggregates, error) {
	var agg CustomerAggregates
	err := r.db.WithContext(ctx).Raw(
		"SELECT COUNT(DISTINCT c.id) AS total_customers, " +
			"COUNT(cp.car_id) AS total_purchases, " +
			"COALESCE(COUNT(cp.car_id) / NULLIF(COUNT(DISTINCT c.id), 0), 0) AS avg_purchases_per_customer " +
			"FROM customers c LEFT JOIN customer_purchases cp ON cp.customer_id = c.id").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *customerRepository) TopLocations(ctx context.Context, limit int) ([]LocationCount, error) {
	var locations []LocationCount
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Select("address_state AS state, address_city AS city, COUNT(*) AS count").
		Group("address_state, address_city").
		Order("count DESC").
		Limit(limit).
		Scan(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
