package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"motorlot/internal/model"
)

// ManagerFilters narrows manager list queries.
type ManagerFilters struct {
	Department *string
}

// ManagerAggregates holds the raw manager aggregation row.
type ManagerAggregates struct {
	TotalManagers    int64   `json:"totalManagers"`
	AverageSalary    float64 `json:"averageSalary"`
	TotalDepartments int64   `json:"totalDepartments"`
}

// DepartmentStat is one row of the per-department breakdown.
type DepartmentStat struct {
	Department string  `json:"department"`
	Count      int64   `json:"count"`
	AvgSalary  float64 `json:"avgSalary"`
}

// ManagerRepository defines manager persistence operations.
type ManagerRepository interface {
	CreateWithUser(ctx context.Context, user *model.User, manager *model.Manager) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Manager, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Manager, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*model.Manager, error)
	List(ctx context.Context, filters ManagerFilters, opts ListOptions) ([]model.Manager, int64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Manager, error)
	DeleteWithUser(ctx context.Context, managerID, userID uuid.UUID) error
	Aggregates(ctx context.Context) (*ManagerAggregates, error)
	DepartmentBreakdown(ctx context.Context) ([]DepartmentStat, error)
}

type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository creates a new manager repository.
func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

// CreateWithUser persists the user and its manager record in one
// transaction so a failed second write cannot leave an orphan user.
func (r *managerRepository) CreateWithUser(ctx context.Context, user *model.User, manager *model.Manager) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		manager.UserID = user.ID
		return tx.Create(manager).Error
	})
}

func (r *managerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Manager, error) {
	var manager model.Manager
	if err := r.db.WithContext(ctx).Preload("User").
		Where("id = ?", id).First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *managerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Manager, error) {
	var manager model.Manager
	if err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *managerRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*model.Manager, error) {
	var manager model.Manager
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).First(&manager).Error; err != nil {
		return nil, err
	}
	return &manager, nil
}

func (r *managerRepository) List(ctx context.Context, filters ManagerFilters, opts ListOptions) ([]model.Manager, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Manager{})
	if filters.Department != nil {
		base = base.Where("LOWER(department) LIKE LOWER(?)", "%"+*filters.Department+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var managers []model.Manager
	if err := base.Session(&gorm.Session{}).
		Preload("User").
		Order(opts.OrderClause()).
		Offset(opts.Offset()).
		Limit(opts.Limit).
		Find(&managers).Error; err != nil {
		return nil, 0, err
	}
	return managers, total, nil
}

func (r *managerRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*model.Manager, error) {
	if err := r.db.WithContext(ctx).Model(&model.Manager{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// DeleteWithUser removes the manager and its owning user atomically.
func (r *managerRepository) DeleteWithUser(ctx context.Context, managerID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", managerID).Delete(&model.Manager{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
}

func (r *managerRepository) Aggregates(ctx context.Context) (*ManagerAggregates, error) {
	var agg ManagerAggregates
	err := r.db.WithContext(ctx).Model(&model.Manager{}).
		Select("COUNT(*) AS total_managers, " +
			"COALESCE(AVG(salary), 0) AS average_salary, " +
			"COUNT(DISTINCT department) AS total_departments").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *managerRepository) DepartmentBreakdown(ctx context.Context) ([]DepartmentStat, error) {
	var stats []DepartmentStat
	err := r.db.WithContext(ctx).Model(&model.Manager{}).
		Select("department, COUNT(*) AS count, COALESCE(AVG(salary), 0) AS avg_salary").
		Group("department").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
