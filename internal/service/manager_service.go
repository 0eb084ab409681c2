package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

// CreateManagerInput carries everything needed to provision a manager
// and its user in one step.
type CreateManagerInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	EmployeeID  string
	Department  string
	Salary      decimal.Decimal
	Permissions []string
}

// ManagerPatch is a partial manager update.
type ManagerPatch struct {
	EmployeeID  *string
	Department  *string
	Salary      *decimal.Decimal
	Permissions *[]string
}

// ManagerStats is the manager statistics payload.
type ManagerStats struct {
	Overview            repository.ManagerAggregates `json:"overview"`
	DepartmentBreakdown []repository.DepartmentStat  `json:"departmentBreakdown"`
}

// ManagerService exposes manager administration operations.
type ManagerService interface {
	ListManagers(ctx context.Context, filters repository.ManagerFilters, opts repository.ListOptions) ([]model.Manager, Pagination, error)
	GetManager(ctx context.Context, id uuid.UUID) (*model.Manager, error)
	CreateManager(ctx context.Context, input CreateManagerInput) (*model.Manager, error)
	UpdateManager(ctx context.Context, id uuid.UUID, patch ManagerPatch) (*model.Manager, error)
	DeleteManager(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ManagerStats, error)
}

type managerService struct {
	managerRepo repository.ManagerRepository
	userRepo    repository.UserRepository
}

// NewManagerService creates a new manager service.
func NewManagerService(managerRepo repository.ManagerRepository, userRepo repository.UserRepository) ManagerService {
	return &managerService{managerRepo: managerRepo, userRepo: userRepo}
}

func (s *managerService) ListManagers(ctx context.Context, filters repository.ManagerFilters, opts repository.ListOptions) ([]model.Manager, Pagination, error) {
	managers, total, err := s.managerRepo.List(ctx, filters, opts)
	if err != nil {
		return nil, Pagination{}, err
	}
	return managers, NewPagination(opts.Page, opts.Limit, total), nil
}

func (s *managerService) GetManager(ctx context.Context, id uuid.UUID) (*model.Manager, error) {
	manager, err := s.managerRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrManagerNotFound
		}
		return nil, err
	}
	return manager, nil
}

// CreateManager checks both unique keys up front, then writes the user
// and manager records inside one transaction.
func (s *managerService) CreateManager(ctx context.Context, input CreateManagerInput) (*model.Manager, error) {
	if input.Salary.IsNegative() {
		return nil, errors.ErrInvalidSalary
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.ErrEmailExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	existingManager, err := s.managerRepo.FindByEmployeeID(ctx, input.EmployeeID)
	if err == nil && existingManager != nil {
		return nil, errors.ErrEmployeeIDExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check employee ID: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleManager,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	}
	manager := &model.Manager{
		EmployeeID:  input.EmployeeID,
		Department:  input.Department,
		Salary:      input.Salary,
		Permissions: input.Permissions,
	}

	if err := s.managerRepo.CreateWithUser(ctx, user, manager); err != nil {
		return nil, fmt.Errorf("create manager: %w", err)
	}
	return s.managerRepo.FindByID(ctx, manager.ID)
}

func (s *managerService) UpdateManager(ctx context.Context, id uuid.UUID, patch ManagerPatch) (*model.Manager, error) {
	manager, err := s.GetManager(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.EmployeeID != nil && *patch.EmployeeID != manager.EmployeeID {
		existing, err := s.managerRepo.FindByEmployeeID(ctx, *patch.EmployeeID)
		if err == nil && existing != nil {
			return nil, errors.ErrEmployeeIDExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		fields["employee_id"] = *patch.EmployeeID
	}
	if patch.Department != nil {
		fields["department"] = *patch.Department
	}
	if patch.Salary != nil {
		if patch.Salary.IsNegative() {
			return nil, errors.ErrInvalidSalary
		}
		fields["salary"] = *patch.Salary
	}
	if patch.Permissions != nil {
		fields["permissions"] = *patch.Permissions
	}

	if len(fields) == 0 {
		return manager, nil
	}
	return s.managerRepo.UpdateFields(ctx, id, fields)
}

// DeleteManager removes the manager and its owning user in one
// transaction.
func (s *managerService) DeleteManager(ctx context.Context, id uuid.UUID) error {
	manager, err := s.GetManager(ctx, id)
	if err != nil {
		return err
	}
	return s.managerRepo.DeleteWithUser(ctx, manager.ID, manager.UserID)
}

func (s *managerService) Stats(ctx context.Context) (*ManagerStats, error) {
	agg, err := s.managerRepo.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	agg.AverageSalary = round2(agg.AverageSalary)
	breakdown, err := s.managerRepo.DepartmentBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	for i := range breakdown {
		breakdown[i].AvgSalary = round2(breakdown[i].AvgSalary)
	}
	return &ManagerStats{Overview: *agg, DepartmentBreakdown: breakdown}, nil
}
