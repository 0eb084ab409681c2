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

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func managerInput() CreateManagerInput {
	return CreateManagerInput{
		Email:      "mike@example.com",
		Password:   "password123",
		FirstName:  "Mike",
		LastName:   "Ross",
		EmployeeID: "EMP1001",
		Department: "Sales",
		Salary:     decimal.NewFromInt(60000),
	}
}

func TestManagerService_CreateManager(t *testing.T) {
	tests := []struct {
		name          string
		salary        *decimal.Decimal
		setupMock     func(*MockUserRepository, *MockManagerRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			setupMock: func(u *MockUserRepository, m *MockManagerRepository) {
				u.On("FindByEmail", mock.Anything, "mike@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmployeeID", mock.Anything, "EMP1001").Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateWithUser", mock.Anything, mock.MatchedBy(func(user *model.User) bool {
					return user.Role == model.RoleManager && user.Email == "mike@example.com"
				}), mock.AnythingOfType("*model.Manager")).Return(nil)
				m.On("FindByID", mock.Anything, mock.Anything).Return(&model.Manager{EmployeeID: "EMP1001"}, nil)
			},
		},
		{
			name: "email already registered",
			setupMock: func(u *MockUserRepository, m *MockManagerRepository) {
				u.On("FindByEmail", mock.Anything, "mike@example.com").Return(&model.User{Email: "mike@example.com"}, nil)
			},
			expectedError: errors.ErrEmailExists,
		},
		{
			name: "employee id already taken",
			setupMock: func(u *MockUserRepository, m *MockManagerRepository) {
				u.On("FindByEmail", mock.Anything, "mike@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmployeeID", mock.Anything, "EMP1001").Return(&model.Manager{EmployeeID: "EMP1001"}, nil)
			},
			expectedError: errors.ErrEmployeeIDExists,
		},
		{
			name:          "negative salary rejected",
			salary:        decimalPtr(decimal.NewFromInt(-50000)),
			setupMock:     func(u *MockUserRepository, m *MockManagerRepository) {},
			expectedError: errors.ErrInvalidSalary,
		},
		{
			name:   "zero salary allowed",
			salary: decimalPtr(decimal.Zero),
			setupMock: func(u *MockUserRepository, m *MockManagerRepository) {
				u.On("FindByEmail", mock.Anything, "mike@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmployeeID", mock.Anything, "EMP1001").Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateWithUser", mock.Anything, mock.AnythingOfType("*model.User"), mock.MatchedBy(func(mgr *model.Manager) bool {
					return mgr.Salary.IsZero()
				})).Return(nil)
				m.On("FindByID", mock.Anything, mock.Anything).Return(&model.Manager{EmployeeID: "EMP1001"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			managerRepo := new(MockManagerRepository)
			tt.setupMock(userRepo, managerRepo)

			input := managerInput()
			if tt.salary != nil {
				input.Salary = *tt.salary
			}
			service := NewManagerService(managerRepo, userRepo)
			manager, err := service.CreateManager(context.Background(), input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, manager)
				managerRepo.AssertNotCalled(t, "CreateWithUser", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, manager)
				assert.Equal(t, "EMP1001", manager.EmployeeID)
			}

			userRepo.AssertExpectations(t)
			managerRepo.AssertExpectations(t)
		})
	}
}

func TestManagerService_UpdateManager(t *testing.T) {
	managerID := uuid.New()

	t.Run("employee id change checks uniqueness", func(t *testing.T) {
		managerRepo := new(MockManagerRepository)
		managerRepo.On("FindByID", mock.Anything, managerID).Return(&model.Manager{ID: managerID, EmployeeID: "EMP1001"}, nil)
		managerRepo.On("FindByEmployeeID", mock.Anything, "EMP2002").Return(&model.Manager{EmployeeID: "EMP2002"}, nil)

		employeeID := "EMP2002"
		service := NewManagerService(managerRepo, new(MockUserRepository))
		manager, err := service.UpdateManager(context.Background(), managerID, ManagerPatch{EmployeeID: &employeeID})

		assert.Equal(t, errors.ErrEmployeeIDExists, err)
		assert.Nil(t, manager)
	})

	t.Run("same employee id skips the uniqueness check", func(t *testing.T) {
		managerRepo := new(MockManagerRepository)
		managerRepo.On("FindByID", mock.Anything, managerID).Return(&model.Manager{ID: managerID, EmployeeID: "EMP1001"}, nil)
		salary := decimal.NewFromInt(70000)
		updated := &model.Manager{ID: managerID, EmployeeID: "EMP1001", Salary: salary}
		managerRepo.On("UpdateFields", mock.Anything, managerID, map[string]interface{}{
			"salary": salary,
		}).Return(updated, nil)

		employeeID := "EMP1001"
		service := NewManagerService(managerRepo, new(MockUserRepository))
		manager, err := service.UpdateManager(context.Background(), managerID, ManagerPatch{EmployeeID: &employeeID, Salary: &salary})

		assert.NoError(t, err)
		assert.Equal(t, updated, manager)
		managerRepo.AssertNotCalled(t, "FindByEmployeeID", mock.Anything, mock.Anything)
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		managerRepo := new(MockManagerRepository)
		managerRepo.On("FindByID", mock.Anything, managerID).Return(&model.Manager{ID: managerID, EmployeeID: "EMP1001"}, nil)

		salary := decimal.NewFromInt(-1)
		service := NewManagerService(managerRepo, new(MockUserRepository))
		manager, err := service.UpdateManager(context.Background(), managerID, ManagerPatch{Salary: &salary})

		assert.Equal(t, errors.ErrInvalidSalary, err)
		assert.Nil(t, manager)
		managerRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		managerRepo := new(MockManagerRepository)
		existing := &model.Manager{ID: managerID, EmployeeID: "EMP1001"}
		managerRepo.On("FindByID", mock.Anything, managerID).Return(existing, nil)

		service := NewManagerService(managerRepo, new(MockUserRepository))
		manager, err := service.UpdateManager(context.Background(), managerID, ManagerPatch{})

		assert.NoError(t, err)
		assert.Equal(t, existing, manager)
		managerRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestManagerService_DeleteManager(t *testing.T) {
	managerID := uuid.New()
	userID := uuid.New()

	t.Run("removes both the manager and its user", func(t *testing.T) {
		managerRepo := new(MockManagerRepository)
		managerRepo.On("FindByID", mock.Anything, managerID).Return(&model.Manager{ID: managerID, UserID: userID}, nil)
		managerRepo.On("DeleteWithUser", mock.Anything, managerID, userID).Return(nil)

		service := NewManagerService(managerRepo, new(MockUserRepository))
		assert.NoError(t, service.DeleteManager(context.Background(), managerID))
		managerRepo.AssertExpectations(t)
	})

	t.Run("unknown manager", func(t *testing.T) {
		managerRepo := new(MockManagerRepository)
		managerRepo.On("FindByID", mock.Anything, managerID).Return(nil, gorm.ErrRecordNotFound)

		service := NewManagerService(managerRepo, new(MockUserRepository))
		assert.Equal(t, errors.ErrManagerNotFound, service.DeleteManager(context.Background(), managerID))
	})
}

func TestManagerService_Stats(t *testing.T) {
	managerRepo := new(MockManagerRepository)
	managerRepo.On("Aggregates", mock.Anything).Return(&repository.ManagerAggregates{
		TotalManagers:    6,
		AverageSalary:    61234.5678,
		TotalDepartments: 3,
	}, nil)
	managerRepo.On("DepartmentBreakdown", mock.Anything).Return([]repository.DepartmentStat{
		{Department: "Sales", Count: 4, AvgSalary: 58000.333},
		{Department: "Service", Count: 2, AvgSalary: 64000.0},
	}, nil)

	service := NewManagerService(managerRepo, new(MockUserRepository))
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(6), stats.Overview.TotalManagers)
	assert.Equal(t, 61234.57, stats.Overview.AverageSalary)
	assert.Equal(t, int64(3), stats.Overview.TotalDepartments)
	assert.Equal(t, 58000.33, stats.DepartmentBreakdown[0].AvgSalary)
}
