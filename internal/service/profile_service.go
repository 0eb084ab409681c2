package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motorlot/internal/auth"
	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

// Identity is the authenticated caller established by the token layer.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// Profile is the role-tagged view of an account. Exactly one variant
// is set: the role record (with the user nested inside it) when one
// exists, otherwise the bare user.
type Profile struct {
	Role     string          `json:"role"`
	User     *model.User     `json:"user,omitempty"`
	Customer *model.Customer `json:"customer,omitempty"`
	Manager  *model.Manager  `json:"manager,omitempty"`
}

// ProfilePatch is a partial profile update spanning the base user and
// the caller's role record. Fields outside the caller's role are
// ignored.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string

	// customer fields
	Address         *model.Address
	PreferredBrands *[]string
	DrivingLicense  *string

	// manager fields
	Department  *string
	Salary      *decimal.Decimal
	Permissions *[]string
}

// AccountPatch is a credentials update. A password change requires the
// current password.
type AccountPatch struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}

// AccountResult is the outcome of an account update. Token is set only
// when the email changed; the previous token stays valid until its
// natural expiry.
type AccountResult struct {
	User    *model.User
	Token   string
	Changed bool
}

// ProfileService handles self-service profile and account updates.
type ProfileService interface {
	GetProfile(ctx context.Context, identity Identity) (*Profile, error)
	UpdateProfile(ctx context.Context, identity Identity, patch ProfilePatch) (*Profile, error)
	UpdateAccount(ctx context.Context, identity Identity, patch AccountPatch) (*AccountResult, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	managerRepo  repository.ManagerRepository
	jwtService   *auth.JWTService
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	managerRepo repository.ManagerRepository,
	jwtService *auth.JWTService,
) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		managerRepo:  managerRepo,
		jwtService:   jwtService,
	}
}

// GetProfile returns the role record with the user preloaded, falling
// back to the bare user when no role record exists.
func (s *profileService) GetProfile(ctx context.Context, identity Identity) (*Profile, error) {
	switch identity.Role {
	case model.RoleCustomer:
		customer, err := s.customerRepo.FindByUserID(ctx, identity.UserID)
		if err == nil {
			return &Profile{Role: identity.Role, Customer: customer}, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	case model.RoleManager:
		manager, err := s.managerRepo.FindByUserID(ctx, identity.UserID)
		if err == nil {
			return &Profile{Role: identity.Role, Manager: manager}, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &Profile{Role: identity.Role, User: user}, nil
}

// UpdateProfile splits the patch into base-user fields and
// role-specific fields, applying each side only when it stages at
// least one change. A patch with no recognized fields for the caller's
// role is a no-op, not an error.
func (s *profileService) UpdateProfile(ctx context.Context, identity Identity, patch ProfilePatch) (*Profile, error) {
	if identity.Role == model.RoleManager && patch.Salary != nil && patch.Salary.IsNegative() {
		return nil, errors.ErrInvalidSalary
	}

	userFields := map[string]interface{}{}
	if patch.FirstName != nil {
		userFields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		userFields["last_name"] = *patch.LastName
	}
	if patch.Phone != nil {
		userFields["phone"] = *patch.Phone
	}

	var updatedUser *model.User
	if len(userFields) > 0 {
		user, err := s.userRepo.UpdateFields(ctx, identity.UserID, userFields)
		if err != nil {
			return nil, err
		}
		updatedUser = user
	}

	switch identity.Role {
	case model.RoleCustomer:
		roleFields := customerPatchFields(CustomerPatch{
			Address:         patch.Address,
			DrivingLicense:  patch.DrivingLicense,
			PreferredBrands: patch.PreferredBrands,
		})
		if len(roleFields) > 0 {
			customer, err := s.customerRepo.FindByUserID(ctx, identity.UserID)
			if err != nil {
				return nil, err
			}
			updated, err := s.customerRepo.UpdateFields(ctx, customer.ID, roleFields)
			if err != nil {
				return nil, err
			}
			return &Profile{Role: identity.Role, Customer: updated}, nil
		}
	case model.RoleManager:
		roleFields := map[string]interface{}{}
		if patch.Department != nil {
			roleFields["department"] = *patch.Department
		}
		if patch.Salary != nil {
			roleFields["salary"] = *patch.Salary
		}
		if patch.Permissions != nil {
			roleFields["permissions"] = *patch.Permissions
		}
		if len(roleFields) > 0 {
			manager, err := s.managerRepo.FindByUserID(ctx, identity.UserID)
			if err != nil {
				return nil, err
			}
			updated, err := s.managerRepo.UpdateFields(ctx, manager.ID, roleFields)
			if err != nil {
				return nil, err
			}
			return &Profile{Role: identity.Role, Manager: updated}, nil
		}
	}

	if updatedUser != nil {
		return &Profile{Role: identity.Role, User: updatedUser}, nil
	}

	// Nothing recognized: return the caller unchanged.
	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return &Profile{Role: identity.Role, User: user}, nil
}

// UpdateAccount stages credential changes in a fixed order: email
// conflict, password-change preconditions, then the no-op check. An
// email change re-issues the access token.
func (s *profileService) UpdateAccount(ctx context.Context, identity Identity, patch AccountPatch) (*AccountResult, error) {
	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	staged := map[string]interface{}{}
	emailChanged := false

	if patch.Email != "" && patch.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, patch.Email)
		if err == nil && existing != nil {
			return nil, errors.ErrEmailExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		staged["email"] = patch.Email
		emailChanged = true
	}

	if patch.NewPassword != "" {
		if patch.CurrentPassword == "" {
			return nil, errors.ErrCurrentPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(patch.CurrentPassword)); err != nil {
			return nil, errors.ErrCurrentPasswordInvalid
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(patch.NewPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		staged["password_hash"] = string(hashed)
	}

	if len(staged) == 0 {
		return &AccountResult{User: user}, nil
	}

	updated, err := s.userRepo.UpdateFields(ctx, identity.UserID, staged)
	if err != nil {
		return nil, err
	}

	result := &AccountResult{User: updated, Changed: true}
	if emailChanged {
		token, err := s.jwtService.GenerateAccessToken(updated.ID, updated.Email, updated.Role)
		if err != nil {
			return nil, fmt.Errorf("generate access token: %w", err)
		}
		result.Token = token
	}
	return result, nil
}
