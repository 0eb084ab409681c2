package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

const topLocationsLimit = 10

// CustomerPatch is a partial customer update.
type CustomerPatch struct {
	Address         *model.Address
	DrivingLicense  *string
	PreferredBrands *[]string
}

// CustomerStats is the customer statistics payload.
type CustomerStats struct {
	Overview     repository.CustomerAggregates `json:"overview"`
	TopLocations []repository.LocationCount    `json:"topLocations"`
}

// CustomerService exposes customer administration operations.
type CustomerService interface {
	ListCustomers(ctx context.Context, filters repository.CustomerFilters, opts repository.ListOptions) ([]model.Customer, Pagination, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, patch CustomerPatch) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	AddPurchase(ctx context.Context, id, carID uuid.UUID) (*model.Customer, error)
	Stats(ctx context.Context) (*CustomerStats, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	carRepo      repository.CarRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, carRepo repository.CarRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, carRepo: carRepo}
}

func (s *customerService) ListCustomers(ctx context.Context, filters repository.CustomerFilters, opts repository.ListOptions) ([]model.Customer, Pagination, error) {
	customers, total, err := s.customerRepo.List(ctx, filters, opts)
	if err != nil {
		return nil, Pagination{}, err
	}
	return customers, NewPagination(opts.Page, opts.Limit, total), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, patch CustomerPatch) (*model.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := customerPatchFields(patch)
	if len(fields) == 0 {
		return customer, nil
	}
	return s.customerRepo.UpdateFields(ctx, id, fields)
}

// DeleteCustomer removes the customer and its owning user in one
// transaction.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	return s.customerRepo.DeleteWithUser(ctx, customer.ID, customer.UserID)
}

// AddPurchase appends a car to the purchase history with set
// semantics; appending a car that is already present changes nothing.
func (s *customerService) AddPurchase(ctx context.Context, id, carID uuid.UUID) (*model.Customer, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCarNotFound
		}
		return nil, err
	}
	if err := s.customerRepo.AddPurchase(ctx, id, carID); err != nil {
		return nil, err
	}
	return s.customerRepo.FindByID(ctx, id)
}

func (s *customerService) Stats(ctx context.Context) (*CustomerStats, error) {
	agg, err := s.customerRepo.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	agg.AvgPurchasesPerCustomer = round2(agg.AvgPurchasesPerCustomer)
	locations, err := s.customerRepo.TopLocations(ctx, topLocationsLimit)
	if err != nil {
		return nil, err
	}
	return &CustomerStats{Overview: *agg, TopLocations: locations}, nil
}

// customerPatchFields builds the defined-field subset of a customer
// update.
func customerPatchFields(patch CustomerPatch) map[string]interface{} {
	fields := map[string]interface{}{}
	if patch.Address != nil {
		fields["address_street"] = patch.Address.Street
		fields["address_city"] = patch.Address.City
		fields["address_state"] = patch.Address.State
		fields["address_zip_code"] = patch.Address.ZipCode
		fields["address_country"] = patch.Address.Country
	}
	if patch.DrivingLicense != nil {
		fields["driving_license"] = *patch.DrivingLicense
	}
	if patch.PreferredBrands != nil {
		fields["preferred_brands"] = *patch.PreferredBrands
	}
	return fields
}
