package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"motorlot/internal/errors"
	"motorlot/internal/model"
	"motorlot/internal/repository"
)

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// CategoryDetail is a category together with its referencing cars.
type CategoryDetail struct {
	Category *model.Category `json:"category"`
	Cars     []model.Car     `json:"cars"`
}

// CategoryService exposes category operations.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDetail, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	carRepo      repository.CarRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, carRepo repository.CarRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, carRepo: carRepo}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDetail, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}
	cars, err := s.carRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CategoryDetail{Category: category, Cars: cars}, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByName(ctx, category.Name)
	if err == nil && existing != nil {
		return nil, errors.ErrCategoryNameExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Name != nil && *patch.Name != category.Name {
		existing, err := s.categoryRepo.FindByName(ctx, *patch.Name)
		if err == nil && existing != nil {
			return nil, errors.ErrCategoryNameExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		fields["name"] = *patch.Name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}

	if len(fields) == 0 {
		return category, nil
	}
	return s.categoryRepo.UpdateFields(ctx, id, fields)
}

// DeleteCategory refuses to remove a category that still has cars.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := s.carRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.ErrCategoryInUse
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
