package services

import (
	"context"
	"errors"

	"shoplite-catalog/internal/adapters/persistence/models"
	"shoplite-catalog/internal/adapters/persistence/repositories"
	"shoplite-catalog/internal/core/domain"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput represents category create/update input
type CategoryInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	ParentID *uint  `json:"parent_id"`
}

// ListActive lists all active categories
func (s *CategoryService) ListActive(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListActive(ctx)
}

// GetByID gets a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create creates a new category; the slug is derived from the name
func (s *CategoryService) Create(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	if input.ParentID != nil {
		if _, err := s.GetByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:     input.Name,
		Slug:     slug.Make(input.Name),
		ParentID: input.ParentID,
		IsActive: true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Update updates a category's name, slug and parent
func (s *CategoryService) Update(ctx context.Context, id uint, input *CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Slug = slug.Make(input.Name)
	category.ParentID = input.ParentID

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// Delete deletes a category
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
