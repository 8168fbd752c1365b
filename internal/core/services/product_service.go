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

// ProductService handles product business logic
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductInput represents product create/update input
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"max=255"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  uint    `json:"category_id" validate:"required"`
}

// ListActiveOutput represents paginated active products
type ListActiveOutput struct {
	Products []*models.Product `json:"products"`
	Total    int64             `json:"total"`
}

// ListActive lists active, in-stock products with pagination
func (s *ProductService) ListActive(ctx context.Context, offset, limit int) (*ListActiveOutput, error) {
	products, total, err := s.productRepo.ListActive(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return &ListActiveOutput{Products: products, Total: total}, nil
}

// GetBySlug gets an active, in-stock product by slug
func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.productRepo.GetActiveBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListByCategorySlug lists active products in a category and its direct
// subcategories.
func (s *ProductService) ListByCategorySlug(ctx context.Context, categorySlug string) ([]*models.Product, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	children, err := s.categoryRepo.ListChildren(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]uint, 0, len(children)+1)
	categoryIDs = append(categoryIDs, category.ID)
	for _, child := range children {
		categoryIDs = append(categoryIDs, child.ID)
	}

	return s.productRepo.ListByCategoryIDs(ctx, categoryIDs)
}

// Create creates a product owned by the calling supplier or admin. The
// product's supplier is always the principal; admins creating products own
// them the same way.
func (s *ProductService) Create(ctx context.Context, principal *Principal, input *ProductInput) (*models.Product, error) {
	if !principal.IsAdmin() && !principal.IsSupplier() {
		return nil, domain.ErrForbidden
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Slug:        slug.Make(input.Name),
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		IsActive:    true,
		CategoryID:  input.CategoryID,
		SupplierID:  principal.UserID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update updates a product. Admins may update any product; suppliers only
// their own.
func (s *ProductService) Update(ctx context.Context, principal *Principal, productSlug string, input *ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	if err := s.checkOwnership(principal, product); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Slug = slug.Make(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete deletes a product, subject to the same ownership rule as Update
func (s *ProductService) Delete(ctx context.Context, principal *Principal, productID uint) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}

	if err := s.checkOwnership(principal, product); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, productID)
}

// checkOwnership is the capability check for product mutation: admin may do
// anything, a supplier only touches products whose SupplierID matches its
// own user ID, everyone else is read-only.
func (s *ProductService) checkOwnership(principal *Principal, product *models.Product) error {
	if principal.IsAdmin() {
		return nil
	}
	if principal.IsSupplier() && product.SupplierID == principal.UserID {
		return nil
	}
	return domain.ErrForbidden
}
