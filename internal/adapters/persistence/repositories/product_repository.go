package repositories

import (
	"context"

	"shoplite-catalog/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// productRepository implements ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID gets a product by ID
func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetBySlug gets a product by slug regardless of visibility
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetActiveBySlug gets an active, in-stock product by slug
func (r *productRepository) GetActiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ? AND stock > 0", slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive lists active, in-stock products with pagination
func (r *productRepository) ListActive(ctx context.Context, offset, limit int) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ? AND stock > 0", true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListByCategoryIDs lists active, in-stock products in any of the categories
func (r *productRepository) ListByCategoryIDs(ctx context.Context, categoryIDs []uint) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("category_id IN ? AND is_active = ? AND stock > 0", categoryIDs, true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Update updates a product
func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete deletes a product
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}
