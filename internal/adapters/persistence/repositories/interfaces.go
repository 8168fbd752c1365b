package repositories

import (
	"context"

	"shoplite-catalog/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListActive(ctx context.Context) ([]*models.Category, error)
	ListChildren(ctx context.Context, parentID uint) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetActiveBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListActive(ctx context.Context, offset, limit int) ([]*models.Product, int64, error)
	ListByCategoryIDs(ctx context.Context, categoryIDs []uint) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}
