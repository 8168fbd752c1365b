package services

import (
	"context"

	"shoplite-catalog/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository stubs backing the service tests.

type stubUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneUser(user), nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := make([]*models.User, 0, len(r.users))
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			all = append(all, cloneUser(user))
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(nil, username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubCategoryRepo struct {
	categories map[uint]*models.Category
	nextID     uint
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uint]*models.Category), nextID: 1}
}

func cloneCategory(c *models.Category) *models.Category {
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = r.nextID
	r.nextID++
	r.categories[category.ID] = cloneCategory(category)
	return nil
}

func (r *stubCategoryRepo) GetByID(_ context.Context, id uint) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneCategory(category), nil
}

func (r *stubCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, category := range r.categories {
		if category.Slug == slug {
			return cloneCategory(category), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) ListActive(_ context.Context) ([]*models.Category, error) {
	var active []*models.Category
	for id := uint(1); id < r.nextID; id++ {
		if category, ok := r.categories[id]; ok && category.IsActive {
			active = append(active, cloneCategory(category))
		}
	}
	return active, nil
}

func (r *stubCategoryRepo) ListChildren(_ context.Context, parentID uint) ([]*models.Category, error) {
	var children []*models.Category
	for id := uint(1); id < r.nextID; id++ {
		category, ok := r.categories[id]
		if ok && category.ParentID != nil && *category.ParentID == parentID {
			children = append(children, cloneCategory(category))
		}
	}
	return children, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *models.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.categories[category.ID] = cloneCategory(category)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.categories, id)
	return nil
}

type stubProductRepo struct {
	products map[uint]*models.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*models.Product), nextID: 1}
}

func cloneProduct(p *models.Product) *models.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneProduct(product), nil
}

func (r *stubProductRepo) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			return cloneProduct(product), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) GetActiveBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug && product.IsActive && product.Stock > 0 {
			return cloneProduct(product), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ListActive(_ context.Context, offset, limit int) ([]*models.Product, int64, error) {
	var active []*models.Product
	for id := uint(1); id < r.nextID; id++ {
		if product, ok := r.products[id]; ok && product.IsActive && product.Stock > 0 {
			active = append(active, cloneProduct(product))
		}
	}
	total := int64(len(active))
	if offset >= len(active) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], total, nil
}

func (r *stubProductRepo) ListByCategoryIDs(_ context.Context, categoryIDs []uint) ([]*models.Product, error) {
	wanted := make(map[uint]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}
	var matched []*models.Product
	for id := uint(1); id < r.nextID; id++ {
		product, ok := r.products[id]
		if ok && wanted[product.CategoryID] && product.IsActive && product.Stock > 0 {
			matched = append(matched, cloneProduct(product))
		}
	}
	return matched, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}
