package services

import (
	"context"
	"errors"
	"log"

	"shoplite-catalog/internal/adapters/persistence/models"
	"shoplite-catalog/internal/adapters/persistence/repositories"
	"shoplite-catalog/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}

	return &ListUsersOutput{Users: responses, Total: total}, nil
}

// ToggleSupplierRole switches a user between the supplier and customer
// roles. Admin accounts are never toggled: the single-role model has no
// valid state for an admin that is also a supplier.
func (s *UserService) ToggleSupplierRole(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if user.Role == models.RoleSupplier {
		user.Role = models.RoleCustomer
	} else {
		user.Role = models.RoleSupplier
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Role changed: %s is now %s", user.Username, user.Role)
	return user, nil
}

// ToggleActive flips a user's active flag. Accounts are never hard-deleted;
// deactivation blocks authentication and reactivation restores it. Admin
// accounts cannot be deactivated.
func (s *UserService) ToggleActive(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	user.IsActive = !user.IsActive

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Active flag toggled: %s active=%t", user.Username, user.IsActive)
	return user, nil
}
