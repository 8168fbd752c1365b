package services

import (
	"context"
	"errors"
	"log"
	"time"

	"shoplite-catalog/internal/adapters/persistence/models"
	"shoplite-catalog/internal/adapters/persistence/repositories"
	"shoplite-catalog/internal/config"
	"shoplite-catalog/internal/core/domain"
	"shoplite-catalog/internal/pkg/jwt"
	"shoplite-catalog/internal/pkg/password"

	"gorm.io/gorm"
)

// Principal is the authenticated identity derived from a validated token.
// It is a snapshot of the user's role at issuance time and is trusted until
// the token expires.
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the principal has the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// IsSupplier reports whether the principal has the supplier role
func (p *Principal) IsSupplier() bool {
	return p.Role == models.RoleSupplier
}

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Register registers a new customer account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      models.RoleCustomer,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Username)
	return user, nil
}

// Authenticate verifies a username/password pair against the store.
// Unknown username, wrong password and inactive account all collapse to
// ErrInvalidCredentials so the response never reveals which check failed.
func (s *AuthService) Authenticate(ctx context.Context, username, plaintext string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plaintext, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken issues a signed access token carrying the user's current
// identity and role, valid for the configured TTL.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return jwt.GenerateAccessToken(
		user.ID,
		user.Username,
		user.Role,
		s.cfg.JWT.Secret,
		s.AccessTokenTTL(),
	)
}

// AccessTokenTTL returns the configured access token lifetime
func (s *AuthService) AccessTokenTTL() time.Duration {
	return time.Duration(s.cfg.JWT.AccessTokenMins) * time.Minute
}

// Authorize validates a presented token and returns the Principal it
// carries. The now parameter makes the expiry check deterministic in tests.
//
// Checks run in a fixed order: signature/structure first, then subject and
// user id presence, then expiry presence, then expiry itself. A forged token
// therefore fails identically whatever its claimed expiry, and a token
// crafted without an expiry is reported distinctly from an elapsed one.
func (s *AuthService) Authorize(tokenString string, now time.Time) (*Principal, error) {
	claims, err := jwt.DecodeAccessToken(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" || claims.UserID == 0 {
		return nil, jwt.ErrTokenInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, jwt.ErrTokenMissingExpiry
	}

	// A token is expired from the stamped instant onward, never before it.
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, jwt.ErrTokenExpired
	}

	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}
