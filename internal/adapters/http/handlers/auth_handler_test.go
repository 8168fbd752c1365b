package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"shoplite-catalog/internal/adapters/http/middleware"
	"shoplite-catalog/internal/adapters/persistence/models"
	"shoplite-catalog/internal/config"
	"shoplite-catalog/internal/core/services"
	pkgjwt "shoplite-catalog/internal/pkg/jwt"
	"shoplite-catalog/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memUserRepo is an in-memory UserRepository for handler tests
type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			clone := *user
			all = append(all, &clone)
		}
	}
	return all, int64(len(all)), nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newAuthFixture(t *testing.T) (*fiber.App, *services.AuthService, *memUserRepo) {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenMins: 20},
	}
	repo := newMemUserRepo()
	authService := services.NewAuthService(repo, cfg)
	handler := NewAuthHandler(authService)

	app := fiber.New()
	guard := middleware.AuthMiddleware(authService)
	app.Post("/auth/token", handler.Login)
	app.Post("/auth/create_user", handler.CreateUser)
	app.Get("/auth/read_current_user", guard, handler.ReadCurrentUser)

	return app, authService, repo
}

func seedHandlerUser(t *testing.T, repo *memUserRepo, username, plaintext, role string, active bool) *models.User {
	t.Helper()
	hash, err := password.Hash(plaintext)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestLogin_Success(t *testing.T) {
	app, authService, repo := newAuthFixture(t)
	seedHandlerUser(t, repo, "alice", "correct-horse", models.RoleSupplier, true)

	resp := postForm(t, app, "/auth/token", url.Values{
		"username": {"alice"},
		"password": {"correct-horse"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "bearer", body["token_type"])
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	// The issued token decodes to a principal carrying the supplier role
	principal, err := authService.Authorize(token, time.Now())
	require.NoError(t, err)
	require.Equal(t, "alice", principal.Username)
	require.True(t, principal.IsSupplier())

	// Presented after the 20-minute lifetime the same token is expired
	_, err = authService.Authorize(token, time.Now().Add(21*time.Minute))
	require.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

// All authentication failures return the same 401 body
func TestLogin_FailuresAreUniform(t *testing.T) {
	app, _, repo := newAuthFixture(t)
	seedHandlerUser(t, repo, "alice", "correct-horse", models.RoleCustomer, true)
	seedHandlerUser(t, repo, "mallory", "hunter22222", models.RoleCustomer, false)

	forms := []url.Values{
		{"username": {"ghost"}, "password": {"whatever"}},
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"mallory"}, "password": {"hunter22222"}},
	}

	var bodies []map[string]interface{}
	for _, form := range forms {
		resp := postForm(t, app, "/auth/token", form)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		bodies = append(bodies, decodeBody(t, resp))
	}

	require.Equal(t, bodies[0], bodies[1])
	require.Equal(t, bodies[1], bodies[2])
}

func TestCreateUser_Success(t *testing.T) {
	app, _, repo := newAuthFixture(t)

	payload := `{"first_name":"Alice","last_name":"Smith","username":"alice","email":"alice@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/create_user", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, models.RoleCustomer, user.Role)
}

func TestCreateUser_Duplicate(t *testing.T) {
	app, _, repo := newAuthFixture(t)
	seedHandlerUser(t, repo, "alice", "correct-horse", models.RoleCustomer, true)

	payload := `{"first_name":"Alice","last_name":"Smith","username":"alice","email":"new@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/create_user", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateUser_ValidationFailure(t *testing.T) {
	app, _, _ := newAuthFixture(t)

	// Password below the 8-character minimum
	payload := `{"first_name":"Alice","last_name":"Smith","username":"alice","email":"alice@example.com","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/create_user", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReadCurrentUser(t *testing.T) {
	app, authService, repo := newAuthFixture(t)
	user := seedHandlerUser(t, repo, "alice", "correct-horse", models.RoleSupplier, true)

	token, err := authService.IssueToken(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/read_current_user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, _ := body["data"].(map[string]interface{})
	require.NotNil(t, data)
	principal, _ := data["user"].(map[string]interface{})
	require.NotNil(t, principal)
	require.Equal(t, "alice", principal["username"])
	require.Equal(t, models.RoleSupplier, principal["role"])
}

func TestReadCurrentUser_NoToken(t *testing.T) {
	app, _, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/read_current_user", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
