package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rabiijabrour/workers-production-system/internal/api/http/handlers"
	"github.com/rabiijabrour/workers-production-system/internal/auth"
	"github.com/rabiijabrour/workers-production-system/internal/config"
	"github.com/rabiijabrour/workers-production-system/internal/domain"
	"github.com/rabiijabrour/workers-production-system/internal/observability"
	"github.com/rabiijabrour/workers-production-system/internal/persistence"
	"github.com/rabiijabrour/workers-production-system/internal/service"
)

// memUserRepo is a minimal in-memory repository.UserRepository for
// transport tests.
type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = "id-" + user.Username
	user.CreatedAt = time.Now()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username || user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, nil
}

func (m *memUserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	count := 0
	for _, user := range m.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *memUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (m *memUserRepo) SoftDelete(ctx context.Context, id string) error {
	user, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = domain.UserStatusDeleted
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService, *memUserRepo) {
	t.Helper()

	repo := newMemUserRepo()
	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}, repo, nil, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), MiddlewareConfig{})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Workers:        handlers.NewWorkersHandler(service.NewWorkerService(nil, nil)),
		Productions:    handlers.NewProductionsHandler(service.NewProductionService(nil, nil, nil, zap.NewNop())),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})
	return app, authService, repo
}

func seedAccount(t *testing.T, repo *memUserRepo, username string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("pw123456", bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: hash,
		FullName:     username + " Full",
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*stdhttp.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestProtectedRoute_MissingHeaderIsUnauthenticated(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, stdhttp.MethodGet, "/api/me", "", nil)
	assert.Equal(t, stdhttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(body))
}

func TestProtectedRoute_BadTokenIsForbidden(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, stdhttp.MethodGet, "/api/me", "garbage-token", nil)
	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(body))
}

func TestProtectedRoute_ExpiredTokenIsForbidden(t *testing.T) {
	app, _, repo := newTestApp(t)
	user := seedAccount(t, repo, "alice", domain.RoleWorker)

	// Signed with the right secret but already expired.
	claims := &auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resp, body := doJSON(t, app, stdhttp.MethodGet, "/api/me", token, nil)
	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(body))
}

func TestAdminGate(t *testing.T) {
	app, authService, repo := newTestApp(t)
	seedAccount(t, repo, "alice", domain.RoleWorker)
	seedAccount(t, repo, "root", domain.RoleAdmin)

	workerLogin, err := authService.Login(context.Background(), "alice", "pw123456")
	require.NoError(t, err)
	adminLogin, err := authService.Login(context.Background(), "root", "pw123456")
	require.NoError(t, err)

	resp, body := doJSON(t, app, stdhttp.MethodGet, "/api/users/", workerLogin.Token, nil)
	assert.Equal(t, stdhttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", errorCode(body))

	resp, _ = doJSON(t, app, stdhttp.MethodGet, "/api/users/", adminLogin.Token, nil)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, body := doJSON(t, app, stdhttp.MethodPost, "/api/register", "", map[string]string{
		"username": "alice",
		"password": "pw123456",
		"fullName": "Alice A",
		"email":    "a@x.com",
		"role":     "worker",
	})
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["message"])

	resp, body = doJSON(t, app, stdhttp.MethodPost, "/api/login", "", map[string]string{
		"username": "alice",
		"password": "pw123456",
	})
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "worker", body["role"])
	assert.Equal(t, "Alice A", body["fullName"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, stdhttp.MethodGet, "/api/me", token, nil)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	// The profile never carries password material.
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)
	_, hasHash := body["passwordHash"]
	assert.False(t, hasHash)
}

func TestLogin_ErrorPayloadsByteIdentical(t *testing.T) {
	app, _, repo := newTestApp(t)
	seedAccount(t, repo, "alice", domain.RoleWorker)

	read := func(username, password string) (int, []byte) {
		encoded, err := json.Marshal(map[string]string{"username": username, "password": password})
		require.NoError(t, err)
		req := httptest.NewRequest(stdhttp.MethodPost, "/api/login", bytes.NewReader(encoded))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, raw
	}

	unknownStatus, unknownBody := read("nobody", "whatever")
	wrongPwStatus, wrongPwBody := read("alice", "wrong")

	assert.Equal(t, stdhttp.StatusUnauthorized, unknownStatus)
	assert.Equal(t, unknownStatus, wrongPwStatus)
	assert.Equal(t, unknownBody, wrongPwBody)
}
