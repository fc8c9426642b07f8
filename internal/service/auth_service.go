package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/rabiijabrour/workers-production-system/internal/auth"
	"github.com/rabiijabrour/workers-production-system/internal/config"
	"github.com/rabiijabrour/workers-production-system/internal/domain"
	"github.com/rabiijabrour/workers-production-system/internal/events"
	"github.com/rabiijabrour/workers-production-system/internal/repository"
	apperrors "github.com/rabiijabrour/workers-production-system/pkg/util"
)

const uniqueViolation = "23505"

// AuthService coordinates registration, login and account management.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput carries the self-registration payload. All fields are
// required.
type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Role     domain.Role
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Role      domain.Role
	FullName  string
}

// Register creates a new account via self-registration. Only one admin may
// ever be created through this path; the privileged CreateUser path has no
// such restriction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if err := validateRegisterInput(input); err != nil {
		return err
	}

	if input.Role == domain.RoleAdmin {
		count, err := s.users.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return apperrors.NewStoreError(err)
		}
		if count > 0 {
			return apperrors.NewConflict("an admin account already exists", nil)
		}
	}

	if err := s.checkUniqueness(ctx, input.Username, input.Email); err != nil {
		return err
	}

	if _, err := s.insertUser(ctx, input, domain.UserStatusActive); err != nil {
		return err
	}
	return nil
}

// Login authenticates by username and password. Unknown usernames and
// wrong passwords produce the same generic error; inactive accounts are
// reported distinctly, before the password is checked.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password are required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewStoreError(err)
	}

	if !user.Active() {
		return nil, apperrors.NewInactiveAccount()
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	// Last-login bookkeeping must not delay or fail the login response.
	go func(id string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.users.UpdateLastLogin(ctx, id, time.Now()); err != nil {
			s.logger.Warn("failed to update last login", zap.String("user_id", id), zap.Error(err))
		}
	}(user.ID)

	token, expiresAt, err := s.tokenMgr.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      user.Role,
		FullName:  user.FullName,
	}, nil
}

// Profile returns the account for the authenticated caller.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewStoreError(err)
	}
	return user, nil
}

// ListUsers returns all accounts, including soft-deleted ones.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return users, nil
}

// CreateUser is the privileged user-management path. Unlike Register it
// performs no singleton-admin check, so an existing admin can create more
// admins here.
func (s *AuthService) CreateUser(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}
	if err := s.checkUniqueness(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}
	return s.insertUser(ctx, input, domain.UserStatusActive)
}

// UpdateUserInput carries a partial account update; nil fields are left
// untouched.
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Password *string
	Role     *domain.Role
	Status   *domain.UserStatus
}

// UpdateUser applies a partial update. Admins may update anyone; other
// callers only themselves, and never their own role or status.
func (s *AuthService) UpdateUser(ctx context.Context, actor *auth.Claims, targetID string, input UpdateUserInput) (*domain.User, error) {
	if !auth.CanManageUser(actor, targetID) {
		return nil, apperrors.NewAccessDenied("cannot modify another user's account")
	}
	if !actor.IsAdmin() && (input.Role != nil || input.Status != nil) {
		return nil, apperrors.NewAccessDenied("role and status changes require admin")
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.NewStoreError(err)
	}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, apperrors.NewValidationError("fullName must not be empty", nil)
		}
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, apperrors.NewValidationError("email must not be empty", nil)
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, apperrors.NewValidationError("password must not be empty", nil)
		}
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		user.Status = *input.Status
	}

	if err := s.users.Update(ctx, user); err != nil {
		if translated := translateUniqueViolation(err); translated != nil {
			return nil, translated
		}
		return nil, apperrors.NewStoreError(err)
	}
	return user, nil
}

// DeleteUser soft-deletes the target account. Deleting one's own account
// is refused with a dedicated error, even for admins.
func (s *AuthService) DeleteUser(ctx context.Context, actor *auth.Claims, targetID string) error {
	if actor == nil || !actor.IsAdmin() {
		return apperrors.NewAccessDenied("admin role required")
	}
	if actor.UserID == targetID {
		return apperrors.NewSelfDeleteForbidden()
	}

	if err := s.users.SoftDelete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.NewStoreError(err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the bootstrap administrator if absent.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	_, err := s.users.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewStoreError(err)
	}

	if _, err := s.insertUser(ctx, RegisterInput{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		FullName: cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		Role:     domain.RoleAdmin,
	}, domain.UserStatusActive); err != nil {
		return err
	}
	s.logger.Info("default admin account created", zap.String("username", cfg.AdminUsername))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) insertUser(ctx context.Context, input RegisterInput, status domain.UserStatus) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         input.Role,
		Status:       status,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The check-then-insert sequence is not atomic; the unique index
		// closes the race and surfaces here.
		if translated := translateUniqueViolation(err); translated != nil {
			return nil, translated
		}
		return nil, apperrors.NewStoreError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventUserRegistered, events.UserRegisteredPayload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		}))
	}
	return user, nil
}

// checkUniqueness reports a conflict naming the colliding field. Username
// takes precedence when both match.
func (s *AuthService) checkUniqueness(ctx context.Context, username, email string) error {
	existing, err := s.users.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.NewStoreError(err)
	}
	if existing.Username == username {
		return apperrors.NewConflict("username already taken", map[string]any{"field": "username"})
	}
	return apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
}

func validateRegisterInput(input RegisterInput) error {
	switch {
	case input.Username == "":
		return apperrors.NewValidationError("username is required", nil)
	case input.Password == "":
		return apperrors.NewValidationError("password is required", nil)
	case input.FullName == "":
		return apperrors.NewValidationError("fullName is required", nil)
	case input.Email == "":
		return apperrors.NewValidationError("email is required", nil)
	case input.Role == "":
		return apperrors.NewValidationError("role is required", nil)
	case !domain.ValidRole(input.Role):
		return apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	return nil
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	default:
		return apperrors.NewConflict("username already taken", map[string]any{"field": "username"})
	}
}
