package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/ops-console/internal/auth"
	"github.com/spec-kit/ops-console/internal/config"
	"github.com/spec-kit/ops-console/internal/domain"
	"github.com/spec-kit/ops-console/internal/events"
	"github.com/spec-kit/ops-console/internal/repository"
	apperrors "github.com/spec-kit/ops-console/pkg/util/errorutil"
)

// Messages returned by account operations.
const (
	MessageUserExists         = "User already exists."
	MessageInvalidCredentials = "Invalid credentials."
	MessageEmailTaken         = "Email already in use."
)

// AuthService coordinates registration, login and profile changes.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	publisher
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// ProfileInput carries optional profile changes; nil fields are left as is.
type ProfileInput struct {
	Name     *string
	Email    *string
	Avatar   *string
	Password *string
	Role     *domain.Role
}

// Session is a freshly issued token with the user it belongs to.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		publisher:  publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Register creates an account. Role defaults to Employee.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be one of: Admin Manager Employee", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewConflict(MessageUserExists, nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, identityOf(user), user.ID, events.NamedPayload{Name: user.Name})
	return user, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(MessageInvalidCredentials)
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(MessageInvalidCredentials)
	}
	return s.issue(user)
}

// UpdateProfile applies input to the caller's own account and returns a
// fresh token carrying the new claims. Changing the role requires Admin.
func (s *AuthService) UpdateProfile(ctx context.Context, identity domain.Identity, input ProfileInput) (*Session, error) {
	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(auth.MessageInvalidToken)
		}
		return nil, err
	}

	if input.Role != nil && *input.Role != user.Role {
		if identity.Role != domain.RoleAdmin {
			return nil, apperrors.NewForbidden("only admins can change roles")
		}
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("role must be one of: Admin Manager Employee", nil)
		}
		user.Role = *input.Role
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewConflict(MessageEmailTaken, nil)
		}
		return nil, err
	}
	return s.issue(user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(identityOf(user))
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func identityOf(user *domain.User) domain.Identity {
	return domain.Identity{ID: user.ID, Role: user.Role, Name: user.Name}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
