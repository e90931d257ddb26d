package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rsvpdesk/rsvpdesk-go/internal/crypto"
	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/repository"
)

var (
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrRoleRequired       = errors.New("role is required")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles signup, login, and the admin bootstrap.
type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Signup creates a new user account with role "user" and returns its ID.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (int64, error) {
	if req.Name == "" {
		return 0, ErrNameRequired
	}
	if req.Email == "" {
		return 0, ErrEmailRequired
	}
	if req.Password == "" {
		return 0, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	return user.ID, nil
}

// Login authenticates a user and issues a session token. The requested role
// must match the account's role exactly; the session stores that role as a
// snapshot. Issued tokens never expire.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if req.Email == "" {
		return model.LoginResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.LoginResponse{}, ErrPasswordRequired
	}
	if req.Role == "" {
		return model.LoginResponse{}, ErrRoleRequired
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.Password) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}
	if user.Role != req.Role {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Token: session.Token,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}

// EnsureAdmin seeds the bootstrap admin account if no admin exists yet.
// Idempotent: running it on every startup creates at most one admin.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	n, err := s.users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     model.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("bootstrap admin created", "email", email)
	return nil
}
