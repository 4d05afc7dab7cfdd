package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"coursehub/internal/core/auth"
	"coursehub/internal/domain"
	"coursehub/internal/metrics"
	"coursehub/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, log: log}
}

type Credentials struct {
	User  *domain.User
	Token string
}

// Register creates the account and issues a token. The very first account on
// an empty store is granted the admin role; everyone after that is a student.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := domain.RoleStudent
	if total == 0 {
		role = domain.RoleAdmin
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// unique index is the backstop against a racing registration
		return nil, err
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	metrics.RegistrationsTotal.Inc()
	s.log.Info("user registered", zap.String("id", u.ID), zap.String("role", u.Role))
	return &Credentials{User: u, Token: tok}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Credentials{User: u, Token: tok}, nil
}

// Authenticate resolves a bearer token to the stored user. A valid signature
// over an identity that no longer exists is still unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwter.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, claims.UID)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// BootstrapAdmin seeds a named admin account if it does not exist yet.
func (s *AuthService) BootstrapAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.ErrValidation
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if name == "" {
		name = "admin"
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.log.Info("bootstrap admin created", zap.String("email", email))
	return nil
}
