package service

import (
	"context"
	"fmt"

	"github.com/careerbridge/careerbridge-backend/internal/identity"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository/cache"
	"github.com/rs/zerolog"
)

// AuthService fronts the identity provider and keeps the revocation list.
type AuthService struct {
	provider identity.Provider
	revoked  cache.RevocationList
	students *StudentService
	colleges *CollegeService
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	provider identity.Provider,
	revoked cache.RevocationList,
	students *StudentService,
	colleges *CollegeService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		provider: provider,
		revoked:  revoked,
		students: students,
		colleges: colleges,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// Login exchanges credentials for a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("subject", sess.Principal.Subject).Str("role", string(sess.Principal.Role)).Msg("Login")
	return sess, nil
}

// RegisterStudent creates a student identity and its profile.
func (s *AuthService) RegisterStudent(ctx context.Context, req model.RegisterStudentRequest) (*model.Student, error) {
	p, err := s.provider.SignUp(ctx, req.Email, req.Password, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	st, err := s.students.Create(ctx, p.Subject, req.Name, req.Email)
	if err != nil {
		s.log.Error().Err(err).Str("subject", p.Subject).Msg("Identity created without student profile")
		return nil, fmt.Errorf("create student profile: %w", err)
	}
	return st, nil
}

// RegisterCollege creates a college identity and its unverified profile.
func (s *AuthService) RegisterCollege(ctx context.Context, req model.RegisterCollegeRequest) (*model.College, error) {
	p, err := s.provider.SignUp(ctx, req.Email, req.Password, model.RoleCollege)
	if err != nil {
		return nil, err
	}
	c, err := s.colleges.Create(ctx, p.Subject, req.CollegeRequest)
	if err != nil {
		s.log.Error().Err(err).Str("subject", p.Subject).Msg("Identity created without college profile")
		return nil, fmt.Errorf("create college profile: %w", err)
	}
	return c, nil
}

// Logout ends the session at the provider and revokes the token until it expires.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	p, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}
	if err := s.provider.SignOut(ctx, token); err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, p.TokenID, p.ExpiresAt)
}

// Verify returns the principal of a valid, unrevoked token.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.Principal, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", model.ErrUnauthenticated)
	}
	p, err := s.provider.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if p.TokenID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, p.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", model.ErrUnauthenticated)
		}
	}
	return p, nil
}
