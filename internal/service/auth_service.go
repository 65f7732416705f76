package service

import (
	"context"
	"time"

	"github.com/spec-kit/village-portal/internal/auth"
	"github.com/spec-kit/village-portal/internal/config"
	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/session"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// AuthService coordinates registration, sign-in and profile flows on top of
// the session gate.
type AuthService struct {
	gate     *session.Gate
	tokenMgr *auth.TokenManager
}

// ProfileUpdate holds the fields a user may change on their own record.
// Email may only be changed by administrators; empty keeps the current one.
type ProfileUpdate struct {
	FullName      string
	Email         string
	ContactNumber string
	Address       string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, gate *session.Gate) *AuthService {
	return &AuthService{
		gate:     gate,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Register creates a pending resident. No token is issued until an
// administrator approves the account and the resident signs in.
func (s *AuthService) Register(ctx context.Context, profile domain.RegistrationProfile) (domain.User, error) {
	user, err := s.gate.Register(ctx, profile)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = ""
	return user, nil
}

// Login signs the user in and issues a bearer token for the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, time.Time, error) {
	user, err := s.gate.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		_ = s.gate.Logout(ctx)
		return domain.User{}, "", time.Time{}, apperrors.NewInternalError(err)
	}
	user.Password = ""
	return user, token, exp, nil
}

// Logout ends the session. Outstanding tokens stop working with it.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.gate.Logout(ctx)
}

// Me returns the signed-in user.
func (s *AuthService) Me() (domain.User, error) {
	user, ok := s.gate.Current()
	if !ok {
		return domain.User{}, session.ErrNoSession
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile changes the signed-in user's contact details.
func (s *AuthService) UpdateProfile(ctx context.Context, update ProfileUpdate) (domain.User, error) {
	user, ok := s.gate.Current()
	if !ok {
		return domain.User{}, session.ErrNoSession
	}
	if update.FullName == "" {
		return domain.User{}, apperrors.NewValidationError("missing required fields: fullName", map[string]any{"fields": []string{"fullName"}})
	}
	if update.Email != "" && update.Email != user.Email {
		if user.Role != domain.RoleAdmin {
			return domain.User{}, apperrors.NewForbidden("only administrators can change their email")
		}
		user.Email = update.Email
	}
	user.FullName = update.FullName
	user.ContactNumber = update.ContactNumber
	user.Address = update.Address

	updated, err := s.gate.UpdateCurrentUser(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	updated.Password = ""
	return updated, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
