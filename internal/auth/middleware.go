package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/session"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User  domain.User
	Token *Claims
}

// SessionSource is the part of the session gate the middleware consults.
type SessionSource interface {
	Refresh(ctx context.Context) session.State
	Current() (domain.User, bool)
}

// AuthMiddleware validates bearer tokens against the signed-in session.
type AuthMiddleware struct {
	tokens  *TokenManager
	session SessionSource
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, source SessionSource) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, session: source}
}

// Handle enforces authentication for protected routes. A token is only
// honoured while its subject is the gate's signed-in user.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.session.Refresh(c.UserContext()) != session.Authenticated {
		return apperrors.NewUnauthorized("no active session")
	}
	user, ok := m.session.Current()
	if !ok || user.ID != claims.Subject {
		return apperrors.NewUnauthorized("session does not match token")
	}

	c.Locals(principalKey, &Principal{User: user, Token: claims})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
