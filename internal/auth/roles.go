package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/session"
)

// RequireRoles lets the request through only when the principal holds one of
// the roles. Without a principal the caller gets 401; with the wrong role the
// route answers 404 so it stays hidden.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var current *domain.User
		if principal, ok := PrincipalFromContext(c); ok {
			current = &principal.User
		}
		switch decision := session.Authorize(allowed, current); decision {
		case session.Allowed:
			return c.Next()
		case session.DeniedNoSession:
			return fiber.NewError(decision.HTTPStatus(), http.StatusText(http.StatusUnauthorized))
		default:
			return fiber.NewError(decision.HTTPStatus(), "Cannot "+c.Method()+" "+c.Path())
		}
	}
}

// RequireAdmin restricts a route to administrators.
func RequireAdmin() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// RequireResident restricts a route to residents.
func RequireResident() fiber.Handler {
	return RequireRoles(domain.RoleResident)
}
