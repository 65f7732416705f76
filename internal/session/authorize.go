package session

import (
	"net/http"

	"github.com/spec-kit/village-portal/internal/domain"
)

// Decision is the outcome of a route check.
type Decision int

const (
	Allowed Decision = iota
	// DeniedNoSession sends the caller to sign in.
	DeniedNoSession
	// DeniedRole hides the route as if it did not exist.
	DeniedRole
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedNoSession:
		return "denied_no_session"
	default:
		return "denied_role"
	}
}

// HTTPStatus maps the decision onto the response a transport should send.
func (d Decision) HTTPStatus() int {
	switch d {
	case Allowed:
		return http.StatusOK
	case DeniedNoSession:
		return http.StatusUnauthorized
	default:
		return http.StatusNotFound
	}
}

// Authorize reports whether current holds one of the required roles.
func Authorize(required []domain.Role, current *domain.User) Decision {
	if current == nil {
		return DeniedNoSession
	}
	for _, role := range required {
		if current.Role == role {
			return Allowed
		}
	}
	return DeniedRole
}

// Authorize checks the gate's signed-in user against required.
func (g *Gate) Authorize(required ...domain.Role) Decision {
	user, ok := g.Current()
	if !ok {
		return Authorize(required, nil)
	}
	return Authorize(required, &user)
}
