package session

import (
	"net/http"

	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// Failure outcomes of the gate. Compare with errors.Is.
var (
	ErrInvalidCredentials = apperrors.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password.", http.StatusUnauthorized, nil)
	ErrNotApproved        = apperrors.NewDomainError("NOT_APPROVED", "Your account is pending administrator approval.", http.StatusForbidden, nil)
	ErrDuplicateEmail     = apperrors.NewDomainError("DUPLICATE_EMAIL", "An account with this email already exists.", http.StatusConflict, nil)
	ErrNoSession          = apperrors.NewDomainError("NO_SESSION", "No user is signed in.", http.StatusUnauthorized, nil)
)
