package dto

import (
	"time"

	"github.com/spec-kit/village-portal/internal/domain"
)

// RegisterRequest payload for new residents.
type RegisterRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
}

// Profile converts the payload to a registration profile.
func (r RegisterRequest) Profile() domain.RegistrationProfile {
	return domain.RegistrationProfile{
		FullName:      r.FullName,
		Email:         r.Email,
		Password:      r.Password,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
	}
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest payload for editing one's own profile.
type ProfileUpdateRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// ApprovalRequest sets a resident's approval. A missing value toggles it.
type ApprovalRequest struct {
	Approved *bool `json:"approved"`
}

// AuthResponse standard response for auth endpoints. ExpiresAt is omitted
// for tokens that last until logout.
type AuthResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewAuthResponse builds the response, dropping a zero expiry.
func NewAuthResponse(token string, expiresAt time.Time) AuthResponse {
	resp := AuthResponse{Token: token}
	if !expiresAt.IsZero() {
		resp.ExpiresAt = &expiresAt
	}
	return resp
}
