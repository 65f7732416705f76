package domain

import "time"

// Role separates administrators from residents.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleResident Role = "RESIDENT"
)

// User is a portal account. Password is stored and compared as plain text.
type User struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Password      string    `json:"password,omitempty"`
	Role          Role      `json:"role"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contactNumber"`
	CreatedAt     time.Time `json:"createdAt"`
	Approved      bool      `json:"approved"`
}

// CanAuthenticate reports whether the account may open a session.
// Admins are always allowed; residents need approval first.
func (u User) CanAuthenticate() bool {
	return u.Role == RoleAdmin || u.Approved
}

// RegistrationProfile is what a prospective resident supplies when signing up.
type RegistrationProfile struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
}

// Validate checks required registration fields.
func (p RegistrationProfile) Validate() error {
	return requireFields(map[string]string{
		"fullName": p.FullName,
		"email":    p.Email,
		"password": p.Password,
	})
}
