package domain

// StaffStatus tracks employment state.
type StaffStatus string

const (
	StaffStatusActive     StaffStatus = "Active"
	StaffStatusOnLeave    StaffStatus = "On Leave"
	StaffStatusTerminated StaffStatus = "Terminated"
)

// Valid reports whether the status is one of the known values.
func (s StaffStatus) Valid() bool {
	switch s {
	case StaffStatusActive, StaffStatusOnLeave, StaffStatusTerminated:
		return true
	}
	return false
}

// ContactInfo holds staff contact channels.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Staff is an employment record managed by administrators.
type Staff struct {
	ID          string      `json:"id"`
	FullName    string      `json:"fullName"`
	Role        string      `json:"role"`
	ContactInfo ContactInfo `json:"contactInfo"`
	JoinDate    string      `json:"joinDate"`
	SalaryInfo  string      `json:"salaryInfo"`
	Status      StaffStatus `json:"status"`
}

// Validate checks required staff fields.
func (s Staff) Validate() error {
	if err := requireFields(map[string]string{
		"fullName": s.FullName,
		"role":     s.Role,
	}); err != nil {
		return err
	}
	if !s.Status.Valid() {
		return invalidField("status", string(s.Status))
	}
	return nil
}
