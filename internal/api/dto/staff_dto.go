package dto

import "github.com/spec-kit/village-portal/internal/domain"

// StaffRequest payload for creating or editing a staff member.
type StaffRequest struct {
	FullName   string             `json:"fullName"`
	Role       string             `json:"role"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	JoinDate   string             `json:"joinDate"`
	SalaryInfo string             `json:"salaryInfo"`
	Status     domain.StaffStatus `json:"status"`
}

// Staff converts the payload to a staff record with the given identifier.
func (r StaffRequest) Staff(id string) domain.Staff {
	return domain.Staff{
		ID:          id,
		FullName:    r.FullName,
		Role:        r.Role,
		ContactInfo: domain.ContactInfo{Email: r.Email, Phone: r.Phone},
		JoinDate:    r.JoinDate,
		SalaryInfo:  r.SalaryInfo,
		Status:      r.Status,
	}
}
