package dto

import (
	"time"

	"github.com/spec-kit/village-portal/internal/domain"
)

// BidRequest payload for posting or editing a bid.
type BidRequest struct {
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	BudgetEstimate     float64          `json:"budgetEstimate"`
	SubmissionDeadline time.Time        `json:"submissionDeadline"`
	Status             domain.BidStatus `json:"status"`
	AwardedTo          string           `json:"awardedTo"`
}

// Bid converts the payload to a bid with the given identifier.
func (r BidRequest) Bid(id string) domain.Bid {
	return domain.Bid{
		ID:                 id,
		Title:              r.Title,
		Description:        r.Description,
		BudgetEstimate:     r.BudgetEstimate,
		SubmissionDeadline: r.SubmissionDeadline,
		Status:             r.Status,
		AwardedTo:          r.AwardedTo,
	}
}

// AwardRequest names the winning vendor.
type AwardRequest struct {
	VendorName string `json:"vendorName"`
}

// ProposalRequest payload for a resident's bid submission.
type ProposalRequest struct {
	VendorName string  `json:"vendorName"`
	BidAmount  float64 `json:"bidAmount"`
	Proposal   string  `json:"proposal"`
}

// Submission converts the payload to a bid submission.
func (r ProposalRequest) Submission() domain.BidSubmission {
	return domain.BidSubmission{VendorName: r.VendorName, BidAmount: r.BidAmount, Proposal: r.Proposal}
}

// AnnouncementRequest payload for publishing or editing an announcement.
type AnnouncementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsUrgent bool   `json:"isUrgent"`
}

// Announcement converts the payload to an announcement with the given identifier.
func (r AnnouncementRequest) Announcement(id string) domain.Announcement {
	return domain.Announcement{ID: id, Title: r.Title, Content: r.Content, IsUrgent: r.IsUrgent}
}

// ServiceRequestRequest payload for filing a service request.
type ServiceRequestRequest struct {
	Category    domain.ServiceRequestCategory `json:"category"`
	Description string                        `json:"description"`
	Location    string                        `json:"location"`
	PhotoURL    string                        `json:"photoUrl"`
}

// ServiceRequest converts the payload to a service request.
func (r ServiceRequestRequest) ServiceRequest() domain.ServiceRequest {
	return domain.ServiceRequest{
		Category:    r.Category,
		Description: r.Description,
		Location:    r.Location,
		PhotoURL:    r.PhotoURL,
	}
}

// RequestStatusRequest payload for an administrator's request update.
type RequestStatusRequest struct {
	Status     domain.ServiceRequestStatus `json:"status"`
	AdminNotes string                      `json:"adminNotes"`
}
