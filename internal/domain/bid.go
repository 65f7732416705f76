package domain

import "time"

// BidStatus enumerates procurement listing states.
type BidStatus string

const (
	BidStatusOpen        BidStatus = "Open"
	BidStatusUnderReview BidStatus = "Under Review"
	BidStatusAwarded     BidStatus = "Awarded"
	BidStatusClosed      BidStatus = "Closed"
)

// Valid reports whether the status is one of the known values.
func (s BidStatus) Valid() bool {
	switch s {
	case BidStatusOpen, BidStatusUnderReview, BidStatusAwarded, BidStatusClosed:
		return true
	}
	return false
}

// Active reports whether the bid still accepts or evaluates proposals.
func (s BidStatus) Active() bool {
	return s == BidStatusOpen || s == BidStatusUnderReview
}

// Bid is a procurement listing.
type Bid struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	BudgetEstimate     float64   `json:"budgetEstimate"`
	SubmissionDeadline time.Time `json:"submissionDeadline"`
	Status             BidStatus `json:"status"`
	AwardedTo          string    `json:"awardedTo,omitempty"`
}

// Validate checks required bid fields, including the submission deadline; an
// awarded bid must name its vendor.
func (b Bid) Validate() error {
	if err := requireFields(map[string]string{"title": b.Title}); err != nil {
		return err
	}
	if !b.Status.Valid() {
		return invalidField("status", string(b.Status))
	}
	if b.BudgetEstimate < 0 {
		return invalidField("budgetEstimate", "negative")
	}
	if b.SubmissionDeadline.IsZero() {
		return invalidField("submissionDeadline", "required")
	}
	if b.Status == BidStatusAwarded && b.AwardedTo == "" {
		return invalidField("awardedTo", "required when status is Awarded")
	}
	return nil
}

// BidSubmission is a proposal against exactly one bid.
type BidSubmission struct {
	ID          string    `json:"id"`
	BidID       string    `json:"bidId"`
	VendorName  string    `json:"vendorName"`
	BidAmount   float64   `json:"bidAmount"`
	Proposal    string    `json:"proposal"`
	SubmittedBy string    `json:"submittedBy"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Validate checks required proposal fields.
func (s BidSubmission) Validate() error {
	if err := requireFields(map[string]string{
		"bidId":      s.BidID,
		"vendorName": s.VendorName,
		"proposal":   s.Proposal,
	}); err != nil {
		return err
	}
	if s.BidAmount <= 0 {
		return invalidField("bidAmount", "must be positive")
	}
	return nil
}
