// Package seed holds the first-run demonstration dataset.
package seed

import (
	"time"

	"github.com/spec-kit/village-portal/internal/domain"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

// Dataset builds the demonstration snapshot with dates relative to now.
func Dataset(now time.Time) domain.Snapshot {
	now = now.UTC()
	day := 24 * time.Hour

	return domain.Snapshot{
		Users: []domain.User{
			{ID: "admin-1", FullName: "Admin User", Email: "admin@village.com", Password: DefaultPassword, Role: domain.RoleAdmin, Address: "1 Village Hall", ContactNumber: "111-222-3333", CreatedAt: now, Approved: true},
			{ID: "resident-1", FullName: "John Doe", Email: "john.doe@email.com", Password: DefaultPassword, Role: domain.RoleResident, Address: "123 Main St", ContactNumber: "555-123-4567", CreatedAt: now, Approved: true},
			{ID: "resident-2", FullName: "Jane Smith", Email: "jane.smith@email.com", Password: DefaultPassword, Role: domain.RoleResident, Address: "456 Oak Ave", ContactNumber: "555-987-6543", CreatedAt: now, Approved: true},
			{ID: "resident-3", FullName: "Bob Johnson", Email: "bob.j@email.com", Password: DefaultPassword, Role: domain.RoleResident, Address: "789 Pine Ln", ContactNumber: "555-555-5555", CreatedAt: now, Approved: false},
		},
		Staff: []domain.Staff{
			{ID: "staff-1", FullName: "Alice Williams", Role: "Office Clerk", ContactInfo: domain.ContactInfo{Email: "alice.w@village.com", Phone: "111-222-4444"}, JoinDate: "2022-08-15", SalaryInfo: "****", Status: domain.StaffStatusActive},
			{ID: "staff-2", FullName: "Charlie Brown", Role: "Maintenance", ContactInfo: domain.ContactInfo{Email: "charlie.b@village.com", Phone: "111-222-5555"}, JoinDate: "2021-05-20", SalaryInfo: "****", Status: domain.StaffStatusActive},
			{ID: "staff-3", FullName: "Diana Prince", Role: "Security", ContactInfo: domain.ContactInfo{Email: "diana.p@village.com", Phone: "111-222-6666"}, JoinDate: "2023-01-10", SalaryInfo: "****", Status: domain.StaffStatusOnLeave},
		},
		Bids: []domain.Bid{
			{ID: "bid-1", Title: "Community Park Landscaping", Description: "Seeking proposals for the complete redesign and landscaping of the central community park.", BudgetEstimate: 50000, SubmissionDeadline: now.Add(7 * day), Status: domain.BidStatusOpen},
			{ID: "bid-2", Title: "Town Hall Roof Repair", Description: "Urgent repairs needed for the Town Hall roof. Materials and labor must be included in the bid.", BudgetEstimate: 25000, SubmissionDeadline: now.Add(day), Status: domain.BidStatusUnderReview},
			{ID: "bid-3", Title: "Annual Street Paving Project", Description: "Paving and repair work for several designated streets within the village.", BudgetEstimate: 120000, SubmissionDeadline: now.AddDate(0, -1, 0), Status: domain.BidStatusAwarded, AwardedTo: "PaveCo Inc."},
			{ID: "bid-4", Title: "Waste Management Contract 2025", Description: "Comprehensive waste and recycling collection services for the entire village.", BudgetEstimate: 85000, SubmissionDeadline: now.AddDate(0, 1, 0), Status: domain.BidStatusOpen},
		},
		BidSubmissions: []domain.BidSubmission{
			{ID: "sub-1", BidID: "bid-2", VendorName: "Roofers United", BidAmount: 24500, Proposal: "We can start next week.", SubmittedBy: "resident-2", SubmittedAt: now},
		},
		ServiceRequests: []domain.ServiceRequest{
			{ID: "req-1", SubmittedBy: "resident-1", Category: domain.CategoryStreetlights, Description: "The streetlight at the corner of Main and Oak is flickering.", Location: "Corner of Main St and Oak Ave", Status: domain.ServiceRequestStatusNew, SubmittedAt: now},
			{ID: "req-2", SubmittedBy: "resident-2", Category: domain.CategoryWasteManagement, Description: "Missed garbage pickup on my street this week.", Location: "456 Oak Ave", Status: domain.ServiceRequestStatusInProgress, AdminNotes: "Contacted waste management company. They will do a special pickup tomorrow.", SubmittedAt: now.Add(-2 * day)},
			{ID: "req-3", SubmittedBy: "resident-1", Category: domain.CategoryRoads, Description: "Large pothole in front of my house.", Location: "123 Main St", Status: domain.ServiceRequestStatusResolved, SubmittedAt: now.Add(-12 * day)},
		},
		Announcements: []domain.Announcement{
			{ID: "ann-1", Title: "Annual Village Fair", Content: "The annual village fair will take place next Saturday at the community park. Join us for food, games, and fun!", IsUrgent: false, PublishedAt: now},
			{ID: "ann-2", Title: "Road Closure on Main St", Content: "Main Street will be closed between Oak and Pine on Monday for paving work. Please use alternate routes.", IsUrgent: true, PublishedAt: now},
		},
	}
}

// Provider returns a fallback function bound to clock for store.Open.
func Provider(clock func() time.Time) func() domain.Snapshot {
	return func() domain.Snapshot {
		return Dataset(clock())
	}
}
