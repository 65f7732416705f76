package service

import (
	"sort"
	"time"

	"github.com/spec-kit/village-portal/internal/domain"
)

const (
	recentPerKind        = 2
	recentActivityLimit  = 5
	residentRequestLimit = 4
	residentNoticeLimit  = 3
	activitySnippetLen   = 30
)

// Activity is one line of the admin activity feed.
type Activity struct {
	Type string    `json:"type"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
	Link string    `json:"link"`
}

// Deadline is an open bid's closing time.
type Deadline struct {
	BidID string    `json:"bidId"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

// AdminDashboard summarizes the portal for administrators.
type AdminDashboard struct {
	TotalResidents      int        `json:"totalResidents"`
	TotalStaff          int        `json:"totalStaff"`
	OpenServiceRequests int        `json:"openServiceRequests"`
	ActiveBids          int        `json:"activeBids"`
	UpcomingDeadlines   []Deadline `json:"upcomingDeadlines"`
	RecentActivity      []Activity `json:"recentActivity"`
}

// ResidentDashboard is a resident's landing page.
type ResidentDashboard struct {
	MyRequests          []domain.ServiceRequest `json:"myRequests"`
	RecentAnnouncements []domain.Announcement   `json:"recentAnnouncements"`
}

// DashboardService computes dashboard summaries from the current snapshot.
type DashboardService struct {
	base
}

// NewDashboardService constructs the service.
func NewDashboardService(deps Dependencies) *DashboardService {
	return &DashboardService{base: newBase(deps)}
}

// Admin builds the administrator dashboard.
func (s *DashboardService) Admin() AdminDashboard {
	snap := s.store.Snapshot()
	out := AdminDashboard{
		TotalResidents:    len(snap.Residents()),
		TotalStaff:        len(snap.Staff),
		UpcomingDeadlines: []Deadline{},
	}
	for _, r := range snap.ServiceRequests {
		if r.Status.Open() {
			out.OpenServiceRequests++
		}
	}
	for _, b := range snap.Bids {
		if b.Status.Active() {
			out.ActiveBids++
		}
		if b.Status == domain.BidStatusOpen {
			out.UpcomingDeadlines = append(out.UpcomingDeadlines, Deadline{BidID: b.ID, Title: b.Title, Date: b.SubmissionDeadline})
		}
	}
	sort.SliceStable(out.UpcomingDeadlines, func(i, j int) bool {
		return out.UpcomingDeadlines[i].Date.Before(out.UpcomingDeadlines[j].Date)
	})
	out.RecentActivity = s.recentActivity(snap)
	return out
}

// recentActivity merges the latest users, bids and requests into one feed.
// Bids carry no creation time, so they are stamped with the current time.
func (s *DashboardService) recentActivity(snap domain.Snapshot) []Activity {
	now := s.now()
	feed := make([]Activity, 0, 3*recentPerKind)
	for _, u := range lastN(snap.Users, recentPerKind) {
		feed = append(feed, Activity{Type: "New Resident", Text: u.FullName + " registered", Date: u.CreatedAt, Link: "/admin/residents"})
	}
	for _, b := range lastN(snap.Bids, recentPerKind) {
		feed = append(feed, Activity{Type: "New Bid", Text: b.Title, Date: now, Link: "/admin/bids"})
	}
	for _, r := range lastN(snap.ServiceRequests, recentPerKind) {
		feed = append(feed, Activity{Type: "New Request", Text: snippet(r.Description), Date: r.SubmittedAt, Link: "/admin/requests"})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	if len(feed) > recentActivityLimit {
		feed = feed[:recentActivityLimit]
	}
	return feed
}

// Resident builds the landing page for userID.
func (s *DashboardService) Resident(userID string) ResidentDashboard {
	snap := s.store.Snapshot()
	reqs := snap.RequestsBy(userID)
	if len(reqs) > residentRequestLimit {
		reqs = reqs[:residentRequestLimit]
	}
	for i := range reqs {
		reqs[i].AdminNotes = ""
	}
	anns := snap.Announcements
	if len(anns) > residentNoticeLimit {
		anns = anns[:residentNoticeLimit]
	}
	return ResidentDashboard{
		MyRequests:          reqs,
		RecentAnnouncements: append([]domain.Announcement{}, anns...),
	}
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > activitySnippetLen {
		runes = runes[:activitySnippetLen]
	}
	return string(runes) + "..."
}
