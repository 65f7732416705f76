package domain

import "encoding/json"

// Snapshot is the complete set of collections held by the store at one point in time.
// A snapshot is treated as immutable once published; changes produce a new value.
type Snapshot struct {
	Users           []User           `json:"users"`
	Staff           []Staff          `json:"staff"`
	Bids            []Bid            `json:"bids"`
	BidSubmissions  []BidSubmission  `json:"bidSubmissions"`
	ServiceRequests []ServiceRequest `json:"serviceRequests"`
	Announcements   []Announcement   `json:"announcements"`

	// StaffLeave is kept verbatim so blobs that carry leave records keep
	// them across writes. Nothing in the portal reads it.
	StaffLeave []json.RawMessage `json:"staffLeave,omitempty"`
}

// Empty returns a snapshot with every collection allocated but empty.
func Empty() Snapshot {
	return Snapshot{
		Users:           []User{},
		Staff:           []Staff{},
		Bids:            []Bid{},
		BidSubmissions:  []BidSubmission{},
		ServiceRequests: []ServiceRequest{},
		Announcements:   []Announcement{},
	}
}

// FindUser looks a user up by identifier.
func (s Snapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindUserByEmail matches the email exactly, case included.
func (s Snapshot) FindUserByEmail(email string) (User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// FindStaff looks a staff record up by identifier.
func (s Snapshot) FindStaff(id string) (Staff, bool) {
	for _, st := range s.Staff {
		if st.ID == id {
			return st, true
		}
	}
	return Staff{}, false
}

// FindBid looks a bid up by identifier. Submissions may reference bids that no
// longer exist, so callers must handle the miss.
func (s Snapshot) FindBid(id string) (Bid, bool) {
	for _, b := range s.Bids {
		if b.ID == id {
			return b, true
		}
	}
	return Bid{}, false
}

// FindServiceRequest looks a request up by identifier.
func (s Snapshot) FindServiceRequest(id string) (ServiceRequest, bool) {
	for _, r := range s.ServiceRequests {
		if r.ID == id {
			return r, true
		}
	}
	return ServiceRequest{}, false
}

// FindAnnouncement looks an announcement up by identifier.
func (s Snapshot) FindAnnouncement(id string) (Announcement, bool) {
	for _, a := range s.Announcements {
		if a.ID == id {
			return a, true
		}
	}
	return Announcement{}, false
}

// Residents returns users with the resident role in stored order.
func (s Snapshot) Residents() []User {
	out := make([]User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.Role == RoleResident {
			out = append(out, u)
		}
	}
	return out
}

// SubmissionsForBid returns the proposals filed against a bid.
func (s Snapshot) SubmissionsForBid(bidID string) []BidSubmission {
	out := make([]BidSubmission, 0)
	for _, sub := range s.BidSubmissions {
		if sub.BidID == bidID {
			out = append(out, sub)
		}
	}
	return out
}

// RequestsBy returns the service requests filed by one user, newest first.
func (s Snapshot) RequestsBy(userID string) []ServiceRequest {
	out := make([]ServiceRequest, 0)
	for _, r := range s.ServiceRequests {
		if r.SubmittedBy == userID {
			out = append(out, r)
		}
	}
	return out
}

// UserName resolves a display name, falling back for dangling references.
func (s Snapshot) UserName(id string) string {
	if u, ok := s.FindUser(id); ok {
		return u.FullName
	}
	return "Unknown user"
}

// BidTitle resolves a bid title, falling back for dangling references.
func (s Snapshot) BidTitle(id string) string {
	if b, ok := s.FindBid(id); ok {
		return b.Title
	}
	return "Unknown bid"
}
