package store

import "github.com/spec-kit/village-portal/internal/domain"

// Apply returns the snapshot produced by cmd. The input snapshot is never
// modified; collections untouched by the command are shared with the result.
//
// found is false when a replace or delete names an identifier that is not
// present (the result then equals the input) and for a nil command.
func Apply(s domain.Snapshot, cmd Command) (next domain.Snapshot, found bool) {
	next = s
	switch c := cmd.(type) {
	case AddUser:
		next.Users = appendOne(s.Users, c.User)
		return next, true
	case UpdateUser:
		next.Users, found = replaceByID(s.Users, c.User, userID)
	case ReplaceUsers:
		next.Users = append([]domain.User(nil), c.Users...)
		return next, true
	case AddStaff:
		next.Staff = appendOne(s.Staff, c.Staff)
		return next, true
	case UpdateStaff:
		next.Staff, found = replaceByID(s.Staff, c.Staff, staffID)
	case DeleteStaff:
		next.Staff, found = removeByID(s.Staff, c.ID, staffID)
	case AddBid:
		next.Bids = appendOne(s.Bids, c.Bid)
		return next, true
	case UpdateBid:
		next.Bids, found = replaceByID(s.Bids, c.Bid, bidID)
	case DeleteBid:
		next.Bids, found = removeByID(s.Bids, c.ID, bidID)
	case AddBidSubmission:
		next.BidSubmissions = appendOne(s.BidSubmissions, c.Submission)
		return next, true
	case AddAnnouncement:
		next.Announcements = prependOne(s.Announcements, c.Announcement)
		return next, true
	case UpdateAnnouncement:
		next.Announcements, found = replaceByID(s.Announcements, c.Announcement, announcementID)
	case DeleteAnnouncement:
		next.Announcements, found = removeByID(s.Announcements, c.ID, announcementID)
	case AddServiceRequest:
		next.ServiceRequests = prependOne(s.ServiceRequests, c.Request)
		return next, true
	case UpdateServiceRequest:
		next.ServiceRequests, found = replaceByID(s.ServiceRequests, c.Request, serviceRequestID)
	default:
		return s, false
	}
	if !found {
		return s, false
	}
	return next, true
}

// ApplyAll folds a command sequence over s.
func ApplyAll(s domain.Snapshot, cmds ...Command) domain.Snapshot {
	for _, cmd := range cmds {
		s, _ = Apply(s, cmd)
	}
	return s
}

func userID(u domain.User) string                     { return u.ID }
func staffID(s domain.Staff) string                   { return s.ID }
func bidID(b domain.Bid) string                       { return b.ID }
func announcementID(a domain.Announcement) string     { return a.ID }
func serviceRequestID(r domain.ServiceRequest) string { return r.ID }

func appendOne[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func prependOne[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func replaceByID[T any](items []T, item T, id func(T) string) ([]T, bool) {
	target := id(item)
	for i := range items {
		if id(items[i]) != target {
			continue
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = item
		return out, true
	}
	return items, false
}

// removeByID drops the first record with the identifier and keeps the rest in order.
func removeByID[T any](items []T, target string, id func(T) string) ([]T, bool) {
	for i := range items {
		if id(items[i]) != target {
			continue
		}
		out := make([]T, 0, len(items)-1)
		out = append(out, items[:i]...)
		return append(out, items[i+1:]...), true
	}
	return items, false
}
