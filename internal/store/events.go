package store

import "github.com/spec-kit/village-portal/internal/events"

func eventTypeFor(cmd Command) events.EventType {
	switch cmd.(type) {
	case AddUser:
		return events.EventUserRegistered
	case UpdateUser:
		return events.EventUserUpdated
	case ReplaceUsers:
		return events.EventUsersReplaced
	case AddStaff:
		return events.EventStaffAdded
	case UpdateStaff:
		return events.EventStaffUpdated
	case DeleteStaff:
		return events.EventStaffRemoved
	case AddBid:
		return events.EventBidPosted
	case UpdateBid:
		return events.EventBidUpdated
	case DeleteBid:
		return events.EventBidRemoved
	case AddBidSubmission:
		return events.EventBidSubmissionReceived
	case AddAnnouncement:
		return events.EventAnnouncementPublished
	case UpdateAnnouncement:
		return events.EventAnnouncementUpdated
	case DeleteAnnouncement:
		return events.EventAnnouncementRemoved
	case AddServiceRequest:
		return events.EventServiceRequestFiled
	case UpdateServiceRequest:
		return events.EventServiceRequestUpdated
	}
	return events.EventType(cmd.Kind())
}

// payloadFor strips credentials before a record leaves the store.
func payloadFor(cmd Command) interface{} {
	switch c := cmd.(type) {
	case AddUser:
		c.User.Password = ""
		return c.User
	case UpdateUser:
		c.User.Password = ""
		return c.User
	case ReplaceUsers:
		return len(c.Users)
	case AddStaff:
		return c.Staff
	case UpdateStaff:
		return c.Staff
	case AddBid:
		return c.Bid
	case UpdateBid:
		return c.Bid
	case AddBidSubmission:
		return c.Submission
	case AddAnnouncement:
		return c.Announcement
	case UpdateAnnouncement:
		return c.Announcement
	case AddServiceRequest:
		return c.Request
	case UpdateServiceRequest:
		return c.Request
	}
	return nil
}
