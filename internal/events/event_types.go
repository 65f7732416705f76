package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered        EventType = "user_registered"
	EventUserUpdated           EventType = "user_updated"
	EventUsersReplaced         EventType = "users_replaced"
	EventStaffAdded            EventType = "staff_added"
	EventStaffUpdated          EventType = "staff_updated"
	EventStaffRemoved          EventType = "staff_removed"
	EventBidPosted             EventType = "bid_posted"
	EventBidUpdated            EventType = "bid_updated"
	EventBidRemoved            EventType = "bid_removed"
	EventBidSubmissionReceived EventType = "bid_submission_received"
	EventAnnouncementPublished EventType = "announcement_published"
	EventAnnouncementUpdated   EventType = "announcement_updated"
	EventAnnouncementRemoved   EventType = "announcement_removed"
	EventServiceRequestFiled   EventType = "service_request_filed"
	EventServiceRequestUpdated EventType = "service_request_updated"
)

// Event represents a change the store has committed.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}
