package domain

import "time"

// ServiceRequestStatus enumerates lifecycle states for resident issues.
type ServiceRequestStatus string

const (
	ServiceRequestStatusNew        ServiceRequestStatus = "New"
	ServiceRequestStatusInProgress ServiceRequestStatus = "In Progress"
	ServiceRequestStatusResolved   ServiceRequestStatus = "Resolved"
	ServiceRequestStatusClosed     ServiceRequestStatus = "Closed"
)

// Valid reports whether the status is one of the known values.
func (s ServiceRequestStatus) Valid() bool {
	switch s {
	case ServiceRequestStatusNew, ServiceRequestStatusInProgress, ServiceRequestStatusResolved, ServiceRequestStatusClosed:
		return true
	}
	return false
}

// Open reports whether the request still needs attention.
func (s ServiceRequestStatus) Open() bool {
	return s == ServiceRequestStatusNew || s == ServiceRequestStatusInProgress
}

// ServiceRequestCategory groups requests by municipal service.
type ServiceRequestCategory string

const (
	CategoryRoads           ServiceRequestCategory = "Roads"
	CategoryStreetlights    ServiceRequestCategory = "Streetlights"
	CategoryWaterSupply     ServiceRequestCategory = "Water Supply"
	CategoryWasteManagement ServiceRequestCategory = "Waste Management"
	CategoryOther           ServiceRequestCategory = "Other"
)

// Valid reports whether the category is one of the known values.
func (c ServiceRequestCategory) Valid() bool {
	switch c {
	case CategoryRoads, CategoryStreetlights, CategoryWaterSupply, CategoryWasteManagement, CategoryOther:
		return true
	}
	return false
}

// ServiceRequest is an issue filed by a resident.
// AdminNotes are only shown to administrators.
type ServiceRequest struct {
	ID          string                 `json:"id"`
	SubmittedBy string                 `json:"submittedBy"`
	Category    ServiceRequestCategory `json:"category"`
	Description string                 `json:"description"`
	Location    string                 `json:"location"`
	PhotoURL    string                 `json:"photoUrl,omitempty"`
	Status      ServiceRequestStatus   `json:"status"`
	SubmittedAt time.Time              `json:"submittedAt"`
	AdminNotes  string                 `json:"adminNotes,omitempty"`
}

// Validate checks required request fields.
func (r ServiceRequest) Validate() error {
	if err := requireFields(map[string]string{
		"description": r.Description,
		"location":    r.Location,
	}); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return invalidField("category", string(r.Category))
	}
	if !r.Status.Valid() {
		return invalidField("status", string(r.Status))
	}
	return nil
}
