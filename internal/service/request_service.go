package service

import (
	"context"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// RequestView is a service request with its submitter resolved for display.
type RequestView struct {
	domain.ServiceRequest
	SubmitterName string `json:"submitterName"`
}

// RequestService handles resident service requests.
type RequestService struct {
	base
}

// NewRequestService constructs the service.
func NewRequestService(deps Dependencies) *RequestService {
	return &RequestService{base: newBase(deps)}
}

// List returns every request, newest first, for administrators.
func (s *RequestService) List() []RequestView {
	snap := s.store.Snapshot()
	out := make([]RequestView, 0, len(snap.ServiceRequests))
	for _, r := range snap.ServiceRequests {
		out = append(out, RequestView{ServiceRequest: r, SubmitterName: snap.UserName(r.SubmittedBy)})
	}
	return out
}

// ForResident returns the requests filed by userID without admin notes.
func (s *RequestService) ForResident(userID string) []domain.ServiceRequest {
	reqs := s.store.Snapshot().RequestsBy(userID)
	for i := range reqs {
		reqs[i].AdminNotes = ""
	}
	return reqs
}

// File records a new request from submitter with status New.
func (s *RequestService) File(ctx context.Context, submitter domain.User, req domain.ServiceRequest) (domain.ServiceRequest, error) {
	req.ID = s.newID("req")
	req.SubmittedBy = submitter.ID
	req.Status = domain.ServiceRequestStatusNew
	req.SubmittedAt = s.now()
	req.AdminNotes = ""
	if req.Category == "" {
		req.Category = domain.CategoryOther
	}
	if err := req.Validate(); err != nil {
		return domain.ServiceRequest{}, err
	}
	if err := s.apply(ctx, store.AddServiceRequest{Request: req}, "service request"); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}

// UpdateStatus sets the status and private notes of a request.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, status domain.ServiceRequestStatus, notes string) (domain.ServiceRequest, error) {
	req, ok := s.store.Snapshot().FindServiceRequest(id)
	if !ok {
		return domain.ServiceRequest{}, apperrors.NewNotFound("service request", map[string]any{"id": id})
	}
	req.Status = status
	req.AdminNotes = notes
	if err := req.Validate(); err != nil {
		return domain.ServiceRequest{}, err
	}
	if err := s.apply(ctx, store.UpdateServiceRequest{Request: req}, "service request"); err != nil {
		return domain.ServiceRequest{}, err
	}
	return req, nil
}
