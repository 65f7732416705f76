package service

import (
	"context"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// AnnouncementService publishes notices to residents.
type AnnouncementService struct {
	base
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(deps Dependencies) *AnnouncementService {
	return &AnnouncementService{base: newBase(deps)}
}

// List returns announcements newest first.
func (s *AnnouncementService) List() []domain.Announcement {
	return s.store.Snapshot().Announcements
}

// Recent returns at most n of the newest announcements.
func (s *AnnouncementService) Recent(n int) []domain.Announcement {
	all := s.store.Snapshot().Announcements
	if n < len(all) {
		all = all[:n]
	}
	return append([]domain.Announcement{}, all...)
}

// Get fetches one announcement.
func (s *AnnouncementService) Get(id string) (domain.Announcement, error) {
	ann, ok := s.store.Snapshot().FindAnnouncement(id)
	if !ok {
		return domain.Announcement{}, apperrors.NewNotFound("announcement", map[string]any{"id": id})
	}
	return ann, nil
}

// Publish adds an announcement at the top of the list.
func (s *AnnouncementService) Publish(ctx context.Context, ann domain.Announcement) (domain.Announcement, error) {
	ann.ID = s.newID("ann")
	ann.PublishedAt = s.now()
	if err := ann.Validate(); err != nil {
		return domain.Announcement{}, err
	}
	if err := s.apply(ctx, store.AddAnnouncement{Announcement: ann}, "announcement"); err != nil {
		return domain.Announcement{}, err
	}
	return ann, nil
}

// Update edits an announcement in place and stamps it as republished.
func (s *AnnouncementService) Update(ctx context.Context, ann domain.Announcement) (domain.Announcement, error) {
	ann.PublishedAt = s.now()
	if err := ann.Validate(); err != nil {
		return domain.Announcement{}, err
	}
	if err := s.apply(ctx, store.UpdateAnnouncement{Announcement: ann}, "announcement"); err != nil {
		return domain.Announcement{}, err
	}
	return ann, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	return s.apply(ctx, store.DeleteAnnouncement{ID: id}, "announcement")
}
