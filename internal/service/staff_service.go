package service

import (
	"context"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// StaffService manages village employee records.
type StaffService struct {
	base
}

// NewStaffService constructs the service.
func NewStaffService(deps Dependencies) *StaffService {
	return &StaffService{base: newBase(deps)}
}

// List returns staff in stored order.
func (s *StaffService) List() []domain.Staff {
	return s.store.Snapshot().Staff
}

// Get fetches one staff record.
func (s *StaffService) Get(id string) (domain.Staff, error) {
	st, ok := s.store.Snapshot().FindStaff(id)
	if !ok {
		return domain.Staff{}, apperrors.NewNotFound("staff", map[string]any{"id": id})
	}
	return st, nil
}

// Create adds a staff member. Status defaults to Active.
func (s *StaffService) Create(ctx context.Context, st domain.Staff) (domain.Staff, error) {
	st.ID = s.newID("staff")
	if st.Status == "" {
		st.Status = domain.StaffStatusActive
	}
	if err := st.Validate(); err != nil {
		return domain.Staff{}, err
	}
	if err := s.apply(ctx, store.AddStaff{Staff: st}, "staff"); err != nil {
		return domain.Staff{}, err
	}
	return st, nil
}

// Update replaces the staff record with the same identifier.
func (s *StaffService) Update(ctx context.Context, st domain.Staff) (domain.Staff, error) {
	if err := st.Validate(); err != nil {
		return domain.Staff{}, err
	}
	if err := s.apply(ctx, store.UpdateStaff{Staff: st}, "staff"); err != nil {
		return domain.Staff{}, err
	}
	return st, nil
}

// Delete removes a staff record.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	return s.apply(ctx, store.DeleteStaff{ID: id}, "staff")
}
