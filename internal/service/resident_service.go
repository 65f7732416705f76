package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// ResidentService lets administrators review resident accounts.
type ResidentService struct {
	base
}

// NewResidentService constructs the service.
func NewResidentService(deps Dependencies) *ResidentService {
	return &ResidentService{base: newBase(deps)}
}

// List returns residents in registration order without their passwords.
func (s *ResidentService) List() []domain.User {
	residents := s.store.Snapshot().Residents()
	for i := range residents {
		residents[i].Password = ""
	}
	return residents
}

// SetApproval grants or revokes a resident's permission to sign in.
func (s *ResidentService) SetApproval(ctx context.Context, id string, approved bool) (domain.User, error) {
	user, err := s.resident(id)
	if err != nil {
		return domain.User{}, err
	}
	user.Approved = approved
	if err := s.apply(ctx, store.UpdateUser{User: user}, "resident"); err != nil {
		return domain.User{}, err
	}
	s.logger.Info("resident approval changed",
		zap.String("user_id", user.ID),
		zap.Bool("approved", user.Approved))
	user.Password = ""
	return user, nil
}

// ToggleApproval flips the resident's approval.
func (s *ResidentService) ToggleApproval(ctx context.Context, id string) (domain.User, error) {
	user, err := s.resident(id)
	if err != nil {
		return domain.User{}, err
	}
	return s.SetApproval(ctx, id, !user.Approved)
}

func (s *ResidentService) resident(id string) (domain.User, error) {
	user, ok := s.store.Snapshot().FindUser(id)
	if !ok || user.Role != domain.RoleResident {
		return domain.User{}, apperrors.NewNotFound("resident", map[string]any{"id": id})
	}
	return user, nil
}
