// Package service turns portal use cases into store commands.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// Store is the portal store as seen by the services.
type Store interface {
	Snapshot() domain.Snapshot
	Dispatch(ctx context.Context, cmd store.Command) (store.Result, error)
}

// Dependencies encapsulates what the portal services share.
type Dependencies struct {
	Store  Store
	Logger *zap.Logger
	Clock  func() time.Time
	NewID  func(prefix string) string
}

type base struct {
	store  Store
	logger *zap.Logger
	clock  func() time.Time
	newID  func(prefix string) string
}

func newBase(deps Dependencies) base {
	b := base{store: deps.Store, logger: deps.Logger, clock: deps.Clock, newID: deps.NewID}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	if b.newID == nil {
		b.newID = NewID
	}
	return b
}

// NewID builds a record identifier such as "bid-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func (b base) now() time.Time {
	return b.clock().UTC()
}

// apply dispatches cmd. A failed slot write is logged and tolerated: the
// change is already committed in memory and will be saved by the next write.
func (b base) apply(ctx context.Context, cmd store.Command, resource string) error {
	res, err := b.store.Dispatch(ctx, cmd)
	if err != nil {
		b.logger.Warn("change not saved",
			zap.String("kind", string(cmd.Kind())),
			zap.String("entity_id", cmd.EntityID()),
			zap.Error(err))
	}
	if !res.Found {
		return apperrors.NewNotFound(resource, map[string]any{"id": cmd.EntityID()})
	}
	return nil
}
