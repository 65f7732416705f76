package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/events"
	"github.com/spec-kit/village-portal/internal/observability"
	"github.com/spec-kit/village-portal/internal/persistence"
)

// Slot is the durable location the store writes its snapshot to.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, value []byte) error
}

// Options carries the store's collaborators. Zero values are usable.
type Options struct {
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Clock      func() time.Time
}

// Result describes one dispatched command.
type Result struct {
	Snapshot domain.Snapshot

	// Found is false when a replace or delete matched no record.
	Found bool
}

// Store owns the portal's collections. It holds exactly one snapshot and
// replaces it wholesale on every change, so readers never see a partial edit.
type Store struct {
	mu         sync.RWMutex
	snap       domain.Snapshot
	slot       Slot
	logger     *zap.Logger
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	clock      func() time.Time
}

// Open restores the snapshot from slot. A missing or corrupt slot falls back
// to the snapshot produced by fallback, which is then written back. When the
// slot cannot be read at all the fallback is served but not written.
func Open(ctx context.Context, slot Slot, fallback func() domain.Snapshot, opts Options) *Store {
	s := &Store{
		slot:       slot,
		logger:     opts.Logger,
		dispatcher: opts.Dispatcher,
		metrics:    opts.Metrics,
		clock:      opts.Clock,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if fallback == nil {
		fallback = domain.Empty
	}

	snap, err := restore(ctx, slot)
	if err != nil {
		s.snap = normalize(fallback())
		switch {
		case errors.Is(err, persistence.ErrSlotEmpty):
			s.logger.Info("no stored snapshot; starting from defaults")
		case errors.Is(err, ErrCorruptSnapshot):
			s.logger.Warn("stored snapshot unreadable; starting from defaults", zap.Error(err))
		default:
			// The slot may still hold good data; leave it alone.
			s.logger.Error("data slot unreachable; serving defaults without writing them", zap.Error(err))
			return s
		}
		if err := s.persist(ctx, s.snap); err != nil {
			s.logger.Warn("failed to write initial snapshot", zap.Error(err))
		}
		return s
	}

	s.snap = snap
	s.logger.Info("restored snapshot",
		zap.Int("users", len(snap.Users)),
		zap.Int("bids", len(snap.Bids)),
		zap.Int("service_requests", len(snap.ServiceRequests)))
	return s
}

// Snapshot returns the current snapshot. Callers must not modify its slices.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Dispatch applies cmd, commits the resulting snapshot and writes it to the
// slot straight away. Saving is best effort: on a write failure the new
// snapshot stays committed in memory and the error is returned.
func (s *Store) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	if cmd == nil {
		return Result{Snapshot: s.Snapshot()}, errors.New("nil command")
	}

	s.mu.Lock()
	next, found := Apply(s.snap, cmd)
	s.snap = next
	persistErr := s.persist(ctx, next)
	s.mu.Unlock()

	s.metrics.RecordCommand(string(cmd.Kind()), found)
	if !found {
		s.logger.Debug("command matched no record",
			zap.String("kind", string(cmd.Kind())),
			zap.String("entity_id", cmd.EntityID()))
	}
	if persistErr != nil {
		s.metrics.RecordSlotFailure()
		s.logger.Warn("failed to save snapshot",
			zap.String("kind", string(cmd.Kind())),
			zap.Error(persistErr))
	}

	if found {
		s.publish(ctx, cmd)
	}

	res := Result{Snapshot: next, Found: found}
	if persistErr != nil {
		return res, fmt.Errorf("save snapshot: %w", persistErr)
	}
	return res, nil
}

func (s *Store) persist(ctx context.Context, snap domain.Snapshot) error {
	if s.slot == nil {
		return nil
	}
	blob, err := Encode(snap)
	if err != nil {
		return err
	}
	return s.slot.Save(ctx, blob)
}

func (s *Store) publish(ctx context.Context, cmd Command) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventTypeFor(cmd),
		EntityID:  cmd.EntityID(),
		Timestamp: s.clock(),
		Payload:   payloadFor(cmd),
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

func restore(ctx context.Context, slot Slot) (domain.Snapshot, error) {
	if slot == nil {
		return domain.Snapshot{}, persistence.ErrSlotEmpty
	}
	blob, err := slot.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := Decode(blob)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// ErrCorruptSnapshot marks a data slot blob that could not be decoded.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Encode serializes a snapshot in the slot format.
func Encode(snap domain.Snapshot) ([]byte, error) {
	return json.Marshal(normalize(snap))
}

// Decode parses a slot blob. Collections missing from the blob come back empty.
func Decode(blob []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return normalize(snap), nil
}

func normalize(s domain.Snapshot) domain.Snapshot {
	if s.Users == nil {
		s.Users = []domain.User{}
	}
	if s.Staff == nil {
		s.Staff = []domain.Staff{}
	}
	if s.Bids == nil {
		s.Bids = []domain.Bid{}
	}
	if s.BidSubmissions == nil {
		s.BidSubmissions = []domain.BidSubmission{}
	}
	if s.ServiceRequests == nil {
		s.ServiceRequests = []domain.ServiceRequest{}
	}
	if s.Announcements == nil {
		s.Announcements = []domain.Announcement{}
	}
	return s
}
