package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/village-portal/internal/config"
)

// Slots bundles the backend with the two slots the portal uses.
type Slots struct {
	Backend Backend
	Data    *Slot
	Session *Slot
}

// Open selects and connects the configured backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Slots, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Slots.Backend {
	case config.BackendSQLite:
		backend, err = OpenSQLite(ctx, cfg.Slots.SQLitePath, logger)
	case config.BackendPostgres:
		backend, err = NewPostgres(ctx, cfg.Postgres, logger)
	case config.BackendRedis:
		backend = NewRedis(cfg.Redis, logger)
	case config.BackendMemory:
		logger.Warn("using in-memory slots; state is lost on exit")
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("unknown slot backend %q", cfg.Slots.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s slots: %w", cfg.Slots.Backend, err)
	}

	return NewSlots(backend, cfg.Slots.KeyPrefix), nil
}

// NewSlots binds the fixed data and session keys, optionally namespaced.
func NewSlots(backend Backend, prefix string) *Slots {
	return &Slots{
		Backend: backend,
		Data:    NewSlot(backend, prefix+DataSlotKey),
		Session: NewSlot(backend, prefix+SessionSlotKey),
	}
}

// Close releases the backend.
func (s *Slots) Close() error {
	if s == nil || s.Backend == nil {
		return nil
	}
	return s.Backend.Close()
}
