// Package session tracks who is signed in and decides what they may reach.
package session

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
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// State is the gate's position in the sign-in lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Store is the part of the portal store the gate reads users from and
// writes user changes through.
type Store interface {
	Snapshot() domain.Snapshot
	Dispatch(ctx context.Context, cmd store.Command) (store.Result, error)
}

// Slot holds the signed-in user's record between runs.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, value []byte) error
	Clear(ctx context.Context) error
}

// Options carries optional collaborators.
type Options struct {
	Logger *zap.Logger
	Clock  func() time.Time
	NewID  func() string
}

// Gate owns the current identity. All operations serialize on one mutex so
// the in-memory identity and the session slot change together.
type Gate struct {
	mu      sync.Mutex
	store   Store
	slot    Slot
	logger  *zap.Logger
	clock   func() time.Time
	newID   func() string
	state   State
	current *domain.User
}

// NewGate builds an unauthenticated gate. Call RestoreSession to pick up a
// previous sign-in.
func NewGate(st Store, slot Slot, opts Options) *Gate {
	g := &Gate{
		store:  st,
		slot:   slot,
		logger: opts.Logger,
		clock:  opts.Clock,
		newID:  opts.NewID,
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.newID == nil {
		g.newID = func() string { return "resident-" + uuid.NewString() }
	}
	return g
}

// State returns the current lifecycle state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Current returns a copy of the signed-in user.
func (g *Gate) Current() (domain.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return domain.User{}, false
	}
	return *g.current, true
}

// RestoreSession reloads the identity saved by a previous Login. The saved
// user must still exist in the store; otherwise the slot is cleared. Any read
// or decode failure leaves the gate unauthenticated.
func (g *Gate) RestoreSession(ctx context.Context) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = Unauthenticated
	g.current = nil

	blob, err := g.slot.Load(ctx)
	if err != nil {
		if !errors.Is(err, persistence.ErrSlotEmpty) {
			g.logger.Warn("failed to read session slot", zap.Error(err))
		}
		return g.state
	}

	var saved domain.User
	if err := json.Unmarshal(blob, &saved); err != nil {
		g.logger.Warn("discarding unreadable session", zap.Error(err))
		g.clearSlot(ctx)
		return g.state
	}

	return g.syncLocked(ctx, saved.ID)
}

// Refresh re-checks the signed-in user against the store, picking up
// changes to the record and dropping the session when the user is gone.
func (g *Gate) Refresh(ctx context.Context) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return g.state
	}
	return g.syncLocked(ctx, g.current.ID)
}

func (g *Gate) syncLocked(ctx context.Context, userID string) State {
	user, ok := g.store.Snapshot().FindUser(userID)
	if !ok {
		g.logger.Info("session user no longer exists", zap.String("user_id", userID))
		g.state = Unauthenticated
		g.current = nil
		g.clearSlot(ctx)
		return g.state
	}
	if g.current == nil || *g.current != user {
		if err := g.saveLocked(ctx, user); err != nil {
			g.logger.Warn("failed to save refreshed session", zap.Error(err))
		}
	}
	g.state = Authenticated
	g.current = &user
	return g.state
}

// Login opens a session for the user whose email and password both match
// exactly. A matching resident that has not been approved is refused with
// ErrNotApproved and does not sign in.
func (g *Gate) Login(ctx context.Context, email, password string) (domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.state
	g.state = Authenticating

	user, ok := g.store.Snapshot().FindUserByEmail(email)
	if !ok || user.Password != password {
		g.state = prev
		return domain.User{}, ErrInvalidCredentials
	}
	if !user.CanAuthenticate() {
		g.state = prev
		g.logger.Info("login refused for unapproved resident", zap.String("user_id", user.ID))
		return domain.User{}, ErrNotApproved
	}

	if err := g.saveLocked(ctx, user); err != nil {
		g.state = prev
		return domain.User{}, apperrors.NewInternalError(fmt.Errorf("save session: %w", err))
	}
	g.state = Authenticated
	g.current = &user
	g.logger.Info("user signed in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Logout ends the session. Calling it without a session is fine. The
// in-memory session always ends; an error means the session slot still holds
// the user and a restart would restore them.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != nil {
		g.logger.Info("user signed out", zap.String("user_id", g.current.ID))
	}
	g.state = Unauthenticated
	g.current = nil
	if err := g.slot.Clear(ctx); err != nil {
		g.logger.Warn("failed to clear session slot on logout", zap.Error(err))
		return apperrors.NewInternalError(fmt.Errorf("clear session: %w", err))
	}
	return nil
}

// Register creates a pending resident account. The new user is not signed in.
func (g *Gate) Register(ctx context.Context, profile domain.RegistrationProfile) (domain.User, error) {
	if err := profile.Validate(); err != nil {
		return domain.User{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.store.Snapshot().FindUserByEmail(profile.Email); exists {
		return domain.User{}, ErrDuplicateEmail
	}

	user := domain.User{
		ID:            g.newID(),
		FullName:      profile.FullName,
		Email:         profile.Email,
		Password:      profile.Password,
		Role:          domain.RoleResident,
		Address:       profile.Address,
		ContactNumber: profile.ContactNumber,
		CreatedAt:     g.clock().UTC(),
		Approved:      false,
	}
	if _, err := g.store.Dispatch(ctx, store.AddUser{User: user}); err != nil {
		g.logger.Warn("registered user not saved", zap.String("user_id", user.ID), zap.Error(err))
	}
	g.logger.Info("resident registered", zap.String("user_id", user.ID))
	return user, nil
}

// UpdateCurrentUser replaces the signed-in user's record. The session slot is
// written first; if that fails neither the store nor the in-memory identity
// changes. A failed data slot write is logged; the store keeps the change in
// memory. The record must keep the signed-in user's identifier, and its email
// must not belong to another user.
func (g *Gate) UpdateCurrentUser(ctx context.Context, updated domain.User) (domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return domain.User{}, ErrNoSession
	}
	if updated.ID != g.current.ID {
		return domain.User{}, apperrors.NewForbidden("cannot update another user's profile")
	}
	snap := g.store.Snapshot()
	if _, ok := snap.FindUser(updated.ID); !ok {
		return domain.User{}, apperrors.NewNotFound("user", map[string]any{"id": updated.ID})
	}
	if other, taken := snap.FindUserByEmail(updated.Email); taken && other.ID != updated.ID {
		return domain.User{}, ErrDuplicateEmail
	}

	if err := g.saveLocked(ctx, updated); err != nil {
		return domain.User{}, apperrors.NewInternalError(fmt.Errorf("save session: %w", err))
	}
	g.current = &updated

	if _, err := g.store.Dispatch(ctx, store.UpdateUser{User: updated}); err != nil {
		g.logger.Warn("updated user not saved", zap.String("user_id", updated.ID), zap.Error(err))
	}
	return updated, nil
}

func (g *Gate) saveLocked(ctx context.Context, user domain.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return g.slot.Save(ctx, blob)
}

func (g *Gate) clearSlot(ctx context.Context) {
	if err := g.slot.Clear(ctx); err != nil {
		g.logger.Warn("failed to clear session slot", zap.Error(err))
	}
}
