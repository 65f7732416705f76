package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/events"
	"github.com/spec-kit/village-portal/internal/observability"
	"github.com/spec-kit/village-portal/internal/persistence"
)

type failingSlot struct {
	blob    []byte
	loadErr error
	saveErr error
	saves   int
}

func (f *failingSlot) Load(context.Context) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.blob == nil {
		return nil, persistence.ErrSlotEmpty
	}
	return f.blob, nil
}

func (f *failingSlot) Save(_ context.Context, value []byte) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.blob = value
	return nil
}

func newMemorySlot() *persistence.Slot {
	return persistence.NewSlot(persistence.NewMemory(), persistence.DataSlotKey)
}

func TestOpen_EmptySlotUsesFallbackAndWritesIt(t *testing.T) {
	ctx := context.Background()
	slot := newMemorySlot()

	s := Open(ctx, slot, seedSnapshot, Options{})

	assert.Empty(t, cmp.Diff(seedSnapshot(), s.Snapshot()))
	blob, err := slot.Load(ctx)
	require.NoError(t, err)
	stored, err := Decode(blob)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(seedSnapshot(), stored))
}

func TestOpen_CorruptSlotUsesFallback(t *testing.T) {
	ctx := context.Background()
	slot := newMemorySlot()
	require.NoError(t, slot.Save(ctx, []byte("not json")))

	s := Open(ctx, slot, seedSnapshot, Options{})

	assert.Len(t, s.Snapshot().Users, 4)
}

func TestOpen_UnreachableSlotIsNotOverwritten(t *testing.T) {
	slot := &failingSlot{blob: []byte(`{"users":[]}`), loadErr: errors.New("i/o timeout")}

	s := Open(context.Background(), slot, seedSnapshot, Options{})

	assert.Len(t, s.Snapshot().Users, 4)
	assert.Zero(t, slot.saves)
	assert.Equal(t, `{"users":[]}`, string(slot.blob))
}

func TestOpen_CorruptSlotIsRewritten(t *testing.T) {
	slot := &failingSlot{blob: []byte("not json")}

	Open(context.Background(), slot, seedSnapshot, Options{})

	assert.Equal(t, 1, slot.saves)
	snap, err := Decode(slot.blob)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 4)
}

func TestOpen_NilFallbackStartsEmpty(t *testing.T) {
	s := Open(context.Background(), newMemorySlot(), nil, Options{})
	snap := s.Snapshot()
	assert.NotNil(t, snap.Users)
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.Announcements)
}

func TestOpen_RestoresStoredSnapshot(t *testing.T) {
	ctx := context.Background()
	slot := newMemorySlot()

	first := Open(ctx, slot, seedSnapshot, Options{})
	_, err := first.Dispatch(ctx, AddAnnouncement{Announcement: domain.Announcement{ID: "ann-9", Title: "Town meeting", PublishedAt: testNow}})
	require.NoError(t, err)

	second := Open(ctx, slot, func() domain.Snapshot {
		t.Fatal("fallback must not run when the slot holds a snapshot")
		return domain.Snapshot{}
	}, Options{})

	assert.Empty(t, cmp.Diff(first.Snapshot(), second.Snapshot()))
	assert.Equal(t, "ann-9", second.Snapshot().Announcements[0].ID)
}

func TestDispatch_PersistsEveryChange(t *testing.T) {
	ctx := context.Background()
	slot := newMemorySlot()
	s := Open(ctx, slot, seedSnapshot, Options{})

	res, err := s.Dispatch(ctx, DeleteStaff{ID: "staff-3"})
	require.NoError(t, err)
	assert.True(t, res.Found)

	blob, err := slot.Load(ctx)
	require.NoError(t, err)
	stored, err := Decode(blob)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(res.Snapshot, stored))
	_, ok := stored.FindStaff("staff-3")
	assert.False(t, ok)
}

func TestDispatch_MissReportsNotFound(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewMetrics()
	s := Open(ctx, newMemorySlot(), seedSnapshot, Options{Metrics: metrics})
	before := s.Snapshot()

	res, err := s.Dispatch(ctx, UpdateBid{Bid: domain.Bid{ID: "ghost"}})

	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, cmp.Diff(before, s.Snapshot()))
	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Commands[string(KindUpdateBid)])
	assert.Equal(t, int64(1), snap.Misses[string(KindUpdateBid)])
}

func TestDispatch_SaveFailureKeepsNewState(t *testing.T) {
	ctx := context.Background()
	slot := &failingSlot{}
	metrics := observability.NewMetrics()
	s := Open(ctx, slot, seedSnapshot, Options{Metrics: metrics})
	slot.saveErr = errors.New("quota exceeded")

	res, err := s.Dispatch(ctx, AddBid{Bid: domain.Bid{ID: "bid-9", Title: "Bridge"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, slot.saveErr)
	assert.True(t, res.Found)
	_, ok := s.Snapshot().FindBid("bid-9")
	assert.True(t, ok)
	assert.Equal(t, int64(1), metrics.Snapshot().SlotFailures)
}

func TestDispatch_NilCommand(t *testing.T) {
	s := Open(context.Background(), newMemorySlot(), seedSnapshot, Options{})
	_, err := s.Dispatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestDispatch_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()
	var got []events.Event
	record := func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	}
	dispatcher.Subscribe(events.EventUserRegistered, record)
	dispatcher.Subscribe(events.EventBidUpdated, record)

	s := Open(ctx, newMemorySlot(), seedSnapshot, Options{
		Dispatcher: dispatcher,
		Clock:      func() time.Time { return testNow },
	})

	_, err := s.Dispatch(ctx, AddUser{User: domain.User{ID: "resident-9", Email: "n@e.com", Password: "secret"}})
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, UpdateBid{Bid: domain.Bid{ID: "ghost"}})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, events.EventUserRegistered, got[0].Type)
	assert.Equal(t, "resident-9", got[0].EntityID)
	assert.Equal(t, testNow, got[0].Timestamp)
	assert.NotEmpty(t, got[0].ID)
	user, ok := got[0].Payload.(domain.User)
	require.True(t, ok)
	assert.Empty(t, user.Password)
}

func TestDispatch_HandlerErrorDoesNotFailDispatch(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventStaffRemoved, func(context.Context, events.Event) error {
		return errors.New("mailer down")
	})
	s := Open(ctx, newMemorySlot(), seedSnapshot, Options{Dispatcher: dispatcher})

	res, err := s.Dispatch(ctx, DeleteStaff{ID: "staff-1"})

	require.NoError(t, err)
	assert.True(t, res.Found)
}

func TestSnapshot_IsStableAcrossDispatch(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemorySlot(), seedSnapshot, Options{})
	held := s.Snapshot()

	_, err := s.Dispatch(ctx, UpdateStaff{Staff: domain.Staff{ID: "staff-1", FullName: "Alice W."}})
	require.NoError(t, err)

	assert.Equal(t, "Alice Williams", held.Staff[0].FullName)
	assert.Equal(t, "Alice W.", s.Snapshot().Staff[0].FullName)
}
