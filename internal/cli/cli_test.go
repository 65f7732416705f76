package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/persistence"
	"github.com/spec-kit/village-portal/internal/store"
)

func memoryOpener(backend *persistence.Memory) SlotOpener {
	return func(context.Context) (*persistence.Slots, error) {
		return persistence.NewSlots(backend, ""), nil
	}
}

func run(t *testing.T, backend *persistence.Memory, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(memoryOpener(backend))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	for _, path := range [][]string{{"snapshot", "show"}, {"snapshot", "reset"}, {"users", "list"}, {"users", "approve"}, {"users", "revoke"}, {"users", "import"}} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, persistence.NewMemory(), "--format", "xml", "snapshot", "show")
	assert.ErrorContains(t, err, "invalid format")
}

func TestSnapshotShow_EmptySlot(t *testing.T) {
	_, err := run(t, persistence.NewMemory(), "snapshot", "show")
	assert.ErrorContains(t, err, "data slot is empty")
}

func TestSnapshotResetThenShow(t *testing.T) {
	backend := persistence.NewMemory()
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, persistence.SessionSlotKey, []byte(`{"id":"admin-1"}`)))

	_, err := run(t, backend, "snapshot", "reset")
	require.NoError(t, err)

	_, err = backend.Get(ctx, persistence.SessionSlotKey)
	assert.ErrorIs(t, err, persistence.ErrSlotEmpty)

	out, err := run(t, backend, "--format", "json", "snapshot", "show")
	require.NoError(t, err)
	var summary SnapshotSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, SnapshotSummary{Users: 4, Staff: 3, Bids: 4, BidSubmissions: 1, ServiceRequests: 3, Announcements: 2}, summary)

	out, err = run(t, backend, "snapshot", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "users: 4")
}

func TestSnapshotReset_Empty(t *testing.T) {
	backend := persistence.NewMemory()
	out, err := run(t, backend, "--format", "yaml", "snapshot", "reset", "--empty")
	require.NoError(t, err)

	var summary map[string]int
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 0, summary["users"])

	blob, err := backend.Get(context.Background(), persistence.DataSlotKey)
	require.NoError(t, err)
	snap, err := store.Decode(blob)
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
}

func TestUsersApproveAndList(t *testing.T) {
	backend := persistence.NewMemory()
	_, err := run(t, backend, "snapshot", "reset")
	require.NoError(t, err)

	out, err := run(t, backend, "--format", "json", "users", "list", "--pending")
	require.NoError(t, err)
	var pending []domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "resident-3", pending[0].ID)
	assert.Empty(t, pending[0].Password)

	out, err = run(t, backend, "users", "approve", "resident-3")
	require.NoError(t, err)
	assert.Contains(t, out, "resident-3")
	assert.Contains(t, out, "true")

	out, err = run(t, backend, "--format", "json", "users", "list", "--pending")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, err = run(t, backend, "users", "approve", "admin-1")
	assert.Error(t, err)

	_, err = run(t, backend, "users", "revoke", "resident-3")
	require.NoError(t, err)
	blob, err := backend.Get(context.Background(), persistence.DataSlotKey)
	require.NoError(t, err)
	snap, err := store.Decode(blob)
	require.NoError(t, err)
	bob, ok := snap.FindUser("resident-3")
	require.True(t, ok)
	assert.False(t, bob.Approved)
}

func TestUsersImport(t *testing.T) {
	backend := persistence.NewMemory()
	_, err := run(t, backend, "snapshot", "reset")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"admin-1","email":"admin@village.com","password":"admin123","fullName":"Admin","role":"ADMIN","approved":true},
		{"id":"resident-9","email":"new@village.com","password":"pw","fullName":"New Resident","role":"RESIDENT","approved":false}
	]`), 0o600))

	out, err := run(t, backend, "--format", "json", "users", "import", path)
	require.NoError(t, err)
	var listed []domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 2)
	assert.Empty(t, listed[1].Password)

	blob, err := backend.Get(context.Background(), persistence.DataSlotKey)
	require.NoError(t, err)
	snap, err := store.Decode(blob)
	require.NoError(t, err)
	require.Len(t, snap.Users, 2)
	assert.Equal(t, "resident-9", snap.Users[1].ID)
	assert.Equal(t, "pw", snap.Users[1].Password)
	assert.Len(t, snap.Bids, 4)
}

func TestUsersImport_Rejected(t *testing.T) {
	backend := persistence.NewMemory()
	_, err := run(t, backend, "snapshot", "reset")
	require.NoError(t, err)

	cases := map[string]string{
		"no id":           `[{"email":"a@x.com","role":"ADMIN"}]`,
		"duplicate email": `[{"id":"a","email":"a@x.com","role":"ADMIN"},{"id":"b","email":"A@x.com","role":"RESIDENT"}]`,
		"unknown role":    `[{"id":"a","email":"a@x.com","role":"MAYOR"}]`,
		"not an array":    `{"id":"a"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := NewRootCommand(memoryOpener(backend))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetIn(strings.NewReader(body))
			cmd.SetArgs([]string{"users", "import", "-"})
			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}

	blob, err := backend.Get(context.Background(), persistence.DataSlotKey)
	require.NoError(t, err)
	snap, err := store.Decode(blob)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 4)
}
