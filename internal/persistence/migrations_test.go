package persistence

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	files := fstest.MapFS{
		"migrations/002_index.sql": {Data: []byte("CREATE INDEX ...")},
		"migrations/001_slots.sql": {Data: []byte("CREATE TABLE ...")},
		"migrations/README.md":     {Data: []byte("notes")},
		"migrations/old/003.sql":   {Data: []byte("ignored")},
	}

	pending, err := pendingMigrations(files, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_slots.sql", "002_index.sql"}, pending)

	pending, err = pendingMigrations(files, map[string]bool{"001_slots.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"002_index.sql"}, pending)
}

func TestEmbeddedMigrationsAreListed(t *testing.T) {
	pending, err := pendingMigrations(migrationFiles, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_slots.sql"}, pending)
}
