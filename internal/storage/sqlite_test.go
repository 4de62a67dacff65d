package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLiteStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saves", "animus.db")
	s, err := OpenSQLite(path, testLogger())
	require.NoError(t, err)
	return s, path
}

func TestSQLiteStorage_SetGetDel(t *testing.T) {
	s, _ := openTestSQLite(t)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	got, err := s.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "", got, "missing key reads as empty")

	require.NoError(t, s.Set(ctx, "slot", `{"humanity":40}`))
	require.NoError(t, s.Set(ctx, "slot", `{"humanity":35}`))

	got, err = s.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, `{"humanity":35}`, got, "second write overwrites the first")

	require.NoError(t, s.Del(ctx, "slot"))
	got, err = s.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// Deleting a missing key is not an error
	assert.NoError(t, s.Del(ctx, "slot"))
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	s, path := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "slot", "persisted"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}

func TestSQLiteStorage_Closed(t *testing.T) {
	s, _ := openTestSQLite(t)
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "slot")
	assert.Error(t, err)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("", testLogger())
	assert.Error(t, err)
}
