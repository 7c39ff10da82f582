package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE auth_state (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, err := s.Get(context.Background(), KeyAccessToken)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestSQLiteStore_SetGetDelete(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAccessToken, "T1"))
	require.NoError(t, s.Set(ctx, KeyAccessToken, "T2"), "set must upsert")

	v, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "T2", v)

	require.NoError(t, s.Delete(ctx, KeyAccessToken))
	v, err = s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestSQLiteStore_KeysAndClear(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAccessToken, "T"))
	require.NoError(t, s.Set(ctx, KeyProfile, "a@b.c"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{KeyAccessToken, KeyProfile}, keys)

	require.NoError(t, s.Clear(ctx))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestPurgeAuth_RemovesRegistryKeysOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAccessToken, "T"))
	require.NoError(t, s.Set(ctx, KeyExpiresAt, "15m"))
	// Case variants of owned keys are swept too.
	require.NoError(t, s.Set(ctx, "AUTHUSER", "a@b.c"))
	// Unrelated keys containing "user" in their name must survive.
	require.NoError(t, s.Set(ctx, "lastUsedFilter", "status=new"))

	require.NoError(t, PurgeAuth(ctx, s))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"lastUsedFilter"}, keys)
}
