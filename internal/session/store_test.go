package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/remp-client/internal/constants"
	"github.com/fivetwenty-io/remp-client/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()

	store, err := session.Open(filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := openStore(t)

	err := store.Save(&session.Session{Server: "https://crm.a", Email: "a@b.c", Token: "T1"})
	require.NoError(t, err)

	err = store.Save(&session.Session{Server: "https://crm.b", Token: "T2", CreatedAt: time.Unix(100, 0).UTC()})
	require.NoError(t, err)

	got, err := store.Get("https://crm.a")
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Token)
	assert.Equal(t, "a@b.c", got.Email)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = store.Get("https://crm.b")
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Token)
	assert.Equal(t, time.Unix(100, 0).UTC(), got.CreatedAt)

	sessions, err := store.List()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "https://crm.a", sessions[0].Server)
}

func TestStore_Replace(t *testing.T) {
	t.Parallel()

	store := openStore(t)

	require.NoError(t, store.Save(&session.Session{Server: "https://crm.a", Token: "T1"}))
	require.NoError(t, store.Save(&session.Session{Server: "https://crm.a", Token: "T2"}))

	got, err := store.Get("https://crm.a")
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Token)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := openStore(t)

	require.NoError(t, store.Save(&session.Session{Server: "https://crm.a", Token: "T1"}))
	require.NoError(t, store.Delete("https://crm.a"))
	require.NoError(t, store.Delete("https://crm.missing"))

	_, err := store.Get("https://crm.a")
	require.ErrorIs(t, err, constants.ErrNotLoggedIn)
}

func TestStore_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.db")

	store, err := session.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(&session.Session{Server: "https://crm.a", Token: "T1"}))
	require.NoError(t, store.Close())

	store, err = session.Open(path)
	require.NoError(t, err)

	defer func() { _ = store.Close() }()

	got, err := store.Get("https://crm.a")
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Token)
}
