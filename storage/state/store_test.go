package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehq/shulectl/core"
	"github.com/shulehq/shulectl/core/session"
)

func setup(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(&core.Config{StateDir: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestFileStore_roundTrip(t *testing.T) {
	store := setup(t)

	sess := session.Session{Token: "abc", Role: session.RoleAdmin, UserID: "1"}
	require.NoError(t, store.Write(sess))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, sess.Role, got.Role)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Nil(t, got.Profile)
}

func TestFileStore_roleNormalizedOnWrite(t *testing.T) {
	store := setup(t)

	require.NoError(t, store.Write(session.Session{Token: "abc", Role: "admin"}))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, got.Role)
}

func TestFileStore_emptyStore(t *testing.T) {
	store := setup(t)

	got, err := store.Read()
	require.NoError(t, err)
	assert.False(t, got.IsAuthenticated())
	assert.Equal(t, session.Session{}, got)
}

func TestFileStore_partialStateObservable(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Write(session.Session{Token: "abc", Role: session.RoleStudent, UserID: "7"}))

	// a manually removed token must read back as "no session" even though the
	// other keys survive
	require.NoError(t, os.Remove(filepath.Join(store.dir, tokenFile)))

	got, err := store.Read()
	require.NoError(t, err)
	assert.False(t, got.IsAuthenticated())
	assert.Equal(t, session.RoleStudent, got.Role)
	assert.Equal(t, "7", got.UserID)
}

func TestFileStore_writeProfileLeavesCredentialsAlone(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Write(session.Session{Token: "abc", Role: session.RoleFaculty, UserID: "3"}))

	require.NoError(t, store.WriteProfile(session.Profile{FullName: "Jane Doe", Email: "jane@shule.test"}))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, session.RoleFaculty, got.Role)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "Jane Doe", got.Profile.FullName)
}

func TestFileStore_corruptProfileCacheDropped(t *testing.T) {
	store := setup(t)
	require.NoError(t, store.Write(session.Session{Token: "abc", Role: session.RoleAdmin}))
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, profileFile), []byte("{not json"), 0o600))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Token)
	assert.Nil(t, got.Profile)
}

func TestFileStore_clearIdempotent(t *testing.T) {
	store := setup(t)
	sess := session.Session{
		Token: "abc", Role: session.RoleAdmin, UserID: "1",
		Profile: &session.Profile{FullName: "Jane Doe"},
	}
	require.NoError(t, store.Write(sess))

	require.NoError(t, store.Clear())
	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, session.Session{}, got)

	// clearing an already cleared store leaves the same state
	require.NoError(t, store.Clear())
	got, err = store.Read()
	require.NoError(t, err)
	assert.Equal(t, session.Session{}, got)
}
