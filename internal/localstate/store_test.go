package localstate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	loaded, err := store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	record := SessionRecord{
		Token:  "tok-1",
		UserID: "u1",
		Nome:   "Maria",
		Tipo:   "admin",
	}
	require.NoError(t, store.SaveSession(ctx, record))

	loaded, err = store.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.Equal(t, "Maria", loaded.Nome)
	assert.Equal(t, "admin", loaded.Tipo)
}

func TestSaveSessionOverwritesPrevious(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, SessionRecord{Token: "old", UserID: "u1"}))
	require.NoError(t, store.SaveSession(ctx, SessionRecord{Token: "new", UserID: "u2"}))

	loaded, err := store.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "new", loaded.Token)
	assert.Equal(t, "u2", loaded.UserID)
}

func TestClearSession(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ClearSession(ctx), "clearing an empty store must not fail")

	require.NoError(t, store.SaveSession(ctx, SessionRecord{Token: "tok"}))
	require.NoError(t, store.ClearSession(ctx))

	loaded, err := store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraftRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	payload, err := store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.Nil(t, payload)

	require.NoError(t, store.SaveDraft(ctx, []byte(`{"cliente":"João"}`)))

	payload, err = store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"cliente":"João"}`, string(payload))

	require.NoError(t, store.ClearDraft(ctx))

	payload, err = store.LoadDraft(ctx)
	require.NoError(t, err)
	assert.Nil(t, payload)
}
