//go:build integration

package mongo

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/pkg/testutil"
)

func setupStore(t *testing.T) *SessionStore {
	t.Helper()
	e := testutil.StartMongo(t)
	ctx := context.Background()

	client, err := New(ctx, &Config{
		URI:        "mongodb://" + e.Host + ":" + e.Port,
		Database:   "keypad_test",
		Collection: "keypad_sessions",
	})
	require.NoError(t, err, "не удалось подключиться к MongoDB")
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	store := NewSessionStore(client, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestSessionStore_SaveLoadDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	stored := math.Inf(-1)
	op := domain.OpMul
	sess := domain.Session{
		ID:        "s1",
		State:     domain.State{Display: "-1.000", Stored: &stored, Op: &op},
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.State, got.State)
	assert.WithinDuration(t, sess.UpdatedAt, got.UpdatedAt, time.Millisecond)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, store.Ping(ctx))
}

func TestSessionStore_ExpiredIsNotLoaded(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "old", State: domain.NewState(), UpdatedAt: time.Now().Add(-2 * time.Hour)}))

	_, err := store.Load(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
