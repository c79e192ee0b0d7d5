//go:build integration

package redis

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

func setupStore(t *testing.T, ttl time.Duration) (*SessionStore, *Client) {
	t.Helper()
	e := testutil.StartRedis(t)

	client, err := New(context.Background(), &Config{Host: e.Host, Port: e.Port})
	require.NoError(t, err, "не удалось подключиться к Redis")
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client, ttl, slog.New(slog.NewTextHandler(io.Discard, nil))), client
}

func TestSessionStore_SaveLoadDelete(t *testing.T) {
	store, _ := setupStore(t, time.Hour)
	ctx := context.Background()

	stored := math.NaN()
	op := domain.OpSub
	sess := domain.Session{
		ID:        "s1",
		State:     domain.State{Display: "7", Stored: &stored, Op: &op},
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "7", got.State.Display)
	require.NotNil(t, got.State.Stored)
	assert.True(t, math.IsNaN(*got.State.Stored))
	assert.Equal(t, domain.OpSub, *got.State.Op)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, store.Ping(ctx))
}

func TestSessionStore_KeyHasTTL(t *testing.T) {
	store, client := setupStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "s1", State: domain.NewState(), UpdatedAt: time.Now()}))

	ttl, err := client.TTL(ctx, sessionKey("s1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 50*time.Second)
	assert.LessOrEqual(t, ttl, time.Minute)
}
