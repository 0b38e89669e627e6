package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, timeout time.Duration) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), timeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, s
}

func TestCreateAndTouch(t *testing.T) {
	store, _ := setupTestRedis(t, 5*time.Minute)
	ctx := context.Background()

	p, err := store.Create(ctx, Principal{UserID: 7, Email: "ada@example.com", Role: "user"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.SessionID)

	got, err := store.Touch(ctx, p.SessionID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.False(t, got.IsAdmin())
}

func TestSessionExpiresWhenIdle(t *testing.T) {
	store, s := setupTestRedis(t, 5*time.Minute)
	ctx := context.Background()

	p, err := store.Create(ctx, Principal{UserID: 1})
	require.NoError(t, err)

	s.FastForward(5*time.Minute + time.Second)

	_, err = store.Touch(ctx, p.SessionID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestTouchSlidesExpiry(t *testing.T) {
	store, s := setupTestRedis(t, 5*time.Minute)
	ctx := context.Background()

	p, err := store.Create(ctx, Principal{UserID: 1})
	require.NoError(t, err)

	// Activity every four minutes keeps the session alive past the timeout.
	for i := 0; i < 3; i++ {
		s.FastForward(4 * time.Minute)
		_, err = store.Touch(ctx, p.SessionID)
		require.NoError(t, err)
	}
	assert.Equal(t, 5*time.Minute, s.TTL(store.key(p.SessionID)))
}

func TestRevoke(t *testing.T) {
	store, _ := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	p, err := store.Create(ctx, Principal{UserID: 1})
	require.NoError(t, err)
	require.NoError(t, store.Revoke(ctx, p.SessionID))

	_, err = store.Touch(ctx, p.SessionID)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Revoking twice is fine.
	assert.NoError(t, store.Revoke(ctx, p.SessionID))
}

func TestTouchEmptyID(t *testing.T) {
	store, _ := setupTestRedis(t, time.Minute)
	_, err := store.Touch(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestTouchDoesNotResurrectRevokedSession(t *testing.T) {
	store, s := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		p, err := store.Create(ctx, Principal{UserID: 1})
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.Touch(ctx, p.SessionID)
		}()
		go func() {
			defer wg.Done()
			_ = store.Revoke(ctx, p.SessionID)
		}()
		wg.Wait()

		require.False(t, s.Exists(store.key(p.SessionID)), "session %d came back after revoke", i)
		_, err = store.Touch(ctx, p.SessionID)
		require.ErrorIs(t, err, ErrSessionExpired)
	}
}
