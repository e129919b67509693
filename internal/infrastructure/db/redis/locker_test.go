package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, ttl time.Duration) (*Locker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	l, err := OpenLocker(context.Background(), Config{Addr: mr.Addr(), LockTTL: ttl}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, mr
}

func TestLockerKey(t *testing.T) {
	l := NewLocker(nil, 0, zerolog.Nop())

	if got := l.key("tweets"); got != "lock:chirper:tweets" {
		t.Fatalf("expected lock:chirper:tweets, got %s", got)
	}
	if l.ttl != defaultLockTTL {
		t.Fatalf("expected default ttl %s, got %s", defaultLockTTL, l.ttl)
	}
}

func TestNewTokenIsUnique(t *testing.T) {
	a, err := newToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := newToken()
	if a == b || len(a) != 32 {
		t.Fatalf("expected two distinct 32-char tokens, got %q and %q", a, b)
	}
}

func TestLocker_LockSetsKeyWithTTL(t *testing.T) {
	l, mr := newTestLocker(t, 3*time.Second)

	unlock, err := l.Lock(context.Background(), "tweets")
	require.NoError(t, err)

	token, err := mr.Get("lock:chirper:tweets")
	require.NoError(t, err)
	assert.Len(t, token, 32)
	assert.Equal(t, 3*time.Second, mr.TTL("lock:chirper:tweets"))

	unlock()
	assert.False(t, mr.Exists("lock:chirper:tweets"))
}

func TestLocker_ContentionWaitsForContext(t *testing.T) {
	l, _ := newTestLocker(t, time.Minute)

	unlock, err := l.Lock(context.Background(), "users")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = l.Lock(ctx, "users")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	// Other collections are not blocked.
	other, err := l.Lock(context.Background(), "tweets")
	require.NoError(t, err)
	other()
}

func TestLocker_WaiterAcquiresAfterRelease(t *testing.T) {
	l, _ := newTestLocker(t, time.Minute)

	unlock, err := l.Lock(context.Background(), "users")
	require.NoError(t, err)

	acquired := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		next, err := l.Lock(ctx, "users")
		if err == nil {
			next()
		}
		acquired <- err
	}()

	time.Sleep(60 * time.Millisecond)
	unlock()

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("waiter never acquired the lock")
	}
}

func TestLocker_ExpiredLockCanBeTaken(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)

	_, err := l.Lock(context.Background(), "users")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err := l.Lock(ctx, "users")
	require.NoError(t, err)
	unlock()
}

func TestLocker_DoubleUnlockIsSafe(t *testing.T) {
	l, mr := newTestLocker(t, time.Minute)

	first, err := l.Lock(context.Background(), "users")
	require.NoError(t, err)
	first()

	second, err := l.Lock(context.Background(), "users")
	require.NoError(t, err)
	held, err := mr.Get("lock:chirper:users")
	require.NoError(t, err)

	// A repeated call to the first release must not free the second holder.
	first()

	got, err := mr.Get("lock:chirper:users")
	require.NoError(t, err)
	assert.Equal(t, held, got)

	second()
	second()
	assert.False(t, mr.Exists("lock:chirper:users"))
}

func TestLocker_ReleaseKeepsForeignToken(t *testing.T) {
	l, mr := newTestLocker(t, time.Minute)

	unlock, err := l.Lock(context.Background(), "tweets")
	require.NoError(t, err)

	// The lock expired and another process took it over.
	require.NoError(t, mr.Set("lock:chirper:tweets", "someone-else"))

	unlock()

	got, err := mr.Get("lock:chirper:tweets")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestLocker_LockFailsWhenRedisIsDown(t *testing.T) {
	l, mr := newTestLocker(t, time.Minute)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := l.Lock(ctx, "users")
	require.Error(t, err)
	require.Error(t, l.Ping(ctx))
}

func TestOpenLocker_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenLocker(context.Background(), Config{Addr: addr, Timeout: time.Second}, zerolog.Nop())
	require.Error(t, err)
}

func TestLocker_ReleaseScriptDirect(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set("k", "mine"))

	n, err := releaseScript.Run(context.Background(), client, []string{"k"}, "theirs").Int()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, mr.Exists("k"))

	n, err = releaseScript.Run(context.Background(), client, []string{"k"}, "mine").Int()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, mr.Exists("k"))
}
