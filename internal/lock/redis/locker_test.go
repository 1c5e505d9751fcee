package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redislock "github.com/Gunvolt24/jobboard/internal/lock/redis"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLocker_TryAcquire_RefusesWhileHeld(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	// два экземпляра сервиса над одним Redis
	a := redislock.New(client, "market", time.Minute)
	b := redislock.New(client, "market", time.Minute)

	tokenA, ok, err := a.TryAcquire(ctx, "update:job:J1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, tokenA)

	_, ok, err = b.TryAcquire(ctx, "update:job:J1")
	require.NoError(t, err)
	assert.False(t, ok)

	// другое имя не конфликтует
	_, ok, err = b.TryAcquire(ctx, "update:job:J2")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, a.Release(ctx, "update:job:J1", tokenA))

	_, ok, err = b.TryAcquire(ctx, "update:job:J1")
	require.NoError(t, err)
	assert.True(t, ok)
}

// Один экземпляр, два запроса: блокировка первого истекла и досталась второму,
// запоздалый Release первого не должен её снять.
func TestLocker_LateRelease_KeepsNextOwnersLock(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	l := redislock.New(client, "", time.Second)

	tokenA, ok, err := l.TryAcquire(ctx, "update:job:J1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	tokenB, ok, err := l.TryAcquire(ctx, "update:job:J1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, tokenA, tokenB)

	require.NoError(t, l.Release(ctx, "update:job:J1", tokenA))
	assert.True(t, mr.Exists("lock:update:job:J1"))
	got, err := mr.Get("lock:update:job:J1")
	require.NoError(t, err)
	assert.Equal(t, tokenB, got)

	require.NoError(t, l.Release(ctx, "update:job:J1", tokenB))
	assert.False(t, mr.Exists("lock:update:job:J1"))
}

func TestLocker_Release_ForeignToken_KeepsLock(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()
	l := redislock.New(client, "market", time.Minute)

	_, ok, err := l.TryAcquire(ctx, "update:job:J1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, l.Release(ctx, "update:job:J1", "not-mine"))
	require.NoError(t, l.Release(ctx, "update:job:J1", ""))
	assert.True(t, mr.Exists("market:lock:update:job:J1"))
}

func TestLocker_Release_NotHeld_NoError(t *testing.T) {
	_, client := newClient(t)
	l := redislock.New(client, "", time.Minute)
	require.NoError(t, l.Release(context.Background(), "update:job:none", "stale"))
}

func TestLocker_ConcurrentAcquire_SingleWinner(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg   sync.WaitGroup
		wins int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := redislock.New(client, "", time.Minute)
			_, ok, err := l.TryAcquire(ctx, "update:job:J1")
			if err == nil && ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&wins))
}

func TestLocker_ServerDown_ReturnsError(t *testing.T) {
	mr, client := newClient(t)
	l := redislock.New(client, "", time.Minute)
	mr.Close()

	_, ok, err := l.TryAcquire(context.Background(), "update:job:J1")
	require.Error(t, err)
	assert.False(t, ok)
}
