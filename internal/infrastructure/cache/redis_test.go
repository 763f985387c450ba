package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	incr    map[string]int64
	expires []string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{incr: map[string]int64{}}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, _ time.Duration) *redis.BoolCmd {
	m.expires = append(m.expires, key)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.incr, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestIncrWithTTL_SoloPrimeraVez(t *testing.T) {
	mock := newMockCmdable()
	c := &Client{store: mock}
	ctx := context.Background()

	n, err := c.IncrWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.IncrWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, mock.expires, 1)
}

func TestLoginLimiter(t *testing.T) {
	mock := newMockCmdable()
	l := NewLoginLimiter(&Client{store: mock}, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1", "Ana@Taller.co")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "10.0.0.2", "ana@taller.co ")
	require.NoError(t, err)
	assert.False(t, ok, "el email normalizado comparte contador")

	require.NoError(t, l.Reset(ctx, "ana@taller.co"))
	ok, err = l.Allow(ctx, "10.0.0.3", "ana@taller.co")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginLimiter_Deshabilitado(t *testing.T) {
	assert.Nil(t, NewLoginLimiter(nil, 5, time.Minute))
	assert.Nil(t, NewLoginLimiter(&Client{store: newMockCmdable()}, 0, time.Minute))

	var l *LoginLimiter
	ok, err := l.Allow(context.Background(), "ip", "x@y.z")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, l.Reset(context.Background(), "x@y.z"))
}
