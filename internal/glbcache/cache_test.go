package glbcache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurex-showroom/core"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "glb:aurex:3b82f6", Key("aurex", core.MustParseHex("#3B82F6")))
	assert.NotEqual(t, Key("aurex", core.ColorBlack), Key("placeholder", core.ColorBlack))
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	src := []byte("glTF....")
	require.NoError(t, m.Set(ctx, "k", src))
	src[0] = 'X'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("glTF...."), got)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("a")))
	now = now.Add(59 * time.Second)
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("AUREX_TEST_REDIS")
	if addr == "" {
		t.Skip("AUREX_TEST_REDIS not set")
	}
	ctx := context.Background()
	r := NewRedis(addr, time.Minute)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Ping(ctx))

	key := Key("test", core.MustParseHex("#ef4444"))
	require.NoError(t, r.Set(ctx, key, []byte{0x67, 0x6c, 0x54, 0x46, 0x00}))
	got, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x67, 0x6c, 0x54, 0x46, 0x00}, got)

	_, ok, err = r.Get(ctx, key+":missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiryMillis(t *testing.T) {
	assert.Equal(t, int64(600000), expiryMillis(10*time.Minute))
	assert.Equal(t, int64(500), expiryMillis(500*time.Millisecond))
	assert.Equal(t, int64(2), expiryMillis(1500*time.Microsecond))
	assert.Equal(t, int64(1), expiryMillis(time.Nanosecond))
}

func TestRedisSubSecondTTL(t *testing.T) {
	addr := os.Getenv("AUREX_TEST_REDIS")
	if addr == "" {
		t.Skip("AUREX_TEST_REDIS not set")
	}
	ctx := context.Background()
	r := NewRedis(addr, 300*time.Millisecond)
	t.Cleanup(func() { _ = r.Close() })

	key := Key("short", core.MustParseHex("#3b82f6"))
	require.NoError(t, r.Set(ctx, key, []byte("glTF")))
	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisUnreachable(t *testing.T) {
	r := NewRedis("127.0.0.1:1", time.Minute)
	t.Cleanup(func() { _ = r.Close() })

	_, _, err := r.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, r.Ping(context.Background()))
}
