package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := miniredis.RunT(t)
	ctx := context.Background()

	c, err := New(ctx, Config{Addrs: []string{m.Addr()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(ctx) })

	assert.Equal(t, 5*time.Second, c.config.DialTimeout)
	assert.Equal(t, "single", c.config.Mode())
	require.NoError(t, c.Ping(ctx))

	require.NoError(t, c.UniversalClient().Set(ctx, "k", "v", 0).Err())
	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	assert.NotNil(t, c.Stats())
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, Config{})
	assert.ErrorIs(t, err, ErrEmptyAddrs)

	_, err = New(ctx, Config{Addrs: []string{"127.0.0.1:1"}, DialTimeout: -time.Second})
	assert.ErrorIs(t, err, ErrInvalidTimeout)

	m := miniredis.RunT(t)
	addr := m.Addr()
	m.Close()
	_, err = New(ctx, Config{Addrs: []string{addr}, DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	assert.Error(t, err)
}

func TestMode(t *testing.T) {
	assert.Equal(t, "single", (&Config{Addrs: []string{"a:1"}}).Mode())
	assert.Equal(t, "cluster", (&Config{Addrs: []string{"a:1", "b:1"}}).Mode())
	assert.Equal(t, "sentinel", (&Config{Addrs: []string{"a:1"}, MasterName: "m"}).Mode())
}
