package redisslot

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakhub/storefront/storage"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	_, err := s.Get(ctx, "pph_cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "pph_cart", []byte(`[{"id":"p1"}]`)))

	got, err := s.Get(ctx, "pph_cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, string(got))

	raw, err := mr.Get("pph_cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, raw)
	assert.Zero(t, mr.TTL("pph_cart"), "slots never expire")
}

func TestStoreGetError(t *testing.T) {
	s, mr := newTestStore(t)
	mr.Close()

	_, err := s.Get(context.Background(), "pph_cart")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)

	addr := mr.Addr()
	client, err := Dial(context.Background(), addr, "", 0)
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = Dial(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
