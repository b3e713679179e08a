package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eproc-api/internal/domain/entity"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb), mr
}

func TestRedisCache_RoundTripAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	in := entity.PostalAddress{PostalCode: "01310100", Street: "Avenida Paulista", City: "São Paulo", State: "SP"}
	require.NoError(t, c.SetJSON(ctx, "eproc:cep:01310100", in, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("eproc:cep:01310100"))

	var out entity.PostalAddress
	found, err := c.GetJSON(ctx, "eproc:cep:01310100", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	mr.FastForward(2 * time.Hour)
	found, err = c.GetJSON(ctx, "eproc:cep:01310100", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var out entity.CompanyRecord
	found, err := c.GetJSON(context.Background(), "eproc:cnpj:11222333000181", &out)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptEntryIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("eproc:cep:1", "{no-json"))

	var out entity.PostalAddress
	found, err := c.GetJSON(context.Background(), "eproc:cep:1", &out)

	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("eproc:cep:1"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var out entity.PostalAddress
	_, err := c.GetJSON(context.Background(), "eproc:cep:01310100", &out)

	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = rdb.Close()

	_, err = Connect(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Nop
	var dst struct{ A int }
	require.NoError(t, c.SetJSON(context.Background(), "k", struct{ A int }{1}, time.Minute))
	found, err := c.GetJSON(context.Background(), "k", &dst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, dst.A)
}
