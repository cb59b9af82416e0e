package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// fakeRedis implements the three commands RoleCache issues.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  time.Duration
	err  error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	switch v, ok := f.data[key]; {
	case f.err != nil:
		cmd.SetErr(f.err)
	case !ok:
		cmd.SetErr(redis.Nil)
	default:
		cmd.SetVal(v)
	}
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	f.data[key] = fmt.Sprint(value)
	f.ttl = expiration
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestRoleCacheRoundTrip(t *testing.T) {
	fr := &fakeRedis{data: map[string]string{}}
	c := NewRoleCache(fr, 5*time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "kid@academy.io")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "kid@academy.io", model.RoleInstructor))
	assert.Equal(t, "instructor", fr.data["sports-academy:role:kid@academy.io"])
	assert.Equal(t, 5*time.Minute, fr.ttl)

	role, ok, err := c.Get(ctx, "kid@academy.io")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RoleInstructor, role)

	require.NoError(t, c.Forget(ctx, "kid@academy.io"))
	_, ok, err = c.Get(ctx, "kid@academy.io")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleCacheUnsetAndGarbage(t *testing.T) {
	fr := &fakeRedis{data: map[string]string{"sports-academy:role:x@academy.io": "overlord"}}
	c := NewRoleCache(fr, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "x@academy.io")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "y@academy.io", model.RoleUnset))
	role, ok, err := c.Get(ctx, "y@academy.io")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.RoleUnset, role)
}

func TestRoleCacheError(t *testing.T) {
	fr := &fakeRedis{data: map[string]string{}, err: errors.New("connection refused")}
	_, _, err := NewRoleCache(fr, time.Minute).Get(context.Background(), "x@academy.io")
	assert.Error(t, err)
}
