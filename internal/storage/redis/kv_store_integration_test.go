//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rediskv "github.com/Gunvolt24/storefront/internal/storage/redis"
	"github.com/Gunvolt24/storefront/internal/testutil"
)

func TestKVStore_SetGetDelete_TC(t *testing.T) {
	addr := testutil.StartRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rdb, err := rediskv.NewClient(ctx, addr, 0, false)
	require.NoError(t, err)
	defer rdb.Close()

	a := rediskv.NewKVStore(rdb, "profile-a:")
	b := rediskv.NewKVStore(rdb, "profile-b:")

	_, ok, err := a.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, a.Set(ctx, "wase_cart", []byte(`[]`)))
	v, ok, err := a.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", string(v))

	// префиксы изолируют профили
	_, ok, err = b.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, a.Delete(ctx, "wase_cart"))
	_, ok, err = a.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)
}
