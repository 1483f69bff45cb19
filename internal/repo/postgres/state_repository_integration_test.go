//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/testutil"
)

// Запись, перезапись (last-write-wins), чтение и удаление ключа.
func TestStateRepo_SetGetDelete_TC(t *testing.T) {
	t.Parallel()
	pg := testutil.StartPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := pgrepo.NewStateRepository(pg.Pool, "profile-1")

	_, ok, err := repo.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "wase_cart", []byte(`[{"id":"p1","qty":1}]`)))
	require.NoError(t, repo.Set(ctx, "wase_cart", []byte(`[{"id":"p1","qty":2}]`)))

	v, ok, err := repo.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"p1","qty":2}]`, string(v))

	require.NoError(t, repo.Delete(ctx, "wase_cart"))
	_, ok, err = repo.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)
}

// Профили в одной таблице не видят ключей друг друга; повторная миграция — no-op.
func TestStateRepo_ProfilesIsolated_TC(t *testing.T) {
	t.Parallel()
	pg := testutil.StartPostgres(t)
	require.NoError(t, pgrepo.Migrate(pg.DSN, testutil.MigrationsDir()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := pgrepo.NewStateRepository(pg.Pool, "a")
	b := pgrepo.NewStateRepository(pg.Pool, "b")

	require.NoError(t, a.Set(ctx, "wase_user", []byte(`{"phone":"1"}`)))

	_, ok, err := b.Get(ctx, "wase_user")
	require.NoError(t, err)
	require.False(t, ok)
}
