package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/storage/sqlite"
)

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()

	s, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "wase_cart", []byte(`[{"id":"p1","qty":1}]`)))
	require.NoError(t, s.Set(ctx, "wase_cart", []byte(`[{"id":"p1","qty":2}]`)))

	v, ok, err := s.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"p1","qty":2}]`, string(v))

	require.NoError(t, s.Delete(ctx, "wase_cart"))
	_, ok, err = s.Get(ctx, "wase_cart")
	require.NoError(t, err)
	require.False(t, ok)
}

// Данные переживают повторное открытие файла (новая «загрузка страницы»).
func TestKVStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "wase_user", []byte(`{"phone":"9999999999"}`)))
	require.NoError(t, s.Close())

	s2, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get(ctx, "wase_user")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"phone":"9999999999"}`, string(v))
}
