package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BunStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBunStore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	t.Run("Absent key reads as nil", func(t *testing.T) {
		value, err := s.Get(ctx, KeyCart)
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("Set then get round-trips", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, KeyCart, []byte(`[{"id":"tee"}]`)))
		value, err := s.Get(ctx, KeyCart)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"tee"}]`, string(value))
	})

	t.Run("Set overwrites in place", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, KeyTaxSettings, []byte(`{"US":0.07}`)))
		require.NoError(t, s.Set(ctx, KeyTaxSettings, []byte(`{"US":0.085}`)))
		value, err := s.Get(ctx, KeyTaxSettings)
		require.NoError(t, err)
		assert.JSONEq(t, `{"US":0.085}`, string(value))
	})

	t.Run("Delete tolerates absent keys", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, KeySession, []byte(`"token"`)))
		require.NoError(t, s.Delete(ctx, KeySession))
		value, err := s.Get(ctx, KeySession)
		require.NoError(t, err)
		assert.Nil(t, value)

		assert.NoError(t, s.Delete(ctx, KeySession))
	})

	t.Run("Healthy after migration", func(t *testing.T) {
		assert.NoError(t, s.HealthCheck(ctx))
	})
}
