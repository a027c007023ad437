package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cr-records/internal/logger"
	"cr-records/internal/models"
	"cr-records/internal/store"
)

func newTestService() (*Service, *store.MemoryStore) {
	backing := store.NewMemoryStore()
	data := store.NewCollections(backing, logger.NewConsoleLogger())
	return NewService(data, logger.NewConsoleLogger()), backing
}

func tee(size string, quantity int) models.CartItem {
	return models.CartItem{ID: "tee", Name: "Reigning Over Darkness Tee", Price: 24.00, Quantity: quantity, Size: size}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Merges rows with the same id and size", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.AddItem(ctx, tee("M", 1))
		require.NoError(t, err)
		items, err := svc.AddItem(ctx, tee("M", 2))
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("Different sizes stay separate rows", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.AddItem(ctx, tee("M", 1))
		require.NoError(t, err)
		items, err := svc.AddItem(ctx, tee("L", 1))
		require.NoError(t, err)

		assert.Len(t, items, 2)
	})

	t.Run("Ticket merge overwrites date and time", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.AddItem(ctx, models.CartItem{
			ID: "tour-chicago", Name: "Chicago Show", Price: 35.00,
			Date: "2026-10-01", Time: "19:00",
		})
		require.NoError(t, err)
		items, err := svc.AddItem(ctx, models.CartItem{
			ID: "tour-chicago", Name: "Chicago Show", Price: 35.00,
			Date: "2026-10-02", Time: "20:00",
		})
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, "2026-10-02", items[0].Date)
		assert.Equal(t, "20:00", items[0].Time)
	})

	t.Run("Quantity defaults to one", func(t *testing.T) {
		svc, _ := newTestService()

		items, err := svc.AddItem(ctx, tee("M", 0))
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("Tee without a size gets the default", func(t *testing.T) {
		svc, _ := newTestService()

		items, err := svc.AddItem(ctx, tee("", 1))
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, DefaultTeeSize, items[0].Size)
	})

	t.Run("Invalid item leaves the cart unchanged", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.AddItem(ctx, models.CartItem{ID: "tee", Name: "Tee", Price: 0})
		assert.ErrorIs(t, err, ErrInvalidItem)
		assert.Empty(t, svc.Items(ctx))

		_, err = svc.AddItem(ctx, models.CartItem{Name: "Tee", Price: 24.00})
		assert.ErrorIs(t, err, ErrInvalidItem)
		assert.Empty(t, svc.Items(ctx))
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Quantity is clamped to one", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.AddItem(ctx, tee("M", 3))
		require.NoError(t, err)

		zero := 0
		items, err := svc.UpdateItem(ctx, 0, Update{Quantity: &zero})
		require.NoError(t, err)

		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("Out of range index is a no-op", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.AddItem(ctx, tee("M", 1))
		require.NoError(t, err)

		five := 5
		items, err := svc.UpdateItem(ctx, 7, Update{Quantity: &five})
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("Size change only touches the row", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.AddItem(ctx, tee("M", 2))
		require.NoError(t, err)

		size := "XL"
		items, err := svc.UpdateItem(ctx, 0, Update{Size: &size})
		require.NoError(t, err)

		assert.Equal(t, "XL", items[0].Size)
		assert.Equal(t, 2, items[0].Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.AddItem(ctx, tee("M", 1))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, tee("L", 1))
	require.NoError(t, err)

	items, err := svc.RemoveItem(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)

	items, err = svc.RemoveItem(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestObservers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	var seen [][]models.CartItem
	svc.OnChange(func(items []models.CartItem) {
		seen = append(seen, items)
	})

	_, err := svc.AddItem(ctx, tee("M", 1))
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx))

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 1)
	assert.Empty(t, seen[1])
}

func TestSubtotalAndCount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.AddItem(ctx, tee("M", 2))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, models.CartItem{ID: "vinyl", Name: "LP", Price: 30.00, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, svc.Count(ctx))
	assert.InDelta(t, 78.00, svc.Subtotal(ctx), 0.001)
}
