package admin

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cr-records/internal/models"
)

func TestExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("Header and row shape", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		seedOrders(t, svc)

		csv, err := svc.ExportCSV(ctx)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
		assert.Len(t, csvHeader, 20)
		assert.Contains(t, lines[1], `"CRR-1000-0001"`)
		assert.Contains(t, lines[1], `"53.99"`)
	})

	t.Run("Embedded quotes are doubled", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		orders := []models.Order{{
			ID:        "CRR-1000-0001",
			CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Customer:  models.Customer{FullName: `Alex "Ace" Buyer`, Country: "US"},
			Notes:     `He said "hi"`,
			Status:    models.StatusPending,
		}}
		require.NoError(t, svc.Data.SaveOrders(ctx, orders))

		csv, err := svc.ExportCSV(ctx)
		require.NoError(t, err)
		assert.Contains(t, csv, `"Alex ""Ace"" Buyer"`)
		assert.Contains(t, csv, `"He said ""hi"""`)
	})

	t.Run("Items column lists name and size", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		orders := []models.Order{{
			ID:        "CRR-1000-0001",
			CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			Status:    models.StatusPending,
			Items: []models.CartItem{
				{ID: "tee", Name: "Tee", Quantity: 2, Size: "M"},
				{ID: "vinyl", Name: "LP", Quantity: 1},
			},
		}}
		require.NoError(t, svc.Data.SaveOrders(ctx, orders))

		csv, err := svc.ExportCSV(ctx)
		require.NoError(t, err)
		assert.Contains(t, csv, `"Tee (M); LP"`)
		assert.Contains(t, csv, `"3"`)
	})

	t.Run("No orders", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		_, err := svc.ExportCSV(ctx)
		assert.ErrorIs(t, err, ErrNoOrders)
	})
}

func TestFilenames(t *testing.T) {
	svc, _, _ := newTestAdmin()
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	assert.Equal(t, "orders-export-2026-08-31.csv", svc.ExportFilename())
	assert.Equal(t, "orders-backup-2026-08-31.json", svc.BackupFilename())
}

func TestBackupAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("Backup envelope round-trips", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		seedOrders(t, svc)

		raw, err := svc.Backup(ctx)
		require.NoError(t, err)

		var envelope models.OrderBackup
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, models.BackupVersion, envelope.Version)
		assert.Len(t, envelope.Orders, 3)
	})

	t.Run("Restore replaces, never merges", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		seedOrders(t, svc)

		replacement := models.OrderBackup{
			Version:    models.BackupVersion,
			ExportDate: time.Now().UTC(),
			Orders: []models.Order{{
				ID:        "CRR-5000-0005",
				CreatedAt: time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC),
				Status:    models.StatusPending,
			}},
		}
		raw, err := json.Marshal(replacement)
		require.NoError(t, err)

		count, err := svc.Restore(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		orders := svc.Data.LoadOrders(ctx)
		require.Len(t, orders, 1)
		assert.Equal(t, "CRR-5000-0005", orders[0].ID)
	})

	t.Run("Restoring an empty collection is allowed", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		seedOrders(t, svc)

		count, err := svc.Restore(ctx, []byte(`{"version":"1.0","orders":[]}`))
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, svc.Data.LoadOrders(ctx))
	})

	t.Run("Invalid backups mutate nothing", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		seedOrders(t, svc)

		for _, payload := range []string{"not json", `{"version":"1.0"}`, `[]`} {
			_, err := svc.Restore(ctx, []byte(payload))
			assert.ErrorIs(t, err, ErrInvalidBackup, payload)
		}
		assert.Len(t, svc.Data.LoadOrders(ctx), 3)
	})
}
