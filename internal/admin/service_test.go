package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cr-records/internal/config"
	"cr-records/internal/logger"
	"cr-records/internal/models"
	"cr-records/internal/store"
)

const (
	testPassword = "reign-over-darkness"
	// SHA-256 of testPassword.
	testPasswordHash = "5fe8fe0bd222316a1c9d7d7e8eb3f724411d8dfe6d016d2f13357e2a3181827f"
)

type capturingPublisher struct {
	updated []models.Order
}

func (p *capturingPublisher) PublishOrderUpdated(order models.Order) error {
	p.updated = append(p.updated, order)
	return nil
}

func newTestAdmin() (*Service, *store.MemoryStore, *capturingPublisher) {
	backing := store.NewMemoryStore()
	log := logger.NewConsoleLogger()
	data := store.NewCollections(backing, log)
	pub := &capturingPublisher{}
	svc := NewService(data, pub, log, config.AdminConfig{
		PasswordHash: testPasswordHash,
		JWTSecret:    "test-secret",
		SessionTTL:   12 * time.Hour,
	})
	return svc, backing, pub
}

func seedOrders(t *testing.T, svc *Service) []models.Order {
	t.Helper()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{
			ID:        "CRR-1000-0001",
			CreatedAt: base,
			Customer:  models.Customer{FullName: "Alex Buyer", Email: "alex@example.com", Country: "US"},
			Subtotal:  48.00, Shipping: models.Shipping{Method: "Standard Shipping", Cost: 5.99},
			Total: 53.99, Status: models.StatusPending,
		},
		{
			ID:        "CRR-2000-0002",
			CreatedAt: base.Add(24 * time.Hour),
			Customer:  models.Customer{FullName: "Blair Fan", Email: "blair@example.com", Country: "CA"},
			Subtotal:  30.00, Shipping: models.Shipping{Method: "Express Shipping", Cost: 14.99},
			Total: 44.99, Status: models.StatusShipped,
		},
		{
			ID:        "CRR-3000-0003",
			CreatedAt: base.Add(48 * time.Hour),
			Customer:  models.Customer{FullName: "Casey Collector", Email: "casey@example.com", Country: "US"},
			Subtotal:  70.00, Shipping: models.Shipping{Method: "Standard Shipping", Cost: 5.99},
			Total: 75.99, Status: models.StatusProcessing,
		},
	}
	require.NoError(t, svc.Data.SaveOrders(context.Background(), orders))
	return orders
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Correct password issues a verifiable session", func(t *testing.T) {
		svc, _, _ := newTestAdmin()

		token, err := svc.Login(ctx, testPassword)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.NoError(t, svc.VerifySession(ctx, token))
	})

	t.Run("Wrong password is rejected", func(t *testing.T) {
		svc, _, _ := newTestAdmin()

		_, err := svc.Login(ctx, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Logout invalidates the stored session", func(t *testing.T) {
		svc, _, _ := newTestAdmin()

		token, err := svc.Login(ctx, testPassword)
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx))
		assert.ErrorIs(t, svc.VerifySession(ctx, token), ErrInvalidSession)
	})

	t.Run("A new login supersedes the previous token", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

		first, err := svc.Login(ctx, testPassword)
		require.NoError(t, err)
		svc.now = func() time.Time { return time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC) }
		second, err := svc.Login(ctx, testPassword)
		require.NoError(t, err)

		assert.ErrorIs(t, svc.VerifySession(ctx, first), ErrInvalidSession)
		assert.NoError(t, svc.VerifySession(ctx, second))
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		assert.ErrorIs(t, svc.VerifySession(ctx, "not-a-jwt"), ErrInvalidSession)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAdmin()
	seedOrders(t, svc)

	stats := svc.Stats(ctx)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.Pending, "pending and processing both count as open")
	assert.Equal(t, 1, stats.Shipped)
	assert.InDelta(t, 174.97, stats.Revenue, 0.001)
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAdmin()
	seedOrders(t, svc)

	t.Run("Sorted most recent first", func(t *testing.T) {
		orders := svc.ListOrders(ctx, "", "")
		require.Len(t, orders, 3)
		assert.Equal(t, "CRR-3000-0003", orders[0].ID)
		assert.Equal(t, "CRR-1000-0001", orders[2].ID)
	})

	t.Run("Status filter", func(t *testing.T) {
		orders := svc.ListOrders(ctx, "Shipped", "")
		require.Len(t, orders, 1)
		assert.Equal(t, "CRR-2000-0002", orders[0].ID)
	})

	t.Run("Search matches id, name and email case-insensitively", func(t *testing.T) {
		assert.Len(t, svc.ListOrders(ctx, "", "BLAIR"), 1)
		assert.Len(t, svc.ListOrders(ctx, "", "casey@example.com"), 1)
		assert.Len(t, svc.ListOrders(ctx, "", "crr-1000"), 1)
		assert.Empty(t, svc.ListOrders(ctx, "", "nobody"))
	})

	t.Run("Filter and search combine", func(t *testing.T) {
		assert.Empty(t, svc.ListOrders(ctx, "Shipped", "alex"))
	})
}

func TestSaveOrderChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("Patches only the editable fields", func(t *testing.T) {
		svc, _, pub := newTestAdmin()
		seeded := seedOrders(t, svc)

		updated, err := svc.SaveOrderChanges(ctx, "CRR-1000-0001", OrderChanges{
			Status:         models.StatusShipped,
			Carrier:        "USPS",
			TrackingNumber: "9400-1234",
			Notes:          "Left at door",
		})
		require.NoError(t, err)

		assert.Equal(t, models.StatusShipped, updated.Status)
		assert.Equal(t, "USPS", updated.Carrier)
		assert.Equal(t, "9400-1234", updated.TrackingNumber)
		assert.Equal(t, "Left at door", updated.Notes)

		// Everything else on the record stays as it was sold.
		assert.Equal(t, seeded[0].Total, updated.Total)
		assert.Equal(t, seeded[0].Customer, updated.Customer)
		assert.Equal(t, seeded[0].CreatedAt, updated.CreatedAt)

		require.Len(t, pub.updated, 1)
		assert.Equal(t, "CRR-1000-0001", pub.updated[0].ID)
	})

	t.Run("Unknown order", func(t *testing.T) {
		svc, _, _ := newTestAdmin()
		seedOrders(t, svc)

		_, err := svc.SaveOrderChanges(ctx, "CRR-9999-9999", OrderChanges{Status: models.StatusShipped})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestTaxSettingsPercent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAdmin()

	require.NoError(t, svc.SaveTaxSettingsPercent(ctx, TaxSettingsPercent{US: 8.5, CA: 13, Other: 0}))

	stored := svc.Data.LoadTaxSettings(ctx)
	assert.InDelta(t, 0.085, stored.US, 0.0001)
	assert.InDelta(t, 0.13, stored.CA, 0.0001)

	percent := svc.TaxSettingsPercent(ctx)
	assert.InDelta(t, 8.5, percent.US, 0.0001)
	assert.InDelta(t, 13, percent.CA, 0.0001)
	assert.Zero(t, percent.Other)
}
