package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cr-records/internal/models"
)

func TestInvoice(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAdmin()

	order := models.Order{
		ID:        "CRR-1000-0001",
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Customer: models.Customer{
			FullName: "Alex Buyer", Address1: "1 Main St",
			City: "Chicago", State: "IL", Zip: "60601", Country: "US",
		},
		Items:         []models.CartItem{{ID: "tee", Name: "Tee", Price: 24.00, Quantity: 2, Size: "M"}},
		Subtotal:      48.00,
		Shipping:      models.Shipping{Method: "Standard Shipping", Cost: 5.99},
		Total:         53.99,
		Status:        models.StatusPending,
		PaymentStatus: "Awaiting Venmo Confirmation",
	}
	require.NoError(t, svc.Data.SaveOrders(ctx, []models.Order{order}))

	t.Run("Renders the order", func(t *testing.T) {
		page, err := svc.Invoice(ctx, "CRR-1000-0001")
		require.NoError(t, err)

		html := string(page)
		assert.Contains(t, html, "CRR-1000-0001")
		assert.Contains(t, html, "Alex Buyer")
		assert.Contains(t, html, "$53.99")
		assert.Contains(t, html, "data:image/png;base64,")
		assert.NotContains(t, html, "Tax:", "zero tax row should be omitted")
	})

	t.Run("Tax row appears when taxed", func(t *testing.T) {
		taxed := order
		taxed.ID = "CRR-1000-0002"
		taxed.Tax = 4.08
		require.NoError(t, svc.Data.SaveOrders(ctx, []models.Order{order, taxed}))

		page, err := svc.Invoice(ctx, "CRR-1000-0002")
		require.NoError(t, err)
		assert.Contains(t, string(page), "Tax:")
	})

	t.Run("Unknown order", func(t *testing.T) {
		_, err := svc.Invoice(ctx, "CRR-9999-9999")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
