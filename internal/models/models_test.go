package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItem(t *testing.T) {
	t.Run("Ticket detection by id prefix", func(t *testing.T) {
		assert.True(t, CartItem{ID: "tour-chicago"}.IsTicket())
		assert.False(t, CartItem{ID: "tee"}.IsTicket())
		assert.False(t, CartItem{ID: "detour-special"}.IsTicket())
	})

	t.Run("Row identity is id plus size", func(t *testing.T) {
		row := CartItem{ID: "tee", Size: "M"}
		assert.True(t, row.SameRow("tee", "M"))
		assert.False(t, row.SameRow("tee", "L"))
		assert.False(t, row.SameRow("vinyl", "M"))
	})

	t.Run("Line totals and aggregates", func(t *testing.T) {
		items := []CartItem{
			{ID: "tee", Price: 24.00, Quantity: 2},
			{ID: "vinyl", Price: 30.00, Quantity: 1},
		}
		assert.InDelta(t, 48.00, items[0].LineTotal(), 0.001)
		assert.InDelta(t, 78.00, CartSubtotal(items), 0.001)
		assert.Equal(t, 3, CartCount(items))
	})

	t.Run("CopyItems is a deep snapshot", func(t *testing.T) {
		items := []CartItem{{ID: "tee", Quantity: 1}}
		snapshot := CopyItems(items)
		items[0].Quantity = 9
		assert.Equal(t, 1, snapshot[0].Quantity)
	})
}

func TestTaxSettingsRateFor(t *testing.T) {
	settings := TaxSettings{US: 0.085, CA: 0.13, Other: 0.05}

	assert.InDelta(t, 0.085, settings.RateFor("US"), 0.0001)
	assert.InDelta(t, 0.13, settings.RateFor("CA"), 0.0001)
	assert.InDelta(t, 0.05, settings.RateFor("OTHER"), 0.0001)
	assert.Zero(t, settings.RateFor("DE"))
	assert.Zero(t, settings.RateFor(""))
}

func TestPaymentMethod(t *testing.T) {
	assert.Equal(t, "Venmo", PaymentVenmo.Label())
	assert.Equal(t, "Bank Account", PaymentBank.Label())
	assert.Equal(t, "Atom one", PaymentAtomOne.Label())

	assert.Equal(t, "Awaiting Venmo Confirmation", PaymentVenmo.PendingStatus())
	assert.Equal(t, "Awaiting Bank Transfer Confirmation", PaymentBank.PendingStatus())
	assert.Equal(t, "Awaiting Atom one Confirmation", PaymentAtomOne.PendingStatus())

	assert.True(t, PaymentVenmo.Valid())
	assert.False(t, PaymentMethod("paypal").Valid())
}

func TestPaymentDetails(t *testing.T) {
	t.Run("Validate enforces the tagged case", func(t *testing.T) {
		valid := PaymentDetails{Method: PaymentVenmo, Venmo: &VenmoPayment{SenderHandle: "@alex"}}
		assert.NoError(t, valid.Validate())

		mismatched := PaymentDetails{Method: PaymentBank, Venmo: &VenmoPayment{}}
		assert.Error(t, mismatched.Validate())

		unknown := PaymentDetails{Method: "paypal"}
		assert.Error(t, unknown.Validate())
	})

	t.Run("Venmo instructions include the reference when set", func(t *testing.T) {
		details := PaymentDetails{Method: PaymentVenmo, Venmo: &VenmoPayment{
			RecipientHandle: "@cyrusreigns",
			SenderHandle:    "@alex",
			Reference:       "CRR-1-1",
		}}
		lines := details.InstructionLines()
		require.Len(t, lines, 2)
		assert.Equal(t, "Venmo username: @alex", lines[0])
		assert.Equal(t, "Pay to: @cyrusreigns | Reference: CRR-1-1", lines[1])

		details.Venmo.Reference = ""
		assert.Equal(t, "Pay to: @cyrusreigns", details.InstructionLines()[1])
	})
}

func TestOrderItemCount(t *testing.T) {
	order := Order{Items: []CartItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, order.ItemCount())
	assert.Zero(t, Order{}.ItemCount())
}
