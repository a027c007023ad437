package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"cr-records/internal/checkout"
)

// CheckoutHandler exposes the order builder.
type CheckoutHandler struct {
	Checkout *checkout.Service
}

func (h *CheckoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.Checkout.Summarize(r.Context(), r.URL.Query().Get("shipping"))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

var checkoutValidationErrors = []error{
	checkout.ErrEmptyCart,
	checkout.ErrNoShippingSelected,
	checkout.ErrUnknownPayment,
	checkout.ErrMissingVenmoHandle,
	checkout.ErrMissingBankHolder,
	checkout.ErrMissingBankRef,
	checkout.ErrMissingSenderWallet,
	checkout.ErrInvalidTxHash,
	checkout.ErrWalletNotConfirmed,
	checkout.ErrMissingAddress,
}

func isValidationError(err error) bool {
	for _, sentinel := range checkoutValidationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkout.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	confirmation, err := h.Checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Storage failure: the cart is untouched, the buyer can retry.
		http.Error(w, "Failed to save order. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(confirmation)
}
