package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"cr-records/internal/cart"
	"cr-records/internal/models"
)

// CartHandler exposes the cart engine over JSON.
type CartHandler struct {
	Cart *cart.Service
}

type cartResponse struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Count    int               `json:"count"`
}

func (h *CartHandler) respond(w http.ResponseWriter, status int, items []models.CartItem) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(cartResponse{
		Items:    items,
		Subtotal: models.CartSubtotal(items),
		Count:    models.CartCount(items),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.Cart.Items(r.Context()))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.Cart.AddItem(r.Context(), item)
	if errors.Is(err, cart.ErrInvalidItem) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Could not save cart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, http.StatusCreated, items)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid item index", http.StatusBadRequest)
		return
	}

	var update struct {
		Quantity *int    `json:"quantity"`
		Size     *string `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.Cart.UpdateItem(r.Context(), index, cart.Update{Quantity: update.Quantity, Size: update.Size})
	if err != nil {
		http.Error(w, "Could not save cart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, http.StatusOK, items)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid item index", http.StatusBadRequest)
		return
	}

	items, err := h.Cart.RemoveItem(r.Context(), index)
	if err != nil {
		http.Error(w, "Could not save cart: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, http.StatusOK, items)
}
