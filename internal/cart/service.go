package cart

import (
	"context"
	"errors"
	"fmt"

	"cr-records/internal/logger"
	"cr-records/internal/models"
	"cr-records/internal/store"
)

// ErrInvalidItem is returned when an add is missing an id, a name or a
// positive price. The cart is left unchanged.
var ErrInvalidItem = errors.New("cart: item needs an id, a name and a positive price")

// DefaultTeeSize applies when apparel is added without an explicit size.
const DefaultTeeSize = "M"

// Observer is called synchronously after every persisted cart mutation,
// with the new state of the collection.
type Observer func(items []models.CartItem)

// Service owns the visitor's cart rows. Every mutation persists the full
// collection immediately, then notifies registered observers.
type Service struct {
	Data      *store.Collections
	Logger    *logger.Logger
	observers []Observer
}

func NewService(data *store.Collections, log *logger.Logger) *Service {
	return &Service{Data: data, Logger: log}
}

// OnChange registers an observer for cart mutations.
func (s *Service) OnChange(fn Observer) {
	s.observers = append(s.observers, fn)
}

func (s *Service) notify(items []models.CartItem) {
	for _, fn := range s.observers {
		fn(items)
	}
}

// Items returns the current cart rows.
func (s *Service) Items(ctx context.Context) []models.CartItem {
	return s.Data.LoadCart(ctx)
}

// Count returns the sum of quantities across all rows (badge number).
func (s *Service) Count(ctx context.Context) int {
	return models.CartCount(s.Data.LoadCart(ctx))
}

// Subtotal returns the sum of line totals.
func (s *Service) Subtotal(ctx context.Context) float64 {
	return models.CartSubtotal(s.Data.LoadCart(ctx))
}

// AddItem merges into an existing (id, size) row by incrementing its
// quantity, or appends a new row. For ticket items, a merge also overwrites
// date/time with the most recent values supplied.
func (s *Service) AddItem(ctx context.Context, item models.CartItem) ([]models.CartItem, error) {
	if item.ID == "" || item.Name == "" || item.Price <= 0 {
		return s.Data.LoadCart(ctx), ErrInvalidItem
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.Size == "" && item.ID == "tee" {
		item.Size = DefaultTeeSize
	}

	items := s.Data.LoadCart(ctx)
	merged := false
	for i := range items {
		if !items[i].SameRow(item.ID, item.Size) {
			continue
		}
		items[i].Quantity += item.Quantity
		if items[i].IsTicket() {
			if item.Date != "" {
				items[i].Date = item.Date
			}
			if item.Time != "" {
				items[i].Time = item.Time
			}
		}
		merged = true
		break
	}
	if !merged {
		items = append(items, item)
	}

	if err := s.Data.SaveCart(ctx, items); err != nil {
		return items, fmt.Errorf("save cart: %w", err)
	}
	s.Logger.Info("CART", fmt.Sprintf("Added %dx %s", item.Quantity, item.ID))
	s.notify(items)
	return items, nil
}

// Update patches the row at index. Quantity is clamped to a minimum of 1;
// an out-of-range index is a no-op returning the unmodified collection.
type Update struct {
	Quantity *int
	Size     *string
}

func (s *Service) UpdateItem(ctx context.Context, index int, update Update) ([]models.CartItem, error) {
	items := s.Data.LoadCart(ctx)
	if index < 0 || index >= len(items) {
		return items, nil
	}
	if update.Quantity != nil {
		quantity := *update.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items[index].Quantity = quantity
	}
	if update.Size != nil {
		items[index].Size = *update.Size
	}

	if err := s.Data.SaveCart(ctx, items); err != nil {
		return items, fmt.Errorf("save cart: %w", err)
	}
	s.notify(items)
	return items, nil
}

// RemoveItem removes the row at index. Out-of-range is tolerated as a no-op.
func (s *Service) RemoveItem(ctx context.Context, index int) ([]models.CartItem, error) {
	items := s.Data.LoadCart(ctx)
	if index < 0 || index >= len(items) {
		return items, nil
	}
	items = append(items[:index], items[index+1:]...)

	if err := s.Data.SaveCart(ctx, items); err != nil {
		return items, fmt.Errorf("save cart: %w", err)
	}
	s.notify(items)
	return items, nil
}

// Clear empties the cart. Called after a successfully persisted order.
func (s *Service) Clear(ctx context.Context) error {
	empty := []models.CartItem{}
	if err := s.Data.SaveCart(ctx, empty); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.notify(empty)
	return nil
}
