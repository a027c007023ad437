package store

import (
	"context"
	"encoding/json"
	"fmt"

	"cr-records/internal/logger"
	"cr-records/internal/models"
)

// Collections wraps a Store with typed accessors for the four persisted
// blobs. Loads tolerate a missing or corrupted blob by returning the empty
// default; saves propagate the storage error so the caller can tell the user
// to retry instead of silently losing data.
type Collections struct {
	Store  Store
	Logger *logger.Logger
}

func NewCollections(s Store, log *logger.Logger) *Collections {
	return &Collections{Store: s, Logger: log}
}

func (c *Collections) load(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.Store.Get(ctx, key)
	if err != nil {
		c.Logger.Error("STORE", fmt.Sprintf("Failed to load %s: %v", key, err))
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.Logger.Warn("STORE", fmt.Sprintf("Corrupted blob at %s, using default: %v", key, err))
		return false
	}
	return true
}

func (c *Collections) save(ctx context.Context, key string, in interface{}) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Store.Set(ctx, key, raw)
}

// LoadCart returns the cart rows, empty when absent or unreadable.
func (c *Collections) LoadCart(ctx context.Context) []models.CartItem {
	items := []models.CartItem{}
	c.load(ctx, KeyCart, &items)
	return items
}

func (c *Collections) SaveCart(ctx context.Context, items []models.CartItem) error {
	return c.save(ctx, KeyCart, items)
}

// LoadOrders returns the order collection in insertion (creation) order.
func (c *Collections) LoadOrders(ctx context.Context) []models.Order {
	orders := []models.Order{}
	c.load(ctx, KeyOrders, &orders)
	return orders
}

func (c *Collections) SaveOrders(ctx context.Context, orders []models.Order) error {
	return c.save(ctx, KeyOrders, orders)
}

// LoadTaxSettings returns the configured rates, all zero when never saved.
func (c *Collections) LoadTaxSettings(ctx context.Context) models.TaxSettings {
	var settings models.TaxSettings
	c.load(ctx, KeyTaxSettings, &settings)
	return settings
}

func (c *Collections) SaveTaxSettings(ctx context.Context, settings models.TaxSettings) error {
	return c.save(ctx, KeyTaxSettings, settings)
}

// LoadSession returns the stored admin session token, "" when absent.
func (c *Collections) LoadSession(ctx context.Context) string {
	var token string
	c.load(ctx, KeySession, &token)
	return token
}

func (c *Collections) SaveSession(ctx context.Context, token string) error {
	return c.save(ctx, KeySession, token)
}

func (c *Collections) ClearSession(ctx context.Context) error {
	return c.Store.Delete(ctx, KeySession)
}
