package store

import "context"

// Storage keys. Each key holds one independently durable JSON blob; there is
// no transactionality across keys.
const (
	KeyCart        = "cr_cart"
	KeyOrders      = "cr_orders"
	KeyTaxSettings = "cr_tax_settings"
	KeySession     = "cr_admin_session"
)

// Store is the persistent key/value boundary every component talks to. An
// implementation can sit on sqlite, postgres or plain memory without the
// business logic noticing.
type Store interface {
	// Get returns the raw blob for a key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the blob for a key. The value is durable once Set returns nil.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
	HealthCheck(ctx context.Context) error
}
