package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	_ "github.com/lib/pq"
)

// Record is one persisted key/value row.
type Record struct {
	bun.BaseModel `bun:"table:store_records"`

	Key       string    `bun:"key,pk"`
	Value     []byte    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// BunStore persists blobs in a single key/value table via bun. The default
// driver is embedded sqlite; postgres is available for a shared deployment.
type BunStore struct {
	Bun *bun.DB
}

// OpenSQLite opens (creating if needed) a sqlite-backed store at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// sqlite handles one writer at a time
	sqldb.SetMaxOpenConns(1)
	return &BunStore{Bun: bun.NewDB(sqldb, sqlitedialect.New())}, nil
}

// OpenPostgres opens a postgres-backed store with the given DSN.
func OpenPostgres(dsn string) (*BunStore, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres store: %w", err)
	}
	return &BunStore{Bun: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// Migrate creates the records table if it does not exist.
func (s *BunStore) Migrate(ctx context.Context) error {
	_, err := s.Bun.NewCreateTable().
		Model((*Record)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create store_records table: %w", err)
	}
	return nil
}

func (s *BunStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	err := s.Bun.NewSelect().
		Model(&rec).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return rec.Value, nil
}

func (s *BunStore) Set(ctx context.Context, key string, value []byte) error {
	rec := &Record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.Bun.NewInsert().
		Model(rec).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.Bun.NewDelete().
		Model((*Record)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *BunStore) Close() error {
	return s.Bun.Close()
}

func (s *BunStore) HealthCheck(ctx context.Context) error {
	return s.Bun.PingContext(ctx)
}
