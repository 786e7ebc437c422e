package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jask/jasktasks/internal/database"
	"github.com/jask/jasktasks/internal/kvstore"
)

// KVRepo handles kv_store rows. It satisfies kvstore.Storage.
type KVRepo struct {
	db *sql.DB
}

var _ kvstore.Storage = (*KVRepo)(nil)

func NewKVRepo(db *sql.DB) *KVRepo { return &KVRepo{db: db} }

// Get returns the entry for key, or nil when it does not exist.
func (r *KVRepo) Get(ctx context.Context, key string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM kv_store WHERE key = ?`, key)
	var e Entry
	if err := row.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *KVRepo) Upsert(ctx context.Context, e Entry) error {
	if e.Key == "" {
		return kvstore.ErrInvalidKey
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = database.Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO kv_store(key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=excluded.updated_at;
	`, e.Key, e.Value, e.UpdatedAt)
	return err
}

func (r *KVRepo) Read(ctx context.Context, key string) (string, bool, error) {
	e, err := r.Get(ctx, key)
	if err != nil || e == nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (r *KVRepo) Write(ctx context.Context, key, value string) error {
	return r.Upsert(ctx, Entry{Key: key, Value: value})
}
