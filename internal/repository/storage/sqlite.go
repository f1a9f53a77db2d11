package storage

import (
	"context"
	"database/sql"
	"errors"
)

type sqliteRepo struct {
	db *sql.DB
}

// NewSQLite returns a Repository over an embedded SQLite database.
// The device_storage table is created by migrate.ApplySQLite.
func NewSQLite(db *sql.DB) Repository {
	return &sqliteRepo{db: db}
}

func (r *sqliteRepo) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM device_storage WHERE device_id = ? AND key = ?`, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (r *sqliteRepo) Set(ctx context.Context, namespace, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO device_storage (device_id, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (device_id, key) DO UPDATE
SET value = excluded.value,
    updated_at = excluded.updated_at
`, namespace, key, string(value))
	return err
}

func (r *sqliteRepo) Delete(ctx context.Context, namespace, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM device_storage WHERE device_id = ? AND key = ?`, namespace, key)
	return err
}

func (r *sqliteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
