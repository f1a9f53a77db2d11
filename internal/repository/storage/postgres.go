package storage

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by the device_storage table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	const q = `
SELECT value::text
FROM device_storage
WHERE device_id = $1 AND key = $2
`
	var value string
	if err := r.pool.QueryRow(ctx, q, namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Printf("storage repo: get device=%s key=%s error=%v", namespace, key, err)
		return nil, err
	}
	return []byte(value), nil
}

func (r *postgresRepo) Set(ctx context.Context, namespace, key string, value []byte) error {
	const q = `
INSERT INTO device_storage (device_id, key, value, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (device_id, key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, namespace, key, string(value)); err != nil {
		r.logger.Printf("storage repo: set device=%s key=%s error=%v", namespace, key, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, namespace, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM device_storage WHERE device_id = $1 AND key = $2`, namespace, key); err != nil {
		r.logger.Printf("storage repo: delete device=%s key=%s error=%v", namespace, key, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
