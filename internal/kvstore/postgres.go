package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/migrations"
	"github.com/nikolayk812/shopcart/internal/port"
)

const (
	getEntrySQL = `SELECT value FROM kv_entries WHERE owner_id = $1 AND key = $2`

	lockEntrySQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2, 0))`

	upsertEntrySQL = `INSERT INTO kv_entries (owner_id, key, value, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (owner_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	deleteEntrySQL = `DELETE FROM kv_entries WHERE owner_id = $1 AND key = $2`
)

// postgresStore keeps entries of a single owner (profile) in the shared kv_entries table.
type postgresStore struct {
	pool    *pgxpool.Pool
	ownerID uuid.UUID
}

func NewPostgres(pool *pgxpool.Pool, ownerID uuid.UUID) (port.KVStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("ownerID is empty")
	}

	return &postgresStore{
		pool:    pool,
		ownerID: ownerID,
	}, nil
}

// Migrate creates the kv_entries table when it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("migrations.ReadDir: %w", err)
	}

	for _, entry := range entries {
		script, err := migrations.FS.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("migrations.ReadFile[%s]: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("pool.Exec[%s]: %w", entry.Name(), err)
		}
	}

	return nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	value, found, err := getEntry(ctx, s.pool, s.ownerID, key)
	if err != nil {
		return nil, false, fmt.Errorf("getEntry: %w", err)
	}

	return value, found, nil
}

func (s *postgresStore) Update(ctx context.Context, key string, fn port.UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}

	_, err := withTx(ctx, s.pool, func(tx pgx.Tx) (struct{}, error) {
		if _, err := tx.Exec(ctx, lockEntrySQL, s.ownerID.String(), key); err != nil {
			return struct{}{}, fmt.Errorf("tx.Exec lock: %w", err)
		}

		prev, found, err := getEntry(ctx, tx, s.ownerID, key)
		if err != nil {
			return struct{}{}, fmt.Errorf("getEntry: %w", err)
		}

		next, err := fn(prev, found)
		if err != nil {
			return struct{}{}, err
		}

		if !json.Valid(next) {
			return struct{}{}, fmt.Errorf("value of key[%s] is not valid JSON", key)
		}

		if _, err := tx.Exec(ctx, upsertEntrySQL, s.ownerID, key, next); err != nil {
			return struct{}{}, fmt.Errorf("tx.Exec upsert: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func (s *postgresStore) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	tag, err := s.pool.Exec(ctx, deleteEntrySQL, s.ownerID, key)
	if err != nil {
		return false, fmt.Errorf("pool.Exec: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getEntry(ctx context.Context, q querier, ownerID uuid.UUID, key string) ([]byte, bool, error) {
	var value []byte

	err := q.QueryRow(ctx, getEntrySQL, ownerID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("row.Scan: %w", err)
	}

	return value, true, nil
}
