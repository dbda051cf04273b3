package store

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore keeps each logical record as one jsonb row, so a write is
// the same whole-value, last-write-wins overwrite the adapter promises.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Init(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS client_state (
				key   text PRIMARY KEY,
				value jsonb NOT NULL
			)
		`)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) LikedIDs(ctx context.Context) ([]string, error) {
	b, err := s.getRecord(ctx, likedKey)
	if err != nil {
		return nil, err
	}
	return decodeLikedIDs(b), nil
}

func (s *PostgresStore) SetLikedIDs(ctx context.Context, ids []string) error {
	b, err := encodeLikedIDs(ids)
	if err != nil {
		return err
	}
	return s.setRecord(ctx, likedKey, b)
}

func (s *PostgresStore) CartItems(ctx context.Context) ([]CartItem, error) {
	b, err := s.getRecord(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	return decodeCartItems(b), nil
}

func (s *PostgresStore) SetCartItems(ctx context.Context, items []CartItem) error {
	b, err := encodeCartItems(items)
	if err != nil {
		return err
	}
	return s.setRecord(ctx, cartKey, b)
}

func (s *PostgresStore) ClearCartItems(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM client_state
			WHERE key = $1
		`, cartKey)
		return err
	})
}

func (s *PostgresStore) getRecord(ctx context.Context, key string) ([]byte, error) {
	var b []byte
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT value
			FROM client_state
			WHERE key = $1
		`, key).Scan(&b)
	})

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PostgresStore) setRecord(ctx context.Context, key string, value []byte) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO client_state (key, value)
			VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		`, key, value)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
