// Package localstate persists the few values the console keeps on the
// operator's machine. Today that is only the backend access credential.
package localstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// AccessKey is the fixed key the backend credential is stored under.
const AccessKey = "access_key"

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored under key, or "" when it was never set.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.GetContext(ctx, &v, getStateSQL, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get local state %q: %w", key, err)
	}
	return v, nil
}

// Set overwrites the value stored under key. Overwriting is the only way to
// clear it.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, upsertStateSQL, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set local state %q: %w", key, err)
	}
	return nil
}

// Name identifies the store as a credential source.
func (s *Store) Name() string {
	return "local state"
}

// AccessKey returns the persisted backend credential.
func (s *Store) AccessKey(ctx context.Context) (string, error) {
	return s.Get(ctx, AccessKey)
}

// SetAccessKey persists the backend credential. A running process keeps the
// credential it resolved at startup.
func (s *Store) SetAccessKey(ctx context.Context, key string) error {
	return s.Set(ctx, AccessKey, key)
}
