package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Store is the durable key-value storage backing all persisted state.
// Values are opaque strings; callers decide on the serialization.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := "SELECT value FROM storage WHERE key = ?"
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not read key %q: %w", key, err)
		log.Error(err)
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value string) error {
	query := `INSERT INTO storage (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store key %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := "DELETE FROM storage WHERE key = ?"
	_, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		err := fmt.Errorf("could not delete key %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}
