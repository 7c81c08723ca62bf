package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("blob not found")

// BlobStore keeps opaque string values under string keys. Every call is
// atomic for its key; nothing spans keys.
type BlobStore interface {
	Close() error

	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
}

// BaseStore provides common functionality for different SQL implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations runs every .sql file of migrations in name order,
// translating dialect if needed
func (s *BaseStore) ApplyMigrations(migrations fs.FS, translateSQL func(string) string) error {
	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		for _, stmt := range strings.Split(sql, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := s.DB.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", name, err)
			}
		}
	}

	return nil
}

func (s *BaseStore) Get(ctx context.Context, key string) (string, error) {
	var blob Blob
	query := s.Converter(`
		SELECT blob_key, value, updated_at
		FROM blobs
		WHERE blob_key = ?
	`)

	err := s.DB.GetContext(ctx, &blob, query, key)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return blob.Value, nil
}

func (s *BaseStore) Set(ctx context.Context, key, value string) error {
	_, err := s.DB.NamedExecContext(ctx, `
		INSERT INTO blobs (blob_key, value, updated_at)
		VALUES (:blob_key, :value, :updated_at)
		ON CONFLICT (blob_key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at
	`, Blob{Key: key, Value: value, UpdatedAt: time.Now().UTC().UnixMilli()})
	if err != nil {
		return fmt.Errorf("failed to set blob %s: %w", key, err)
	}
	return nil
}

func (s *BaseStore) Delete(ctx context.Context, key string) error {
	query := s.Converter(`DELETE FROM blobs WHERE blob_key = ?`)
	if _, err := s.DB.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
