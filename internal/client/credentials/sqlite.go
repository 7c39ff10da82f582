package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aquapure/backoffice/internal/client/migrations"
	"github.com/aquapure/backoffice/internal/dbx"
	"github.com/pressly/goose/v3"
)

// SQLiteStore persists auth state in a local sqlite database so a signed-in
// session survives CLI restarts.
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenDatabase opens (or creates) the local state database at dsn and brings
// its schema up to date. The caller owns closing the returned handle.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to migrate state db: %w", err)
	}

	return db, nil
}

func (r *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM auth_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth_state[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set auth_state[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete auth_state[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM auth_state`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth_state keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan auth_state row: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth_state rows: %w", err)
	}

	return keys, nil
}

func (r *SQLiteStore) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_state`)
	if err != nil {
		return fmt.Errorf("failed to clear auth_state: %w", err)
	}
	return nil
}
