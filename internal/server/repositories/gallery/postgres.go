package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/aquapure/backoffice/internal/dbx"
	"github.com/aquapure/backoffice/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.GalleryItem) (*models.GalleryItem, error) {
	query := `
		INSERT INTO gallery_items (title, category, storage_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Category, item.StorageKey).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	query := `SELECT id, title, category, storage_key, created_at FROM gallery_items WHERE id = $1`

	item := &models.GalleryItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Category, &item.StorageKey, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]*models.GalleryItem, error) {
	query := `
		SELECT id, title, category, storage_key, created_at FROM gallery_items
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.GalleryItem
	for rows.Next() {
		item := &models.GalleryItem{}
		if err := rows.Scan(&item.ID, &item.Title, &item.Category, &item.StorageKey, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
