package enquiries

import (
	"context"
	"fmt"

	"github.com/aquapure/backoffice/internal/common"
	"github.com/aquapure/backoffice/internal/dbx"
	"github.com/aquapure/backoffice/internal/server/models"
)

const defaultLimit = 50

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error) {
	query := `
		INSERT INTO enquiries (name, email, phone, part, quantity, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Part, enquiry.Quantity, enquiry.Message).Scan(
		&enquiry.ID, &enquiry.Status, &enquiry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return enquiry, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Enquiry, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enquiries WHERE ($1 = '' OR status = $1)`, f.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `
		SELECT id, name, email, phone, part, quantity, message, status, created_at FROM enquiries
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, f.Status, limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Enquiry
	for rows.Next() {
		e := &models.Enquiry{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Part, &e.Quantity, &e.Message, &e.Status, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE enquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
