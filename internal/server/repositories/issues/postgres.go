package issues

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

func (r *PostgresRepository) Create(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	query := `
		INSERT INTO issues (name, email, subject, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		issue.Name, issue.Email, issue.Subject, issue.Description).Scan(
		&issue.ID, &issue.Status, &issue.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return issue, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*models.Issue, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE ($1 = '' OR status = $1)`, f.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `
		SELECT id, name, email, subject, description, status, created_at FROM issues
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, f.Status, limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Issue
	for rows.Next() {
		i := &models.Issue{}
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Subject, &i.Description, &i.Status, &i.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		result = append(result, i)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return result, total, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE issues SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
