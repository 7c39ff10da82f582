package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func (r *PostgresRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	query := `
		INSERT INTO admins (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		admin.Name, admin.Email, admin.Role, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at FROM admins
		WHERE email = $1
	`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.Role, &admin.PasswordHash, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at FROM admins
		WHERE id = $1
	`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.Role, &admin.PasswordHash, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Admin, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at FROM admins
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Admin
	for rows.Next() {
		admin := &models.Admin{}
		if err := rows.Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Role, &admin.PasswordHash, &admin.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
