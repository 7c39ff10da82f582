package admins

import (
	"context"

	"github.com/aquapure/backoffice/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	List(ctx context.Context) ([]*models.Admin, error)
}
