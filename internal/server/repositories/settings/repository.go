package settings

import (
	"context"

	"github.com/aquapure/backoffice/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Put(ctx context.Context, key, value string) (*models.Setting, error)
	List(ctx context.Context) ([]*models.Setting, error)
}
