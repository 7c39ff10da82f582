package gallery

import (
	"context"

	"github.com/aquapure/backoffice/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.GalleryItem) (*models.GalleryItem, error)
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	List(ctx context.Context, category string) ([]*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}
