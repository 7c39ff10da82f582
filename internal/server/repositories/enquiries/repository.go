package enquiries

import (
	"context"

	"github.com/aquapure/backoffice/internal/server/models"
)

// Filter narrows List. Zero values mean no status filter and the default
// page size.
type Filter struct {
	Status string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) (*models.Enquiry, error)
	List(ctx context.Context, f Filter) ([]*models.Enquiry, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
