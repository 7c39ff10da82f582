package visitors

import (
	"context"
	"time"

	"github.com/aquapure/backoffice/internal/server/models"
)

type Repository interface {
	InsertEvent(ctx context.Context, event *models.VisitorEvent) error
	// RollupDay aggregates raw events for the given calendar day into
	// visitor_daily_stats. Running it twice for the same day is safe.
	RollupDay(ctx context.Context, day time.Time) error
	ListDaily(ctx context.Context, days int) ([]*models.VisitorDailyStat, error)
}
