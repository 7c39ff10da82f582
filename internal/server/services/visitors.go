package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aquapure/backoffice/internal/server/models"
	"github.com/aquapure/backoffice/internal/server/repositories/visitors"
)

// VisitorService records consented page views and serves the aggregated
// traffic summary the dashboard charts.
type VisitorService struct {
	repo visitors.Repository
}

func NewVisitorService(repo visitors.Repository) *VisitorService {
	return &VisitorService{repo: repo}
}

// Track stores a single page view. Events without a consent identifier are
// dropped silently; tracking is best-effort and never blocks the public site.
func (s *VisitorService) Track(ctx context.Context, page, referrer, consentID string) error {
	if consentID == "" {
		return nil
	}
	event := &models.VisitorEvent{Page: page, Referrer: referrer, ConsentID: consentID}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("error recording visit: %v", err)
	}
	return nil
}

// Summary returns per-day stats for the trailing window.
func (s *VisitorService) Summary(ctx context.Context, days int) ([]*models.VisitorDailyStat, error) {
	result, err := s.repo.ListDaily(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("error listing visitor stats: %v", err)
	}
	return result, nil
}

// RollupDaily aggregates yesterday's and today's raw events. Covering both
// days keeps the job correct when it runs just after midnight.
func (s *VisitorService) RollupDaily(ctx context.Context) error {
	now := time.Now()
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		if err := s.repo.RollupDay(ctx, day); err != nil {
			return err
		}
	}
	return nil
}
