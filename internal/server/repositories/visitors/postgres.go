package visitors

import (
	"context"
	"fmt"
	"time"

	"github.com/aquapure/backoffice/internal/dbx"
	"github.com/aquapure/backoffice/internal/server/models"
)

const defaultDays = 30

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertEvent(ctx context.Context, event *models.VisitorEvent) error {
	query := `
		INSERT INTO visitor_events (page, referrer, consent_id)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, event.Page, event.Referrer, event.ConsentID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RollupDay(ctx context.Context, day time.Time) error {
	query := `
		INSERT INTO visitor_daily_stats (day, visits, uniques)
		SELECT $1::date, COUNT(*), COUNT(DISTINCT consent_id)
		FROM visitor_events
		WHERE created_at >= $1::date AND created_at < $1::date + INTERVAL '1 day'
		ON CONFLICT (day) DO UPDATE SET
			visits = EXCLUDED.visits,
			uniques = EXCLUDED.uniques
	`

	if _, err := r.db.ExecContext(ctx, query, day.Format("2006-01-02")); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListDaily(ctx context.Context, days int) ([]*models.VisitorDailyStat, error) {
	if days <= 0 {
		days = defaultDays
	}

	query := `
		SELECT day, visits, uniques FROM visitor_daily_stats
		WHERE day >= CURRENT_DATE - $1::int
		ORDER BY day DESC
	`

	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.VisitorDailyStat
	for rows.Next() {
		s := &models.VisitorDailyStat{}
		if err := rows.Scan(&s.Day, &s.Visits, &s.Uniques); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
