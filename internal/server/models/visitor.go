package models

import "time"

// VisitorEvent is one consented page view recorded by the public site.
// ConsentID identifies the visitor's consent grant, not the visitor.
type VisitorEvent struct {
	ID        string
	Page      string
	Referrer  string
	ConsentID string
	CreatedAt time.Time
}

// VisitorDailyStat is one day of aggregated traffic produced by the rollup
// job.
type VisitorDailyStat struct {
	Day     time.Time
	Visits  int64
	Uniques int64
}
