package models

import "time"

// Setting is a site configuration entry editable from the dashboard
// (opening hours, phone numbers, banner text and the like).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
