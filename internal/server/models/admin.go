// Package models defines the persistent entities of the back-office.
package models

import "time"

// Admin is a back-office user. PasswordHash is a bcrypt hash and never
// leaves the server.
type Admin struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}
