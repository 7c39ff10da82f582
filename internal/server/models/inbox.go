package models

import "time"

// Inbox statuses shared by contacts, enquiries and issues.
const (
	StatusNew      = "new"
	StatusSeen     = "seen"
	StatusResolved = "resolved"
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	Status    string
	CreatedAt time.Time
}

// Enquiry is a request for an RO part from the public catalog.
type Enquiry struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Part      string
	Quantity  int
	Message   string
	Status    string
	CreatedAt time.Time
}

// Issue is a service problem reported by a customer.
type Issue struct {
	ID          string
	Name        string
	Email       string
	Subject     string
	Description string
	Status      string
	CreatedAt   time.Time
}
