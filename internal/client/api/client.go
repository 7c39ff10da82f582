package api

import "context"

// Client is the back-office API surface the CLI drives. The concrete
// implementation is HTTPClient; tests substitute fakes.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context) (*Admin, error)
	Logout(ctx context.Context) error

	ListContacts(ctx context.Context, opts ListOptions) ([]Contact, error)
	UpdateContactStatus(ctx context.Context, id, status string) error
	DeleteContact(ctx context.Context, id string) error

	ListEnquiries(ctx context.Context, opts ListOptions) ([]Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id, status string) error
	DeleteEnquiry(ctx context.Context, id string) error

	ListIssues(ctx context.Context, opts ListOptions) ([]Issue, error)
	UpdateIssueStatus(ctx context.Context, id, status string) error
	DeleteIssue(ctx context.Context, id string) error

	ListGallery(ctx context.Context) ([]GalleryItem, error)
	CreateGalleryItem(ctx context.Context, title, category string) (*GalleryUpload, error)
	DeleteGalleryItem(ctx context.Context, id string) error

	VisitorSummary(ctx context.Context, days int) ([]VisitorDailyStat, error)

	ListAdmins(ctx context.Context) ([]Admin, error)
	CreateAdmin(ctx context.Context, name, email, role, password string) (*Admin, error)

	Settings(ctx context.Context) (map[string]string, error)
	PutSetting(ctx context.Context, key, value string) error
}
