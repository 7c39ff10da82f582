package api

import "time"

// Admin is the authenticated back-office user profile.
type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult is the payload of a successful login response. Admin and
// AccessToken must both be present for the login to count as valid.
type LoginResult struct {
	Admin       *Admin `json:"admin"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   string `json:"expiresIn,omitempty"`
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Enquiry is a request for an RO part from the public catalog.
type Enquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Part      string    `json:"part"`
	Quantity  int       `json:"quantity"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Issue is a service problem reported by a customer.
type Issue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GalleryItem is a published photo of an installation or service job.
// ImageURL is a presigned, time-limited download link.
type GalleryItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GalleryUpload pairs a freshly created gallery item with a presigned PUT
// URL the caller uploads the image to.
type GalleryUpload struct {
	Item      GalleryItem `json:"item"`
	UploadURL string      `json:"uploadUrl"`
}

// VisitorDailyStat is one day of aggregated site traffic.
type VisitorDailyStat struct {
	Day     string `json:"day"`
	Visits  int64  `json:"visits"`
	Uniques int64  `json:"uniques"`
}

// ListOptions narrows admin list endpoints. Zero values mean no filter and
// the server's default page size.
type ListOptions struct {
	Status  string
	Page    int
	PerPage int
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResult struct {
	Admin *Admin `json:"admin"`
}

type listResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
