package models

import "time"

// GalleryItem is a published photo of an installation or service job.
// StorageKey locates the image in the object store; URLs are presigned on
// the way out.
type GalleryItem struct {
	ID         string
	Title      string
	Category   string
	StorageKey string
	CreatedAt  time.Time
}
