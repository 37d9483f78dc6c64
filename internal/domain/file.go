package domain

import "time"

// File is the stored record for an uploaded banner image. Upload handling
// lives outside this service; meetups only reference file rows by id.
// swagger:model File
type File struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
