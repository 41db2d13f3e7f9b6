package folder

import "time"

// Folder groups uploaded files in the media library.
type Folder struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Global field names for validation
const (
	FieldName = "name"
)
