package file

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File is an uploaded media asset.
//
// Name is the unique on-disk name; URL is the public path clients use.
type File struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	FolderID     *int      `json:"folder_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Storage abstracts the byte store behind the media library.
type Storage interface {
	// Save persists content under the given name and returns the bytes written.
	Save(name string, content io.Reader) (int64, error)
	// Open returns a reader over the stored content.
	Open(name string) (io.ReadCloser, error)
	// Remove deletes the stored content. Removing a missing file is not an error.
	Remove(name string) error
}

// UniqueName derives a collision-free storage name from an upload's original
// filename: the base name plus a short random suffix, extension preserved.
func UniqueName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s_%s%s", base, suffix, ext)
}
