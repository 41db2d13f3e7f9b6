package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage stores uploads on the local filesystem under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("file: failed to create upload directory %s: %w", baseDir, err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (storage *LocalStorage) Save(name string, content io.Reader) (int64, error) {
	target, err := os.Create(filepath.Join(storage.baseDir, filepath.Base(name)))
	if err != nil {
		return 0, fmt.Errorf("file: failed to create %s: %w", name, err)
	}
	defer target.Close()

	written, err := io.Copy(target, content)
	if err != nil {
		return 0, fmt.Errorf("file: failed to write %s: %w", name, err)
	}
	return written, nil
}

func (storage *LocalStorage) Open(name string) (io.ReadCloser, error) {
	reader, err := os.Open(filepath.Join(storage.baseDir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("file: failed to open %s: %w", name, err)
	}
	return reader, nil
}

func (storage *LocalStorage) Remove(name string) error {
	err := os.Remove(filepath.Join(storage.baseDir, filepath.Base(name)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file: failed to remove %s: %w", name, err)
	}
	return nil
}
