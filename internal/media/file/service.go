package file

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/constants"
)

type Service struct {
	repo    Repository
	storage Storage
	logger  *slog.Logger
}

func NewService(repo Repository, storage Storage, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storage,
		logger:  logger,
	}
}

func (service *Service) List(context context.Context, folderID *int) ([]*File, error) {
	return service.repo.List(context, folderID)
}

func (service *Service) Get(context context.Context, id int) (*File, error) {
	return service.repo.Get(context, id)
}

/*
Upload stores an uploaded file and records it in the library.

The file is written to storage under a unique name derived from the
original filename, so repeated uploads of the same file never clash.
The declared size is checked against the upload cap before any bytes
are written.

Parameters:
  - originalName: the filename as sent by the client
  - contentType: the MIME type as sent by the client
  - size: the declared content length in bytes
  - content: the upload body
  - folderID: optional library folder to place the file in

Returns the recorded file, including its public URL.
*/
func (service *Service) Upload(context context.Context, originalName, contentType string, size int64, content io.Reader, folderID *int) (*File, error) {
	originalName = strings.TrimSpace(originalName)
	if originalName == "" {
		return nil, apperr.ValidationError("File name is required")
	}
	if size > constants.MaxUploadSize {
		return nil, apperr.ValidationError("File exceeds the upload size limit")
	}

	name := UniqueName(originalName)
	written, err := service.storage.Save(name, io.LimitReader(content, constants.MaxUploadSize))
	if err != nil {
		return nil, apperr.Internal(err)
	}

	file := &File{
		Name:         name,
		OriginalName: originalName,
		URL:          constants.UploadURLPrefix + name,
		Size:         written,
		ContentType:  contentType,
		FolderID:     folderID,
	}
	if err := service.repo.Create(context, file); err != nil {
		// Keep storage consistent with the library: drop the orphaned blob.
		_ = service.storage.Remove(name)
		return nil, err
	}

	service.logger.Info("file_uploaded",
		slog.Int("file_id", file.ID),
		slog.String("name", file.Name),
		slog.Int64("size", file.Size))
	return file, nil
}

// Move places a file in a different folder, or at the library root when
// folderID is nil.
func (service *Service) Move(context context.Context, id int, folderID *int) (*File, error) {
	if err := service.repo.Move(context, id, folderID); err != nil {
		return nil, err
	}

	service.logger.Info("file_moved", slog.Int("file_id", id))
	return service.repo.Get(context, id)
}

// Delete removes the library record and the stored content. The record is
// removed first so a storage failure never leaves a dangling row.
func (service *Service) Delete(context context.Context, id int) error {
	file, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	if err := service.storage.Remove(file.Name); err != nil {
		service.logger.Error("file_blob_remove_failed",
			slog.Int("file_id", id), slog.String("error", err.Error()))
	}

	service.logger.Warn("file_deleted", slog.Int("file_id", id))
	return nil
}

// Download returns the file record along with a reader over its content.
// The caller owns the reader and must close it.
func (service *Service) Download(context context.Context, id int) (*File, io.ReadCloser, error) {
	file, err := service.repo.Get(context, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := service.storage.Open(file.Name)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return file, reader, nil
}
