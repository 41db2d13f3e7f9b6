package file_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/media/file"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/constants"
)

type fakeRepository struct {
	nextID int
	rows   map[int]*file.File
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, rows: map[int]*file.File{}}
}

func (f *fakeRepository) List(_ context.Context, folderID *int) ([]*file.File, error) {
	var out []*file.File
	for _, row := range f.rows {
		if folderID != nil && (row.FolderID == nil || *row.FolderID != *folderID) {
			continue
		}
		clone := *row
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeRepository) Get(_ context.Context, id int) (*file.File, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("File")
	}
	clone := *row
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, row *file.File) error {
	row.ID = f.nextID
	f.nextID++
	clone := *row
	f.rows[row.ID] = &clone
	return nil
}

func (f *fakeRepository) Move(_ context.Context, id int, folderID *int) error {
	row, ok := f.rows[id]
	if !ok {
		return apperr.NotFound("File")
	}
	row.FolderID = folderID
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("File")
	}
	delete(f.rows, id)
	return nil
}

type fakeStorage struct {
	blobs map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: map[string][]byte{}}
}

func (s *fakeStorage) Save(name string, content io.Reader) (int64, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return 0, err
	}
	s.blobs[name] = data
	return int64(len(data)), nil
}

func (s *fakeStorage) Open(name string) (io.ReadCloser, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Remove(name string) error {
	delete(s.blobs, name)
	return nil
}

func newService(t *testing.T) (*file.Service, *fakeRepository, *fakeStorage) {
	t.Helper()
	repo := newFakeRepository()
	storage := newFakeStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return file.NewService(repo, storage, logger), repo, storage
}

func TestUpload_StoresBlobAndRecord(t *testing.T) {
	service, repo, storage := newService(t)

	uploaded, err := service.Upload(context.Background(),
		"brochure.pdf", "application/pdf", 5, strings.NewReader("hello"), nil)
	require.NoError(t, err)

	assert.Equal(t, "brochure.pdf", uploaded.OriginalName)
	assert.NotEqual(t, "brochure.pdf", uploaded.Name)
	assert.True(t, strings.HasSuffix(uploaded.Name, ".pdf"))
	assert.Equal(t, constants.UploadURLPrefix+uploaded.Name, uploaded.URL)
	assert.Equal(t, int64(5), uploaded.Size)

	assert.Len(t, repo.rows, 1)
	assert.Equal(t, []byte("hello"), storage.blobs[uploaded.Name])
}

func TestUpload_UniqueNamesForRepeatedFilenames(t *testing.T) {
	service, _, _ := newService(t)

	first, err := service.Upload(context.Background(),
		"photo.jpg", "image/jpeg", 1, strings.NewReader("a"), nil)
	require.NoError(t, err)

	second, err := service.Upload(context.Background(),
		"photo.jpg", "image/jpeg", 1, strings.NewReader("b"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Name, second.Name)
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	service, _, storage := newService(t)

	_, err := service.Upload(context.Background(),
		"huge.bin", "application/octet-stream", constants.MaxUploadSize+1,
		strings.NewReader(""), nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, storage.blobs)
}

func TestDelete_RemovesRecordAndBlob(t *testing.T) {
	service, repo, storage := newService(t)

	uploaded, err := service.Upload(context.Background(),
		"photo.jpg", "image/jpeg", 1, strings.NewReader("x"), nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), uploaded.ID))

	assert.Empty(t, repo.rows)
	assert.Empty(t, storage.blobs)
}

func TestDownload_StreamsStoredContent(t *testing.T) {
	service, _, _ := newService(t)

	uploaded, err := service.Upload(context.Background(),
		"notes.txt", "text/plain", 7, strings.NewReader("content"), nil)
	require.NoError(t, err)

	record, reader, err := service.Download(context.Background(), uploaded.ID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	assert.Equal(t, uploaded.ID, record.ID)
}

func TestMove_UpdatesFolder(t *testing.T) {
	service, _, _ := newService(t)

	uploaded, err := service.Upload(context.Background(),
		"photo.jpg", "image/jpeg", 1, strings.NewReader("x"), nil)
	require.NoError(t, err)

	folderID := 7
	moved, err := service.Move(context.Background(), uploaded.ID, &folderID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, 7, *moved.FolderID)
}
