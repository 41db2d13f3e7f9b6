package library_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/media/library"
	"github.com/minhngo/travia/internal/platform/apperr"
)

type fakeRepository struct {
	nextID int
	rows   map[int]*library.Image
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, rows: map[int]*library.Image{}}
}

func (f *fakeRepository) ListByEntity(_ context.Context, entityType string, entityID int) ([]*library.Image, error) {
	var out []*library.Image
	for _, image := range f.rows {
		if image.EntityType == entityType && image.EntityID == entityID {
			clone := *image
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) Create(_ context.Context, image *library.Image) error {
	image.ID = f.nextID
	f.nextID++
	clone := *image
	f.rows[image.ID] = &clone
	return nil
}

func (f *fakeRepository) CreateBatch(context context.Context, images []*library.Image) error {
	for _, image := range images {
		if err := f.Create(context, image); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("Image")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepository) DeleteBatch(_ context.Context, ids []int) (int, error) {
	deleted := 0
	for _, id := range ids {
		if _, ok := f.rows[id]; ok {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRepository) DeleteByEntity(_ context.Context, entityType string, entityID int) (int, error) {
	deleted := 0
	for id, image := range f.rows {
		if image.EntityType == entityType && image.EntityID == entityID {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func newService(t *testing.T) (*library.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return library.NewService(repo, logger), repo
}

func TestAdd_RejectsUnknownEntityType(t *testing.T) {
	service, _ := newService(t)

	err := service.Add(context.Background(), &library.Image{
		EntityType: "blog_post",
		EntityID:   1,
		ImageURL:   "/uploads/a.jpg",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestAddBatch_AttachesAllImages(t *testing.T) {
	service, repo := newService(t)

	images := []*library.Image{
		{EntityType: library.EntityTourDetail, EntityID: 3, ImageURL: "/uploads/a.jpg"},
		{EntityType: library.EntityTourDetail, EntityID: 3, ImageURL: "/uploads/b.jpg"},
	}
	require.NoError(t, service.AddBatch(context.Background(), images))

	assert.Len(t, repo.rows, 2)
	listed, err := service.ListByEntity(context.Background(), library.EntityTourDetail, 3)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestAddBatch_RejectsEmptyInput(t *testing.T) {
	service, _ := newService(t)

	err := service.AddBatch(context.Background(), nil)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestDeleteByEntity_ClearsOnlyThatGallery(t *testing.T) {
	service, repo := newService(t)

	require.NoError(t, service.AddBatch(context.Background(), []*library.Image{
		{EntityType: library.EntityTourDetail, EntityID: 3, ImageURL: "/uploads/a.jpg"},
		{EntityType: library.EntityTourDetail, EntityID: 3, ImageURL: "/uploads/b.jpg"},
		{EntityType: library.EntityTourCategory, EntityID: 3, ImageURL: "/uploads/c.jpg"},
	}))

	deleted, err := service.DeleteByEntity(context.Background(), library.EntityTourDetail, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Len(t, repo.rows, 1)
}
