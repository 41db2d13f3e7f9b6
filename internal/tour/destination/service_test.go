package destination_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/tour/destination"
)

type fakeRepository struct {
	nextID int
	rows   map[int]*destination.Destination
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, rows: map[int]*destination.Destination{}}
}

func (f *fakeRepository) ListAll(_ context.Context) ([]*destination.Destination, error) {
	var out []*destination.Destination
	for _, d := range f.rows {
		clone := *d
		clone.Children = nil
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeRepository) Get(_ context.Context, id int) (*destination.Destination, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Destination")
	}
	clone := *d
	return &clone, nil
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string, excludeID int) (bool, error) {
	for _, d := range f.rows {
		if d.Slug == slug && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Create(_ context.Context, d *destination.Destination) error {
	d.ID = f.nextID
	f.nextID++
	clone := *d
	f.rows[d.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, d *destination.Destination) error {
	if _, ok := f.rows[d.ID]; !ok {
		return apperr.NotFound("Destination")
	}
	clone := *d
	f.rows[d.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteAndReparent(_ context.Context, id int, newParentID *int) error {
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("Destination")
	}
	for _, d := range f.rows {
		if d.ParentID != nil && *d.ParentID == id {
			d.ParentID = newParentID
		}
	}
	delete(f.rows, id)
	return nil
}

func ptr(v int) *int { return &v }

func TestCreate_SlugFromName(t *testing.T) {
	repo := newFakeRepository()
	service := destination.NewService(repo, slog.Default())

	input := &destination.Destination{Name: "Vịnh Hạ Long"}
	require.NoError(t, service.Create(context.Background(), input))
	assert.Equal(t, "vinh-ha-long", input.Slug)
}

func TestUpdate_CycleAndSelfParent(t *testing.T) {
	repo := newFakeRepository()
	service := destination.NewService(repo, slog.Default())
	ctx := context.Background()

	asia := &destination.Destination{Name: "Asia", Slug: "asia"}
	require.NoError(t, service.Create(ctx, asia))
	vietnam := &destination.Destination{Name: "Vietnam", Slug: "vietnam", ParentID: ptr(asia.ID)}
	require.NoError(t, service.Create(ctx, vietnam))

	err := service.Update(ctx, asia.ID, &destination.Destination{Name: "Asia", Slug: "asia", ParentID: ptr(vietnam.ID)})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	err = service.Update(ctx, asia.ID, &destination.Destination{Name: "Asia", Slug: "asia", ParentID: ptr(asia.ID)})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDelete_PromotesChildren(t *testing.T) {
	repo := newFakeRepository()
	service := destination.NewService(repo, slog.Default())
	ctx := context.Background()

	asia := &destination.Destination{Name: "Asia", Slug: "asia"}
	require.NoError(t, service.Create(ctx, asia))
	vietnam := &destination.Destination{Name: "Vietnam", Slug: "vietnam", ParentID: ptr(asia.ID)}
	require.NoError(t, service.Create(ctx, vietnam))
	halong := &destination.Destination{Name: "Ha Long", Slug: "ha-long", ParentID: ptr(vietnam.ID)}
	require.NoError(t, service.Create(ctx, halong))

	require.NoError(t, service.Delete(ctx, vietnam.ID))

	got, err := service.Get(ctx, halong.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, asia.ID, *got.ParentID)
}

func TestBreadcrumb(t *testing.T) {
	repo := newFakeRepository()
	service := destination.NewService(repo, slog.Default())
	ctx := context.Background()

	asia := &destination.Destination{Name: "Asia", Slug: "asia"}
	require.NoError(t, service.Create(ctx, asia))
	vietnam := &destination.Destination{Name: "Vietnam", Slug: "vietnam", ParentID: ptr(asia.ID)}
	require.NoError(t, service.Create(ctx, vietnam))

	crumbs, err := service.Breadcrumb(ctx, vietnam.ID)
	require.NoError(t, err)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Asia", crumbs[0].Name)
}
