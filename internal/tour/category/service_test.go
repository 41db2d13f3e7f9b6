package category_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/tour/category"
)

// fakeRepository mirrors the Postgres store semantics in memory, including
// the cross-reference cleanup performed during soft delete.
type fakeRepository struct {
	nextID int
	rows   map[int]*category.Category

	// tour cross-references
	mainRefs map[int]int   // tourID -> categoryID
	mappings map[int][]int // categoryID -> tourIDs
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:   1,
		rows:     map[int]*category.Category{},
		mainRefs: map[int]int{},
		mappings: map[int][]int{},
	}
}

func (f *fakeRepository) ListActive(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.rows {
		if !c.IsDeleted {
			clone := *c
			clone.Children = nil
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListDeleted(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.rows {
		if c.IsDeleted {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) Get(_ context.Context, id int) (*category.Category, error) {
	c, ok := f.rows[id]
	if !ok || c.IsDeleted {
		return nil, apperr.NotFound("Category")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) GetAny(_ context.Context, id int) (*category.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepository) ListChildren(_ context.Context, parentID int) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.rows {
		if !c.IsDeleted && c.ParentID != nil && *c.ParentID == parentID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string, excludeID int) (bool, error) {
	for _, c := range f.rows {
		if !c.IsDeleted && c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Create(_ context.Context, c *category.Category) error {
	c.ID = f.nextID
	f.nextID++
	clone := *c
	f.rows[c.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *category.Category) error {
	existing, ok := f.rows[c.ID]
	if !ok || existing.IsDeleted {
		return apperr.NotFound("Category")
	}
	clone := *c
	f.rows[c.ID] = &clone
	return nil
}

func (f *fakeRepository) SoftDeleteAndDetach(_ context.Context, id int, newParentID *int) error {
	c, ok := f.rows[id]
	if !ok || c.IsDeleted {
		return apperr.NotFound("Category")
	}
	c.IsDeleted = true
	for _, other := range f.rows {
		if !other.IsDeleted && other.ParentID != nil && *other.ParentID == id {
			other.ParentID = newParentID
		}
	}
	for tourID, categoryID := range f.mainRefs {
		if categoryID == id {
			delete(f.mainRefs, tourID)
		}
	}
	delete(f.mappings, id)
	return nil
}

func (f *fakeRepository) Restore(_ context.Context, id int) error {
	c, ok := f.rows[id]
	if !ok || !c.IsDeleted {
		return apperr.NotFound("Category")
	}
	c.IsDeleted = false
	return nil
}

func (f *fakeRepository) CountTourRefs(_ context.Context, id int) (int, error) {
	refs := len(f.mappings[id])
	for _, categoryID := range f.mainRefs {
		if categoryID == id {
			refs++
		}
	}
	return refs, nil
}

func (f *fakeRepository) PermanentDeleteAndReparent(_ context.Context, id int, newParentID *int) error {
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("Category")
	}
	for _, other := range f.rows {
		if other.ParentID != nil && *other.ParentID == id {
			other.ParentID = newParentID
		}
	}
	delete(f.rows, id)
	return nil
}

func newService(repo *fakeRepository) *category.Service {
	return category.NewService(repo, slog.Default())
}

func ptr(v int) *int { return &v }

func mustCreate(t *testing.T, service *category.Service, name, slug string, parentID *int) *category.Category {
	t.Helper()
	c := &category.Category{Name: name, Slug: slug, ParentID: parentID}
	require.NoError(t, service.Create(context.Background(), c))
	return c
}

func TestCreate_Defaults(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &category.Category{Name: "  Du Lịch Châu Á  ", Slug: "  Chau-A "}
	require.NoError(t, service.Create(context.Background(), input))

	assert.Equal(t, "Du Lịch Châu Á", input.Name)
	assert.Equal(t, "chau-a", input.Slug)
	assert.Equal(t, category.DefaultAvatar, input.Avatar)
}

func TestSoftDelete_HidesAndReparents(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	root := mustCreate(t, service, "Root", "root", nil)
	mid := mustCreate(t, service, "Mid", "mid", ptr(root.ID))
	leaf := mustCreate(t, service, "Leaf", "leaf", ptr(mid.ID))

	require.NoError(t, service.SoftDelete(ctx, mid.ID))

	// Hidden from active reads.
	_, err := service.Get(ctx, mid.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Children were promoted.
	got, err := service.Get(ctx, leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)

	// Visible in the deleted listing.
	deleted, err := service.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, mid.ID, deleted[0].ID)

	// Double delete is a 404.
	err = service.SoftDelete(ctx, mid.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestSoftDelete_FreesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	original := mustCreate(t, service, "Promo", "promo", nil)
	require.NoError(t, service.SoftDelete(ctx, original.ID))

	// The slug is reusable while the original is soft-deleted.
	replacement := &category.Category{Name: "Promo", Slug: "promo"}
	require.NoError(t, service.Create(ctx, replacement))
	assert.NotEqual(t, original.ID, replacement.ID)
}

/*
TestRestore_DoesNotResurrectTourRefs verifies the documented asymmetry: soft
delete strips tour references, restore only clears the flag.
*/
func TestRestore_DoesNotResurrectTourRefs(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	node := mustCreate(t, service, "Beach", "beach", nil)
	repo.mainRefs[100] = node.ID
	repo.mappings[node.ID] = []int{100, 101}

	require.NoError(t, service.SoftDelete(ctx, node.ID))
	require.NoError(t, service.Restore(ctx, node.ID))

	restored, err := service.Get(ctx, node.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	refs, err := repo.CountTourRefs(ctx, node.ID)
	require.NoError(t, err)
	assert.Zero(t, refs)
}

func TestRestore_ActiveCategoryNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	node := mustCreate(t, service, "Beach", "beach", nil)

	err := service.Restore(context.Background(), node.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestPermanentDelete_BlockedByTourRefs(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	node := mustCreate(t, service, "Beach", "beach", nil)
	repo.mappings[node.ID] = []int{7}

	err := service.PermanentDelete(ctx, node.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// After the reference is gone the purge succeeds, re-homing children.
	child := mustCreate(t, service, "Island", "island", ptr(node.ID))
	delete(repo.mappings, node.ID)
	require.NoError(t, service.PermanentDelete(ctx, node.ID))

	got, err := service.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestUpdate_CyclePrevented(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	a := mustCreate(t, service, "A", "a", nil)
	b := mustCreate(t, service, "B", "b", ptr(a.ID))
	c := mustCreate(t, service, "C", "c", ptr(b.ID))

	err := service.Update(ctx, a.ID, &category.Category{Name: "A", Slug: "a", ParentID: ptr(c.ID)})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestUpdate_SelfParentRejected(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	node := mustCreate(t, service, "A", "a", nil)

	err := service.Update(context.Background(), node.ID, &category.Category{Name: "A", Slug: "a", ParentID: ptr(node.ID)})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestBreadcrumb_SkipsNothingWithinBound(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	asia := mustCreate(t, service, "Asia", "asia", nil)
	vietnam := mustCreate(t, service, "Vietnam", "vietnam", ptr(asia.ID))
	halong := mustCreate(t, service, "Ha Long", "ha-long", ptr(vietnam.ID))

	crumbs, err := service.Breadcrumb(ctx, halong.ID)
	require.NoError(t, err)
	require.Len(t, crumbs, 3)
	assert.Equal(t, []int{asia.ID, vietnam.ID, halong.ID}, []int{crumbs[0].ID, crumbs[1].ID, crumbs[2].ID})
}
