package category_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/blog/category"
	"github.com/minhngo/travia/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository with the same semantics as the
// Postgres store, including transactional delete-and-reparent.
type fakeRepository struct {
	nextID int
	rows   map[int]*category.Category
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, rows: map[int]*category.Category{}}
}

func (f *fakeRepository) ListAll(_ context.Context) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.rows {
		clone := *c
		clone.Children = nil
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeRepository) Get(_ context.Context, id int) (*category.Category, error) {
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
		if c.ParentID != nil && *c.ParentID == parentID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) SlugExists(_ context.Context, slug string, excludeID int) (bool, error) {
	for _, c := range f.rows {
		if c.Slug == slug && c.ID != excludeID {
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
	if _, ok := f.rows[c.ID]; !ok {
		return apperr.NotFound("Category")
	}
	clone := *c
	f.rows[c.ID] = &clone
	return nil
}

func (f *fakeRepository) DeleteAndReparent(_ context.Context, id int, newParentID *int) error {
	if _, ok := f.rows[id]; !ok {
		return apperr.NotFound("Category")
	}
	for _, c := range f.rows {
		if c.ParentID != nil && *c.ParentID == id {
			c.ParentID = newParentID
		}
	}
	delete(f.rows, id)
	return nil
}

func newService(repo *fakeRepository) *category.Service {
	return category.NewService(repo, slog.Default())
}

func ptr(v int) *int { return &v }

func TestCreate_GeneratesSlugFromTitle(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &category.Category{Title: "Tin Tức Du Lịch"}
	require.NoError(t, service.Create(context.Background(), input))

	assert.Equal(t, "tin-tuc-du-lich", input.Slug)
	assert.NotZero(t, input.ID)
}

func TestCreate_RootSentinel(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &category.Category{Title: "News", Slug: "news", ParentID: ptr(-1)}
	require.NoError(t, service.Create(context.Background(), input))

	assert.Nil(t, input.ParentID)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	require.NoError(t, service.Create(ctx, &category.Category{Title: "News", Slug: "news"}))

	err := service.Create(ctx, &category.Category{Title: "News Again", Slug: "News "})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestCreate_MissingParentNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	err := service.Create(context.Background(), &category.Category{Title: "Orphan", Slug: "orphan", ParentID: ptr(42)})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestUpdate_SelfParentRejected(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	node := &category.Category{Title: "News", Slug: "news"}
	require.NoError(t, service.Create(ctx, node))

	err := service.Update(ctx, node.ID, &category.Category{Title: "News", Slug: "news", ParentID: ptr(node.ID)})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestUpdate_CyclePrevented builds the chain A ← B ← C and attempts to move A
underneath C, which would close a cycle.
*/
func TestUpdate_CyclePrevented(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	a := &category.Category{Title: "A", Slug: "a"}
	require.NoError(t, service.Create(ctx, a))
	b := &category.Category{Title: "B", Slug: "b", ParentID: ptr(a.ID)}
	require.NoError(t, service.Create(ctx, b))
	c := &category.Category{Title: "C", Slug: "c", ParentID: ptr(b.ID)}
	require.NoError(t, service.Create(ctx, c))

	err := service.Update(ctx, a.ID, &category.Category{Title: "A", Slug: "a", ParentID: ptr(c.ID)})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Moving C under A stays legal.
	require.NoError(t, service.Update(ctx, c.ID, &category.Category{Title: "C", Slug: "c", ParentID: ptr(a.ID)}))
}

func TestDelete_ReparentsChildren(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	root := &category.Category{Title: "Root", Slug: "root"}
	require.NoError(t, service.Create(ctx, root))
	mid := &category.Category{Title: "Mid", Slug: "mid", ParentID: ptr(root.ID)}
	require.NoError(t, service.Create(ctx, mid))
	leaf := &category.Category{Title: "Leaf", Slug: "leaf", ParentID: ptr(mid.ID)}
	require.NoError(t, service.Create(ctx, leaf))

	require.NoError(t, service.Delete(ctx, mid.ID))

	got, err := service.Get(ctx, leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)
}

func TestDelete_FreesSlugForReuse(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	first := &category.Category{Title: "Promo", Slug: "promo"}
	require.NoError(t, service.Create(ctx, first))
	require.NoError(t, service.Delete(ctx, first.ID))

	second := &category.Category{Title: "Promo", Slug: "promo"}
	require.NoError(t, service.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBreadcrumb_RootFirst(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	root := &category.Category{Title: "Travel", Slug: "travel"}
	require.NoError(t, service.Create(ctx, root))
	child := &category.Category{Title: "Guides", Slug: "guides", ParentID: ptr(root.ID)}
	require.NoError(t, service.Create(ctx, child))

	crumbs, err := service.Breadcrumb(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Travel", crumbs[0].Name)
	assert.Equal(t, "Guides", crumbs[1].Name)
}

func TestListTree_NestsChildren(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	root := &category.Category{Title: "Travel", Slug: "travel"}
	require.NoError(t, service.Create(ctx, root))
	child := &category.Category{Title: "Guides", Slug: "guides", ParentID: ptr(root.ID)}
	require.NoError(t, service.Create(ctx, child))

	roots, err := service.ListTree(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Guides", roots[0].Children[0].Title)
}
