package post_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/blog/category"
	"github.com/minhngo/travia/internal/blog/post"
	"github.com/minhngo/travia/internal/platform/apperr"
)

type fakeCategories struct {
	rows map[int]*category.Category
}

func (f *fakeCategories) ListAll(_ context.Context) ([]*category.Category, error) { return nil, nil }

func (f *fakeCategories) Get(_ context.Context, id int) (*category.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (f *fakeCategories) ListChildren(_ context.Context, parentID int) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.rows {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) SlugExists(_ context.Context, _ string, _ int) (bool, error) {
	return false, nil
}
func (f *fakeCategories) Create(_ context.Context, _ *category.Category) error { return nil }
func (f *fakeCategories) Update(_ context.Context, _ *category.Category) error { return nil }
func (f *fakeCategories) DeleteAndReparent(_ context.Context, _ int, _ *int) error {
	return nil
}

type fakePosts struct {
	nextID int
	rows   map[int]*post.Post
}

func (f *fakePosts) List(_ context.Context, filter post.Filter, limit, offset int) ([]*post.Post, int, error) {
	var out []*post.Post
	for _, p := range f.rows {
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !attached(p, filter.CategoryIDs) {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func attached(p *post.Post, categoryIDs []int) bool {
	for _, want := range categoryIDs {
		if p.MainCategoryID != nil && *p.MainCategoryID == want {
			return true
		}
		for _, have := range p.CategoryIDs {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (f *fakePosts) Get(_ context.Context, id int) (*post.Post, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return p, nil
}

func (f *fakePosts) SlugExists(_ context.Context, slug string, excludeID int) (bool, error) {
	for _, p := range f.rows {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePosts) Create(_ context.Context, p *post.Post) error {
	f.nextID++
	p.ID = f.nextID
	clone := *p
	f.rows[p.ID] = &clone
	return nil
}

func (f *fakePosts) Update(_ context.Context, p *post.Post) error {
	clone := *p
	f.rows[p.ID] = &clone
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id int) error {
	delete(f.rows, id)
	return nil
}

func ptr(v int) *int { return &v }

func setup() (*post.Service, *fakePosts, *fakeCategories) {
	posts := &fakePosts{rows: map[int]*post.Post{}}
	categories := &fakeCategories{rows: map[int]*category.Category{
		1: {ID: 1, Title: "Travel", Slug: "travel"},
		2: {ID: 2, Title: "Guides", Slug: "guides", ParentID: ptr(1)},
	}}
	return post.NewService(posts, categories, slog.Default()), posts, categories
}

func TestCreate_SlugGeneratedAndUnique(t *testing.T) {
	service, _, _ := setup()
	ctx := context.Background()

	first := &post.Post{Title: "Cẩm Nang Du Lịch"}
	require.NoError(t, service.Create(ctx, first))
	assert.Equal(t, "cam-nang-du-lich", first.Slug)

	duplicate := &post.Post{Title: "Other", Slug: "cam-nang-du-lich"}
	err := service.Create(ctx, duplicate)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestCreate_UnknownCategoryRejected(t *testing.T) {
	service, _, _ := setup()

	err := service.Create(context.Background(), &post.Post{Title: "Post", MainCategoryID: ptr(99)})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = service.Create(context.Background(), &post.Post{Title: "Post", CategoryIDs: []int{99}})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestListByCategory_IncludesDirectChildren(t *testing.T) {
	service, _, _ := setup()
	ctx := context.Background()

	inParent := &post.Post{Title: "Parent post", MainCategoryID: ptr(1)}
	require.NoError(t, service.Create(ctx, inParent))
	inChild := &post.Post{Title: "Child post", CategoryIDs: []int{2}}
	require.NoError(t, service.Create(ctx, inChild))
	elsewhere := &post.Post{Title: "Unrelated"}
	require.NoError(t, service.Create(ctx, elsewhere))

	posts, total, err := service.ListByCategory(ctx, 1, nil, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, posts, 2)
}

func TestUpdate_KeepsOwnSlug(t *testing.T) {
	service, _, _ := setup()
	ctx := context.Background()

	p := &post.Post{Title: "Hello", Slug: "hello"}
	require.NoError(t, service.Create(ctx, p))

	// Re-saving with the same slug must not collide with itself.
	require.NoError(t, service.Update(ctx, p.ID, &post.Post{Title: "Hello again", Slug: "hello"}))
}
