package menu_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/menu"
	"github.com/minhngo/travia/internal/platform/apperr"
)

type fakeRepository struct {
	nextID int
	rows   map[int]*menu.Menu
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, rows: map[int]*menu.Menu{}}
}

func (f *fakeRepository) ListActive(_ context.Context) ([]*menu.Menu, error) {
	var out []*menu.Menu
	for _, m := range f.rows {
		if !m.IsDeleted {
			clone := *m
			clone.Children = nil
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListVisible(context context.Context) ([]*menu.Menu, error) {
	active, err := f.ListActive(context)
	if err != nil {
		return nil, err
	}
	var out []*menu.Menu
	for _, m := range active {
		if !m.IsHide {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepository) Get(_ context.Context, id int) (*menu.Menu, error) {
	m, ok := f.rows[id]
	if !ok || m.IsDeleted {
		return nil, apperr.NotFound("Menu")
	}
	clone := *m
	return &clone, nil
}

func (f *fakeRepository) Create(_ context.Context, m *menu.Menu) error {
	m.ID = f.nextID
	f.nextID++
	clone := *m
	f.rows[m.ID] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, m *menu.Menu) error {
	current, ok := f.rows[m.ID]
	if !ok || current.IsDeleted {
		return apperr.NotFound("Menu")
	}
	clone := *m
	f.rows[m.ID] = &clone
	return nil
}

func (f *fakeRepository) SoftDelete(_ context.Context, id int, newParentID *int) error {
	m, ok := f.rows[id]
	if !ok || m.IsDeleted {
		return apperr.NotFound("Menu")
	}
	for _, child := range f.rows {
		if child.ParentID != nil && *child.ParentID == id && !child.IsDeleted {
			child.ParentID = newParentID
		}
	}
	m.IsDeleted = true
	return nil
}

func (f *fakeRepository) Restore(_ context.Context, id int) error {
	m, ok := f.rows[id]
	if !ok || !m.IsDeleted {
		return apperr.NotFound("Menu")
	}
	m.IsDeleted = false
	return nil
}

func newService(t *testing.T) (*menu.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return menu.NewService(repo, logger), repo
}

func seed(t *testing.T, service *menu.Service, name string, parentID *int) *menu.Menu {
	t.Helper()
	m := &menu.Menu{Name: name, URL: "/" + name, ParentID: parentID}
	require.NoError(t, service.Create(context.Background(), m))
	return m
}

func TestCreate_RootSentinelMeansNoParent(t *testing.T) {
	service, repo := newService(t)

	sentinel := -1
	m := &menu.Menu{Name: "home", URL: "/", ParentID: &sentinel}
	require.NoError(t, service.Create(context.Background(), m))

	assert.Nil(t, repo.rows[m.ID].ParentID)
}

func TestUpdate_RejectsSelfParent(t *testing.T) {
	service, _ := newService(t)
	m := seed(t, service, "tours", nil)

	err := service.Update(context.Background(), m.ID, &menu.Menu{
		Name: "tours", URL: "/tours", ParentID: &m.ID,
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestUpdate_RejectsDescendantParent(t *testing.T) {
	service, _ := newService(t)
	root := seed(t, service, "root", nil)
	child := seed(t, service, "child", &root.ID)

	err := service.Update(context.Background(), root.ID, &menu.Menu{
		Name: "root", URL: "/root", ParentID: &child.ID,
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestDelete_PromotesChildrenAndRestoreKeepsThem(t *testing.T) {
	service, repo := newService(t)
	root := seed(t, service, "root", nil)
	middle := seed(t, service, "middle", &root.ID)
	leaf := seed(t, service, "leaf", &middle.ID)

	require.NoError(t, service.Delete(context.Background(), middle.ID))

	require.NotNil(t, repo.rows[leaf.ID].ParentID)
	assert.Equal(t, root.ID, *repo.rows[leaf.ID].ParentID)

	// Restoring the middle entry does not pull the leaf back under it.
	require.NoError(t, service.Restore(context.Background(), middle.ID))
	assert.Equal(t, root.ID, *repo.rows[leaf.ID].ParentID)
}

func TestListVisible_ExcludesHiddenEntries(t *testing.T) {
	service, _ := newService(t)
	seed(t, service, "home", nil)
	hidden := &menu.Menu{Name: "drafts", URL: "/drafts", IsHide: true}
	require.NoError(t, service.Create(context.Background(), hidden))

	visible, err := service.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "home", visible[0].Name)
}
