package detail_test

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/tour/category"
	"github.com/minhngo/travia/internal/tour/detail"
)

type fakeCategories struct {
	rows map[int]*category.Category
}

func (f *fakeCategories) ListActive(_ context.Context) ([]*category.Category, error)  { return nil, nil }
func (f *fakeCategories) ListDeleted(_ context.Context) ([]*category.Category, error) { return nil, nil }

func (f *fakeCategories) Get(_ context.Context, id int) (*category.Category, error) {
	c, ok := f.rows[id]
	if !ok || c.IsDeleted {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (f *fakeCategories) GetAny(_ context.Context, id int) (*category.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (f *fakeCategories) SlugExists(_ context.Context, _ string, _ int) (bool, error) {
	return false, nil
}
func (f *fakeCategories) Create(_ context.Context, _ *category.Category) error        { return nil }
func (f *fakeCategories) Update(_ context.Context, _ *category.Category) error        { return nil }
func (f *fakeCategories) SoftDeleteAndDetach(_ context.Context, _ int, _ *int) error  { return nil }
func (f *fakeCategories) Restore(_ context.Context, _ int) error                      { return nil }
func (f *fakeCategories) CountTourRefs(_ context.Context, _ int) (int, error)         { return 0, nil }
func (f *fakeCategories) PermanentDeleteAndReparent(_ context.Context, _ int, _ *int) error {
	return nil
}

func (f *fakeCategories) ListChildren(_ context.Context, parentID int) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range f.rows {
		if !c.IsDeleted && c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeTours struct {
	nextID     int
	rows       map[int]*detail.Tour
	dates      map[int][]time.Time
	lastFilter detail.Filter
}

func (f *fakeTours) List(_ context.Context, filter detail.Filter, _, _ int) ([]*detail.Tour, int, error) {
	f.lastFilter = filter
	var out []*detail.Tour
	for _, t := range f.rows {
		if t.IsDeleted {
			continue
		}
		if filter.IsHot != nil && t.IsHot != *filter.IsHot {
			continue
		}
		if filter.IsHide != nil && t.IsHide != *filter.IsHide {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeTours) ListPublic(_ context.Context, _ string, _ detail.PublicFilter, _, _ int) ([]*detail.Tour, int, error) {
	return nil, 0, nil
}

func (f *fakeTours) Get(_ context.Context, id int) (*detail.Tour, error) {
	t, ok := f.rows[id]
	if !ok || t.IsDeleted {
		return nil, apperr.NotFound("Tour")
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTours) SlugExists(_ context.Context, slug string, excludeID int) (bool, error) {
	for _, t := range f.rows {
		if !t.IsDeleted && t.Slug == slug && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTours) CodeExists(_ context.Context, code string, excludeID int) (bool, error) {
	for _, t := range f.rows {
		if t.Code == code && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTours) Create(_ context.Context, t *detail.Tour) error {
	f.nextID++
	t.ID = f.nextID
	t.Code = detail.GenerateCode(t.ID)
	clone := *t
	f.rows[t.ID] = &clone
	return nil
}

func (f *fakeTours) Update(_ context.Context, t *detail.Tour) error {
	if existing, ok := f.rows[t.ID]; !ok || existing.IsDeleted {
		return apperr.NotFound("Tour")
	}
	clone := *t
	f.rows[t.ID] = &clone
	return nil
}

func (f *fakeTours) Delete(_ context.Context, id int) error {
	delete(f.rows, id)
	delete(f.dates, id)
	return nil
}

func (f *fakeTours) SoftDelete(_ context.Context, id int) error {
	t, ok := f.rows[id]
	if !ok || t.IsDeleted {
		return apperr.NotFound("Tour")
	}
	t.IsDeleted = true
	return nil
}

func (f *fakeTours) ToggleHot(_ context.Context, id int) (bool, error) {
	t, ok := f.rows[id]
	if !ok || t.IsDeleted {
		return false, apperr.NotFound("Tour")
	}
	t.IsHot = !t.IsHot
	return t.IsHot, nil
}

func (f *fakeTours) ToggleHide(_ context.Context, id int) (bool, error) {
	t, ok := f.rows[id]
	if !ok || t.IsDeleted {
		return false, apperr.NotFound("Tour")
	}
	t.IsHide = !t.IsHide
	return t.IsHide, nil
}

func (f *fakeTours) ListDates(_ context.Context, tourID int) ([]time.Time, error) {
	return f.dates[tourID], nil
}

func (f *fakeTours) AddDates(_ context.Context, tourID int, dates []time.Time) error {
	f.dates[tourID] = append(f.dates[tourID], dates...)
	return nil
}

func (f *fakeTours) DeleteDates(_ context.Context, tourID int) error {
	delete(f.dates, tourID)
	return nil
}

func ptr(v int) *int { return &v }

func setup() (*detail.Service, *fakeTours) {
	tours := &fakeTours{rows: map[int]*detail.Tour{}, dates: map[int][]time.Time{}}
	categories := &fakeCategories{rows: map[int]*category.Category{
		1: {ID: 1, Name: "Beach", Slug: "beach"},
	}}
	return detail.NewService(tours, categories, slog.Default()), tours
}

var codePattern = regexp.MustCompile(`^TOUR-[A-Z0-9]{6}-\d+$`)

func TestGenerateCode_Format(t *testing.T) {
	assert.Regexp(t, codePattern, detail.GenerateCode(17))
	assert.NotEqual(t, detail.GenerateCode(1), detail.GenerateCode(2))
}

func TestCreate_AssignsCodeAndSlug(t *testing.T) {
	service, _ := setup()

	tour := &detail.Tour{Name: "Hạ Long 3N2Đ", Price: 5_000_000, MainCategoryID: ptr(1)}
	require.NoError(t, service.Create(context.Background(), tour))

	assert.Regexp(t, codePattern, tour.Code)
	assert.Equal(t, "ha-long-3n2d", tour.Slug)
	assert.Equal(t, detail.DefaultAvatar, tour.Avatar)
}

func TestCreate_UnknownMainCategory(t *testing.T) {
	service, _ := setup()

	err := service.Create(context.Background(), &detail.Tour{Name: "Orphan", MainCategoryID: ptr(99)})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestCreate_NegativePriceRejected(t *testing.T) {
	service, _ := setup()

	err := service.Create(context.Background(), &detail.Tour{Name: "Cheap", Price: -1})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestUpdate_CodeIsImmutable(t *testing.T) {
	service, _ := setup()
	ctx := context.Background()

	tour := &detail.Tour{Name: "Sapa Trek", Price: 100}
	require.NoError(t, service.Create(ctx, tour))
	originalCode := tour.Code

	update := &detail.Tour{Name: "Sapa Trek Deluxe", Slug: "sapa-trek", Price: 200, Code: "TOUR-HACKED-1"}
	require.NoError(t, service.Update(ctx, tour.ID, update))
	assert.Equal(t, originalCode, update.Code)
}

func TestSoftDelete_HidesTour(t *testing.T) {
	service, _ := setup()
	ctx := context.Background()

	tour := &detail.Tour{Name: "Mekong Cruise"}
	require.NoError(t, service.Create(ctx, tour))
	require.NoError(t, service.SoftDelete(ctx, tour.ID))

	_, err := service.Get(ctx, tour.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestToggles(t *testing.T) {
	service, _ := setup()
	ctx := context.Background()

	tour := &detail.Tour{Name: "Phu Quoc"}
	require.NoError(t, service.Create(ctx, tour))

	isHot, err := service.ToggleHot(ctx, tour.ID)
	require.NoError(t, err)
	assert.True(t, isHot)

	isHot, err = service.ToggleHot(ctx, tour.ID)
	require.NoError(t, err)
	assert.False(t, isHot)

	isHide, err := service.ToggleHide(ctx, tour.ID)
	require.NoError(t, err)
	assert.True(t, isHide)
}

func TestDates(t *testing.T) {
	service, _ := setup()
	ctx := context.Background()

	tour := &detail.Tour{Name: "Da Nang"}
	require.NoError(t, service.Create(ctx, tour))

	err := service.AddDates(ctx, tour.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	departures := []time.Time{
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, service.AddDates(ctx, tour.ID, departures))

	dates, err := service.ListDates(ctx, tour.ID)
	require.NoError(t, err)
	assert.Len(t, dates, 2)

	require.NoError(t, service.DeleteDates(ctx, tour.ID))
	dates, err = service.ListDates(ctx, tour.ID)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestListPublic_RejectsBadSort(t *testing.T) {
	service, _ := setup()

	_, _, err := service.ListPublic(context.Background(), "beach", detail.PublicFilter{Sort: "alphabetical"}, 20, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestListByCategory_IncludesDirectChildren(t *testing.T) {
	tours := &fakeTours{rows: map[int]*detail.Tour{}, dates: map[int][]time.Time{}}
	categories := &fakeCategories{rows: map[int]*category.Category{
		1: {ID: 1, Name: "Asia", Slug: "asia"},
		2: {ID: 2, Name: "Japan", Slug: "japan", ParentID: ptr(1)},
		3: {ID: 3, Name: "Vietnam", Slug: "vietnam", ParentID: ptr(1)},
		4: {ID: 4, Name: "Hà Nội", Slug: "ha-noi", ParentID: ptr(3)},
	}}
	service := detail.NewService(tours, categories, slog.Default())

	_, _, err := service.ListByCategory(context.Background(), 1, detail.Filter{}, 20, 0)
	require.NoError(t, err)

	// The parent and its direct children are included; grandchildren are not.
	assert.ElementsMatch(t, []int{1, 2, 3}, tours.lastFilter.CategoryIDs)
}

func TestListByCategory_UnknownCategory(t *testing.T) {
	service, _ := setup()

	_, _, err := service.ListByCategory(context.Background(), 42, detail.Filter{}, 20, 0)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
