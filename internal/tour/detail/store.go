package detail

import (
	"context"
	"time"
)

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Tour, int, error)
	Get(context context.Context, id int) (*Tour, error)
	SlugExists(context context.Context, slug string, excludeID int) (bool, error)
	CodeExists(context context.Context, code string, excludeID int) (bool, error)

	// Create inserts the tour, assigns its generated code and writes all
	// junction rows in one transaction.
	Create(context context.Context, tour *Tour) error
	// Update saves tour fields and rewrites the junction sets in one transaction.
	Update(context context.Context, tour *Tour) error
	// Delete hard-removes the tour, its junctions and its dates in one transaction.
	Delete(context context.Context, id int) error

	SoftDelete(context context.Context, id int) error
	ToggleHot(context context.Context, id int) (bool, error)
	ToggleHide(context context.Context, id int) (bool, error)

	// ListPublic returns visible tours under a category slug (the category
	// itself or its direct children), narrowed by the public filter.
	ListPublic(context context.Context, categorySlug string, filter PublicFilter, limit, offset int) ([]*Tour, int, error)

	ListDates(context context.Context, tourID int) ([]time.Time, error)
	AddDates(context context.Context, tourID int, dates []time.Time) error
	DeleteDates(context context.Context, tourID int) error
}
