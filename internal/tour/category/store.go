package category

import "context"

type Repository interface {
	ListActive(context context.Context) ([]*Category, error)
	ListDeleted(context context.Context) ([]*Category, error)

	// Get returns an active (not soft-deleted) category.
	Get(context context.Context, id int) (*Category, error)
	// GetAny returns a category regardless of its deletion flag.
	GetAny(context context.Context, id int) (*Category, error)

	// ListChildren returns the active direct children of a category.
	ListChildren(context context.Context, parentID int) ([]*Category, error)

	// SlugExists checks uniqueness among active categories only: a
	// soft-deleted row never blocks slug reuse.
	SlugExists(context context.Context, slug string, excludeID int) (bool, error)

	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error

	// SoftDeleteAndDetach flags the category deleted in one transaction:
	// children are re-attached to newParentID, tours using the node as main
	// category are detached, and its tour mappings are removed.
	SoftDeleteAndDetach(context context.Context, id int, newParentID *int) error

	// Restore clears the deletion flag. Cross-references removed by
	// SoftDeleteAndDetach are not resurrected.
	Restore(context context.Context, id int) error

	// CountTourRefs reports how many tours still reference the category,
	// either as main category or through a mapping row.
	CountTourRefs(context context.Context, id int) (int, error)

	// PermanentDeleteAndReparent removes the row for good, re-attaching any
	// children to newParentID in the same transaction.
	PermanentDeleteAndReparent(context context.Context, id int, newParentID *int) error
}
