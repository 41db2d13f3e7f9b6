package category

import "context"

type Repository interface {
	ListAll(context context.Context) ([]*Category, error)
	Get(context context.Context, id int) (*Category, error)
	ListChildren(context context.Context, parentID int) ([]*Category, error)
	SlugExists(context context.Context, slug string, excludeID int) (bool, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error

	// DeleteAndReparent removes the category in one transaction: its children
	// are re-attached to newParentID, blog posts referencing it are detached,
	// then the row itself is deleted.
	DeleteAndReparent(context context.Context, id int, newParentID *int) error
}
