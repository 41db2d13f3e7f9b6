package menu

import "context"

type Repository interface {
	// ListActive returns non-deleted entries ordered by index number.
	ListActive(context context.Context) ([]*Menu, error)
	// ListVisible returns the public navigation: non-deleted, non-hidden.
	ListVisible(context context.Context) ([]*Menu, error)
	Get(context context.Context, id int) (*Menu, error)
	Create(context context.Context, menu *Menu) error
	Update(context context.Context, menu *Menu) error
	// SoftDelete marks the entry deleted and re-attaches its children to
	// newParentID in one transaction.
	SoftDelete(context context.Context, id int, newParentID *int) error
	Restore(context context.Context, id int) error
}
