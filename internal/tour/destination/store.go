package destination

import "context"

type Repository interface {
	ListAll(context context.Context) ([]*Destination, error)
	Get(context context.Context, id int) (*Destination, error)
	SlugExists(context context.Context, slug string, excludeID int) (bool, error)
	Create(context context.Context, destination *Destination) error
	Update(context context.Context, destination *Destination) error

	// DeleteAndReparent removes the destination in one transaction: children
	// are re-attached to newParentID and tour junction rows are removed.
	DeleteAndReparent(context context.Context, id int, newParentID *int) error
}
