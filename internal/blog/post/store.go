package post

import "context"

type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)
	Get(context context.Context, id int) (*Post, error)
	SlugExists(context context.Context, slug string, excludeID int) (bool, error)

	// Create inserts the post and its category junction rows in one transaction.
	Create(context context.Context, post *Post) error
	// Update saves the post and rewrites its junction rows in one transaction.
	Update(context context.Context, post *Post) error
	// Delete removes the post and its junction rows in one transaction.
	Delete(context context.Context, id int) error
}
