package library

import "context"

type Repository interface {
	ListByEntity(context context.Context, entityType string, entityID int) ([]*Image, error)
	Create(context context.Context, image *Image) error
	// CreateBatch inserts every image in one transaction.
	CreateBatch(context context.Context, images []*Image) error
	Delete(context context.Context, id int) error
	// DeleteBatch removes the given images in one transaction and returns the
	// number of rows removed.
	DeleteBatch(context context.Context, ids []int) (int, error)
	// DeleteByEntity removes every image attached to the entity and returns
	// the number of rows removed.
	DeleteByEntity(context context.Context, entityType string, entityID int) (int, error)
}
