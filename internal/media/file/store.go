package file

import "context"

type Repository interface {
	List(context context.Context, folderID *int) ([]*File, error)
	Get(context context.Context, id int) (*File, error)
	Create(context context.Context, file *File) error
	Move(context context.Context, id int, folderID *int) error
	Delete(context context.Context, id int) error
}
