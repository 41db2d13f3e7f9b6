package folder

import "context"

type Repository interface {
	List(context context.Context) ([]*Folder, error)
	Get(context context.Context, id int) (*Folder, error)
	Create(context context.Context, folder *Folder) error
	Update(context context.Context, folder *Folder) error
	Delete(context context.Context, id int) error

	// CountFiles reports how many files live inside the folder.
	CountFiles(context context.Context, id int) (int, error)
}
