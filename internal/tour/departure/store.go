package departure

import "context"

type Repository interface {
	List(context context.Context) ([]*Departure, error)
	Get(context context.Context, id int) (*Departure, error)
	Create(context context.Context, departure *Departure) error
	Update(context context.Context, departure *Departure) error

	// Delete removes the departure point and its tour junction rows in one
	// transaction.
	Delete(context context.Context, id int) error
}
