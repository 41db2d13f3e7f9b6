package destination

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Destination, error) {
	const query = `
		SELECT id, name, slug, parentid
		FROM tour.destination
		ORDER BY name ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_destinations")
	}
	defer rows.Close()

	var destinations []*Destination
	for rows.Next() {
		destination := &Destination{}
		if err := rows.Scan(&destination.ID, &destination.Name, &destination.Slug, &destination.ParentID); err != nil {
			return nil, dberr.Wrap(err, "scan_destination")
		}
		destinations = append(destinations, destination)
	}
	return destinations, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Destination, error) {
	const query = `
		SELECT id, name, slug, parentid
		FROM tour.destination
		WHERE id = $1
	`
	destination := &Destination{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&destination.ID, &destination.Name, &destination.Slug, &destination.ParentID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_destination")
	}
	return destination, nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tour.destination WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_destination_slug")
	}
	return exists, nil
}

func (repository *PostgresRepository) Create(context context.Context, destination *Destination) error {
	const query = `
		INSERT INTO tour.destination (name, slug, parentid)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := repository.db.QueryRow(context, query,
		destination.Name, destination.Slug, destination.ParentID,
	).Scan(&destination.ID)

	return dberr.Wrap(err, "create_destination")
}

func (repository *PostgresRepository) Update(context context.Context, destination *Destination) error {
	const query = `
		UPDATE tour.destination
		SET name = $2, slug = $3, parentid = $4
		WHERE id = $1
	`
	result, err := repository.db.Exec(context, query,
		destination.ID, destination.Name, destination.Slug, destination.ParentID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_destination")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
DeleteAndReparent removes a destination atomically.

Description: Executes within one transaction.
1. Children are re-attached to newParentID.
2. Junction rows in tour.tourdestination are removed.
3. The destination row itself is deleted.

Parameters:
  - context: context.Context
  - id: int
  - newParentID: *int (nil promotes children to root level)

Returns:
  - error: dberr.ErrNotFound if the row does not exist, transactional failures otherwise
*/
func (repository *PostgresRepository) DeleteAndReparent(context context.Context, id int, newParentID *int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_destination_tx")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		`UPDATE tour.destination SET parentid = $2 WHERE parentid = $1`, id, newParentID); err != nil {
		return dberr.Wrap(err, "reparent_destination_children")
	}

	if _, err := transaction.Exec(context,
		`DELETE FROM tour.tourdestination WHERE destinationid = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_destination_junctions")
	}

	result, err := transaction.Exec(context, `DELETE FROM tour.destination WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_destination")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}
