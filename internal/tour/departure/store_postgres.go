package departure

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

func (repository *PostgresRepository) List(context context.Context) ([]*Departure, error) {
	const query = `SELECT id, name FROM tour.departurepoint ORDER BY name ASC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_departures")
	}
	defer rows.Close()

	var departures []*Departure
	for rows.Next() {
		departure := &Departure{}
		if err := rows.Scan(&departure.ID, &departure.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_departure")
		}
		departures = append(departures, departure)
	}
	return departures, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Departure, error) {
	const query = `SELECT id, name FROM tour.departurepoint WHERE id = $1`

	departure := &Departure{}
	if err := repository.db.QueryRow(context, query, id).Scan(&departure.ID, &departure.Name); err != nil {
		return nil, dberr.Wrap(err, "get_departure")
	}
	return departure, nil
}

func (repository *PostgresRepository) Create(context context.Context, departure *Departure) error {
	const query = `INSERT INTO tour.departurepoint (name) VALUES ($1) RETURNING id`

	err := repository.db.QueryRow(context, query, departure.Name).Scan(&departure.ID)
	return dberr.Wrap(err, "create_departure")
}

func (repository *PostgresRepository) Update(context context.Context, departure *Departure) error {
	result, err := repository.db.Exec(context,
		`UPDATE tour.departurepoint SET name = $2 WHERE id = $1`, departure.ID, departure.Name)
	if err != nil {
		return dberr.Wrap(err, "update_departure")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes the departure point and its tour junction rows atomically.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_departure_tx")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		`DELETE FROM tour.tourdeparture WHERE departureid = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_departure_junctions")
	}

	result, err := transaction.Exec(context, `DELETE FROM tour.departurepoint WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_departure")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}
