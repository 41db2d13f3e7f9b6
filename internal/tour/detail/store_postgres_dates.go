package detail

import (
	"context"
	"time"

	"github.com/minhngo/travia/internal/platform/dberr"
)

// # Departure Dates

func (repository *PostgresRepository) ListDates(context context.Context, tourID int) ([]time.Time, error) {
	const query = `SELECT startdate FROM tour.tourdate WHERE tourid = $1 ORDER BY startdate ASC`

	rows, err := repository.db.Query(context, query, tourID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tour_dates")
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, dberr.Wrap(err, "scan_tour_date")
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// AddDates appends departure dates in one transaction. Duplicate dates for
// the same tour are ignored.
func (repository *PostgresRepository) AddDates(context context.Context, tourID int, dates []time.Time) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_add_tour_dates_tx")
	}
	defer transaction.Rollback(context)

	for _, date := range dates {
		if _, err := transaction.Exec(context,
			`INSERT INTO tour.tourdate (tourid, startdate) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			tourID, date); err != nil {
			return dberr.Wrap(err, "insert_tour_date")
		}
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) DeleteDates(context context.Context, tourID int) error {
	_, err := repository.db.Exec(context, `DELETE FROM tour.tourdate WHERE tourid = $1`, tourID)
	return dberr.Wrap(err, "delete_tour_dates")
}
