// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tour store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const tourColumns = `
	t.id, t.code, t.name, t.slug, t.description, t.promotion, t.timeline, t.notes,
	t.hotel, t.flight, t.countryfrom, t.countryto, t.price, t.promotionprice,
	t.childprice, t.avatar, t.ishot, t.ishide, t.isdeleted, t.maincategoryid,
	t.createdat, t.creatorname
`

func scanTour(row pgx.Row, extra ...any) (*Tour, error) {
	tour := &Tour{}
	dest := []any{
		&tour.ID, &tour.Code, &tour.Name, &tour.Slug, &tour.Description, &tour.Promotion,
		&tour.Timeline, &tour.Notes, &tour.Hotel, &tour.Flight, &tour.CountryFrom, &tour.CountryTo,
		&tour.Price, &tour.PromotionPrice, &tour.ChildPrice, &tour.Avatar,
		&tour.IsHot, &tour.IsHide, &tour.IsDeleted, &tour.MainCategoryID,
		&tour.CreatedAt, &tour.CreatorName,
	}
	dest = append(dest, extra...)
	return tour, row.Scan(dest...)
}

// # Retrieval

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Tour, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + tourColumns + `, COUNT(*) OVER() as total
		FROM tour.tourdetail t
		WHERE t.isdeleted = FALSE
	`)

	args := []any{}
	argID := 1

	if filter.IsHot != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.ishot = $%d", argID))
		args = append(args, *filter.IsHot)
		argID++
	}
	if filter.IsHide != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.ishide = $%d", argID))
		args = append(args, *filter.IsHide)
		argID++
	}
	if len(filter.CategoryIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND (
				t.maincategoryid = ANY($%d)
				OR EXISTS (
					SELECT 1 FROM tour.tourcategorymapping m
					WHERE m.tourid = t.id AND m.categoryid = ANY($%d)
				)
			)
		`, argID, argID))
		args = append(args, filter.CategoryIDs)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.createdat DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tours")
	}
	defer rows.Close()

	var tours []*Tour
	var total int
	for rows.Next() {
		tour, err := scanTour(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tour")
		}
		tours = append(tours, tour)
	}

	return tours, total, nil
}

/*
ListPublic returns the visible tours of a category landing page.

Description: The category is resolved by slug; tours attached to it or to
its direct children qualify. Hidden and soft-deleted tours never appear.
The optional filters narrow by destination, departure point, price range
and departure month; sorting defaults to newest-first.
*/
func (repository *PostgresRepository) ListPublic(context context.Context, categorySlug string, filter PublicFilter, limit, offset int) ([]*Tour, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + tourColumns + `, COUNT(*) OVER() as total
		FROM tour.tourdetail t
		WHERE t.isdeleted = FALSE AND t.ishide = FALSE
		AND EXISTS (
			SELECT 1 FROM tour.category c
			WHERE c.isdeleted = FALSE
			AND (c.slug = $1 OR c.parentid = (SELECT id FROM tour.category WHERE slug = $1 AND isdeleted = FALSE))
			AND (
				t.maincategoryid = c.id
				OR EXISTS (SELECT 1 FROM tour.tourcategorymapping m WHERE m.tourid = t.id AND m.categoryid = c.id)
			)
		)
	`)

	args := []any{categorySlug}
	argID := 2

	if filter.DestinationID != nil {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM tour.tourdestination td WHERE td.tourid = t.id AND td.destinationid = $%d)", argID))
		args = append(args, *filter.DestinationID)
		argID++
	}
	if filter.DepartureID != nil {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM tour.tourdeparture tp WHERE tp.tourid = t.id AND tp.departureid = $%d)", argID))
		args = append(args, *filter.DepartureID)
		argID++
	}
	if filter.MinPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.price >= $%d", argID))
		args = append(args, *filter.MinPrice)
		argID++
	}
	if filter.MaxPrice != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.price <= $%d", argID))
		args = append(args, *filter.MaxPrice)
		argID++
	}
	if filter.Month != nil {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM tour.tourdate d WHERE d.tourid = t.id AND EXTRACT(MONTH FROM d.startdate) = $%d)", argID))
		args = append(args, *filter.Month)
		argID++
	}

	switch filter.Sort {
	case "price_asc":
		queryBuilder.WriteString(" ORDER BY t.price ASC")
	case "price_desc":
		queryBuilder.WriteString(" ORDER BY t.price DESC")
	default:
		queryBuilder.WriteString(" ORDER BY t.createdat DESC")
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_public_tours")
	}
	defer rows.Close()

	var tours []*Tour
	var total int
	for rows.Next() {
		tour, err := scanTour(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tour")
		}
		tours = append(tours, tour)
	}

	return tours, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Tour, error) {
	row := repository.db.QueryRow(context,
		`SELECT `+tourColumns+` FROM tour.tourdetail t WHERE t.id = $1 AND t.isdeleted = FALSE`, id)

	tour, err := scanTour(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tour")
	}

	if err := repository.loadRelations(context, tour); err != nil {
		return nil, err
	}
	return tour, nil
}

// loadRelations hydrates junction IDs and departure dates for a detail read.
func (repository *PostgresRepository) loadRelations(context context.Context, tour *Tour) error {
	junctions := []struct {
		query string
		dest  *[]int
	}{
		{`SELECT categoryid FROM tour.tourcategorymapping WHERE tourid = $1 ORDER BY categoryid`, &tour.CategoryIDs},
		{`SELECT destinationid FROM tour.tourdestination WHERE tourid = $1 ORDER BY destinationid`, &tour.DestinationIDs},
		{`SELECT departureid FROM tour.tourdeparture WHERE tourid = $1 ORDER BY departureid`, &tour.DepartureIDs},
	}

	for _, junction := range junctions {
		rows, err := repository.db.Query(context, junction.query, tour.ID)
		if err != nil {
			return dberr.Wrap(err, "list_tour_relations")
		}
		for rows.Next() {
			var id int
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return dberr.Wrap(err, "scan_tour_relation")
			}
			*junction.dest = append(*junction.dest, id)
		}
		rows.Close()
	}

	dates, err := repository.ListDates(context, tour.ID)
	if err != nil {
		return err
	}
	tour.Dates = dates
	return nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID int) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tour.tourdetail WHERE slug = $1 AND id <> $2 AND isdeleted = FALSE
		)
	`
	var exists bool
	if err := repository.db.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_tour_slug")
	}
	return exists, nil
}

func (repository *PostgresRepository) CodeExists(context context.Context, code string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tour.tourdetail WHERE code = $1 AND id <> $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, code, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_tour_code")
	}
	return exists, nil
}

// # Mutation

/*
Create inserts a tour, assigns its public code and writes the junction sets.

Description: Executes within one transaction.
1. The tour row is inserted (code still empty).
2. The code "TOUR-XXXXXX-{id}" is derived from the fresh ID and saved.
3. Category, destination and departure junction rows are written.
*/
func (repository *PostgresRepository) Create(context context.Context, tour *Tour) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_tour_tx")
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO tour.tourdetail (
			code, name, slug, description, promotion, timeline, notes, hotel, flight,
			countryfrom, countryto, price, promotionprice, childprice, avatar,
			ishot, ishide, maincategoryid, createdat, creatorname
		) VALUES ('', $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), $18)
		RETURNING id, createdat
	`
	err = transaction.QueryRow(context, query,
		tour.Name, tour.Slug, tour.Description, tour.Promotion, tour.Timeline, tour.Notes,
		tour.Hotel, tour.Flight, tour.CountryFrom, tour.CountryTo,
		tour.Price, tour.PromotionPrice, tour.ChildPrice, tour.Avatar,
		tour.IsHot, tour.IsHide, tour.MainCategoryID, tour.CreatorName,
	).Scan(&tour.ID, &tour.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_tour")
	}

	tour.Code = GenerateCode(tour.ID)
	if _, err := transaction.Exec(context,
		`UPDATE tour.tourdetail SET code = $2 WHERE id = $1`, tour.ID, tour.Code); err != nil {
		return dberr.Wrap(err, "assign_tour_code")
	}

	if err := writeJunctions(context, transaction, tour); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
Update saves tour fields and rewrites every junction set.

Description: Junction rows are replaced wholesale inside one transaction,
mirroring the ID sets the caller provides.
*/
func (repository *PostgresRepository) Update(context context.Context, tour *Tour) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_tour_tx")
	}
	defer transaction.Rollback(context)

	const query = `
		UPDATE tour.tourdetail
		SET name = $2, slug = $3, description = $4, promotion = $5, timeline = $6,
			notes = $7, hotel = $8, flight = $9, countryfrom = $10, countryto = $11,
			price = $12, promotionprice = $13, childprice = $14, avatar = $15,
			ishot = $16, ishide = $17, maincategoryid = $18
		WHERE id = $1 AND isdeleted = FALSE
		RETURNING createdat
	`
	err = transaction.QueryRow(context, query,
		tour.ID, tour.Name, tour.Slug, tour.Description, tour.Promotion, tour.Timeline,
		tour.Notes, tour.Hotel, tour.Flight, tour.CountryFrom, tour.CountryTo,
		tour.Price, tour.PromotionPrice, tour.ChildPrice, tour.Avatar,
		tour.IsHot, tour.IsHide, tour.MainCategoryID,
	).Scan(&tour.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_tour")
	}

	if err := clearJunctions(context, transaction, tour.ID); err != nil {
		return err
	}
	if err := writeJunctions(context, transaction, tour); err != nil {
		return err
	}

	return transaction.Commit(context)
}

// Delete hard-removes a tour, its junction rows and its departure dates.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_tour_tx")
	}
	defer transaction.Rollback(context)

	if err := clearJunctions(context, transaction, id); err != nil {
		return err
	}
	if _, err := transaction.Exec(context,
		`DELETE FROM tour.tourdate WHERE tourid = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_tour_dates")
	}

	result, err := transaction.Exec(context, `DELETE FROM tour.tourdetail WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tour")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int) error {
	result, err := repository.db.Exec(context,
		`UPDATE tour.tourdetail SET isdeleted = TRUE WHERE id = $1 AND isdeleted = FALSE`, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_tour")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ToggleHot(context context.Context, id int) (bool, error) {
	const query = `
		UPDATE tour.tourdetail SET ishot = NOT ishot
		WHERE id = $1 AND isdeleted = FALSE
		RETURNING ishot
	`
	var isHot bool
	if err := repository.db.QueryRow(context, query, id).Scan(&isHot); err != nil {
		return false, dberr.Wrap(err, "toggle_tour_hot")
	}
	return isHot, nil
}

func (repository *PostgresRepository) ToggleHide(context context.Context, id int) (bool, error) {
	const query = `
		UPDATE tour.tourdetail SET ishide = NOT ishide
		WHERE id = $1 AND isdeleted = FALSE
		RETURNING ishide
	`
	var isHide bool
	if err := repository.db.QueryRow(context, query, id).Scan(&isHide); err != nil {
		return false, dberr.Wrap(err, "toggle_tour_hide")
	}
	return isHide, nil
}

// # Junction helpers

func clearJunctions(context context.Context, transaction pgx.Tx, tourID int) error {
	for _, table := range []string{"tour.tourcategorymapping", "tour.tourdestination", "tour.tourdeparture"} {
		if _, err := transaction.Exec(context,
			`DELETE FROM `+table+` WHERE tourid = $1`, tourID); err != nil {
			return dberr.Wrap(err, "clear_tour_junctions")
		}
	}
	return nil
}

func writeJunctions(context context.Context, transaction pgx.Tx, tour *Tour) error {
	junctions := []struct {
		query string
		ids   []int
	}{
		{`INSERT INTO tour.tourcategorymapping (tourid, categoryid) VALUES ($1, $2) ON CONFLICT DO NOTHING`, tour.CategoryIDs},
		{`INSERT INTO tour.tourdestination (tourid, destinationid) VALUES ($1, $2) ON CONFLICT DO NOTHING`, tour.DestinationIDs},
		{`INSERT INTO tour.tourdeparture (tourid, departureid) VALUES ($1, $2) ON CONFLICT DO NOTHING`, tour.DepartureIDs},
	}

	for _, junction := range junctions {
		for _, id := range junction.ids {
			if _, err := transaction.Exec(context, junction.query, tour.ID, id); err != nil {
				return dberr.Wrap(err, "insert_tour_junction")
			}
		}
	}
	return nil
}
