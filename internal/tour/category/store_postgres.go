// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tour category store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const categoryColumns = `
	id, name, topic, slug, description, contentintro, contentdetail, avatar,
	metatitle, metadescription, metakeywords, isindexrobot, isdeleted,
	parentid, createdat, creatorname, editorname
`

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	category := &Category{}
	err := row.Scan(
		&category.ID, &category.Name, &category.Topic, &category.Slug, &category.Description,
		&category.ContentIntro, &category.ContentDetail, &category.Avatar,
		&category.MetaTitle, &category.MetaDesc, &category.MetaKeywords, &category.IsIndexRobot,
		&category.IsDeleted, &category.ParentID, &category.CreatedAt,
		&category.CreatorName, &category.EditorName,
	)
	return category, err
}

// # Retrieval

func (repository *PostgresRepository) ListActive(context context.Context) ([]*Category, error) {
	rows, err := repository.db.Query(context,
		`SELECT `+categoryColumns+` FROM tour.category WHERE isdeleted = FALSE ORDER BY name ASC`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tour_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tour_category")
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (repository *PostgresRepository) ListChildren(context context.Context, parentID int) ([]*Category, error) {
	rows, err := repository.db.Query(context,
		`SELECT `+categoryColumns+` FROM tour.category WHERE parentid = $1 AND isdeleted = FALSE ORDER BY name ASC`, parentID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tour_category_children")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tour_category")
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (repository *PostgresRepository) ListDeleted(context context.Context) ([]*Category, error) {
	rows, err := repository.db.Query(context,
		`SELECT `+categoryColumns+` FROM tour.category WHERE isdeleted = TRUE ORDER BY name ASC`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_deleted_tour_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_tour_category")
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Category, error) {
	row := repository.db.QueryRow(context,
		`SELECT `+categoryColumns+` FROM tour.category WHERE id = $1 AND isdeleted = FALSE`, id)

	category, err := scanCategory(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tour_category")
	}
	return category, nil
}

func (repository *PostgresRepository) GetAny(context context.Context, id int) (*Category, error) {
	row := repository.db.QueryRow(context,
		`SELECT `+categoryColumns+` FROM tour.category WHERE id = $1`, id)

	category, err := scanCategory(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tour_category_any")
	}
	return category, nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID int) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tour.category
			WHERE slug = $1 AND id <> $2 AND isdeleted = FALSE
		)
	`
	var exists bool
	if err := repository.db.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_tour_category_slug")
	}
	return exists, nil
}

// # Mutation

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO tour.category (
			name, topic, slug, description, contentintro, contentdetail, avatar,
			metatitle, metadescription, metakeywords, isindexrobot,
			parentid, createdat, creatorname
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), $13)
		RETURNING id, createdat
	`
	err := repository.db.QueryRow(context, query,
		category.Name, category.Topic, category.Slug, category.Description,
		category.ContentIntro, category.ContentDetail, category.Avatar,
		category.MetaTitle, category.MetaDesc, category.MetaKeywords, category.IsIndexRobot,
		category.ParentID, category.CreatorName,
	).Scan(&category.ID, &category.CreatedAt)

	return dberr.Wrap(err, "create_tour_category")
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE tour.category
		SET name = $2, topic = $3, slug = $4, description = $5, contentintro = $6,
			contentdetail = $7, avatar = $8, metatitle = $9, metadescription = $10,
			metakeywords = $11, isindexrobot = $12, parentid = $13, editorname = $14
		WHERE id = $1 AND isdeleted = FALSE
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Topic, category.Slug, category.Description,
		category.ContentIntro, category.ContentDetail, category.Avatar,
		category.MetaTitle, category.MetaDesc, category.MetaKeywords, category.IsIndexRobot,
		category.ParentID, category.EditorName,
	).Scan(&category.CreatedAt)

	return dberr.Wrap(err, "update_tour_category")
}

/*
SoftDeleteAndDetach flags a category deleted and detaches it atomically.

Description: Executes within one transaction.
1. The deletion flag is set (active rows only).
2. Active children are re-attached to newParentID.
3. Tours using the node as main category are detached.
4. Mapping rows in tour.tourcategorymapping are removed.

Restore reverses only step 1; the references removed in steps 3 and 4 are
gone for good.

Parameters:
  - context: context.Context
  - id: int
  - newParentID: *int (nil promotes children to root level)

Returns:
  - error: dberr.ErrNotFound if no active row matched, transactional failures otherwise
*/
func (repository *PostgresRepository) SoftDeleteAndDetach(context context.Context, id int, newParentID *int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_soft_delete_tour_category_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Flag the node
	result, err := transaction.Exec(context,
		`UPDATE tour.category SET isdeleted = TRUE WHERE id = $1 AND isdeleted = FALSE`, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_tour_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	// Step 2: Promote children
	if _, err := transaction.Exec(context,
		`UPDATE tour.category SET parentid = $2 WHERE parentid = $1 AND isdeleted = FALSE`, id, newParentID); err != nil {
		return dberr.Wrap(err, "reparent_tour_category_children")
	}

	// Step 3: Detach tours using the node as main category
	if _, err := transaction.Exec(context,
		`UPDATE tour.tourdetail SET maincategoryid = NULL WHERE maincategoryid = $1`, id); err != nil {
		return dberr.Wrap(err, "detach_tour_category_main_refs")
	}

	// Step 4: Remove mapping rows
	if _, err := transaction.Exec(context,
		`DELETE FROM tour.tourcategorymapping WHERE categoryid = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_tour_category_mappings")
	}

	return transaction.Commit(context)
}

func (repository *PostgresRepository) Restore(context context.Context, id int) error {
	result, err := repository.db.Exec(context,
		`UPDATE tour.category SET isdeleted = FALSE WHERE id = $1 AND isdeleted = TRUE`, id)
	if err != nil {
		return dberr.Wrap(err, "restore_tour_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountTourRefs(context context.Context, id int) (int, error) {
	const query = `
		SELECT
			(SELECT count(*) FROM tour.tourdetail WHERE maincategoryid = $1) +
			(SELECT count(*) FROM tour.tourcategorymapping WHERE categoryid = $1)
	`
	var refs int
	if err := repository.db.QueryRow(context, query, id).Scan(&refs); err != nil {
		return 0, dberr.Wrap(err, "count_tour_category_refs")
	}
	return refs, nil
}

/*
PermanentDeleteAndReparent removes a category row for good.

Description: Executes within one transaction.
1. Children (active or deleted) are re-attached to newParentID.
2. The row itself is deleted.

The caller is responsible for refusing the operation while tours still
reference the node.

Parameters:
  - context: context.Context
  - id: int
  - newParentID: *int

Returns:
  - error: dberr.ErrNotFound if the row does not exist, transactional failures otherwise
*/
func (repository *PostgresRepository) PermanentDeleteAndReparent(context context.Context, id int, newParentID *int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_permanent_delete_tour_category_tx")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		`UPDATE tour.category SET parentid = $2 WHERE parentid = $1`, id, newParentID); err != nil {
		return dberr.Wrap(err, "reparent_tour_category_children")
	}

	result, err := transaction.Exec(context, `DELETE FROM tour.category WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "permanent_delete_tour_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}
