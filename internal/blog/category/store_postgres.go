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

// NewPostgresRepository constructs a PostgreSQL backed blog category store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Retrieval

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Category, error) {
	const query = `
		SELECT id, title, slug, description, parentid, createdat
		FROM blog.category
		ORDER BY title ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_blog_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Title, &category.Slug, &category.Description, &category.ParentID, &category.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_blog_category")
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Category, error) {
	const query = `
		SELECT id, title, slug, description, parentid, createdat
		FROM blog.category
		WHERE id = $1
	`
	category := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&category.ID, &category.Title, &category.Slug, &category.Description, &category.ParentID, &category.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_blog_category")
	}
	return category, nil
}

func (repository *PostgresRepository) ListChildren(context context.Context, parentID int) ([]*Category, error) {
	const query = `
		SELECT id, title, slug, description, parentid, createdat
		FROM blog.category
		WHERE parentid = $1
		ORDER BY title ASC
	`
	rows, err := repository.db.Query(context, query, parentID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_blog_category_children")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Title, &category.Slug, &category.Description, &category.ParentID, &category.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_blog_category")
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM blog.category WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_blog_category_slug")
	}
	return exists, nil
}

// # Mutation

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO blog.category (title, slug, description, parentid, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, createdat
	`
	err := repository.db.QueryRow(context, query,
		category.Title, category.Slug, category.Description, category.ParentID,
	).Scan(&category.ID, &category.CreatedAt)

	return dberr.Wrap(err, "create_blog_category")
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE blog.category
		SET title = $2, slug = $3, description = $4, parentid = $5
		WHERE id = $1
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query,
		category.ID, category.Title, category.Slug, category.Description, category.ParentID,
	).Scan(&category.CreatedAt)

	return dberr.Wrap(err, "update_blog_category")
}

/*
DeleteAndReparent removes a category atomically.

Description: Executes within one transaction.
1. Children of the deleted node are re-attached to newParentID.
2. Junction rows in blog.postcategory are removed.
3. Posts using the node as main category are detached.
4. The category row itself is deleted.

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
		return dberr.Wrap(err, "begin_delete_blog_category_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Promote children
	if _, err := transaction.Exec(context,
		`UPDATE blog.category SET parentid = $2 WHERE parentid = $1`, id, newParentID); err != nil {
		return dberr.Wrap(err, "reparent_blog_category_children")
	}

	// Step 2: Remove junction rows
	if _, err := transaction.Exec(context,
		`DELETE FROM blog.postcategory WHERE categoryid = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_blog_category_junctions")
	}

	// Step 3: Detach posts that use the node as main category
	if _, err := transaction.Exec(context,
		`UPDATE blog.post SET maincategoryid = NULL WHERE maincategoryid = $1`, id); err != nil {
		return dberr.Wrap(err, "detach_blog_category_posts")
	}

	// Step 4: Delete the node itself
	result, err := transaction.Exec(context, `DELETE FROM blog.category WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_blog_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}
