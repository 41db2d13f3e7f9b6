// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Retrieval

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			p.id, p.title, p.description, p.slug, p.content, p.published,
			p.maincategoryid, p.createdat, p.updatedat,
			COUNT(*) OVER() as total
		FROM blog.post p
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if filter.Published != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.published = $%d", argID))
		args = append(args, *filter.Published)
		argID++
	}

	if len(filter.CategoryIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(`
			AND (
				p.maincategoryid = ANY($%d)
				OR EXISTS (
					SELECT 1 FROM blog.postcategory pc
					WHERE pc.postid = p.id AND pc.categoryid = ANY($%d)
				)
			)
		`, argID, argID))
		args = append(args, filter.CategoryIDs)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.createdat DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	var posts []*Post
	var total int
	for rows.Next() {
		post := &Post{}
		err := rows.Scan(
			&post.ID, &post.Title, &post.Description, &post.Slug, &post.Content, &post.Published,
			&post.MainCategoryID, &post.CreatedAt, &post.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Post, error) {
	const query = `
		SELECT id, title, description, slug, content, published, maincategoryid, createdat, updatedat
		FROM blog.post
		WHERE id = $1
	`
	post := &Post{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&post.ID, &post.Title, &post.Description, &post.Slug, &post.Content, &post.Published,
		&post.MainCategoryID, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post")
	}

	const junctionQuery = `SELECT categoryid FROM blog.postcategory WHERE postid = $1 ORDER BY categoryid`
	rows, err := repository.db.Query(context, junctionQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_post_categories")
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID int
		if err := rows.Scan(&categoryID); err != nil {
			return nil, dberr.Wrap(err, "scan_post_category")
		}
		post.CategoryIDs = append(post.CategoryIDs, categoryID)
	}

	return post, nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM blog.post WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := repository.db.QueryRow(context, query, slug, excludeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_post_slug")
	}
	return exists, nil
}

// # Mutation

/*
Create inserts a post together with its category junction rows.

Description: Executes within one transaction so a junction failure never
leaves a half-linked post behind.
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_post_tx")
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO blog.post (title, description, slug, content, published, maincategoryid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`
	err = transaction.QueryRow(context, query,
		post.Title, post.Description, post.Slug, post.Content, post.Published, post.MainCategoryID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_post")
	}

	for _, categoryID := range post.CategoryIDs {
		if _, err := transaction.Exec(context,
			`INSERT INTO blog.postcategory (postid, categoryid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			post.ID, categoryID); err != nil {
			return dberr.Wrap(err, "insert_post_category")
		}
	}

	return transaction.Commit(context)
}

/*
Update saves post fields and rewrites the category junction set.

Description: Junction rows are replaced wholesale (delete + insert) inside
one transaction, mirroring the category set the caller provides.
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_post_tx")
	}
	defer transaction.Rollback(context)

	const query = `
		UPDATE blog.post
		SET title = $2, description = $3, slug = $4, content = $5, published = $6,
			maincategoryid = $7, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = transaction.QueryRow(context, query,
		post.ID, post.Title, post.Description, post.Slug, post.Content, post.Published, post.MainCategoryID,
	).Scan(&post.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_post")
	}

	if _, err := transaction.Exec(context,
		`DELETE FROM blog.postcategory WHERE postid = $1`, post.ID); err != nil {
		return dberr.Wrap(err, "clear_post_categories")
	}
	for _, categoryID := range post.CategoryIDs {
		if _, err := transaction.Exec(context,
			`INSERT INTO blog.postcategory (postid, categoryid) VALUES ($1, $2)`,
			post.ID, categoryID); err != nil {
			return dberr.Wrap(err, "insert_post_category")
		}
	}

	return transaction.Commit(context)
}

// Delete removes the post and its junction rows in one transaction.
func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_post_tx")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		`DELETE FROM blog.postcategory WHERE postid = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_post_categories")
	}

	result, err := transaction.Exec(context, `DELETE FROM blog.post WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return transaction.Commit(context)
}
