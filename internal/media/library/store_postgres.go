package library

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

func (repository *PostgresRepository) ListByEntity(context context.Context, entityType string, entityID int) ([]*Image, error) {
	const query = `
		SELECT id, entitytype, entityid, imageurl
		FROM media.libraryimage
		WHERE entitytype = $1 AND entityid = $2
		ORDER BY id ASC`

	rows, err := repository.db.Query(context, query, entityType, entityID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_library_images")
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		image := &Image{}
		if err := rows.Scan(&image.ID, &image.EntityType, &image.EntityID, &image.ImageURL); err != nil {
			return nil, dberr.Wrap(err, "scan_library_image")
		}
		images = append(images, image)
	}
	return images, nil
}

func (repository *PostgresRepository) Create(context context.Context, image *Image) error {
	const query = `
		INSERT INTO media.libraryimage (entitytype, entityid, imageurl)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		image.EntityType, image.EntityID, image.ImageURL).Scan(&image.ID)
	return dberr.Wrap(err, "create_library_image")
}

func (repository *PostgresRepository) CreateBatch(context context.Context, images []*Image) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_library_images")
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO media.libraryimage (entitytype, entityid, imageurl)
		VALUES ($1, $2, $3)
		RETURNING id`

	for _, image := range images {
		err := transaction.QueryRow(context, query,
			image.EntityType, image.EntityID, image.ImageURL).Scan(&image.ID)
		if err != nil {
			return dberr.Wrap(err, "create_library_image")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_library_images")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	result, err := repository.db.Exec(context,
		`DELETE FROM media.libraryimage WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_library_image")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteBatch(context context.Context, ids []int) (int, error) {
	result, err := repository.db.Exec(context,
		`DELETE FROM media.libraryimage WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_library_images")
	}
	return int(result.RowsAffected()), nil
}

func (repository *PostgresRepository) DeleteByEntity(context context.Context, entityType string, entityID int) (int, error) {
	result, err := repository.db.Exec(context,
		`DELETE FROM media.libraryimage WHERE entitytype = $1 AND entityid = $2`,
		entityType, entityID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_entity_library_images")
	}
	return int(result.RowsAffected()), nil
}
