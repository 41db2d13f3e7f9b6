package folder

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

func (repository *PostgresRepository) List(context context.Context) ([]*Folder, error) {
	const query = `SELECT id, name, createdat FROM media.folder ORDER BY name ASC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_folders")
	}
	defer rows.Close()

	var folders []*Folder
	for rows.Next() {
		folder := &Folder{}
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_folder")
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Folder, error) {
	const query = `SELECT id, name, createdat FROM media.folder WHERE id = $1`

	folder := &Folder{}
	if err := repository.db.QueryRow(context, query, id).Scan(&folder.ID, &folder.Name, &folder.CreatedAt); err != nil {
		return nil, dberr.Wrap(err, "get_folder")
	}
	return folder, nil
}

func (repository *PostgresRepository) Create(context context.Context, folder *Folder) error {
	const query = `INSERT INTO media.folder (name, createdat) VALUES ($1, NOW()) RETURNING id, createdat`

	err := repository.db.QueryRow(context, query, folder.Name).Scan(&folder.ID, &folder.CreatedAt)
	return dberr.Wrap(err, "create_folder")
}

func (repository *PostgresRepository) Update(context context.Context, folder *Folder) error {
	result, err := repository.db.Exec(context,
		`UPDATE media.folder SET name = $2 WHERE id = $1`, folder.ID, folder.Name)
	if err != nil {
		return dberr.Wrap(err, "update_folder")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	result, err := repository.db.Exec(context, `DELETE FROM media.folder WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_folder")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountFiles(context context.Context, id int) (int, error) {
	var count int
	err := repository.db.QueryRow(context,
		`SELECT count(*) FROM media.file WHERE folderid = $1`, id).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_folder_files")
	}
	return count, nil
}
