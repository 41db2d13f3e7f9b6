package file

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

const fileColumns = `id, name, originalname, url, size, contenttype, folderid, createdat`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanFile(row interface{ Scan(...any) error }) (*File, error) {
	file := &File{}
	err := row.Scan(&file.ID, &file.Name, &file.OriginalName, &file.URL,
		&file.Size, &file.ContentType, &file.FolderID, &file.CreatedAt)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (repository *PostgresRepository) List(context context.Context, folderID *int) ([]*File, error) {
	query := `SELECT ` + fileColumns + ` FROM media.file ORDER BY createdat DESC`
	args := []any{}
	if folderID != nil {
		query = `SELECT ` + fileColumns + ` FROM media.file WHERE folderid = $1 ORDER BY createdat DESC`
		args = append(args, *folderID)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_files")
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_file")
		}
		files = append(files, file)
	}
	return files, nil
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*File, error) {
	query := `SELECT ` + fileColumns + ` FROM media.file WHERE id = $1`

	file, err := scanFile(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_file")
	}
	return file, nil
}

func (repository *PostgresRepository) Create(context context.Context, file *File) error {
	const query = `
		INSERT INTO media.file (name, originalname, url, size, contenttype, folderid, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, createdat`

	err := repository.db.QueryRow(context, query,
		file.Name, file.OriginalName, file.URL, file.Size, file.ContentType, file.FolderID,
	).Scan(&file.ID, &file.CreatedAt)
	return dberr.Wrap(err, "create_file")
}

func (repository *PostgresRepository) Move(context context.Context, id int, folderID *int) error {
	result, err := repository.db.Exec(context,
		`UPDATE media.file SET folderid = $2 WHERE id = $1`, id, folderID)
	if err != nil {
		return dberr.Wrap(err, "move_file")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	result, err := repository.db.Exec(context, `DELETE FROM media.file WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_file")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
