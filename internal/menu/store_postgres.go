package menu

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

const menuColumns = `id, name, url, indexnumber, parentid, ishide, isdeleted`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanMenu(row interface{ Scan(...any) error }) (*Menu, error) {
	menu := &Menu{}
	err := row.Scan(&menu.ID, &menu.Name, &menu.URL, &menu.IndexNumber,
		&menu.ParentID, &menu.IsHide, &menu.IsDeleted)
	if err != nil {
		return nil, err
	}
	return menu, nil
}

func (repository *PostgresRepository) list(context context.Context, query string) ([]*Menu, error) {
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_menus")
	}
	defer rows.Close()

	var menus []*Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_menu")
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

func (repository *PostgresRepository) ListActive(context context.Context) ([]*Menu, error) {
	return repository.list(context, `
		SELECT `+menuColumns+` FROM site.menu
		WHERE isdeleted = FALSE
		ORDER BY indexnumber ASC, id ASC`)
}

func (repository *PostgresRepository) ListVisible(context context.Context) ([]*Menu, error) {
	return repository.list(context, `
		SELECT `+menuColumns+` FROM site.menu
		WHERE isdeleted = FALSE AND ishide = FALSE
		ORDER BY indexnumber ASC, id ASC`)
}

func (repository *PostgresRepository) Get(context context.Context, id int) (*Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM site.menu WHERE id = $1 AND isdeleted = FALSE`

	menu, err := scanMenu(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_menu")
	}
	return menu, nil
}

func (repository *PostgresRepository) Create(context context.Context, menu *Menu) error {
	const query = `
		INSERT INTO site.menu (name, url, indexnumber, parentid, ishide, isdeleted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		menu.Name, menu.URL, menu.IndexNumber, menu.ParentID, menu.IsHide).Scan(&menu.ID)
	return dberr.Wrap(err, "create_menu")
}

func (repository *PostgresRepository) Update(context context.Context, menu *Menu) error {
	const query = `
		UPDATE site.menu
		SET name = $2, url = $3, indexnumber = $4, parentid = $5, ishide = $6
		WHERE id = $1 AND isdeleted = FALSE`

	result, err := repository.db.Exec(context, query,
		menu.ID, menu.Name, menu.URL, menu.IndexNumber, menu.ParentID, menu.IsHide)
	if err != nil {
		return dberr.Wrap(err, "update_menu")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int, newParentID *int) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_menu")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		`UPDATE site.menu SET parentid = $2 WHERE parentid = $1 AND isdeleted = FALSE`,
		id, newParentID); err != nil {
		return dberr.Wrap(err, "reparent_menu_children")
	}

	result, err := transaction.Exec(context,
		`UPDATE site.menu SET isdeleted = TRUE WHERE id = $1 AND isdeleted = FALSE`, id)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_menu")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_menu")
}

func (repository *PostgresRepository) Restore(context context.Context, id int) error {
	result, err := repository.db.Exec(context,
		`UPDATE site.menu SET isdeleted = FALSE WHERE id = $1 AND isdeleted = TRUE`, id)
	if err != nil {
		return dberr.Wrap(err, "restore_menu")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
