// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package procedure

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minhngo/travia/internal/platform/dberr"
)

type PostgresRunner struct {
	db *pgxpool.Pool
}

func NewPostgresRunner(db *pgxpool.Pool) *PostgresRunner {
	return &PostgresRunner{db: db}
}

/*
Run invokes a database function and materializes its row set.

Description: Builds "SELECT * FROM name($1, ..., $n)" with every argument
bound as a placeholder. Column names come from the result descriptor, so
set-returning functions of any shape can be called.

Parameters:
  - context: context.Context
  - name: validated function identifier
  - args: positional arguments

Returns:
  - *Result: Column names and rows keyed by column
  - error: Execution failures mapped through dberr
*/
func (runner *PostgresRunner) Run(context context.Context, name string, args []any) (*Result, error) {
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("SELECT * FROM %s(%s)", name, strings.Join(placeholders, ", "))

	rows, err := runner.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "run_procedure")
	}
	defer rows.Close()

	descriptions := rows.FieldDescriptions()
	columns := make([]string, len(descriptions))
	for i, description := range descriptions {
		columns[i] = description.Name
	}

	result := &Result{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, dberr.Wrap(err, "scan_procedure_row")
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "read_procedure_rows")
	}

	return result, nil
}
