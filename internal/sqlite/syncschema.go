package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"syscall"

	"github.com/alphafounders/site/internal/errors"
)

// schemaObject is a row of sqlite_schema.
type schemaObject struct {
	kind  string
	name  string
	table string
	sql   string
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// migrateTo ensures that the db schema matches the target schema definition.
//
// The migration is declarative:
//
//  1. Drops indexes and triggers that were removed or changed,
//  2. drops deleted tables,
//  3. creates new tables,
//  4. rebuilds changed tables using the 12-step procedure https://www.sqlite.org/lang_altertable.html#otheralter,
//  5. creates missing indexes and triggers.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/
func (db *Database) migrateTo(ctx context.Context, definition string) error {
	// The target schema is created in a private in-memory database so that it can be compared with the current one.
	target, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return errors.Wrap(err, "open schema target database")
	}
	target.SetMaxOpenConns(1)
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			closeErr = errors.Wrap(closeErr, "close schema target database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target database",
				errors.SlogError(closeErr))
		}
	}()
	if strings.TrimSpace(definition) != "" {
		if _, err = target.ExecContext(ctx, definition); err != nil {
			return errors.Wrap(err, "create schema target database")
		}
	}

	// Foreign keys can only be toggled outside a transaction.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return errors.Wrap(err, "disable foreign key validation")
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			fkErr = errors.Wrap(fkErr, "re-enable foreign key validation")
			db.logger.LogAttrs(ctx, slog.LevelError, "exit to avoid data corruption", errors.SlogError(fkErr))
			if killErr := syscall.Kill(syscall.Getpid(), syscall.SIGINT); killErr != nil {
				os.Exit(1)
			}
		}
	}()

	var tx *sql.Tx
	if tx, err = db.ReadWrite.BeginTx(ctx, nil); err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		// Rollback after a successful commit is a no-op returning sql.ErrTxDone.
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction",
				errors.SlogError(rollbackErr))
		}
	}()

	if err = db.syncSchema(ctx, tx, target); err != nil {
		return errors.Wrap(err, "sync schema")
	}

	if _, err = tx.ExecContext(ctx, "PRAGMA foreign_key_check"); err != nil {
		return errors.Wrap(err, "foreign key check")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	return nil
}

func (db *Database) syncSchema(ctx context.Context, tx *sql.Tx, target *sql.DB) error {
	current, err := db.querySchema(ctx, tx)
	if err != nil {
		return errors.Wrap(err, "query current schema")
	}
	wanted, err := db.querySchema(ctx, target)
	if err != nil {
		return errors.Wrap(err, "query target schema")
	}

	// Indexes and triggers are cheap to recreate so any difference drops them.
	for _, obj := range current {
		if obj.kind == "table" {
			continue
		}
		if w, ok := find(wanted, obj.kind, obj.name); ok && w.sql == obj.sql {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping schema object",
			slog.String("type", obj.kind), slog.String("name", obj.name))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP %s IF EXISTS %q;", strings.ToUpper(obj.kind),
			obj.name)); err != nil {
			return errors.Wrap(err, "drop schema object", slog.String("name", obj.name))
		}
	}

	for _, obj := range current {
		if obj.kind != "table" {
			continue
		}
		if _, ok := find(wanted, "table", obj.name); ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", obj.name))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q;", obj.name)); err != nil {
			return errors.Wrap(err, "drop table", slog.String("table", obj.name))
		}
	}

	for _, obj := range wanted {
		if obj.kind != "table" {
			continue
		}
		existing, ok := find(current, "table", obj.name)
		switch {
		case !ok:
			db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", obj.sql))
			if _, err = tx.ExecContext(ctx, obj.sql); err != nil {
				return errors.Wrap(err, "create table", slog.String("table", obj.name))
			}
		case existing.sql != obj.sql:
			if err = db.rebuildTable(ctx, tx, target, existing, obj); err != nil {
				return errors.Wrap(err, "rebuild table", slog.String("table", obj.name))
			}
		}
	}

	// Rebuilt tables lost their indexes and triggers so the current schema is queried again.
	if current, err = db.querySchema(ctx, tx); err != nil {
		return errors.Wrap(err, "query migrated schema")
	}
	for _, obj := range wanted {
		if obj.kind == "table" {
			continue
		}
		if _, ok := find(current, obj.kind, obj.name); ok {
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating schema object", slog.String("query", obj.sql))
		if _, err = tx.ExecContext(ctx, obj.sql); err != nil {
			return errors.Wrap(err, "create schema object", slog.String("name", obj.name))
		}
	}

	return nil
}

// rebuildTable migrates a changed table by copying the common columns to a table created with the new definition.
func (db *Database) rebuildTable(ctx context.Context, tx *sql.Tx, target *sql.DB, current, wanted schemaObject) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
		slog.String("table", current.name),
		slog.String("current_sql", current.sql),
		slog.String("new_sql", wanted.sql))

	tempName := current.name + "_migration_temp"
	tempNameSQL := strings.Replace(wanted.sql, current.name, tempName, 1)
	if _, err := tx.ExecContext(ctx, tempNameSQL); err != nil {
		return errors.Wrap(err, "create new table to temporary name", slog.String("query", tempNameSQL))
	}

	currentColumns, err := db.queryColumns(ctx, tx, current.name)
	if err != nil {
		return errors.Wrap(err, "query current columns")
	}
	wantedColumns, err := db.queryColumns(ctx, target, wanted.name)
	if err != nil {
		return errors.Wrap(err, "query target columns")
	}
	var common []string
	for _, column := range wantedColumns {
		if slices.Contains(currentColumns, column) {
			// Quoted to handle column names that are SQLite keywords.
			common = append(common, fmt.Sprintf("%q", column))
		}
	}

	if len(common) > 0 {
		columns := strings.Join(common, ", ")
		copySQL := fmt.Sprintf("INSERT INTO %q (%s) SELECT %s FROM %q;", tempName, columns, columns, current.name)
		db.logger.LogAttrs(ctx, slog.LevelInfo, "copying data", slog.String("query", copySQL))
		if _, err = tx.ExecContext(ctx, copySQL); err != nil {
			return errors.Wrap(err, "copy data")
		}
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE %q;", current.name)); err != nil {
		return errors.Wrap(err, "drop old table")
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %q RENAME TO %q;", tempName, current.name)); err != nil {
		return errors.Wrap(err, "rename new table")
	}
	return nil
}

func find(objects []schemaObject, kind, name string) (schemaObject, bool) {
	idx := slices.IndexFunc(objects, func(obj schemaObject) bool {
		return obj.kind == kind && obj.name == name
	})
	if idx < 0 {
		return schemaObject{}, false
	}
	return objects[idx], true
}

func (db *Database) querySchema(ctx context.Context, q queryer) ([]schemaObject, error) {
	rows, err := q.QueryContext(ctx, `SELECT type, name, tbl_name, sql
FROM sqlite_schema
WHERE name NOT LIKE 'sqlite_%' AND sql IS NOT NULL
ORDER BY rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	defer db.closeRows(ctx, rows)

	var objects []schemaObject
	for rows.Next() {
		var obj schemaObject
		if err = rows.Scan(&obj.kind, &obj.name, &obj.table, &obj.sql); err != nil {
			return nil, errors.Wrap(err, "scan schema object")
		}
		objects = append(objects, obj)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return objects, nil
}

func (db *Database) queryColumns(ctx context.Context, q queryer, table string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	defer db.closeRows(ctx, rows)

	var columns []string
	for rows.Next() {
		var column string
		if err = rows.Scan(&column); err != nil {
			return nil, errors.Wrap(err, "scan column")
		}
		columns = append(columns, column)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}
	return columns, nil
}

func (db *Database) closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		err = errors.Wrap(err, "close rows")
		db.logger.LogAttrs(ctx, slog.LevelError, "could not close rows", errors.SlogError(err))
	}
}
