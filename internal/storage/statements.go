// ABOUTME: Shared statement helpers built on squirrel.
// ABOUTME: Column names come from fixed sets; every value is a bound parameter.
package storage

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// insert runs an INSERT and returns the new row id.
func (d *DB) insert(op string, stmt sq.InsertBuilder) (int64, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return 0, d.fail(op, err)
	}
	res, err := d.q.Exec(query, args...)
	if err != nil {
		return 0, d.fail(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, d.fail(op, err)
	}
	return id, nil
}

// updateColumns applies a sparse set of column values to the row with the given id.
// An empty set is a successful no-op.
func (d *DB) updateColumns(op, table string, id int64, cols map[string]any) (bool, error) {
	if len(cols) == 0 {
		return true, nil
	}

	query, args, err := sq.Update(table).SetMap(cols).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, d.fail(op, err)
	}
	return d.execAffected(op, query, args...)
}

// deleteByID removes the row with the given id. Cascades are left to the schema.
func (d *DB) deleteByID(op, table string, id int64) (bool, error) {
	query, args, err := sq.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, d.fail(op, err)
	}
	return d.execAffected(op, query, args...)
}

func (d *DB) execAffected(op, query string, args ...any) (bool, error) {
	res, err := d.q.Exec(query, args...)
	if err != nil {
		return false, d.fail(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, d.fail(op, err)
	}
	return affected > 0, nil
}

// queryRow runs a single-row SELECT. scan receives the row and must return
// sql.ErrNoRows untouched so that "not found" can be told apart.
func (d *DB) queryRow(op string, stmt sq.SelectBuilder, scan func(*sql.Row) error) (bool, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return false, d.fail(op, err)
	}
	if err := scan(d.q.QueryRow(query, args...)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, d.fail(op, err)
	}
	return true, nil
}

// queryRows runs a multi-row SELECT and hands each row to scan.
func (d *DB) queryRows(op string, stmt sq.SelectBuilder, scan func(*sql.Rows) error) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return d.fail(op, err)
	}
	rows, err := d.q.Query(query, args...)
	if err != nil {
		return d.fail(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return d.fail(op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return d.fail(op, err)
	}
	return nil
}
