package provider

import (
	"context"
	"database/sql"
	"fmt"
)

// OpenSQL opens a database/sql-backed provider connection. Every shipped
// backend funnels through here: the backend supplies the driver name, the
// DSN, and the columns query (with the backend's placeholder style); this
// file owns row scanning and resource release.
//
// The query must select exactly the twelve provider fields, in rowset order:
// COLUMN_NAME, DESCRIPTION, ORDINAL_POSITION, DATA_TYPE,
// CHARACTER_MAXIMUM_LENGTH, FORMAT_NAME, FORMAT_LENGTH, FORMAT_DECIMAL,
// INFORMAT_NAME, INFORMAT_LENGTH, INFORMAT_DECIMAL, INDEXED, and take the
// dataset base name as its only parameter.
func OpenSQL(ctx context.Context, driver, dsn, query string) (Conn, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &Error{Op: "open", Err: err, Messages: []string{err.Error()}}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &Error{Op: "connect", Err: err, Messages: []string{err.Error()}}
	}
	return &sqlConn{db: db, query: query}, nil
}

type sqlConn struct {
	db    *sql.DB
	query string
}

func (c *sqlConn) Columns(ctx context.Context, base string) (Cursor, error) {
	rows, err := c.db.QueryContext(ctx, c.query, base)
	if err != nil {
		return nil, &Error{Op: "columns", Err: err, Messages: []string{err.Error()}}
	}
	return &sqlCursor{rows: rows}, nil
}

func (c *sqlConn) Close() error { return c.db.Close() }

// sqlCursor adapts *sql.Rows to Cursor. Nullable provider fields (labels and
// format metadata are frequently absent) scan through sql.Null* and collapse
// to Go zero values.
type sqlCursor struct {
	rows *sql.Rows
	cur  Column
	err  error
}

func (c *sqlCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		return false
	}

	var (
		col      Column
		desc     sql.NullString
		maxLen   sql.NullInt64
		fmtName  sql.NullString
		fmtLen   sql.NullInt64
		fmtDec   sql.NullInt64
		infName  sql.NullString
		infLen   sql.NullInt64
		infDec   sql.NullInt64
		indexed  sql.NullBool
	)
	if err := c.rows.Scan(
		&col.Name, &desc, &col.Ordinal, &col.DataType, &maxLen,
		&fmtName, &fmtLen, &fmtDec,
		&infName, &infLen, &infDec,
		&indexed,
	); err != nil {
		c.err = fmt.Errorf("scan column row: %w", err)
		return false
	}

	col.Description = desc.String
	col.MaxLength = int(maxLen.Int64)
	col.FormatName = fmtName.String
	col.FormatLength = int(fmtLen.Int64)
	col.FormatDecimal = int(fmtDec.Int64)
	col.InformatName = infName.String
	col.InformatLength = int(infLen.Int64)
	col.InformatDecimal = int(infDec.Int64)
	col.Indexed = indexed.Bool

	c.cur = col
	return true
}

func (c *sqlCursor) Column() Column { return c.cur }
func (c *sqlCursor) Err() error     { return c.err }
func (c *sqlCursor) Close() error   { return c.rows.Close() }
