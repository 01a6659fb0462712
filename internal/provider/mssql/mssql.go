// Package mssql reads column metadata from a SQL Server mirror of the SAS
// dictionary. Same shape as the postgres backend: fixed DSN, dictionary
// scoping by base-name filter only.
package mssql

import (
	"context"
	"errors"

	_ "github.com/microsoft/go-mssqldb"

	"sascols/internal/provider"
)

const columnsQuery = `
SELECT column_name, description, ordinal_position, data_type,
       character_maximum_length, format_name, format_length, format_decimal,
       informat_name, informat_length, informat_decimal, indexed
  FROM dictionary.columns
 WHERE table_name = @p1
 ORDER BY ordinal_position`

func init() {
	provider.Register("mssql", Open)
}

func Open(ctx context.Context, cfg provider.Config) (provider.Conn, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mssql provider requires a DSN (-dsn flag or DSN env var)")
	}
	return provider.OpenSQL(ctx, "sqlserver", cfg.DSN, columnsQuery)
}
