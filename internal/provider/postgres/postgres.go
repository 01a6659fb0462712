// Package postgres reads column metadata from a warehouse mirror of the SAS
// dictionary (a dictionary.columns table maintained by the site's replication
// jobs). The connection is fixed by DSN, not directory-rooted: a warehouse is
// not a filesystem, so the spec's directory scoping degenerates to the
// base-name filter here.
package postgres

import (
	"context"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sascols/internal/provider"
)

const columnsQuery = `
SELECT column_name, description, ordinal_position, data_type,
       character_maximum_length, format_name, format_length, format_decimal,
       informat_name, informat_length, informat_decimal, indexed
  FROM dictionary.columns
 WHERE table_name = $1
 ORDER BY ordinal_position`

func init() {
	provider.Register("postgres", Open)
}

func Open(ctx context.Context, cfg provider.Config) (provider.Conn, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres provider requires a DSN (-dsn flag or DSN env var)")
	}
	return provider.OpenSQL(ctx, "pgx", cfg.DSN, columnsQuery)
}
