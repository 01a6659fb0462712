// Package sqlite reads column metadata from a per-directory SQLite catalog.
//
// Sites that cannot install the SAS connectivity driver on the audit host
// mirror each dataset directory's dictionary into a dictionary.db file (a
// single "columns" table with the twelve provider fields). This backend reads
// those catalogs read-only; it is also the fixture backend the pipeline tests
// run against.
package sqlite

import (
	"context"
	"path/filepath"

	_ "modernc.org/sqlite"

	"sascols/internal/provider"
)

// CatalogName is the catalog file expected inside each dataset directory.
const CatalogName = "dictionary.db"

const columnsQuery = `
SELECT column_name, description, ordinal_position, data_type,
       character_maximum_length, format_name, format_length, format_decimal,
       informat_name, informat_length, informat_decimal, indexed
  FROM columns
 WHERE table_name = ?
 ORDER BY ordinal_position`

func init() {
	provider.Register("sqlite", Open)
}

// Open connects to the directory's dictionary catalog. cfg.DSN, when set,
// overrides the derived per-directory path (losing directory scoping; only
// sensible for single-directory audits).
func Open(ctx context.Context, cfg provider.Config) (provider.Conn, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file:" + filepath.Join(cfg.Dir, CatalogName) + "?mode=ro"
	}
	return provider.OpenSQL(ctx, "sqlite", dsn, columnsQuery)
}
