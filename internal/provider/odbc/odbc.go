// Package odbc reaches the SAS schema provider through the host's ODBC
// registration. The driver owns all parsing of the dataset format; this
// backend only hands it a connection string rooted at the dataset's
// containing directory and reads the columns rowset back.
//
// This is the default backend: the SAS local data provider is installed and
// registered on the host per SAS's own instructions, and ODBC is the one
// connectivity surface it exposes that Go can bind to.
package odbc

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/alexbrainman/odbc"

	"sascols/internal/provider"
)

// defaultDriver is the registered ODBC driver name for the SAS local data
// provider. Override with SAS_ODBC_DRIVER when a site registered it under a
// different name.
const defaultDriver = "SAS Local Data Provider"

const columnsQuery = `
SELECT COLUMN_NAME, DESCRIPTION, ORDINAL_POSITION, DATA_TYPE,
       CHARACTER_MAXIMUM_LENGTH, FORMAT_NAME, FORMAT_LENGTH, FORMAT_DECIMAL,
       INFORMAT_NAME, INFORMAT_LENGTH, INFORMAT_DECIMAL, INDEXED
  FROM COLUMNS
 WHERE TABLE_NAME = ?
 ORDER BY ORDINAL_POSITION`

func init() {
	provider.Register("odbc", Open)
}

// Open connects the host ODBC driver to one dataset directory.
//
// cfg.DSN, when set, is used verbatim as the ODBC connection string (the
// caller is then responsible for rooting it at the right directory).
// Otherwise the string is built from the driver name and cfg.Dir.
func Open(ctx context.Context, cfg provider.Config) (provider.Conn, error) {
	dsn := cfg.DSN
	if dsn == "" {
		driver := strings.TrimSpace(os.Getenv("SAS_ODBC_DRIVER"))
		if driver == "" {
			driver = defaultDriver
		}
		dsn = fmt.Sprintf("Driver={%s};DBQ=%s;ReadOnly=1", driver, cfg.Dir)
	}
	return provider.OpenSQL(ctx, "odbc", dsn, columnsQuery)
}
