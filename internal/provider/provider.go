// Package provider models the external schema provider: given a dataset
// directory and a base file name, return the column-schema rows the host's
// connectivity driver reports for that dataset.
//
// The provider is a hard external dependency. This package never parses the
// dataset format itself; it only defines the row shape, the cursor contract,
// and a registry of connectivity backends (odbc, postgres, mssql, sqlite).
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Column is one schema row: one column of one dataset, with the twelve fields
// the provider's columns rowset carries.
type Column struct {
	Name            string // COLUMN_NAME
	Description     string // DESCRIPTION (the column label)
	Ordinal         int    // ORDINAL_POSITION, 1-based
	DataType        int    // DATA_TYPE numeric code
	MaxLength       int    // CHARACTER_MAXIMUM_LENGTH
	FormatName      string // FORMAT_NAME
	FormatLength    int    // FORMAT_LENGTH
	FormatDecimal   int    // FORMAT_DECIMAL
	InformatName    string // INFORMAT_NAME
	InformatLength  int    // INFORMAT_LENGTH
	InformatDecimal int    // INFORMAT_DECIMAL
	Indexed         bool   // INDEXED
}

// Cursor iterates schema rows, positioned before the first row.
//
// Usage follows database/sql: call Next until it returns false, then check
// Err. Close is safe to call at any point and must always be called.
type Cursor interface {
	Next() bool
	Column() Column
	Err() error
	Close() error
}

// Conn is a provider connection scoped to one dataset directory.
type Conn interface {
	// Columns returns a cursor over the schema rows for the dataset whose
	// base file name (no extension) is base.
	Columns(ctx context.Context, base string) (Cursor, error)
	Close() error
}

// Config is the minimal input a backend factory needs.
//
// Dir is the dataset's containing directory; directory-rooted backends (odbc,
// sqlite) scope the connection to it. DSN optionally overrides the backend's
// derived connection string; warehouse-mirror backends (postgres, mssql)
// require it.
type Config struct {
	Dir string
	DSN string
}

// Factory opens a provider connection for one dataset directory.
type Factory func(ctx context.Context, cfg Config) (Conn, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers a backend under a kind (e.g. "odbc", "sqlite").
//
// Call Register from an init() function in a backend package. Registering an
// empty kind, a nil factory, or the same kind twice panics: backend selection
// must never be ambiguous.
func Register(kind string, f Factory) {
	if kind == "" {
		panic("provider: Register with empty kind")
	}
	if f == nil {
		panic("provider: Register with nil factory for " + kind)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[kind]; dup {
		panic("provider: Register called twice for " + kind)
	}
	factories[kind] = f
}

// Registered reports whether a backend of the given kind is available. This
// backs the startup precondition check: an audit run refuses to start when
// the requested provider is not compiled in.
func Registered(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[kind]
	return ok
}

// Kinds returns the registered backend kinds, sorted, for error messages.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Open constructs a connection using the registered backend of the given kind.
func Open(ctx context.Context, kind string, cfg Config) (Conn, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("provider: unknown kind %q (registered: %s)",
			kind, strings.Join(Kinds(), ", "))
	}
	return f(ctx, cfg)
}

// Error carries the structured message collection a connectivity driver can
// surface for one failed operation. Backends whose drivers report multiple
// diagnostic records wrap them here so every message reaches the console.
type Error struct {
	Op       string   // failing operation, e.g. "connect", "columns"
	Messages []string // every message the driver surfaced
	Err      error    // underlying driver error, if any
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return e.Op + ": " + strings.Join(e.Messages, "; ")
	}
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": provider error"
}

func (e *Error) Unwrap() error { return e.Err }

// Messages flattens err into every provider message it carries: an *Error's
// message collection when present, each branch of an errors.Join chain, and
// otherwise the raw error text. A nil error yields nil.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var pe *Error
	if errors.As(err, &pe) && len(pe.Messages) > 0 {
		return pe.Messages
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, sub := range joined.Unwrap() {
			out = append(out, Messages(sub)...)
		}
		if len(out) > 0 {
			return out
		}
	}

	return []string{err.Error()}
}
