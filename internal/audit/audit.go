// Package audit runs the column-metadata reporting pipeline: enumerate
// dataset files, read each file's schema through the provider, map rows to
// output records, emit.
//
// Processing is strictly sequential, one file start-to-finish before the
// next. Failures are recovered at file granularity: the offending file gets a
// console diagnostic and the run moves on. Only a broken enumeration (bad
// root) fails the run itself.
package audit

import (
	"context"
	"log"
	"os"

	"sascols/internal/emit"
	"sascols/internal/metrics"
	"sascols/internal/provider"
	"sascols/internal/report"
	"sascols/internal/scan"
)

// Runner holds one run's configuration. Zero-value fields other than Root,
// Ext, Provider and Enc are optional.
type Runner struct {
	Root     string       // directory tree to scan
	Ext      string       // dataset file extension, e.g. ".sas7bdat"
	Provider string       // registered provider backend kind
	DSN      string       // optional DSN override for catalog-backed providers
	Enc      emit.Encoder // destination for output records
	Log      *log.Logger  // diagnostics; defaults to stderr
}

// Stats summarizes one run.
type Stats struct {
	Files   int // dataset files visited
	Failed  int // files that produced a diagnostic instead of (only) records
	Columns int // output records emitted
}

// Run executes the pipeline. Per-file provider failures and empty schema
// results are logged and skipped; the returned error is reserved for a failed
// enumeration of the root itself.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	logger := r.Log
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	var st Stats
	err := scan.Walk(r.Root, r.Ext, func(e scan.Entry) error {
		st.Files++

		n, err := r.processFile(ctx, e)
		st.Columns += n // rows already emitted count even when the file later failed

		switch {
		case err != nil:
			st.Failed++
			metrics.Inc(metricFiles, 1, metrics.Labels{"status": "failed"})
			for _, msg := range provider.Messages(err) {
				logger.Printf("%s: %s", e.Name, msg)
			}
		case n == 0:
			// The provider had nothing for this file: unreadable dataset or a
			// base name it does not know. One diagnostic, keep going.
			st.Failed++
			metrics.Inc(metricFiles, 1, metrics.Labels{"status": "failed"})
			logger.Printf("error opening %s", e.Name)
		default:
			metrics.Inc(metricFiles, 1, metrics.Labels{"status": "ok"})
			metrics.Inc(metricColumns, float64(n), nil)
		}
		return nil
	})
	return st, err
}

// Metric names must match what the datadog backend buckets on.
const (
	metricFiles   = "sascols_files_total"
	metricColumns = "sascols_columns_total"
)

// processFile opens a provider connection scoped to the file's containing
// directory, iterates its columns cursor, and emits one record per row.
// Connection and cursor are released on every exit path.
func (r *Runner) processFile(ctx context.Context, e scan.Entry) (emitted int, err error) {
	conn, err := provider.Open(ctx, r.Provider, provider.Config{Dir: e.Dir, DSN: r.DSN})
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cur, err := conn.Columns(ctx, e.Base)
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	for cur.Next() {
		if err := r.Enc.Encode(report.Build(cur.Column(), e)); err != nil {
			return emitted, err
		}
		emitted++
	}
	return emitted, cur.Err()
}
