// Command sascols reports per-column metadata for SAS dataset files.
//
// Given one directory, it recursively enumerates dataset files (.sas7bdat by
// default), asks the configured schema provider for each file's column
// schema, and writes one structured record per column to stdout: column name,
// label, ordinal position, translated type, storage length, assembled format
// and informat strings, indexed flag, plus the file's name, path, timestamp
// and size. Diagnostics go to stderr; redirect stdout into a grid viewer or a
// delimited-file loader.
//
// The tool never parses the dataset format itself. Column metadata comes from
// a provider backend selected with -provider:
//
//   - odbc (default): the host-registered SAS ODBC provider, connection
//     rooted at each file's containing directory
//   - sqlite: a per-directory dictionary.db catalog (offline audits)
//   - postgres, mssql: a warehouse mirror of the SAS dictionary
//
// # DSN overrides
//
// The warehouse backends need a DSN; the directory-rooted backends derive one
// but accept an override. Precedence is strict and deterministic:
//  1. -dsn flag
//  2. DSN environment variable
//  3. backend default (derived from the dataset directory, where applicable)
//
// # Exit codes
//
// 0 on normal completion, including runs where individual files failed and
// were logged. 1 when the invocation itself is unusable: wrong argument
// count, missing directory, or an unregistered provider backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sascols/internal/audit"
	"sascols/internal/emit"
	"sascols/internal/metrics"
	"sascols/internal/metrics/datadog"
	"sascols/internal/provider"

	// Register all provider backends; -provider picks one at runtime.
	_ "sascols/internal/provider/mssql"
	_ "sascols/internal/provider/odbc"
	_ "sascols/internal/provider/postgres"
	_ "sascols/internal/provider/sqlite"
)

func main() {
	var (
		// flagExt is the dataset file extension to match, case-insensitively.
		// The leading dot is optional.
		flagExt = flag.String("ext", ".sas7bdat", "dataset file extension to match")

		// flagProvider selects the schema provider backend.
		flagProvider = flag.String("provider", "odbc",
			"schema provider backend: "+strings.Join(provider.Kinds(), "|"))

		// flagFormat selects the stdout encoding.
		flagFormat = flag.String("format", "jsonl",
			"output format: "+strings.Join(emit.Formats(), "|"))

		// flagDSN overrides the provider connection string (highest priority;
		// see the DSN precedence rules in the command doc).
		flagDSN = flag.String("dsn", "", "override the provider DSN (falls back to the DSN env var)")

		// flagMetrics selects the metrics backend. "none" disables metrics;
		// "datadog" buffers run counters and submits them to Datadog
		// (credentials come from the standard DD_* environment variables).
		flagMetrics = flag.String("metrics-backend", "none", "metrics backend: none|datadog")

		// flagVerbose enables a run summary on stderr.
		flagVerbose = flag.Bool("v", false, "log a run summary")
	)
	flag.Usage = usage
	flag.Parse()

	// Exactly one positional argument: the root directory.
	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	root := flag.Arg(0)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "directory not found: %s\n", root)
		os.Exit(1)
	}

	// The provider is an external hard dependency; refuse to start without it.
	if !provider.Registered(*flagProvider) {
		fmt.Fprintf(os.Stderr,
			"schema provider %q is not registered (available: %s)\n"+
				"install the matching connectivity driver, or rebuild with its backend\n",
			*flagProvider, strings.Join(provider.Kinds(), ", "))
		os.Exit(1)
	}

	dsn := resolveDSN(*flagDSN)

	// Metrics backend: nop unless the operator asked for one. The Datadog
	// backend flushes periodically and once more on Close.
	switch *flagMetrics {
	case "", "none":
	case "datadog":
		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName:    "sascols",
			Tags:       datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS")),
			FlushEvery: 60 * time.Second,
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			metrics.SetBackend(b)
			defer func() {
				if err := b.Close(); err != nil {
					log.Printf("metrics: datadog close/flush error: %v", err)
				}
			}()
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", *flagMetrics)
	}

	enc, err := emit.New(os.Stdout, *flagFormat)
	if err != nil {
		log.Fatalf("output: %v", err)
	}

	runner := &audit.Runner{
		Root:     root,
		Ext:      *flagExt,
		Provider: *flagProvider,
		DSN:      dsn,
		Enc:      enc,
	}

	start := time.Now()
	stats, err := runner.Run(context.Background())
	if err != nil {
		log.Fatalf("scan %s: %v", root, err)
	}
	if err := enc.Close(); err != nil {
		log.Fatalf("flush output: %v", err)
	}

	if *flagVerbose {
		log.Printf("done: files=%d failed=%d columns=%d elapsed=%s",
			stats.Files, stats.Failed, stats.Columns, time.Since(start).Round(time.Millisecond))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: sascols [flags] <directory>\n\nflags:\n")
	flag.PrintDefaults()
}

// resolveDSN applies the DSN override precedence: -dsn flag, then the DSN
// environment variable, then empty (backend default).
func resolveDSN(flagDSN string) string {
	if v := strings.TrimSpace(flagDSN); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("DSN"))
}
