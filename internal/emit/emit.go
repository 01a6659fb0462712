// Package emit writes output records to a stream. The stream is normally
// stdout; consumers redirect it into grid viewers or delimited-file loaders,
// so every encoding keeps one record per unit (line or message) and performs
// no transformation of its own.
package emit

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sascols/internal/report"
)

// Encoder writes records one at a time. Close flushes whatever the encoding
// buffers; it does not close the underlying writer.
type Encoder interface {
	Encode(report.Record) error
	Close() error
}

// Formats lists the supported encodings for flag help and error messages.
func Formats() []string { return []string{"jsonl", "csv", "msgpack"} }

// New constructs an encoder for the named format writing to w.
//
//   - "jsonl" (default when format is empty): one JSON object per line
//   - "csv": header row with the record labels, then one row per record
//   - "msgpack": one msgpack map per record, for binary consumers
func New(w io.Writer, format string) (Encoder, error) {
	switch format {
	case "", "jsonl":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return &jsonEncoder{enc: enc}, nil
	case "csv":
		return &csvEncoder{w: csv.NewWriter(w)}, nil
	case "msgpack":
		return &msgpackEncoder{enc: msgpack.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (supported: jsonl, csv, msgpack)", format)
	}
}

type jsonEncoder struct {
	enc *json.Encoder
}

func (e *jsonEncoder) Encode(r report.Record) error { return e.enc.Encode(r) }
func (e *jsonEncoder) Close() error                 { return nil }

// csvHeader is the emission-order labels; it matches report.Record's fields.
var csvHeader = []string{
	"File name", "Column", "Label", "Pos", "Type", "Length",
	"Format", "Informat", "Indexed", "Path", "File time", "File size",
}

type csvEncoder struct {
	w           *csv.Writer
	wroteHeader bool
}

func (e *csvEncoder) Encode(r report.Record) error {
	if !e.wroteHeader {
		if err := e.w.Write(csvHeader); err != nil {
			return err
		}
		e.wroteHeader = true
	}
	return e.w.Write([]string{
		r.FileName,
		r.Column,
		r.Label,
		strconv.Itoa(r.Pos),
		r.Type,
		strconv.Itoa(r.Length),
		r.Format,
		r.Informat,
		strconv.FormatBool(r.Indexed),
		r.Path,
		r.FileTime.Format(time.RFC3339),
		strconv.FormatInt(r.FileSize, 10),
	})
}

func (e *csvEncoder) Close() error {
	e.w.Flush()
	return e.w.Error()
}

type msgpackEncoder struct {
	enc *msgpack.Encoder
}

func (e *msgpackEncoder) Encode(r report.Record) error { return e.enc.Encode(&r) }
func (e *msgpackEncoder) Close() error                 { return nil }
