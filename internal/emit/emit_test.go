package emit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sascols/internal/report"
)

func sampleRecord() report.Record {
	return report.Record{
		FileName: "claims.sas7bdat",
		Column:   "amount",
		Label:    "Claim amount",
		Pos:      3,
		Type:     "NUM",
		Length:   8,
		Format:   "DOLLAR8.2",
		Informat: "COMMA10.",
		Indexed:  true,
		Path:     "/data/claims",
		FileTime: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		FileSize: 4096,
	}
}

// TestNew_UnknownFormat verifies format validation happens at construction.
func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := New(&bytes.Buffer{}, "xml"); err == nil {
		t.Fatal("want error for unsupported format")
	}
}

// TestJSONL verifies one object per line with the documented labels as keys.
func TestJSONL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc, err := New(&buf, "jsonl")
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(sampleRecord()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := enc.Encode(sampleRecord()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %q", len(lines), buf.String())
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &obj); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if obj["File name"] != "claims.sas7bdat" {
		t.Errorf(`obj["File name"] = %v`, obj["File name"])
	}
	if obj["Format"] != "DOLLAR8.2" {
		t.Errorf(`obj["Format"] = %v`, obj["Format"])
	}
	if obj["Indexed"] != true {
		t.Errorf(`obj["Indexed"] = %v`, obj["Indexed"])
	}
	if len(obj) != 12 {
		t.Errorf("want 12 fields, got %d: %v", len(obj), obj)
	}
}

// TestCSV verifies a single header row and stringified field values in
// emission order.
func TestCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc, err := New(&buf, "csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(sampleRecord()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := enc.Encode(sampleRecord()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "File name" || rows[0][11] != "File size" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	got := rows[1]
	want := []string{
		"claims.sas7bdat", "amount", "Claim amount", "3", "NUM", "8",
		"DOLLAR8.2", "COMMA10.", "true", "/data/claims",
		"2024-03-01T12:30:00Z", "4096",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestMsgpack verifies a record decodes back with the same values.
func TestMsgpack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	enc, err := New(&buf, "msgpack")
	if err != nil {
		t.Fatal(err)
	}
	in := sampleRecord()
	if err := enc.Encode(in); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var out report.Record
	if err := msgpack.NewDecoder(&buf).Decode(&out); err != nil {
		t.Fatalf("decode back: %v", err)
	}
	if !out.FileTime.Equal(in.FileTime) {
		t.Errorf("FileTime = %v, want %v", out.FileTime, in.FileTime)
	}
	out.FileTime = in.FileTime
	if out != in {
		t.Fatalf("roundtrip mismatch: %#v != %#v", out, in)
	}
}
