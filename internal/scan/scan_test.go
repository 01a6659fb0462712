package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// mustWrite creates a file (and any parent directories) with small content.
func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
}

// TestWalk_CountsMatchesAtAnyDepth verifies the enumerator visits exactly the
// matching files, regardless of nesting depth, and ignores everything else.
func TestWalk_CountsMatchesAtAnyDepth(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	mustWrite(t, filepath.Join(tmp, "a.sas7bdat"))
	mustWrite(t, filepath.Join(tmp, "sub", "b.sas7bdat"))
	mustWrite(t, filepath.Join(tmp, "sub", "deep", "deeper", "c.sas7bdat"))
	mustWrite(t, filepath.Join(tmp, "sub", "notes.txt"))
	mustWrite(t, filepath.Join(tmp, "readme"))

	var got []string
	err := Walk(tmp, ".sas7bdat", func(e Entry) error {
		got = append(got, e.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 matches, got %d: %v", len(got), got)
	}
}

// TestWalk_ExtensionCaseInsensitive verifies .SAS7BDAT files written on
// case-insensitive systems still match.
func TestWalk_ExtensionCaseInsensitive(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	mustWrite(t, filepath.Join(tmp, "UPPER.SAS7BDAT"))

	n := 0
	if err := Walk(tmp, ".sas7bdat", func(Entry) error { n++; return nil }); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 match, got %d", n)
	}
}

// TestWalk_EntryFields verifies each entry carries path, base name, containing
// directory, and plausible size/mtime.
func TestWalk_EntryFields(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "sub", "claims.sas7bdat")
	mustWrite(t, path)

	var got Entry
	if err := Walk(tmp, "sas7bdat", func(e Entry) error { got = e; return nil }); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	if got.Path != path {
		t.Errorf("Path = %q, want %q", got.Path, path)
	}
	if got.Name != "claims.sas7bdat" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Base != "claims" {
		t.Errorf("Base = %q, want %q", got.Base, "claims")
	}
	if got.Dir != filepath.Join(tmp, "sub") {
		t.Errorf("Dir = %q", got.Dir)
	}
	if got.Size != 1 {
		t.Errorf("Size = %d, want 1", got.Size)
	}
	if got.ModTime.IsZero() {
		t.Error("ModTime is zero")
	}
}

// TestWalk_MissingRoot verifies a nonexistent root fails the walk.
func TestWalk_MissingRoot(t *testing.T) {
	t.Parallel()

	err := Walk(filepath.Join(t.TempDir(), "no-such-dir"), ".sas7bdat", func(Entry) error {
		t.Fatal("callback must not run")
		return nil
	})
	if err == nil {
		t.Fatal("want error for missing root")
	}
}

// TestWalk_CallbackErrorStopsWalk verifies fn errors propagate and stop
// enumeration.
func TestWalk_CallbackErrorStopsWalk(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	mustWrite(t, filepath.Join(tmp, "a.sas7bdat"))
	mustWrite(t, filepath.Join(tmp, "b.sas7bdat"))

	boom := errors.New("boom")
	calls := 0
	err := Walk(tmp, ".sas7bdat", func(Entry) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}
}
