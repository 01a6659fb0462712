// Package scan enumerates dataset files under a directory tree.
//
// The walk is sequential and lazy: entries are handed to the caller one at a
// time, in whatever order the underlying filesystem traversal yields. No
// ordering guarantee is made (and none is needed downstream).
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Entry describes one matched dataset file. Base (the file name without its
// extension) is the lookup key handed to the schema provider.
type Entry struct {
	Path    string    // full path to the file
	Name    string    // file name including extension
	Base    string    // file name without extension
	Dir     string    // containing directory
	ModTime time.Time // last-write timestamp
	Size    int64     // byte length
}

// Walk visits every regular file under root whose extension equals ext and
// calls fn once per match. The extension comparison is case-insensitive:
// dataset trees routinely mix .sas7bdat and .SAS7BDAT depending on which
// system wrote them.
//
// Behavior:
//   - a missing or unreadable root fails the whole walk
//   - unreadable subtrees below the root are skipped, the walk continues
//   - directories and non-regular files never match
//   - fn returning an error stops the walk and surfaces that error
func Walk(root, ext string, fn func(Entry) error) error {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Skip unreadable subtrees; the rest of the tree is still useful.
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fileExt := filepath.Ext(d.Name())
		if !strings.EqualFold(fileExt, ext) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// The file vanished between listing and stat; nothing to report.
			return nil
		}

		return fn(Entry{
			Path:    path,
			Name:    d.Name(),
			Base:    strings.TrimSuffix(d.Name(), fileExt),
			Dir:     filepath.Dir(path),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	})
}
