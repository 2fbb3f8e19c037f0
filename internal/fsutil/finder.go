// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path"
	"sort"
)

// FindFilesByExtension recursively searches root within fsys for all files
// whose extension is one of exts. The returned slash-separated paths are
// sorted so that callers register sources in a stable order.
func FindFilesByExtension(fsys fs.FS, root string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		panic("at least one extension is required")
	}
	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if ext == "" {
			panic("extension must not be empty")
		}
		want[ext] = true
	}

	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && want[path.Ext(d.Name())] {
			files = append(files, p)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
