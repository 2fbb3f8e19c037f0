// Package fsloader builds source manifests from directories and embedded
// file systems. Each file is registered under its base name, which is the
// name REQUIRE directives use.
package fsloader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/ctxlog"
	"github.com/vk/shaderdeps/internal/fsutil"
)

// DefaultExtensions are the file types picked up when none are configured.
var DefaultExtensions = []string{".glsl", ".h", ".hh"}

// Loader is the directory implementation of the config.Loader interface.
type Loader struct {
	Extensions []string
}

// NewLoader creates a directory loader for the given extensions, or
// DefaultExtensions when none are given.
func NewLoader(exts ...string) *Loader {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return &Loader{Extensions: exts}
}

// Load registers every matching file below each path. A path may also name a
// single file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Directory loader started.", "path_count", len(paths))

	m := config.NewManifest()
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", p, err)
		}

		if !info.IsDir() {
			text, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", p, err)
			}
			if err := m.Add(filepath.Base(p), p, string(text)); err != nil {
				return nil, err
			}
			continue
		}

		if err := AddFS(m, os.DirFS(p), ".", p, l.Extensions...); err != nil {
			return nil, err
		}
	}

	if m.Len() == 0 {
		logger.Warn("No shader sources found.", "paths", paths, "extensions", l.Extensions)
	}
	logger.Debug("Directory loading complete.", "sources", m.Len())
	return m, nil
}

// AddFS registers every file below root in fsys whose extension is in exts.
// Diagnostics show the files as displayDir joined with their path in fsys.
func AddFS(m *config.Manifest, fsys fs.FS, root, displayDir string, exts ...string) error {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	files, err := fsutil.FindFilesByExtension(fsys, root, exts...)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", displayDir, err)
	}
	for _, f := range files {
		text, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f, err)
		}
		if err := m.Add(path.Base(f), filepath.Join(displayDir, filepath.FromSlash(f)), string(text)); err != nil {
			return err
		}
	}
	return nil
}
