// Package hcl_adapter loads source manifests written in HCL.
package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/ctxlog"
	"github.com/vk/shaderdeps/internal/fsloader"
	"github.com/vk/shaderdeps/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every manifest found in paths, which may be .hcl files or
// directories containing them, and merges their sources into one manifest.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	manifest := config.NewManifest()
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		dir, err := filepath.Abs(filepath.Dir(file))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve directory of %s: %w", file, err)
		}
		evalCtx := newEvalContext(dir)

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, src := range root.Sources {
			if err := l.addSource(ctx, manifest, src, dir, evalCtx); err != nil {
				return nil, fmt.Errorf("source %q in %s: %w", src.Name, file, err)
			}
		}
		for _, d := range root.Directories {
			p := resolvePath(dir, d.Path)
			if err := fsloader.AddFS(manifest, os.DirFS(p), ".", p, d.Extensions...); err != nil {
				return nil, fmt.Errorf("directory %q in %s: %w", d.Path, file, err)
			}
		}
	}

	logger.Debug("HCL loading complete.", "sources", manifest.Len())
	return manifest, nil
}

func (l *Loader) addSource(ctx context.Context, m *config.Manifest, src *sourceBlock, dir string, evalCtx *hcl.EvalContext) error {
	path := ""
	if src.Path != nil {
		path = resolvePath(dir, *src.Path)
	}

	if isExprDefined(ctx, src.Text, "text") {
		text, err := evalString(src.Text, evalCtx)
		if err != nil {
			return err
		}
		if path == "" {
			path = src.Name
		}
		return m.Add(src.Name, path, text)
	}

	if path == "" {
		return fmt.Errorf("either path or text must be set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	return m.Add(src.Name, path, string(data))
}

// resolvePath joins relative paths onto the manifest directory.
func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, p)
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		files, err := fsutil.FindFilesByExtension(os.DirFS(path), ".", ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(filepath.Join(path, filepath.FromSlash(f)))
		}
	}
	return allFiles, nil
}
