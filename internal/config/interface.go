package config

import (
	"context"
)

// Loader is the interface for an origin-specific manifest loader.
type Loader interface {
	// Load reads sources from the given paths and returns them as a
	// format-agnostic manifest.
	Load(ctx context.Context, paths ...string) (*Manifest, error)
}
