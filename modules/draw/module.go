// Package draw embeds the draw engine's shared header and common view and
// math libraries.
package draw

import (
	"embed"

	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/fsloader"
)

//go:embed shaders
var shaders embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds every embedded source to the manifest.
func (m *Module) Register(manifest *config.Manifest) error {
	return fsloader.AddFS(manifest, shaders, "shaders", "modules/draw")
}
