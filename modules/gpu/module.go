// Package gpu embeds the GPU module's shared header, common utilities and
// material node libraries.
package gpu

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
	return fsloader.AddFS(manifest, shaders, "shaders", "modules/gpu")
}
