package app

import (
	"github.com/vk/shaderdeps/internal/registry"
	"github.com/vk/shaderdeps/modules/draw"
	"github.com/vk/shaderdeps/modules/gpu"
)

// CoreModules returns the shader libraries compiled into the binary.
func CoreModules() []registry.Module {
	return []registry.Module{
		&gpu.Module{},
		&draw.Module{},
	}
}
