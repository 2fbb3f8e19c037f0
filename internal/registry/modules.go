package registry

import (
	"context"
	"fmt"

	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/ctxlog"
)

// Module is the interface that compiled-in shader libraries implement to
// contribute their sources.
type Module interface {
	Register(m *config.Manifest) error
}

// ModuleLoader is a config.Loader over compiled-in modules. It ignores the
// paths it is given.
type ModuleLoader struct {
	modules []Module
}

// NewModuleLoader creates a loader that registers the given modules in order.
func NewModuleLoader(modules ...Module) *ModuleLoader {
	return &ModuleLoader{modules: modules}
}

// Load registers every module into a fresh manifest.
func (l *ModuleLoader) Load(ctx context.Context, _ ...string) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	m := config.NewManifest()
	for _, mod := range l.modules {
		before := m.Len()
		if err := mod.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register module %T: %w", mod, err)
		}
		logger.Debug("Registered shader module.", "module", fmt.Sprintf("%T", mod), "sources", m.Len()-before)
	}
	return m, nil
}
