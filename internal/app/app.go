package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/ctxlog"
	"github.com/vk/shaderdeps/internal/diag"
	"github.com/vk/shaderdeps/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	reporter *diag.Reporter
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It loads every source
// through loader and builds the shader registry. Command output goes to outW;
// logs and diagnostics go to logW.
//
// Failing to load sources or to resolve their dependencies is a fatal
// startup error and panics.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifest, err := loader.Load(ctx, appConfig.paths()...)
	if err != nil {
		panic(fmt.Errorf("failed to load shader sources: %w", err))
	}
	logger.Debug("Shader sources loaded.", "count", manifest.Len())

	format, err := diag.ParseFormat(appConfig.DiagFormat)
	if err != nil {
		format = diag.FormatCaret
	}
	reporter := diag.NewReporter(logW, format, logger)

	reg, err := registry.New(ctx, manifest, registry.Options{
		MaterialPrefix: appConfig.MaterialPrefix,
		Reporter:       reporter,
	})
	if err != nil {
		// The shader corpus is a build-time invariant; a broken dependency
		// tree must halt startup.
		panic(fmt.Errorf("failed to resolve shader dependencies: %w", err))
	}

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		reporter: reporter,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close releases the registry.
func (a *App) Close() {
	a.registry.Close()
}
