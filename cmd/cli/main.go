package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/shaderdeps/internal/app"
	"github.com/vk/shaderdeps/internal/cli"
	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/fsloader"
	"github.com/vk/shaderdeps/internal/hcl_adapter"
	"github.com/vk/shaderdeps/internal/registry"
)

// main is the entrypoint for the shaderdeps application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	shaderApp := app.NewApp(outW, errW, appConfig, newLoader(appConfig))
	defer shaderApp.Close()

	return shaderApp.Run(context.Background())
}

// newLoader picks the source loader for the configured origin.
func newLoader(appConfig *app.Config) config.Loader {
	switch {
	case appConfig.ManifestPath != "":
		return hcl_adapter.NewLoader()
	case appConfig.SourceDir != "":
		return fsloader.NewLoader(appConfig.Extensions...)
	default:
		return registry.NewModuleLoader(app.CoreModules()...)
	}
}
