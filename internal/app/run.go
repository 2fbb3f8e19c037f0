package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/shaderdeps/internal/ctxlog"
)

// Run executes the configured command against the loaded registry.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command, "target", a.config.Target)

	if a.config.Target != "" && !a.registry.Has(a.config.Target) {
		return fmt.Errorf("unknown shader source %q", a.config.Target)
	}

	var err error
	switch a.config.Command {
	case CommandCheck:
		err = a.runCheck(ctx)
	case CommandResolve:
		err = a.runResolve()
	case CommandBuiltins:
		_, err = fmt.Fprintln(a.outW, a.registry.Builtins(a.config.Target))
	case CommandFunctions:
		err = a.runFunctions()
	case CommandDependents:
		for _, name := range a.registry.Dependents(a.config.Target) {
			if _, err = fmt.Fprintln(a.outW, name); err != nil {
				break
			}
		}
	case CommandGraph:
		err = a.runGraph()
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}
	if err != nil {
		return fmt.Errorf("command %s failed: %w", a.config.Command, err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runCheck(ctx context.Context) error {
	if err := a.registry.Validate(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.outW, "%d sources, %d functions, %d errors, %d warnings\n",
		len(a.registry.Units()), len(a.registry.Functions()),
		a.reporter.ErrorCount(), a.reporter.WarningCount())
	return err
}

// runResolve prints the ordered fragments of the target, dependencies first.
func (a *App) runResolve() error {
	for _, fragment := range a.registry.ResolvedSource(a.config.Target) {
		if _, err := fmt.Fprint(a.outW, fragment); err != nil {
			return err
		}
		if fragment != "" && !strings.HasSuffix(fragment, "\n") {
			if _, err := fmt.Fprintln(a.outW); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *App) runFunctions() error {
	for _, fn := range a.registry.Functions() {
		if _, err := fmt.Fprintf(a.outW, "%s  %s\n", fn.Signature(), fn.Filename()); err != nil {
			return err
		}
	}
	return nil
}

// runGraph writes the dependency graph, highlighting the target and its
// dependencies when one is set.
func (a *App) runGraph() error {
	var highlight []string
	if a.config.Target != "" {
		highlight = append(highlight, a.config.Target)
		for _, d := range a.registry.Lookup(a.config.Target).Dependencies() {
			highlight = append(highlight, d.Name)
		}
	}
	return a.registry.Graph().WriteDOT(a.outW, highlight...)
}
