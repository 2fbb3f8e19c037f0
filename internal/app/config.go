package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/shaderdeps/internal/diag"
)

// Command names accepted by Run.
const (
	CommandCheck      = "check"
	CommandResolve    = "resolve"
	CommandBuiltins   = "builtins"
	CommandFunctions  = "functions"
	CommandDependents = "dependents"
	CommandGraph      = "graph"
)

// commandsWithTarget lists the commands that require a source name.
var commandsWithTarget = map[string]bool{
	CommandResolve:    true,
	CommandBuiltins:   true,
	CommandDependents: true,
}

var knownCommands = map[string]bool{
	CommandCheck:      true,
	CommandResolve:    true,
	CommandBuiltins:   true,
	CommandFunctions:  true,
	CommandDependents: true,
	CommandGraph:      true,
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string   // hcl manifest file or directory
	SourceDir    string   // directory of shader sources
	Extensions   []string // file types picked up from SourceDir

	MaterialPrefix string

	Command string
	Target  string

	LogFormat  string
	LogLevel   string
	DiagFormat string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath != "" && cfg.SourceDir != "" {
		return nil, errors.New("a manifest and a source directory cannot be used together")
	}

	if cfg.Command == "" {
		cfg.Command = CommandCheck
	}
	if !knownCommands[cfg.Command] {
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if commandsWithTarget[cfg.Command] && cfg.Target == "" {
		return nil, fmt.Errorf("command %q requires a source name", cfg.Command)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "error":
		cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	default:
		return nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.LogFormat != "" && cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.DiagFormat == "" {
		cfg.DiagFormat = string(diag.FormatCaret)
	}
	if _, err := diag.ParseFormat(cfg.DiagFormat); err != nil {
		return nil, err
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return nil, fmt.Errorf("invalid extension %q: must start with '.'", ext)
		}
	}

	return &cfg, nil
}

// paths returns the loader paths for the configured origin.
func (c *Config) paths() []string {
	switch {
	case c.ManifestPath != "":
		return []string{c.ManifestPath}
	case c.SourceDir != "":
		return []string{c.SourceDir}
	default:
		return nil
	}
}
