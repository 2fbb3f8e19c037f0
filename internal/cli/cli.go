package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/vk/shaderdeps/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envSettings are the defaults read from SHADERDEPS_* environment variables.
// Flags take precedence over them.
type envSettings struct {
	Manifest       string   `envconfig:"MANIFEST"`
	Src            string   `envconfig:"SRC"`
	Extensions     []string `envconfig:"EXTENSIONS"`
	MaterialPrefix string   `envconfig:"MATERIAL_PREFIX"`
	LogFormat      string   `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"warn"`
	DiagFormat     string   `envconfig:"DIAG_FORMAT" default:"caret"`
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var env envSettings
	if err := envconfig.Process("SHADERDEPS", &env); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment: %v", err)}
	}

	flagSet := flag.NewFlagSet("shaderdeps", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
shaderdeps - Resolves REQUIRE dependencies between GLSL shader sources.

Usage:
  shaderdeps [options] [COMMAND] [NAME]

Commands:
  check              Load and resolve every source, then print a summary (default).
  resolve NAME       Print the sources NAME needs, dependencies first.
  builtins NAME      Print the builtins used by NAME and its dependencies.
  functions          List the material library functions.
  dependents NAME    List the sources that directly require NAME.
  graph [NAME]       Print the dependency graph in DOT format.

Sources come from -manifest, -src, or the libraries compiled into the binary.
Every option can also be set through a SHADERDEPS_* environment variable.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", env.Manifest, "Path to an HCL manifest file or a directory of manifests.")
	srcFlag := flagSet.String("src", env.Src, "Path to a directory of shader sources.")
	extFlag := flagSet.String("ext", strings.Join(env.Extensions, ","), "Comma-separated file extensions picked up by -src.")
	prefixFlag := flagSet.String("material-prefix", env.MaterialPrefix, "File name prefix of material libraries.")
	logFormatFlag := flagSet.String("log-format", env.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", env.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	diagFormatFlag := flagSet.String("diag-format", env.DiagFormat, "Diagnostic output format. Options: 'caret' or 'hcl'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 2 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("too many arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	command, target := flagSet.Arg(0), flagSet.Arg(1)

	var exts []string
	for _, ext := range strings.Split(*extFlag, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}

	config, err := app.NewConfig(app.Config{
		ManifestPath:   *manifestFlag,
		SourceDir:      *srcFlag,
		Extensions:     exts,
		MaterialPrefix: *prefixFlag,
		Command:        command,
		Target:         target,
		LogFormat:      strings.ToLower(*logFormatFlag),
		LogLevel:       strings.ToLower(*logLevelFlag),
		DiagFormat:     strings.ToLower(*diagFormatFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
