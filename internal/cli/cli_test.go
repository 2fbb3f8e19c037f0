package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shaderdeps/internal/app"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		env  map[string]string
		want app.Config
	}{
		{
			name: "defaults",
			want: app.Config{Command: "check", LogFormat: "text", LogLevel: "warn", DiagFormat: "caret"},
		},
		{
			name: "command and target",
			args: []string{"-src", "shaders", "-ext", ".glsl, .hh", "resolve", "a.glsl"},
			want: app.Config{
				SourceDir: "shaders", Extensions: []string{".glsl", ".hh"},
				Command: "resolve", Target: "a.glsl",
				LogFormat: "text", LogLevel: "warn", DiagFormat: "caret",
			},
		},
		{
			name: "environment defaults",
			env: map[string]string{
				"SHADERDEPS_MANIFEST":        "shaders.hcl",
				"SHADERDEPS_LOG_LEVEL":       "debug",
				"SHADERDEPS_MATERIAL_PREFIX": "node_",
			},
			args: []string{"functions"},
			want: app.Config{
				ManifestPath: "shaders.hcl", MaterialPrefix: "node_", Command: "functions",
				LogFormat: "text", LogLevel: "debug", DiagFormat: "caret",
			},
		},
		{
			name: "flags override environment",
			env:  map[string]string{"SHADERDEPS_DIAG_FORMAT": "hcl", "SHADERDEPS_LOG_FORMAT": "json"},
			args: []string{"-diag-format", "CARET", "-log-level", "Error", "graph"},
			want: app.Config{Command: "graph", LogFormat: "json", LogLevel: "error", DiagFormat: "caret"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, exit)
			if diff := cmp.Diff(tc.want, *cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-manifest")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined: -nope"},
		{"too many args", []string{"resolve", "a.glsl", "b.glsl"}, "too many arguments: resolve a.glsl b.glsl"},
		{"missing target", []string{"builtins"}, `command "builtins" requires a source name`},
		{"unknown command", []string{"compile"}, `unknown command "compile"`},
		{"bad log format", []string{"-log-format", "xml"}, "invalid log format"},
		{"both origins", []string{"-src", "a", "-manifest", "b"}, "cannot be used together"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
