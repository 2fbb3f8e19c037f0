package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertDiagnostic checks that the log output of a run contains a rendered
// diagnostic with the given location prefix and summary, for example
// "lib/a.glsl:2:17" and "error: Dependency not found".
func AssertDiagnostic(t *testing.T, result *HarnessResult, location, summary string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.HasSuffix(strings.SplitN(line, " ", 2)[0], location) && strings.Contains(line, summary) {
			return
		}
	}
	require.Failf(t, "diagnostic not found",
		"expected a diagnostic at %q with %q in log output:\n%s", location, summary, result.LogOutput)
}

// AssertStartupFailed checks that the app could not be built.
func AssertStartupFailed(t *testing.T, result *HarnessResult, reason string) {
	t.Helper()

	require.Error(t, result.Err)
	require.Nil(t, result.App, "app must not be returned after a startup panic")
	require.Contains(t, result.Err.Error(), "application startup panicked")
	require.Contains(t, result.Err.Error(), reason)
}
