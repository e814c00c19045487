package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertInstanceGenerated checks the log output for the completion line of
// one ip instance.
func AssertInstanceGenerated(t *testing.T, result *HarnessResult, coreType, name string) {
	t.Helper()

	want := fmt.Sprintf("ip=ip.%s.%s", coreType, name)
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, "Generated IP instance") && strings.Contains(line, want) {
			return
		}
	}
	require.Fail(t, "instance not generated", "no completion log line for ip.%s.%s", coreType, name)
}

// ReadArtifact returns the content of a file written by the build, relative
// to the build's output directory.
func ReadArtifact(t *testing.T, result *HarnessResult, rel string) string {
	t.Helper()
	require.NoError(t, result.Err)
	data, err := os.ReadFile(filepath.Join(result.OutDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
