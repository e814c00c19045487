package error_handling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/testutil"
)

func TestErrorHandling_RequiredArgumentMissing(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"main.hcl": `
ip "gate" "g" {}
`,
	}

	result := testutil.RunBuild(t, files, gateModule())

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "ip.gate.g")
	assert.Contains(t, result.Err.Error(), `missing required argument "inputs"`)
	assert.NoDirExists(t, result.OutDir)
}

func TestErrorHandling_UnsupportedArgument(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"main.hcl": `
ip "gate" "g" {
  arguments {
    inputs  = 2
    outputs = 1
  }
}
`,
	}

	result := testutil.RunBuild(t, files, gateModule())

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "unsupported argument(s): outputs")
}
