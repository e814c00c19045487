package error_handling_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/ipcore"
	"github.com/vk/ipforge/internal/testutil"
)

// A failing generator stops the build before its dependents run, and the
// artifacts of instances that did succeed are not written either.
func TestErrorHandling_GeneratorFailureStopsBuild(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"main.hcl": `
ip "gate" "a_ok" {
  arguments { inputs = 2 }
}

ip "gate" "b_bad" {
  arguments { inputs = 9 }
  depends_on = ["gate.a_ok"]
}

ip "gate" "c_dependent" {
  arguments { inputs = 3 }
  depends_on = ["gate.b_bad"]
}
`,
	}

	result := testutil.RunBuild(t, files, gateModule())

	require.Error(t, result.Err)
	var perr *ipcore.ParamError
	require.True(t, errors.As(result.Err, &perr), "want a ParamError, got %v", result.Err)
	assert.Equal(t, "inputs", perr.Param)
	assert.Contains(t, result.Err.Error(), "ip.gate.b_bad")

	testutil.AssertInstanceGenerated(t, result, "gate", "a_ok")
	assert.NotContains(t, result.LogOutput, "ip=ip.gate.c_dependent")
	assert.NoDirExists(t, result.OutDir)
}
