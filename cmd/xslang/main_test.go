package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var driverTestdata = filepath.Join("..", "..", "pkg", "driver", "testdata")

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, cliToolVersion+"\n", out)
}

func TestRunPrintsResult(t *testing.T) {
	code, out, errOut := runCLI(t, "run", filepath.Join(driverTestdata, "programs", "counter.json"))
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "42\n", out)
}

func TestRunReportsFailures(t *testing.T) {
	code, out, errOut := runCLI(t, "run", "--no-color",
		filepath.Join(driverTestdata, "programs", "missing.json"),
		filepath.Join(driverTestdata, "programs", "counter.json"),
	)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "runtime: 1:1 UndefinedVariable: Cannot find 'missing' in scope")
	assert.NotContains(t, errOut, "programs failed")
	// Later programs still run.
	assert.Equal(t, "42\n", out)
}

func TestRunUsesConfigPrograms(t *testing.T) {
	code, out, errOut := runCLI(t, "run", "--config", filepath.Join(driverTestdata, "xslang.yml"))
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "42\n", out)
}

func TestRunWithoutPrograms(t *testing.T) {
	code, _, errOut := runCLI(t, "run")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no programs to run")
}

func TestRunStepBudgetFlag(t *testing.T) {
	code, out, errOut := runCLI(t, "run", "--max-steps", "3", filepath.Join(driverTestdata, "programs", "counter.json"))
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "step budget exceeded")
}

func TestRunRejectsBadEnvironment(t *testing.T) {
	t.Setenv("XSLANG_MAX_DEPTH", "deep")
	code, _, errOut := runCLI(t, "run", filepath.Join(driverTestdata, "programs", "counter.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "XSLANG_MAX_DEPTH")
}

func TestRunLoadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("XSLANG_MAX_STEPS=2\n"), 0o644))
	t.Setenv("XSLANG_MAX_STEPS", "")
	require.NoError(t, os.Unsetenv("XSLANG_MAX_STEPS"))

	code, _, errOut := runCLI(t, "run", "--env-file", envFile, filepath.Join(driverTestdata, "programs", "counter.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "step budget exceeded")
}
