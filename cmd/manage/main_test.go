package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordedCall captures one external command invocation.
type recordedCall struct {
	name string
	args []string
}

func newTestCLI(t *testing.T) (*cli, *[]recordedCall) {
	t.Helper()

	var calls []recordedCall
	c := &cli{
		composeFile:    filepath.Join(t.TempDir(), "docker-compose.yml"),
		obsComposeFile: filepath.Join(t.TempDir(), "docker-compose.observability.yml"),
		gatewayURL:     "http://localhost:0",
		stdout:         &bytes.Buffer{},
		stderr:         &bytes.Buffer{},
	}
	c.exec = func(name string, args ...string) error {
		calls = append(calls, recordedCall{name: name, args: args})
		return nil
	}
	return c, &calls
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("services: {}\n"), 0o644); err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
}

func TestHelpExitsZeroWithUsage(t *testing.T) {
	c, calls := newTestCLI(t)
	out := c.stdout.(*bytes.Buffer)

	code := c.run([]string{"help"})

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage: manage")
	assert.Contains(t, out.String(), "test-lb")
	assert.Empty(t, *calls, "help should not invoke the orchestrator")
}

func TestUnknownCommandExitsZeroWithUsage(t *testing.T) {
	c, calls := newTestCLI(t)
	out := c.stdout.(*bytes.Buffer)

	code := c.run([]string{"frobnicate"})

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage: manage")
	assert.Empty(t, *calls)
}

func TestMissingCommandExitsZeroWithUsage(t *testing.T) {
	c, _ := newTestCLI(t)
	out := c.stdout.(*bytes.Buffer)

	code := c.run(nil)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage: manage")
}

func TestStartFailsWithoutComposeFile(t *testing.T) {
	c, calls := newTestCLI(t)

	code := c.run([]string{"start"})

	assert.NotEqual(t, 0, code)
	assert.Empty(t, *calls, "start must not invoke the orchestrator when the compose file is absent")
	assert.Contains(t, c.stderr.(*bytes.Buffer).String(), "not found")
}

func TestStartInvokesComposeUp(t *testing.T) {
	c, calls := newTestCLI(t)
	touch(t, c.composeFile)

	code := c.run([]string{"start"})

	assert.Equal(t, 0, code)
	if assert.Len(t, *calls, 1) {
		call := (*calls)[0]
		assert.Equal(t, "docker", call.name)
		assert.Equal(t, []string{"compose", "-f", c.composeFile, "up", "-d"}, call.args)
	}
}

func TestLogsPassesOptionalServiceName(t *testing.T) {
	c, calls := newTestCLI(t)

	code := c.run([]string{"logs", "order-service"})

	assert.Equal(t, 0, code)
	if assert.Len(t, *calls, 1) {
		assert.Equal(t, []string{"compose", "-f", c.composeFile, "logs", "-f", "order-service"}, (*calls)[0].args)
	}
}

func TestRestartRunsDownThenUp(t *testing.T) {
	c, calls := newTestCLI(t)

	code := c.run([]string{"restart"})

	assert.Equal(t, 0, code)
	if assert.Len(t, *calls, 2) {
		assert.Equal(t, "down", (*calls)[0].args[3])
		assert.Equal(t, "up", (*calls)[1].args[3])
	}
}

func TestCleanRemovesVolumesOnBothFiles(t *testing.T) {
	c, calls := newTestCLI(t)

	code := c.run([]string{"clean"})

	assert.Equal(t, 0, code)
	if assert.Len(t, *calls, 2) {
		assert.Equal(t, []string{"compose", "-f", c.composeFile, "down", "-v", "--remove-orphans"}, (*calls)[0].args)
		assert.Equal(t, []string{"compose", "-f", c.obsComposeFile, "down", "-v", "--remove-orphans"}, (*calls)[1].args)
	}
}

func TestStartAllRunsBothStacks(t *testing.T) {
	c, calls := newTestCLI(t)
	touch(t, c.composeFile)
	touch(t, c.obsComposeFile)

	code := c.run([]string{"start-all"})

	assert.Equal(t, 0, code)
	if assert.Len(t, *calls, 2) {
		assert.Contains(t, strings.Join((*calls)[0].args, " "), c.composeFile)
		assert.Contains(t, strings.Join((*calls)[1].args, " "), c.obsComposeFile)
	}
}

func TestStopAllStopsObservabilityFirst(t *testing.T) {
	c, calls := newTestCLI(t)

	code := c.run([]string{"stop-all"})

	assert.Equal(t, 0, code)
	if assert.Len(t, *calls, 2) {
		assert.Contains(t, strings.Join((*calls)[0].args, " "), c.obsComposeFile)
		assert.Contains(t, strings.Join((*calls)[1].args, " "), c.composeFile)
	}
}

func TestExitCodeMapsNilToZero(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(os.ErrNotExist))
}
