package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Run_Pass(t *testing.T) {
	e := New(10 * time.Second)

	result, err := e.Run(
		context.Background(), "sh -c true", t.TempDir(),
	)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 0, result.ExitCode)
}

func TestExecutor_Run_NonZeroExit(t *testing.T) {
	e := New(10 * time.Second)

	result, err := e.Run(
		context.Background(), "false", t.TempDir(),
	)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.NotEqual(t, 0, result.ExitCode)
}

func TestExecutor_Run_CapturesOutput(t *testing.T) {
	e := New(10 * time.Second)
	dir := t.TempDir()

	result, err := e.Run(
		context.Background(), "echo hello world", dir,
	)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, "hello world\n", result.Stdout)
	assert.Empty(t, result.Stderr)
}

func TestExecutor_Run_UsesWorkingDirectory(t *testing.T) {
	e := New(10 * time.Second)
	dir := t.TempDir()

	result, err := e.Run(context.Background(), "pwd", dir)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestExecutor_Run_SpawnError(t *testing.T) {
	e := New(10 * time.Second)

	_, err := e.Run(
		context.Background(),
		"definitely-not-a-real-binary-xyz",
		t.TempDir(),
	)
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, KindSpawn, execErr.Kind)
}

func TestExecutor_Run_EmptyCommand(t *testing.T) {
	e := New(10 * time.Second)

	_, err := e.Run(context.Background(), "   ", t.TempDir())
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, KindSpawn, execErr.Kind)
}

func TestExecutor_Run_Timeout(t *testing.T) {
	e := New(200 * time.Millisecond)

	_, err := e.Run(
		context.Background(), "sleep 5", t.TempDir(),
	)
	require.Error(t, err)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, KindTimeout, execErr.Kind)
}

func TestExecutor_Run_NoTimeout(t *testing.T) {
	e := New(0)

	result, err := e.Run(
		context.Background(), "true", t.TempDir(),
	)
	require.NoError(t, err)
	assert.True(t, result.Passed)
}

func TestExecutor_InstallDeps_NoManifest(t *testing.T) {
	e := New(10 * time.Second)

	err := e.InstallDeps(
		context.Background(),
		map[string]string{"main.py": "pass"},
		t.TempDir(),
	)
	assert.NoError(t, err)
}
