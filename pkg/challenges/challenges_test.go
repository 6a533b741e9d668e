package challenges

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.exercises/pkg/challenge"
	"digital.vasic.exercises/pkg/executor"
	"digital.vasic.exercises/pkg/workspace"
)

func TestBuiltin_OrderAndIdentity(t *testing.T) {
	defs, err := Builtin()
	require.NoError(t, err)
	require.Len(t, defs, 6)

	want := []struct {
		id         challenge.ID
		difficulty challenge.Difficulty
	}{
		{"connection-pool", challenge.Medium},
		{"cache-stampede", challenge.Medium},
		{"analytics-optimization", challenge.Hard},
		{"distributed-lock", challenge.Expert},
		{"write-ahead-log", challenge.Expert},
		{"memory-allocator", challenge.Expert},
	}
	for i, w := range want {
		assert.Equal(t, w.id, defs[i].ID)
		assert.Equal(t, w.difficulty, defs[i].Difficulty)
	}
}

func TestBuiltin_DefinitionsAreComplete(t *testing.T) {
	defs, err := Builtin()
	require.NoError(t, err)

	for _, def := range defs {
		def := def
		t.Run(string(def.ID), func(t *testing.T) {
			require.NoError(t, def.Validate())
			assert.NotEmpty(t, def.Description)
			assert.NotEmpty(t, def.Hints)

			// Starter and solution must describe the same
			// file set so a reveal replaces every file.
			for name := range def.Files {
				_, ok := def.Solution[name]
				assert.True(t, ok, name)
			}
		})
	}
}

func TestBuiltin_StartersDifferFromSolutions(t *testing.T) {
	defs, err := Builtin()
	require.NoError(t, err)

	for _, def := range defs {
		changed := false
		for name, starter := range def.Files {
			if def.Solution[name] != starter {
				changed = true
			}
		}
		assert.True(t, changed, def.ID)
	}
}

func TestBuiltinCatalog(t *testing.T) {
	cat, err := BuiltinCatalog()
	require.NoError(t, err)
	assert.Equal(t, 6, cat.Len())

	def, err := cat.Get("1")
	require.NoError(t, err)
	assert.Equal(t, challenge.ID("connection-pool"), def.ID)
}

// pythonAvailable reports whether python can import every listed
// module, so environment gaps skip rather than fail the suite.
func pythonAvailable(t *testing.T, modules ...string) bool {
	t.Helper()
	if _, err := exec.LookPath("python"); err != nil {
		return false
	}
	script := "import " + strings.Join(modules, ", ")
	return exec.Command("python", "-c", script).Run() == nil
}

func TestBuiltin_SolutionsPassOwnTests(t *testing.T) {
	if testing.Short() {
		t.Skip("runs real interpreter test suites")
	}

	requiredModules := map[challenge.ID][]string{
		"connection-pool":        {"pytest", "flask", "psycopg2"},
		"analytics-optimization": {"pytest"},
		"distributed-lock":       {"pytest"},
		"write-ahead-log":        {"pytest"},
		"memory-allocator":       {"pytest"},
	}

	defs, err := Builtin()
	require.NoError(t, err)

	exe := executor.New(5 * time.Minute)

	for _, def := range defs {
		def := def
		t.Run(string(def.ID), func(t *testing.T) {
			modules, ok := requiredModules[def.ID]
			if !ok {
				t.Skip("needs npm and network access")
			}
			if !pythonAvailable(t, modules...) {
				t.Skipf("python with %v not available", modules)
			}

			ws := workspace.NewManager(
				filepath.Join(t.TempDir(), "ws"),
			)
			require.NoError(t, ws.Prepare(&def))
			require.NoError(t, ws.RevealSolution(&def))

			result, err := exe.Run(
				context.Background(),
				def.TestCommand, ws.Root(),
			)
			require.NoError(t, err)
			assert.True(t, result.Passed, result.Stdout+result.Stderr)
		})
	}
}
