// Package workspace materializes a challenge's files into the
// scratch directory the user edits and the test command runs in.
// The directory holds at most one challenge's files at a time;
// preparing a new challenge clears it completely.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"digital.vasic.exercises/pkg/challenge"
)

// ErrNotPrepared reports a solution reveal attempted before any
// challenge was prepared. Normal menu navigation never triggers
// this; hitting it indicates a sequencing bug in the caller.
var ErrNotPrepared = errors.New(
	"workspace: no challenge prepared",
)

// WriteError reports a filesystem failure while materializing
// files. The attempted operation is aborted; partially written
// content may remain.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf(
		"workspace %s %s: %v", e.Op, e.Path, e.Err,
	)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Manager owns a single workspace directory. The root is fixed at
// construction so tests can point it at a temporary directory.
// Manager is not safe for concurrent use; the session loop is the
// only writer.
type Manager struct {
	root    string
	current challenge.ID
}

// NewManager creates a Manager rooted at dir. The directory is
// created lazily on the first Prepare.
func NewManager(dir string) *Manager {
	return &Manager{root: dir}
}

// Root returns the workspace directory path.
func (m *Manager) Root() string { return m.root }

// Current returns the id of the prepared challenge, or the empty
// id when nothing has been prepared.
func (m *Manager) Current() challenge.ID { return m.current }

// Prepare clears the workspace and writes the challenge's starter
// files, creating parent directories as needed. On success the
// workspace mirrors def.Files exactly.
func (m *Manager) Prepare(def *challenge.Definition) error {
	if err := m.materialize(def.Files); err != nil {
		return err
	}
	m.current = def.ID
	return nil
}

// RevealSolution overwrites the workspace with the challenge's
// reference solution. It is only valid after a Prepare.
func (m *Manager) RevealSolution(
	def *challenge.Definition,
) error {
	if m.current == "" {
		return ErrNotPrepared
	}
	if err := m.materialize(def.Solution); err != nil {
		return err
	}
	return nil
}

// materialize replaces the entire workspace content with the
// given file set.
func (m *Manager) materialize(
	files map[string]string,
) error {
	if err := m.clear(); err != nil {
		return err
	}
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return &WriteError{
			Op: "create", Path: m.root, Err: err,
		}
	}

	for name, content := range files {
		path := filepath.Join(m.root, name)
		if dir := filepath.Dir(path); dir != m.root {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return &WriteError{
					Op: "create", Path: dir, Err: err,
				}
			}
		}
		err := os.WriteFile(path, []byte(content), 0o644)
		if err != nil {
			return &WriteError{
				Op: "write", Path: path, Err: err,
			}
		}
	}
	return nil
}

// clear removes every entry under the root. The root itself is
// kept so its path stays valid for shells cd'd into it.
func (m *Manager) clear() error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &WriteError{
			Op: "read", Path: m.root, Err: err,
		}
	}
	for _, entry := range entries {
		path := filepath.Join(m.root, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return &WriteError{
				Op: "remove", Path: path, Err: err,
			}
		}
	}
	return nil
}
