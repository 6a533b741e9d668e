// Package challenge defines the immutable data model for a single
// coding exercise: its identity, starter files, test command,
// reference solution, and hints. Definitions carry no behavior
// beyond validation; materializing files and running tests belong
// to the workspace and executor packages.
package challenge

import (
	"fmt"
	"sort"
)

// ID uniquely identifies a challenge.
type ID string

// Definition describes one exercise declaratively. Instances are
// constructed once at startup (builtin banks or bank files) and
// treated as read-only afterwards.
type Definition struct {
	ID          ID         `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Description string     `json:"description" yaml:"description"`

	// Files maps workspace-relative filenames to the starter
	// (intentionally broken or incomplete) content.
	Files map[string]string `json:"files" yaml:"files"`

	// TestCommand is the whitespace-separated command that
	// validates a submission when run inside the workspace.
	TestCommand string `json:"test_command" yaml:"test_command"`

	// Solution maps the same filenames as Files to
	// reference-correct content.
	Solution map[string]string `json:"solution" yaml:"solution"`

	// Hints are revealed one at a time, in order.
	Hints []string `json:"hints" yaml:"hints"`
}

// Summary is the listing view of a definition.
type Summary struct {
	ID         ID         `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
}

// Summary returns the listing view of this definition.
func (d *Definition) Summary() Summary {
	return Summary{
		ID:         d.ID,
		Title:      d.Title,
		Difficulty: d.Difficulty,
	}
}

// FileNames returns the starter filenames in sorted order.
func (d *Definition) FileNames() []string {
	names := make([]string, 0, len(d.Files))
	for name := range d.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hint returns the hint at the given zero-based position and
// whether one exists.
func (d *Definition) Hint(i int) (string, bool) {
	if i < 0 || i >= len(d.Hints) {
		return "", false
	}
	return d.Hints[i], true
}

// Validate checks the structural invariants of a definition:
// non-empty id, title, and test command; a valid difficulty; and
// identical, non-empty key sets for Files and Solution.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("challenge has no id")
	}
	if d.Title == "" {
		return fmt.Errorf("challenge %s: title is required", d.ID)
	}
	if !d.Difficulty.Valid() {
		return fmt.Errorf(
			"challenge %s: invalid difficulty %q",
			d.ID, d.Difficulty,
		)
	}
	if d.TestCommand == "" {
		return fmt.Errorf(
			"challenge %s: test command is required", d.ID,
		)
	}
	if len(d.Files) == 0 {
		return fmt.Errorf(
			"challenge %s: no starter files", d.ID,
		)
	}
	for name := range d.Files {
		if _, ok := d.Solution[name]; !ok {
			return fmt.Errorf(
				"challenge %s: starter file %s has no "+
					"solution counterpart",
				d.ID, name,
			)
		}
	}
	for name := range d.Solution {
		if _, ok := d.Files[name]; !ok {
			return fmt.Errorf(
				"challenge %s: solution file %s has no "+
					"starter counterpart",
				d.ID, name,
			)
		}
	}
	return nil
}
