package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeValidatorBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(
		t, os.WriteFile(path, []byte(content), 0o644),
	)
	return path
}

func TestValidateBankFile_Valid(t *testing.T) {
	path := writeValidatorBank(t, `
version: "1"
name: test-bank
challenges:
  - id: sample
    title: Sample Challenge
    difficulty: Medium
    test_command: "true"
    files:
      main.txt: starter
    solution:
      main.txt: solved
`)

	problems := ValidateBankFile(path)
	assert.Empty(t, problems)
}

func TestValidateBankFile_MissingVersion(t *testing.T) {
	path := writeValidatorBank(t, `
name: test-bank
challenges: []
`)

	problems := ValidateBankFile(path)
	require.Len(t, problems, 1)
	assert.Equal(t, "version", problems[0].Field)
	assert.Equal(t, -1, problems[0].Index)
}

func TestValidateBankFile_BadDefinition(t *testing.T) {
	path := writeValidatorBank(t, `
version: "1"
name: test-bank
challenges:
  - id: broken
    title: Broken
    difficulty: Medium
    test_command: ""
    files:
      main.txt: starter
    solution:
      main.txt: solved
`)

	problems := ValidateBankFile(path)
	require.Len(t, problems, 1)
	assert.Equal(t, "definition", problems[0].Field)
	assert.Equal(t, 0, problems[0].Index)
	assert.Contains(t, problems[0].Error(), "test command")
}

func TestValidateBankFile_DuplicateIDs(t *testing.T) {
	path := writeValidatorBank(t, `
version: "1"
name: test-bank
challenges:
  - id: twin
    title: First
    difficulty: Medium
    test_command: "true"
    files: {a.txt: x}
    solution: {a.txt: x}
  - id: twin
    title: Second
    difficulty: Hard
    test_command: "true"
    files: {a.txt: x}
    solution: {a.txt: x}
`)

	problems := ValidateBankFile(path)
	require.Len(t, problems, 1)
	assert.Equal(t, "id", problems[0].Field)
	assert.Equal(t, 1, problems[0].Index)
}

func TestValidateBankFile_MissingFileValidator(t *testing.T) {
	problems := ValidateBankFile(
		filepath.Join(t.TempDir(), "nope.yaml"),
	)
	require.Len(t, problems, 1)
	assert.Equal(t, "file", problems[0].Field)
}

func TestValidateBankFile_Garbage(t *testing.T) {
	path := writeValidatorBank(t, "{{{not yaml")

	problems := ValidateBankFile(path)
	require.Len(t, problems, 1)
	assert.Equal(t, "format", problems[0].Field)
}
