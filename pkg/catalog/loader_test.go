package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.exercises/pkg/challenge"
)

const sampleBankYAML = `version: "1"
name: sample
challenges:
  - id: yaml-one
    title: First YAML Challenge
    difficulty: Medium
    description: |
      Fix the bug.
    test_command: python -m pytest test_one.py
    files:
      one.py: |
        broken = True
      test_one.py: |
        from one import broken
    solution:
      one.py: |
        broken = False
      test_one.py: |
        from one import broken
    hints:
      - look at the flag
  - id: yaml-two
    title: Second YAML Challenge
    difficulty: Expert
    description: build it
    test_command: npm test
    files:
      index.js: "module.exports = {};\n"
    solution:
      index.js: "module.exports = { done: true };\n"
`

const sampleBankJSON = `{
  "version": "1",
  "name": "json-bank",
  "challenges": [
    {
      "id": "json-one",
      "title": "JSON Challenge",
      "difficulty": "Hard",
      "description": "desc",
      "test_command": "make test",
      "files": {"main.go": "package main\n"},
      "solution": {"main.go": "package main // fixed\n"}
    }
  ]
}`

func writeBank(
	t *testing.T, dir, name, content string,
) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t,
		os.WriteFile(path, []byte(content), 0o644),
	)
	return path
}

func TestLoadBankFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeBank(t, dir, "bank.yaml", sampleBankYAML)

	defs, err := LoadBankFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, challenge.ID("yaml-one"), defs[0].ID)
	assert.Equal(t, challenge.Medium, defs[0].Difficulty)
	assert.Equal(t,
		"broken = True\n", defs[0].Files["one.py"],
	)
	assert.Equal(t,
		"broken = False\n", defs[0].Solution["one.py"],
	)
	assert.Equal(t,
		[]string{"look at the flag"}, defs[0].Hints,
	)
	require.NoError(t, defs[0].Validate())

	assert.Equal(t, challenge.ID("yaml-two"), defs[1].ID)
	assert.Equal(t, challenge.Expert, defs[1].Difficulty)
}

func TestLoadBankFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeBank(t, dir, "bank.json", sampleBankJSON)

	defs, err := LoadBankFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, challenge.ID("json-one"), defs[0].ID)
	assert.Equal(t, challenge.Hard, defs[0].Difficulty)
}

func TestLoadBankFile_Missing(t *testing.T) {
	_, err := LoadBankFile(
		filepath.Join(t.TempDir(), "absent.yaml"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read bank")
}

func TestLoadBankFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeBank(t, dir, "bad.yaml", "{{nope")
	_, err := LoadBankFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bank")
}

func TestLoadBankDir(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "a.yaml", sampleBankYAML)
	writeBank(t, dir, "b.json", sampleBankJSON)
	writeBank(t, dir, "notes.txt", "ignored")
	require.NoError(t,
		os.Mkdir(filepath.Join(dir, "sub"), 0o755),
	)

	defs, err := LoadBankDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 3)
	// Lexical file order: a.yaml before b.json.
	assert.Equal(t, challenge.ID("yaml-one"), defs[0].ID)
	assert.Equal(t, challenge.ID("json-one"), defs[2].ID)
}

func TestValidateBankFile_OK(t *testing.T) {
	dir := t.TempDir()
	path := writeBank(t, dir, "bank.yaml", sampleBankYAML)
	assert.Empty(t, ValidateBankFile(path))
}

func TestValidateBankFile_Problems(t *testing.T) {
	const bad = `name: broken
challenges:
  - id: dup
    title: One
    difficulty: Medium
    test_command: make test
    files: {f.py: "a"}
    solution: {f.py: "b"}
  - id: dup
    title: Two
    difficulty: Medium
    test_command: make test
    files: {f.py: "a"}
    solution: {g.py: "b"}
`
	dir := t.TempDir()
	path := writeBank(t, dir, "bad.yaml", bad)

	problems := ValidateBankFile(path)
	require.NotEmpty(t, problems)

	var fields []string
	for _, p := range problems {
		fields = append(fields, p.Field)
	}
	assert.Contains(t, fields, "version")
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "definition")
}

func TestValidateBankFile_MissingFile(t *testing.T) {
	problems := ValidateBankFile(
		filepath.Join(t.TempDir(), "absent.yaml"),
	)
	require.Len(t, problems, 1)
	assert.Equal(t, "file", problems[0].Field)
	assert.Equal(t, -1, problems[0].Index)
}
