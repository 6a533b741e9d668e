package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.exercises/pkg/history"
)

func makeTestAttempts() []history.Attempt {
	return []history.Attempt{
		{
			ID:          1,
			ChallengeID: "connection-pool",
			Command:     "python -m pytest test_pool.py -v",
			ExitCode:    1,
			Passed:      false,
			DurationMs:  850,
			CreatedAt:   time.Now().UTC(),
		},
		{
			ID:          2,
			ChallengeID: "connection-pool",
			Command:     "python -m pytest test_pool.py -v",
			ExitCode:    0,
			Passed:      true,
			DurationMs:  790,
			CreatedAt:   time.Now().UTC(),
		},
	}
}

func TestExportAttempts(t *testing.T) {
	var buf bytes.Buffer
	err := ExportAttempts(&buf, makeTestAttempts())
	require.NoError(t, err)

	lines := splitNonEmpty(buf.String())
	require.Len(t, lines, 2)

	var entry HistoricalEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "connection-pool", entry.ChallengeID)
	assert.Equal(t, "failed", entry.Status)
	assert.Equal(t, 1, entry.ExitCode)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "passed", entry.Status)
}

func TestExportAttempts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportAttempts(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestExportHistoryFile_Appends(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history.jsonl")

	attempts := makeTestAttempts()
	require.NoError(
		t, ExportHistoryFile(historyPath, attempts[:1]),
	)
	require.NoError(
		t, ExportHistoryFile(historyPath, attempts[1:]),
	)

	data, err := os.ReadFile(historyPath)
	require.NoError(t, err)

	lines := splitNonEmpty(string(data))
	assert.Len(t, lines, 2)
}

func splitNonEmpty(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			if line := s[start:i]; line != "" {
				result = append(result, line)
			}
			start = i + 1
		}
	}
	return result
}
