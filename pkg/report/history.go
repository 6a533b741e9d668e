package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"digital.vasic.exercises/pkg/history"
)

// HistoricalEntry represents a single attempt in the exported
// history log.
type HistoricalEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	ChallengeID string    `json:"challenge_id"`
	Command     string    `json:"command"`
	Status      string    `json:"status"`
	ExitCode    int       `json:"exit_code"`
	DurationMs  int64     `json:"duration_ms"`
	HintsUsed   int       `json:"hints_used"`
	Revealed    bool      `json:"revealed"`
}

// ExportAttempts writes attempts as one JSON line each.
func ExportAttempts(
	w io.Writer,
	attempts []history.Attempt,
) error {
	for _, a := range attempts {
		status := "failed"
		if a.Passed {
			status = "passed"
		}
		entry := HistoricalEntry{
			Timestamp:   a.CreatedAt,
			ChallengeID: a.ChallengeID,
			Command:     a.Command,
			Status:      status,
			ExitCode:    a.ExitCode,
			DurationMs:  a.DurationMs,
			HintsUsed:   a.HintsUsed,
			Revealed:    a.Revealed,
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf(
				"failed to marshal history entry: %w", err,
			)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	}
	return nil
}

// ExportHistoryFile appends attempts to the historical log
// stored at historyPath, one JSON line per attempt.
func ExportHistoryFile(
	historyPath string,
	attempts []history.Attempt,
) error {
	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	return ExportAttempts(file, attempts)
}
