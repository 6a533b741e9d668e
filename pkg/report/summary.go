package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.exercises/pkg/challenge"
	"digital.vasic.exercises/pkg/monitor"
)

// SessionSummary represents an aggregated summary of one
// exercise session.
type SessionSummary struct {
	ID              string             `json:"id"`
	GeneratedAt     time.Time          `json:"generated_at"`
	Challenges      []ChallengeSummary `json:"challenges"`
	TotalChallenges int                `json:"total_challenges"`
	Solved          int                `json:"solved"`
	Attempted       int                `json:"attempted"`
	HintsUsed       int                `json:"hints_used"`
	Reveals         int                `json:"reveals"`
	SessionDuration time.Duration      `json:"session_duration"`
	PassRate        float64            `json:"pass_rate"`
}

// ChallengeSummary represents a summary of a single challenge.
type ChallengeSummary struct {
	ChallengeID string        `json:"challenge_id"`
	Title       string        `json:"title"`
	Difficulty  string        `json:"difficulty"`
	Status      string        `json:"status"`
	Attempts    int           `json:"attempts"`
	Hints       int           `json:"hints"`
	Revealed    bool          `json:"revealed"`
	Duration    time.Duration `json:"duration"`
}

// BuildSessionSummary creates a session summary covering every
// catalog challenge, in catalog order, merged with the session's
// progress board and aggregate stats.
func BuildSessionSummary(
	defs []challenge.Definition,
	board monitor.BoardData,
	stats monitor.CollectorStats,
) *SessionSummary {
	summary := &SessionSummary{
		ID: fmt.Sprintf(
			"session_%s",
			time.Now().Format("20060102_150405"),
		),
		GeneratedAt:     time.Now(),
		Challenges:      make([]ChallengeSummary, 0, len(defs)),
		HintsUsed:       stats.Hints,
		Reveals:         stats.Reveals,
		SessionDuration: stats.Duration,
	}

	for _, def := range defs {
		cs := ChallengeSummary{
			ChallengeID: string(def.ID),
			Title:       def.Title,
			Difficulty:  def.Difficulty.String(),
			Status:      "untouched",
		}
		if state, ok := board.Challenges[string(def.ID)]; ok {
			cs.Status = state.Status
			cs.Attempts = state.Attempts
			cs.Hints = state.Hints
			cs.Revealed = state.Revealed
			cs.Duration = state.Duration
		}

		summary.Challenges = append(summary.Challenges, cs)
		summary.TotalChallenges++
		if cs.Attempts > 0 {
			summary.Attempted++
		}
		if cs.Status == "solved" {
			summary.Solved++
		}
	}

	if summary.Attempted > 0 {
		summary.PassRate =
			float64(summary.Solved) /
				float64(summary.Attempted)
	}

	return summary
}

// SaveSessionSummary saves the session summary to both JSON and
// Markdown files in the given output directory.
func SaveSessionSummary(
	summary *SessionSummary,
	outputDir string,
) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir,
		fmt.Sprintf("session_summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf(
			"failed to marshal summary: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf(
			"failed to write JSON summary: %w", err,
		)
	}

	mdPath := filepath.Join(
		outputDir,
		fmt.Sprintf("session_summary_%s.md", ts),
	)
	mdContent := generateSummaryMarkdown(summary)
	if err := os.WriteFile(
		mdPath, []byte(mdContent), 0644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// generateSummaryMarkdown creates markdown from a session
// summary.
func generateSummaryMarkdown(summary *SessionSummary) string {
	var sb strings.Builder

	sb.WriteString("# Exercise Session Summary\n\n")
	sb.WriteString(
		fmt.Sprintf(
			"**Session ID:** %s\n\n", summary.ID,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Generated:** %s\n\n",
			summary.GeneratedAt.Format(time.RFC3339),
		),
	)

	sb.WriteString("## Overview\n\n")
	sb.WriteString(
		"| Challenge | Difficulty | Status " +
			"| Attempts | Hints |\n",
	)
	sb.WriteString(
		"|-----------|------------|--------" +
			"|----------|-------|\n",
	)

	for _, c := range summary.Challenges {
		status := strings.ToUpper(c.Status)
		if c.Revealed {
			status += " (REVEALED)"
		}
		sb.WriteString(
			fmt.Sprintf(
				"| %s | %s | %s | %d | %d |\n",
				c.Title, c.Difficulty, status,
				c.Attempts, c.Hints,
			),
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(
		fmt.Sprintf(
			"| Total Challenges | %d |\n",
			summary.TotalChallenges,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Attempted | %d |\n", summary.Attempted,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Solved | %d |\n", summary.Solved,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Hints Used | %d |\n", summary.HintsUsed,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Solutions Revealed | %d |\n", summary.Reveals,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Pass Rate | %.0f%% |\n",
			summary.PassRate*100,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Session Duration | %v |\n",
			summary.SessionDuration.Round(time.Second),
		),
	)

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by the exercise runner*\n")

	return sb.String()
}
