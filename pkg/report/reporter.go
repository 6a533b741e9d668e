// Package report provides summary generation for exercise
// sessions.
package report

import "io"

// Reporter defines the interface for rendering session
// summaries.
type Reporter interface {
	// GenerateSummary renders a session summary.
	GenerateSummary(summary *SessionSummary) ([]byte, error)

	// WriteSummary writes a rendered summary to the specified
	// writer.
	WriteSummary(w io.Writer, summary *SessionSummary) error
}
