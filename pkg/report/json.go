package report

import (
	"encoding/json"
	"io"
)

// JSONReporter renders session summaries as JSON.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateSummary renders a session summary as JSON.
func (r *JSONReporter) GenerateSummary(
	summary *SessionSummary,
) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// WriteSummary writes a JSON summary to the specified writer.
func (r *JSONReporter) WriteSummary(
	w io.Writer,
	summary *SessionSummary,
) error {
	data, err := r.GenerateSummary(summary)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
