package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"
)

// HTMLReporter renders session summaries as standalone HTML
// pages.
type HTMLReporter struct{}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter() *HTMLReporter {
	return &HTMLReporter{}
}

// GenerateSummary renders a session summary as HTML.
func (r *HTMLReporter) GenerateSummary(
	summary *SessionSummary,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteSummary(&buf, summary); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSummary writes an HTML summary to the specified writer.
func (r *HTMLReporter) WriteSummary(
	w io.Writer,
	summary *SessionSummary,
) error {
	r.writeHeader(w, "Exercise Session Summary")

	fmt.Fprintln(w, "<h1>Exercise Session Summary</h1>")
	fmt.Fprintf(
		w,
		"<p><strong>Session ID:</strong> %s</p>\n",
		html.EscapeString(summary.ID),
	)
	fmt.Fprintf(
		w,
		"<p><strong>Generated:</strong> %s</p>\n",
		summary.GeneratedAt.Format(time.RFC3339),
	)

	r.writeOverview(w, summary)
	r.writeStats(w, summary)

	r.writeFooter(w)
	return nil
}

func (r *HTMLReporter) writeOverview(
	w io.Writer,
	summary *SessionSummary,
) {
	fmt.Fprintln(w, "<h2>Overview</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>Challenge</th><th>Difficulty</th>"+
			"<th>Status</th><th>Attempts</th>"+
			"<th>Hints</th></tr>",
	)

	for _, c := range summary.Challenges {
		cls := "status-failed"
		if c.Status == "solved" {
			cls = "status-passed"
		}
		status := strings.ToUpper(c.Status)
		if c.Revealed {
			status += " (REVEALED)"
		}
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%s</td>"+
				"<td class=\"%s\">%s</td>"+
				"<td>%d</td><td>%d</td></tr>\n",
			html.EscapeString(c.Title),
			html.EscapeString(c.Difficulty),
			cls, html.EscapeString(status),
			c.Attempts, c.Hints,
		)
	}

	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeStats(
	w io.Writer,
	summary *SessionSummary,
) {
	fmt.Fprintln(w, "<h2>Statistics</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(
		w,
		"<tr><td>Total Challenges</td>"+
			"<td>%d</td></tr>\n",
		summary.TotalChallenges,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Attempted</td><td>%d</td></tr>\n",
		summary.Attempted,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Solved</td><td>%d</td></tr>\n",
		summary.Solved,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Hints Used</td><td>%d</td></tr>\n",
		summary.HintsUsed,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Solutions Revealed</td>"+
			"<td>%d</td></tr>\n",
		summary.Reveals,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Pass Rate</td><td>%.0f%%</td></tr>\n",
		summary.PassRate*100,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Session Duration</td>"+
			"<td>%v</td></tr>\n",
		summary.SessionDuration.Round(time.Second),
	)
	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
table {
  border-collapse: collapse;
  width: 100%%;
  margin: 10px 0;
  background: #fff;
}
th, td {
  border: 1px solid #ddd;
  padding: 8px 12px;
  text-align: left;
}
th { background: #3498db; color: #fff; }
tr:nth-child(even) { background: #f2f2f2; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
footer {
  margin-top: 40px;
  padding-top: 10px;
  border-top: 1px solid #ddd;
  color: #7f8c8d;
  font-size: 0.9em;
}
</style>
</head>
<body>
`, html.EscapeString(title))
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintln(w, "<footer>")
	fmt.Fprintln(w, "<p>Generated by the exercise runner</p>")
	fmt.Fprintln(w, "</footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
