package monitor

import "time"

// EventType represents the type of session event.
type EventType string

const (
	EventStarted  EventType = "started"
	EventPassed   EventType = "passed"
	EventFailed   EventType = "failed"
	EventTimedOut EventType = "timed_out"
	EventHint     EventType = "hint"
	EventRevealed EventType = "solution_revealed"
)

// SessionEvent represents a lifecycle event during an exercise
// session.
type SessionEvent struct {
	Type        EventType     `json:"type"`
	ChallengeID string        `json:"challenge_id"`
	Title       string        `json:"title"`
	Message     string        `json:"message,omitempty"`
	ExitCode    int           `json:"exit_code,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}
