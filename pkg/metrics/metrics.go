// Package metrics counts session activity for the live monitor.
package metrics

import "time"

// SessionMetrics defines the interface for recording session
// activity.
type SessionMetrics interface {
	// RecordAttempt records one test run for a challenge.
	RecordAttempt(challengeID, status string, duration time.Duration)
	// RecordHint records a hint being shown.
	RecordHint(challengeID string)
	// RecordReveal records a solution reveal.
	RecordReveal(challengeID string)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveChallenge sets the challenge currently worked
	// on; empty means none.
	SetActiveChallenge(challengeID string)
}

// NoopMetrics is a no-op implementation of SessionMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordAttempt(_, _ string, _ time.Duration) {}
func (NoopMetrics) RecordHint(_ string)                        {}
func (NoopMetrics) RecordReveal(_ string)                      {}
func (NoopMetrics) IncrementRunTotal()                         {}
func (NoopMetrics) SetActiveChallenge(_ string)                {}
