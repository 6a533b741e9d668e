package monitor

import (
	"sync"
	"time"
)

// EventCollector captures session events and timing data.
type EventCollector struct {
	mu       sync.RWMutex
	events   []SessionEvent
	handlers []func(SessionEvent)
	stats    CollectorStats
}

// CollectorStats holds aggregate statistics for a session.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	TimedOut  int           `json:"timed_out"`
	Hints     int           `json:"hints"`
	Reveals   int           `json:"reveals"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]SessionEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(SessionEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event SessionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.stats.Total++
	switch event.Type {
	case EventPassed:
		c.stats.Passed++
	case EventFailed:
		c.stats.Failed++
	case EventTimedOut:
		c.stats.TimedOut++
	case EventHint:
		c.stats.Hints++
	case EventRevealed:
		c.stats.Reveals++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(SessionEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitStarted emits a challenge started event.
func (c *EventCollector) EmitStarted(id, title string) {
	c.Emit(SessionEvent{
		Type:        EventStarted,
		ChallengeID: id,
		Title:       title,
	})
}

// EmitPassed emits a passing test run event.
func (c *EventCollector) EmitPassed(
	id, title string, duration time.Duration,
) {
	c.Emit(SessionEvent{
		Type:        EventPassed,
		ChallengeID: id,
		Title:       title,
		Duration:    duration,
	})
}

// EmitFailed emits a failing test run event.
func (c *EventCollector) EmitFailed(
	id, title string, exitCode int, duration time.Duration,
) {
	c.Emit(SessionEvent{
		Type:        EventFailed,
		ChallengeID: id,
		Title:       title,
		ExitCode:    exitCode,
		Duration:    duration,
	})
}

// EmitTimedOut emits a timed out test run event.
func (c *EventCollector) EmitTimedOut(id, title string) {
	c.Emit(SessionEvent{
		Type:        EventTimedOut,
		ChallengeID: id,
		Title:       title,
	})
}

// EmitHint emits a hint shown event.
func (c *EventCollector) EmitHint(id, title string) {
	c.Emit(SessionEvent{
		Type:        EventHint,
		ChallengeID: id,
		Title:       title,
	})
}

// EmitRevealed emits a solution revealed event.
func (c *EventCollector) EmitRevealed(id, title string) {
	c.Emit(SessionEvent{
		Type:        EventRevealed,
		ChallengeID: id,
		Title:       title,
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []SessionEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]SessionEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
