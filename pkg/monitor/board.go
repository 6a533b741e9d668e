package monitor

import (
	"sync"
	"time"
)

// BoardData provides a real-time snapshot of per-challenge
// session progress.
type BoardData struct {
	mu         sync.RWMutex
	SessionID  string                    `json:"session_id"`
	StartTime  time.Time                 `json:"start_time"`
	Challenges map[string]ChallengeState `json:"challenges"`
	Summary    BoardSummary              `json:"summary"`
}

// ChallengeState represents the current state of a challenge on
// the board.
type ChallengeState struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Status   string        `json:"status"`
	Attempts int           `json:"attempts"`
	Hints    int           `json:"hints"`
	Revealed bool          `json:"revealed"`
	Duration time.Duration `json:"duration,omitempty"`
}

// BoardSummary holds aggregate stats for the board.
type BoardSummary struct {
	Total    int     `json:"total"`
	Solved   int     `json:"solved"`
	Failing  int     `json:"failing"`
	Active   int     `json:"active"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// NewBoardData creates a new board data instance.
func NewBoardData(sessionID string) *BoardData {
	return &BoardData{
		SessionID:  sessionID,
		StartTime:  time.Now(),
		Challenges: make(map[string]ChallengeState),
	}
}

// UpdateFromEvent updates board state from a session event.
func (d *BoardData) UpdateFromEvent(event SessionEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state, exists := d.Challenges[event.ChallengeID]
	if !exists {
		state = ChallengeState{
			ID:    event.ChallengeID,
			Title: event.Title,
		}
	}

	switch event.Type {
	case EventStarted:
		state.Status = "active"
	case EventPassed:
		state.Status = "solved"
		state.Attempts++
		state.Duration = event.Duration
	case EventFailed:
		// A later failure does not demote a solved challenge.
		if state.Status != "solved" {
			state.Status = "failing"
		}
		state.Attempts++
	case EventTimedOut:
		if state.Status != "solved" {
			state.Status = "timed_out"
		}
		state.Attempts++
	case EventHint:
		state.Hints++
	case EventRevealed:
		state.Revealed = true
	}

	d.Challenges[event.ChallengeID] = state
	d.recalcSummary()
}

func (d *BoardData) recalcSummary() {
	s := BoardSummary{}
	for _, ch := range d.Challenges {
		s.Total++
		switch ch.Status {
		case "solved":
			s.Solved++
		case "failing", "timed_out":
			s.Failing++
		case "active":
			s.Active++
		}
	}
	if attempted := s.Solved + s.Failing; attempted > 0 {
		s.PassRate = float64(s.Solved) / float64(attempted) * 100
	}
	s.Elapsed = time.Since(d.StartTime).Round(time.Millisecond).String()
	d.Summary = s
}

// Snapshot returns a copy of the current board state.
func (d *BoardData) Snapshot() BoardData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := BoardData{
		SessionID:  d.SessionID,
		StartTime:  d.StartTime,
		Summary:    d.Summary,
		Challenges: make(map[string]ChallengeState, len(d.Challenges)),
	}
	for k, v := range d.Challenges {
		snap.Challenges[k] = v
	}
	return snap
}

// BuildBoardData creates a BoardData snapshot from an
// EventCollector by replaying all collected events.
func BuildBoardData(collector *EventCollector) *BoardData {
	data := NewBoardData("snapshot")
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}
