package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector implements SessionMetrics with in-memory counters
// and renders them in Prometheus text exposition format for the
// monitor's /metrics endpoint. Safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	attempts  map[string]int
	hints     map[string]int
	reveals   map[string]int
	durations map[string][]time.Duration
	runTotal  int
	active    string
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		attempts:  make(map[string]int),
		hints:     make(map[string]int),
		reveals:   make(map[string]int),
		durations: make(map[string][]time.Duration),
	}
}

func (m *Collector) RecordAttempt(
	challengeID, status string, duration time.Duration,
) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[challengeID+":"+status]++
	m.durations[challengeID] = append(
		m.durations[challengeID], duration,
	)
}

func (m *Collector) RecordHint(challengeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hints[challengeID]++
}

func (m *Collector) RecordReveal(challengeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reveals[challengeID]++
}

func (m *Collector) IncrementRunTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runTotal++
}

func (m *Collector) SetActiveChallenge(challengeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = challengeID
}

// AttemptCount returns the count for a challenge+status
// combination.
func (m *Collector) AttemptCount(
	challengeID, status string,
) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts[challengeID+":"+status]
}

// RunTotal returns the total number of runs.
func (m *Collector) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}

// ActiveChallenge returns the currently active challenge id.
func (m *Collector) ActiveChallenge() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Render produces the counters in Prometheus text exposition
// format, with stable ordering for tests.
func (m *Collector) Render() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder

	b.WriteString("# TYPE exercises_attempts_total counter\n")
	for _, key := range sortedKeys(m.attempts) {
		parts := strings.SplitN(key, ":", 2)
		fmt.Fprintf(&b,
			"exercises_attempts_total{challenge=%q,status=%q} %d\n",
			parts[0], parts[1], m.attempts[key],
		)
	}

	b.WriteString("# TYPE exercises_hints_total counter\n")
	for _, key := range sortedKeys(m.hints) {
		fmt.Fprintf(&b,
			"exercises_hints_total{challenge=%q} %d\n",
			key, m.hints[key],
		)
	}

	b.WriteString("# TYPE exercises_reveals_total counter\n")
	for _, key := range sortedKeys(m.reveals) {
		fmt.Fprintf(&b,
			"exercises_reveals_total{challenge=%q} %d\n",
			key, m.reveals[key],
		)
	}

	b.WriteString("# TYPE exercises_runs_total counter\n")
	fmt.Fprintf(&b, "exercises_runs_total %d\n", m.runTotal)

	b.WriteString(
		"# TYPE exercises_test_duration_ms_sum counter\n",
	)
	for _, key := range sortedKeys(m.durations) {
		var sum time.Duration
		for _, d := range m.durations[key] {
			sum += d
		}
		fmt.Fprintf(&b,
			"exercises_test_duration_ms_sum{challenge=%q} %d\n",
			key, sum.Milliseconds(),
		)
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
