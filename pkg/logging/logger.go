// Package logging provides structured logging for the exercise
// runner with JSON, console, and multi-destination output.
package logging

// Logger defines the interface for structured session logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// LogTestRun logs one completed test command execution.
	LogTestRun(run TestRunLog)

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// TestRunLog captures the outcome of one test command run
// against the workspace.
type TestRunLog struct {
	Timestamp   string `json:"timestamp"`
	ChallengeID string `json:"challenge_id"`
	Command     string `json:"command"`
	ExitCode    int    `json:"exit_code"`
	Passed      bool   `json:"passed"`
	DurationMs  int64  `json:"duration_ms"`
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
