// Package config loads runner settings from the environment,
// with an optional .env file for local overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the exercise runner. All fields
// have working defaults so the binary runs with no environment
// at all.
type Config struct {
	// WorkspaceDir is where challenge files are materialized.
	WorkspaceDir string

	// BankDir optionally points at a directory of extra bank
	// files loaded after the builtin challenges. Empty means
	// builtin only.
	BankDir string

	// HistoryDB is the SQLite file recording attempts.
	HistoryDB string

	// ReportDir receives session summary reports.
	ReportDir string

	// LogDir receives the structured session logs.
	LogDir string

	// MonitorAddr is the listen address for the live monitor.
	// Empty disables the monitor.
	MonitorAddr string

	// TestTimeout bounds a single test command run.
	TestTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool
}

// Load reads configuration from the environment. A .env file in
// the working directory is applied first when present; a missing
// file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		WorkspaceDir: getEnv("EXERCISES_WORKSPACE", "workspace"),
		BankDir:      getEnv("EXERCISES_BANK_DIR", ""),
		HistoryDB:    getEnv("EXERCISES_HISTORY_DB", "exercises.db"),
		ReportDir:    getEnv("EXERCISES_REPORT_DIR", "reports"),
		LogDir:       getEnv("EXERCISES_LOG_DIR", "logs"),
		MonitorAddr:  getEnv("EXERCISES_MONITOR_ADDR", ""),
	}

	seconds, err := strconv.Atoi(
		getEnv("EXERCISES_TEST_TIMEOUT_SECONDS", "600"),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"parse EXERCISES_TEST_TIMEOUT_SECONDS: %w", err,
		)
	}
	if seconds < 0 {
		return nil, fmt.Errorf(
			"EXERCISES_TEST_TIMEOUT_SECONDS must not be negative, got %d",
			seconds,
		)
	}
	cfg.TestTimeout = time.Duration(seconds) * time.Second

	cfg.Verbose, err = parseBool(
		getEnv("EXERCISES_VERBOSE", "false"),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"parse EXERCISES_VERBOSE: %w", err,
		)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseBool(value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return v, nil
}
