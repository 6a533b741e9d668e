// Package session drives the interactive exercise loop: menu,
// challenge selection, workspace preparation, test submission,
// hints, and solution reveal. All component errors surface here
// as user-visible messages; nothing below this layer talks to
// the terminal.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"digital.vasic.exercises/pkg/catalog"
	"digital.vasic.exercises/pkg/challenge"
	"digital.vasic.exercises/pkg/executor"
	"digital.vasic.exercises/pkg/history"
	"digital.vasic.exercises/pkg/logging"
	"digital.vasic.exercises/pkg/metrics"
	"digital.vasic.exercises/pkg/monitor"
	"digital.vasic.exercises/pkg/workspace"
)

// State identifies where the session loop currently is.
type State string

const (
	StateMenu               State = "MENU"
	StateListing            State = "LISTING"
	StateChallengeActive    State = "CHALLENGE_ACTIVE"
	StateAwaitingSubmission State = "AWAITING_SUBMISSION"
	StateResultShown        State = "RESULT_SHOWN"
	StateHintShown          State = "HINT_SHOWN"
	StateSolutionShown      State = "SOLUTION_SHOWN"
	StateExited             State = "EXITED"
)

// Config carries the session's collaborators. Catalog, Workspace,
// and Executor are required; the rest default to no-ops.
type Config struct {
	Catalog   *catalog.Catalog
	Workspace *workspace.Manager
	Executor  *executor.Executor
	Logger    logging.Logger
	Metrics   metrics.SessionMetrics
	Events    *monitor.EventCollector
	History   *history.Store

	Input  io.Reader
	Output io.Writer
}

// Session is the interactive driver. It owns the terminal
// conversation and the single active challenge.
type Session struct {
	catalog   *catalog.Catalog
	workspace *workspace.Manager
	executor  *executor.Executor
	logger    logging.Logger
	metrics   metrics.SessionMetrics
	events    *monitor.EventCollector
	store     *history.Store

	in  *bufio.Scanner
	out io.Writer

	state      State
	active     *challenge.Definition
	hintCursor int
	revealed   bool
}

// New creates a session from the given configuration.
func New(cfg Config) (*Session, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if cfg.Workspace == nil {
		return nil, errors.New("session: workspace is required")
	}
	if cfg.Executor == nil {
		return nil, errors.New("session: executor is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NullLogger{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NoopMetrics{}
	}
	if cfg.Events == nil {
		cfg.Events = monitor.NewEventCollector()
	}

	scanner := bufio.NewScanner(cfg.Input)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	return &Session{
		catalog:   cfg.Catalog,
		workspace: cfg.Workspace,
		executor:  cfg.Executor,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		events:    cfg.Events,
		store:     cfg.History,
		in:        scanner,
		out:       cfg.Output,
		state:     StateMenu,
	}, nil
}

// State returns the loop's current state.
func (s *Session) State() State { return s.state }

// Events returns the session's event collector.
func (s *Session) Events() *monitor.EventCollector {
	return s.events
}

// Run drives the menu loop until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	for s.state != StateExited {
		if err := ctx.Err(); err != nil {
			s.state = StateExited
			return err
		}
		switch s.state {
		case StateMenu:
			s.menu()
		case StateChallengeActive:
			s.challengeActive()
		case StateAwaitingSubmission:
			s.submit(ctx)
		case StateResultShown:
			s.resultMenu()
		default:
			s.state = StateMenu
		}
	}
	return nil
}

func (s *Session) menu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "=== Exercise Runner ===")
	fmt.Fprintln(s.out, "  1) List challenges")
	fmt.Fprintln(s.out, "  2) Start challenge")
	fmt.Fprintln(s.out, "  3) Exit")
	choice, ok := s.prompt("Select an option: ")
	if !ok {
		s.state = StateExited
		return
	}

	switch strings.ToLower(choice) {
	case "1", "list":
		s.listChallenges()
	case "2", "start":
		s.selectChallenge()
	case "3", "exit", "quit", "q":
		fmt.Fprintln(s.out, "Goodbye.")
		s.state = StateExited
	case "":
	default:
		fmt.Fprintf(s.out, "Unknown option %q.\n", choice)
	}
}

func (s *Session) listChallenges() {
	s.state = StateListing
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Available challenges:")
	for i, summary := range s.catalog.List() {
		marker := ""
		if s.solved(summary.ID) {
			marker = "  [solved]"
		}
		fmt.Fprintf(
			s.out, "  %d) %s (%s)%s\n",
			i+1, summary.Title, summary.Difficulty, marker,
		)
	}
	s.state = StateMenu
}

// solved consults the attempt history; with no history store
// every challenge reads as unsolved.
func (s *Session) solved(id challenge.ID) bool {
	if s.store == nil {
		return false
	}
	solved, err := s.store.Solved(string(id))
	if err != nil {
		s.logger.Warn("history lookup failed",
			logging.ErrorField(err))
		return false
	}
	return solved
}

func (s *Session) selectChallenge() {
	selector, ok := s.prompt("Challenge number or id: ")
	if !ok {
		s.state = StateExited
		return
	}

	def, err := s.catalog.Get(selector)
	if err != nil {
		s.report(err)
		return
	}

	if err := s.workspace.Prepare(def); err != nil {
		s.report(err)
		return
	}

	s.active = def
	s.hintCursor = 0
	s.revealed = false
	s.state = StateChallengeActive

	s.metrics.SetActiveChallenge(string(def.ID))
	s.events.EmitStarted(string(def.ID), def.Title)
	s.logger.Info("challenge started",
		logging.StringField("challenge", string(def.ID)))
}

func (s *Session) challengeActive() {
	def := s.active
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "=== %s (%s) ===\n", def.Title, def.Difficulty)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, strings.TrimSpace(def.Description))
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Files in %s:\n", s.workspace.Root())
	for _, name := range def.FileNames() {
		fmt.Fprintf(s.out, "  %s\n", name)
	}
	fmt.Fprintln(s.out)

	if _, ok := s.prompt(
		"Edit the files, then press Enter to run the tests...",
	); !ok {
		s.state = StateExited
		return
	}
	s.state = StateAwaitingSubmission
}

func (s *Session) submit(ctx context.Context) {
	def := s.active
	s.metrics.IncrementRunTotal()

	if err := s.executor.InstallDeps(
		ctx, def.Files, s.workspace.Root(),
	); err != nil {
		fmt.Fprintf(
			s.out,
			"Warning: dependency install failed: %v\n", err,
		)
		s.logger.Warn("dependency install failed",
			logging.ErrorField(err))
	}

	fmt.Fprintf(s.out, "Running: %s\n", def.TestCommand)
	result, err := s.executor.Run(
		ctx, def.TestCommand, s.workspace.Root(),
	)
	if err != nil {
		s.reportRunError(err)
		s.state = StateResultShown
		return
	}

	s.printResult(result)
	s.recordResult(result)
	s.state = StateResultShown
}

func (s *Session) printResult(result *executor.Result) {
	fmt.Fprintln(s.out)
	if result.Passed {
		fmt.Fprintln(s.out, "Tests PASSED.")
	} else {
		fmt.Fprintf(
			s.out,
			"Tests FAILED (exit code %d).\n", result.ExitCode,
		)
	}
	if out := strings.TrimSpace(result.Stdout); out != "" {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, out)
	}
	if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, errOut)
	}
}

func (s *Session) recordResult(result *executor.Result) {
	def := s.active

	status := "failed"
	if result.Passed {
		status = "passed"
	}
	s.metrics.RecordAttempt(
		string(def.ID), status, result.Duration,
	)
	if result.Passed {
		s.events.EmitPassed(
			string(def.ID), def.Title, result.Duration,
		)
	} else {
		s.events.EmitFailed(
			string(def.ID), def.Title,
			result.ExitCode, result.Duration,
		)
	}

	s.logger.LogTestRun(logging.TestRunLog{
		ChallengeID: string(def.ID),
		Command:     result.Command,
		ExitCode:    result.ExitCode,
		Passed:      result.Passed,
		DurationMs:  result.Duration.Milliseconds(),
	})

	if s.store != nil {
		_, err := s.store.Record(history.Attempt{
			ChallengeID: string(def.ID),
			Command:     result.Command,
			ExitCode:    result.ExitCode,
			Passed:      result.Passed,
			DurationMs:  result.Duration.Milliseconds(),
			HintsUsed:   min(s.hintCursor, len(def.Hints)),
			Revealed:    s.revealed,
		})
		if err != nil {
			s.logger.Warn("history record failed",
				logging.ErrorField(err))
		}
	}
}

func (s *Session) resultMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "  1) Run tests again")
	fmt.Fprintln(s.out, "  2) Show a hint")
	fmt.Fprintln(s.out, "  3) Reveal the solution")
	fmt.Fprintln(s.out, "  4) Back to menu")
	choice, ok := s.prompt("Select an option: ")
	if !ok {
		s.state = StateExited
		return
	}

	switch strings.ToLower(choice) {
	case "1", "retry":
		s.state = StateAwaitingSubmission
	case "2", "hint":
		s.showHint()
	case "3", "reveal", "solution":
		s.revealSolution()
	case "4", "menu", "back":
		s.metrics.SetActiveChallenge("")
		s.state = StateMenu
	case "":
	default:
		fmt.Fprintf(s.out, "Unknown option %q.\n", choice)
	}
}

// showHint prints the next unused hint. Once hints run out the
// last one is shown again with a note; this is never an error.
func (s *Session) showHint() {
	def := s.active
	s.state = StateHintShown

	if len(def.Hints) == 0 {
		fmt.Fprintln(s.out, "No hints available for this challenge.")
		s.state = StateResultShown
		return
	}

	idx := s.hintCursor
	exhausted := false
	if idx >= len(def.Hints) {
		idx = len(def.Hints) - 1
		exhausted = true
	}

	hint, _ := def.Hint(idx)
	fmt.Fprintf(s.out, "Hint %d/%d: %s\n",
		idx+1, len(def.Hints), hint)
	if exhausted {
		fmt.Fprintln(s.out, "(no more hints)")
	} else {
		s.hintCursor++
		s.metrics.RecordHint(string(def.ID))
		s.events.EmitHint(string(def.ID), def.Title)
	}

	s.state = StateResultShown
}

func (s *Session) revealSolution() {
	def := s.active
	if err := s.workspace.RevealSolution(def); err != nil {
		s.report(err)
		s.state = StateResultShown
		return
	}
	s.state = StateSolutionShown
	s.revealed = true

	s.metrics.RecordReveal(string(def.ID))
	s.events.EmitRevealed(string(def.ID), def.Title)
	s.logger.Info("solution revealed",
		logging.StringField("challenge", string(def.ID)))

	fmt.Fprintf(
		s.out,
		"Solution written to %s. Study the files, "+
			"then run the tests to verify.\n",
		s.workspace.Root(),
	)
	s.state = StateResultShown
}

// reportRunError explains a platform-level execution failure, as
// opposed to a test that ran and failed.
func (s *Session) reportRunError(err error) {
	def := s.active

	var execErr *executor.ExecError
	if errors.As(err, &execErr) &&
		execErr.Kind == executor.KindTimeout {
		fmt.Fprintf(
			s.out,
			"Test run timed out and was killed: %s\n",
			execErr.Command,
		)
		s.metrics.RecordAttempt(string(def.ID), "timeout", 0)
		s.events.EmitTimedOut(string(def.ID), def.Title)
	} else {
		fmt.Fprintf(
			s.out,
			"Could not run the test command "+
				"(environment problem, not a failing test): %v\n",
			err,
		)
	}
	s.logger.Error("test run failed",
		logging.StringField("challenge", string(def.ID)),
		logging.ErrorField(err))
}

// report converts a component error into a user-visible message
// and returns the loop to a safe state.
func (s *Session) report(err error) {
	var notFound *catalog.NotFoundError
	var writeErr *workspace.WriteError

	switch {
	case errors.As(err, &notFound):
		fmt.Fprintf(s.out, "%v. Try \"list\" first.\n", err)
	case errors.As(err, &writeErr):
		fmt.Fprintf(s.out, "Workspace error: %v\n", err)
	case errors.Is(err, workspace.ErrNotPrepared):
		fmt.Fprintf(s.out, "Start a challenge first: %v\n", err)
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	s.logger.Error("session step failed",
		logging.ErrorField(err))
}

// prompt prints a prompt and reads one trimmed line. The second
// return value is false when input is exhausted.
func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
