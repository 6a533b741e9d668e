// Command exercises runs the terminal exercise session: a
// catalog of coding challenges materialized into a scratch
// workspace, validated by each challenge's own test command.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"digital.vasic.exercises/pkg/catalog"
	"digital.vasic.exercises/pkg/challenge"
	"digital.vasic.exercises/pkg/challenges"
	"digital.vasic.exercises/pkg/config"
	"digital.vasic.exercises/pkg/executor"
	"digital.vasic.exercises/pkg/history"
	"digital.vasic.exercises/pkg/logging"
	"digital.vasic.exercises/pkg/metrics"
	"digital.vasic.exercises/pkg/monitor"
	"digital.vasic.exercises/pkg/report"
	"digital.vasic.exercises/pkg/session"
	"digital.vasic.exercises/pkg/workspace"
)

var (
	flagWorkspace string
	flagBankDir   string
	flagTimeout   int
	flagMonitor   string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Terminal-driven coding exercise runner",
	Long: `exercises presents a catalog of coding challenges, writes each
challenge's starter files into a scratch workspace, and runs the
challenge's test command against your edits. Hints and a reference
solution are available on request.

Run without arguments to start an interactive session.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the challenge catalog and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defs, err := loadDefinitions(cfg)
		if err != nil {
			return err
		}
		cat, err := catalog.New(defs...)
		if err != nil {
			return err
		}

		difficulty, _ := cmd.Flags().GetString("difficulty")
		summaries := cat.List()
		if difficulty != "" {
			level, err := challenge.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			summaries = cat.ByDifficulty(level)
		}

		for i, s := range summaries {
			fmt.Fprintf(
				cmd.OutOrStdout(), "%d) %s [%s] (%s)\n",
				i+1, s.Title, s.ID, s.Difficulty,
			)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <bank-file>...",
	Short: "Check bank files without starting a session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		for _, path := range args {
			problems := catalog.ValidateBankFile(path)
			if len(problems) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				continue
			}
			failed = true
			for _, p := range problems {
				fmt.Fprintf(
					cmd.OutOrStdout(), "%s: %v\n", path, p,
				)
			}
		}
		if failed {
			return fmt.Errorf("bank validation failed")
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded attempts and per-challenge stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats()
		if err != nil {
			return err
		}
		for _, cs := range stats {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"%s: %d attempts, %d passed\n",
				cs.ChallengeID, cs.Attempts, cs.Passes,
			)
		}

		exportPath, _ := cmd.Flags().GetString("export")
		if exportPath == "" {
			return nil
		}
		attempts, err := store.Recent("", 10000)
		if err != nil {
			return err
		}
		if err := report.ExportHistoryFile(
			exportPath, attempts,
		); err != nil {
			return err
		}
		fmt.Fprintf(
			cmd.OutOrStdout(),
			"exported %d attempts to %s\n",
			len(attempts), exportPath,
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&flagWorkspace, "workspace", "",
		"workspace directory for challenge files",
	)
	rootCmd.PersistentFlags().StringVar(
		&flagBankDir, "bank-dir", "",
		"directory of extra challenge bank files",
	)
	rootCmd.PersistentFlags().IntVar(
		&flagTimeout, "timeout", 0,
		"test command timeout in seconds (0 = no limit)",
	)
	rootCmd.PersistentFlags().StringVar(
		&flagMonitor, "monitor", "",
		"address for the live monitor server (empty = off)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagVerbose, "verbose", "v", false,
		"verbose logging",
	)

	listCmd.Flags().String(
		"difficulty", "",
		"only list challenges of this difficulty",
	)
	historyCmd.Flags().String(
		"export", "",
		"export all attempts as JSON lines to this file",
	)

	rootCmd.AddCommand(listCmd, validateCmd, historyCmd)
}

// loadConfig merges environment configuration with any flags the
// user set explicitly; flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("workspace") {
		cfg.WorkspaceDir = flagWorkspace
	}
	if flags.Changed("bank-dir") {
		cfg.BankDir = flagBankDir
	}
	if flags.Changed("timeout") {
		cfg.TestTimeout = time.Duration(flagTimeout) * time.Second
	}
	if flags.Changed("monitor") {
		cfg.MonitorAddr = flagMonitor
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	return cfg, nil
}

// loadDefinitions combines the builtin challenges with any
// external bank directory.
func loadDefinitions(
	cfg *config.Config,
) ([]challenge.Definition, error) {
	defs, err := challenges.Builtin()
	if err != nil {
		return nil, err
	}
	if cfg.BankDir != "" {
		extra, err := catalog.LoadBankDir(cfg.BankDir)
		if err != nil {
			return nil, err
		}
		defs = append(defs, extra...)
	}
	return defs, nil
}

func runSession(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	defs, err := loadDefinitions(cfg)
	if err != nil {
		return err
	}
	cat, err := catalog.New(defs...)
	if err != nil {
		return err
	}

	console := logging.NewConsoleLogger(cfg.Verbose)
	fileLogger, err := logging.SetupLogging(
		cfg.LogDir, cfg.Verbose,
	)
	var logger logging.Logger = console
	if err != nil {
		console.Warn("file logging disabled",
			logging.ErrorField(err))
	} else {
		logger = logging.NewMultiLogger(console, fileLogger)
	}
	defer logger.Close()

	var store *history.Store
	if cfg.HistoryDB != "" {
		store, err = history.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn("attempt history disabled",
				logging.ErrorField(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	collector := metrics.NewCollector()
	events := monitor.NewEventCollector()

	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if cfg.MonitorAddr != "" {
		board := monitor.NewBoardData(
			time.Now().Format("20060102_150405"),
		)
		server := monitor.NewWebSocketServer(
			cfg.MonitorAddr, events, board, collector,
		)
		go func() {
			if err := server.Start(ctx); err != nil {
				logger.Warn("monitor server stopped",
					logging.ErrorField(err))
			}
		}()
		logger.Info("live monitor listening",
			logging.StringField("addr", cfg.MonitorAddr))
	}

	sess, err := session.New(session.Config{
		Catalog:   cat,
		Workspace: workspace.NewManager(cfg.WorkspaceDir),
		Executor:  executor.New(cfg.TestTimeout),
		Logger:    logger,
		Metrics:   collector,
		Events:    events,
		History:   store,
		Input:     os.Stdin,
		Output:    os.Stdout,
	})
	if err != nil {
		return err
	}

	runErr := sess.Run(ctx)

	if cfg.ReportDir != "" {
		board := monitor.BuildBoardData(events)
		summary := report.BuildSessionSummary(
			defs, board.Snapshot(), events.Stats(),
		)
		if err := report.SaveSessionSummary(
			summary, cfg.ReportDir,
		); err != nil {
			logger.Warn("session summary not saved",
				logging.ErrorField(err))
		}
	}

	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
