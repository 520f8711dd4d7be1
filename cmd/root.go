// Package cmd implements the atlas CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/atlas/internal/app"
	"github.com/theirongolddev/atlas/internal/config"
	"github.com/theirongolddev/atlas/internal/logger"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagMonth     string
	flagVerbose   bool
	flagQuiet     bool
	flagNoPersist bool
)

var rootCmd = &cobra.Command{
	Use:          "atlas",
	Short:        "Personal finance ledger",
	Long:         "Track income, expenses and transfers across checking, savings and cash, and see where the month is going.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to report on, YYYY-MM (default current)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress confirmations")
	rootCmd.PersistentFlags().BoolVar(&flagNoPersist, "no-persist", false, "Keep everything in memory for this run")
}

// env is the per-invocation state shared by every command.
type env struct {
	ctx    context.Context
	cfg    config.Config
	app    *app.App
	log    zerolog.Logger
	month  string
	out    io.Writer
	closer func()
}

// openEnv loads config, sets up logging and opens the ledger.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, closeLog := buildLogger(cfg, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx, log)

	opts := app.Options{Logger: log}
	var core *app.App
	if flagNoPersist {
		core, err = app.New(ctx, store.NewMemory(), opts)
	} else {
		dbPath := flagDB
		if dbPath == "" {
			dbPath = cfg.DBPath()
		}
		core, err = app.Open(ctx, dbPath, opts)
	}
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	month := flagMonth
	if month == "" {
		month = core.CurrentMonth()
	} else if err := app.ValidateMonth(month); err != nil {
		_ = core.Close()
		closeLog()
		return nil, err
	}

	return &env{
		ctx:   ctx,
		cfg:   cfg,
		app:   core,
		log:   log,
		month: month,
		out:   cmd.OutOrStdout(),
		closer: func() {
			if err := core.Close(); err != nil {
				log.Warn().Err(err).Msg("closing store")
			}
			closeLog()
		},
	}, nil
}

func (e *env) Close() {
	e.closer()
}

func (e *env) snapshotOptions() app.SnapshotOptions {
	return app.SnapshotOptions{
		TopCategories: e.cfg.General.TopCategories,
		TrendMonths:   e.cfg.General.TrendMonths,
	}
}

// confirm prints a confirmation line unless --quiet is set.
func (e *env) confirm(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(e.out, "  "+format+"\n", args...)
}

// buildLogger returns the console logger for --verbose, otherwise a JSON
// logger appending to the configured log file. Logging never blocks a
// command: when the file can't be opened logging is disabled.
func buildLogger(cfg config.Config, stderr io.Writer) (zerolog.Logger, func()) {
	if flagVerbose {
		return logger.NewConsole(stderr, "debug"), func() {}
	}
	f, err := logger.OpenFile(cfg.LogPath())
	if err != nil {
		return logger.Nop(), func() {}
	}
	return logger.New(f, cfg.Log.Level), func() { _ = f.Close() }
}

// parseAccount accepts checking, savings or cash in any case.
func parseAccount(flag, raw string) (model.Account, error) {
	a := model.Account(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range model.Accounts {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("--%s %q: expected checking, savings or cash", flag, raw)
}
