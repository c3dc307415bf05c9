package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quizdoc/internal/app"
	"quizdoc/internal/bank"
	"quizdoc/internal/config"
	"quizdoc/internal/loader"
	"quizdoc/internal/quiz"
	"quizdoc/internal/store"
)

// appOverrides carries per-command flag values into runApp. Zero values
// mean "use the config".
type appOverrides struct {
	source string
	count  int
	seed   *uint64
}

// runApp resolves the configuration, loads the document, opens the history
// store and launches the TUI.
func runApp(cmd *cobra.Command, ov appOverrides) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ov.source != "" {
		cfg.Source = ov.source
	}
	if ov.count > 0 {
		cfg.Questions = ov.count
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	pool, report, err := loadPool(ctx, cfg)
	if err != nil {
		return err
	}

	opts := app.Options{
		Pool:   pool,
		Report: report,
		Source: cfg.Source,
		Count:  cfg.Questions,
	}

	// History is optional. A broken database must not block a quiz.
	if st, err := openStore(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "History unavailable:", err)
	} else {
		defer st.Close()
		opts.Store = st
	}

	if ov.seed != nil {
		opts.SessionOpts = append(opts.SessionOpts,
			quiz.WithRand(rand.New(rand.NewPCG(*ov.seed, *ov.seed>>1))))
	}

	return app.Run(opts)
}

// loadConfig resolves the effective configuration for a command: config
// file, then environment, then persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.HistoryDB = p
	}
	return cfg, nil
}

// loadPool fetches and parses the configured document.
func loadPool(ctx context.Context, cfg config.Config) (bank.Pool, *bank.Report, error) {
	retry := loader.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Request.MaxAttempts

	l := loader.New(
		loader.WithTimeout(time.Duration(cfg.Request.TimeoutSecs)*time.Second),
		loader.WithRetry(retry),
	)
	doc, err := l.Load(ctx, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", cfg.Source, err)
	}

	pool, report, err := bank.Parse(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", cfg.Source, err)
	}
	return pool, report, nil
}

// openStore opens the attempt history database, creating parent
// directories as needed.
func openStore(cfg config.Config) (*store.Store, error) {
	path, err := resolveDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// resolveDBPath returns the database path using --db / QUIZDOC_DB / the
// config file (already merged into cfg), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.HistoryDB != "" {
		return cfg.HistoryDB, store.EnsureDir(cfg.HistoryDB)
	}
	return store.DefaultDBPath()
}
