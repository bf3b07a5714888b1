package commands

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/config"
	"github.com/penwyp/go-claude-statusline/internal/core/cost"
	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/core/snapshot"
	"github.com/penwyp/go-claude-statusline/internal/data/loader"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile  string
	debug       bool
	timezone    string
	fullHistory bool
	claudeDirs  []string
	pricingFile string
	color       string
	logFile     string
	concurrency int
}

func (o *globalOptions) register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "",
		"Config file (default $XDG_CONFIG_HOME/go-claude-statusline/config.yaml)")
	pf.BoolVar(&o.debug, "debug", false,
		"Enable debug logging to stderr")
	pf.StringVar(&o.timezone, "timezone", "Local",
		"Timezone that defines today (e.g., Asia/Shanghai, UTC)")
	pf.BoolVar(&o.fullHistory, "full-history", false,
		"Load every log entry instead of only recent ones")
	pf.StringSliceVar(&o.claudeDirs, "claude-dir", nil,
		"Claude data directory (repeatable, overrides CLAUDE_CONFIG_DIR)")
	pf.StringVar(&o.pricingFile, "pricing-file", "",
		"JSON pricing table layered over the built-in rates")
	pf.StringVar(&o.color, "color", config.ColorAuto,
		"Color output (auto, always, never)")
	pf.StringVar(&o.logFile, "log-file", "",
		"Log file (default $XDG_STATE_HOME/go-claude-statusline/app.log)")
	pf.IntVar(&o.concurrency, "concurrency", 0,
		"Parser workers per file (0 = config or default)")
}

// apply overrides cfg with the flags set on the command line.
func (o *globalOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("timezone") {
		cfg.Timezone = o.timezone
	}
	if flags.Changed("full-history") {
		cfg.FullHistory = o.fullHistory
	}
	if flags.Changed("claude-dir") {
		cfg.ClaudeDirs = o.claudeDirs
	}
	if flags.Changed("pricing-file") {
		cfg.PricingFile = o.pricingFile
	}
	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
}

// runtimeEnv is the resolved state a command runs with.
type runtimeEnv struct {
	cfg  *config.Config
	ctx  context.Context
	calc *cost.Calculator
}

// prepare resolves configuration, starts logging and builds the calculator.
func prepare(cmd *cobra.Command, opts *globalOptions) (*runtimeEnv, error) {
	path := opts.configFile
	if path == "" {
		path = util.DefaultConfigFile()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	opts.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := util.InitLogger(cfg.LogLevel, cfg.LogFile, opts.debug); err != nil {
		// Logging is best effort: keep going without the file.
		if fallbackErr := util.InitLogger(cfg.LogLevel, "", opts.debug); fallbackErr == nil {
			util.LogWarnf("Logging to %s disabled: %v", cfg.LogFile, err)
		}
	}
	ctx := util.ContextWithRunID(cmd.Context(), xid.New().String())
	util.TagLoggerFromContext(ctx)

	if err := util.GetTimeProvider().SetTimezone(cfg.Timezone); err != nil {
		util.CloseLogger()
		return nil, err
	}

	calc, err := newCalculator(cfg)
	if err != nil {
		util.CloseLogger()
		return nil, err
	}

	util.LogDebugf("Running %s (timezone=%s, full_history=%t)", cmd.Name(), cfg.Timezone, cfg.FullHistory)
	return &runtimeEnv{cfg: cfg, ctx: ctx, calc: calc}, nil
}

func newCalculator(cfg *config.Config) (*cost.Calculator, error) {
	if cfg.PricingFile == "" {
		return cost.NewCalculator(nil), nil
	}
	table, err := pricing.LoadTableFile(cfg.PricingFile)
	if err != nil {
		return nil, err
	}
	return cost.NewCalculator(table), nil
}

// loadSnapshot loads usage from every resolved data directory. When recent
// is set, records older than loader.RecentCutoff are skipped except those
// of current.
func (e *runtimeEnv) loadSnapshot(current model.SessionID, recent bool) (*snapshot.Snapshot, error) {
	dirs, err := util.ResolveDataDirs(e.cfg.DataDirs())
	if err != nil {
		return nil, err
	}

	now := util.GetTimeProvider().Now()
	opts := loader.Options{
		Concurrency:    e.cfg.Concurrency,
		CurrentSession: current,
		Now:            now,
	}
	if recent {
		opts.Cutoff = loader.RecentCutoff(now)
	}

	start := time.Now()
	snap, err := loader.New(e.calc, opts).Load(e.ctx, dirs)
	if err != nil {
		return nil, err
	}
	util.LogDebugf("Loaded %d records from %d directories in %v", snap.Len(), len(dirs), time.Since(start))
	return snap, nil
}

func (e *runtimeEnv) close() {
	util.CloseLogger()
}
