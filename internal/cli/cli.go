package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pfrederiksen/ietf-groups/internal/config"
	"github.com/pfrederiksen/ietf-groups/internal/fetch"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
	"github.com/pfrederiksen/ietf-groups/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagLogLevel string
	flagVerbose  bool

	// Set up by the root command before any subcommand runs
	cfg     *config.Config
	metrics *logger.Metrics
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ietf-groups",
		Short: "Collect and query IETF working groups and IRTF research groups",
		Long: `A CLI tool that scrapes the IETF datatracker and the IRTF website into a
single snapshot of groups, and answers queries against that snapshot.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: reportMetrics,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.DefaultConfigPath+")")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and print metrics on exit")

	cmd.AddCommand(
		newFetchCmd(),
		newIntegrateCmd(),
		newListCmd(),
		newShowCmd(),
		newTypesCmd(),
		newAreasCmd(),
		newNamesCmd(),
	)

	return cmd
}

// setup loads the config and installs the logger every command shares
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	levelName := loaded.LogLevel
	if flagVerbose {
		levelName = string(logger.LevelDebug)
	}
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}

	cfg = loaded
	metrics = logger.NewMetrics()
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	return nil
}

func reportMetrics(cmd *cobra.Command, args []string) {
	if !flagVerbose || metrics == nil {
		return
	}
	encoder := json.NewEncoder(cmd.ErrOrStderr())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(metrics.GetSnapshot()); err != nil {
		logger.Warn("Failed to write metrics", nil, err)
	}
}

// newScraper builds a scraper from the loaded config
func newScraper() *scraper.Scraper {
	log := logger.Default()

	// Negative values in the config switch these off
	rps := cfg.RequestsPerSecond
	if rps < 0 {
		rps = 0
	}
	ttl := time.Duration(cfg.CacheTTL)
	if ttl < 0 {
		ttl = 0
	}

	fetcher := fetch.New(fetch.Options{
		UserAgent:         cfg.UserAgent,
		Timeout:           time.Duration(cfg.Timeout),
		RequestsPerSecond: rps,
		Burst:             cfg.Burst,
		CacheSize:         cfg.CacheSize,
		CacheTTL:          ttl,
		Logger:            log,
		Metrics:           metrics,
	})

	return scraper.New(fetcher, scraper.Options{
		IETFGroupsURL: cfg.IETFGroupsURL,
		IETFSiteURL:   cfg.IETFSiteURL,
		IRTFGroupsURL: cfg.IRTFGroupsURL,
		IETFNamesURL:  cfg.IETFNamesURL,
		IRTFNamesURL:  cfg.IRTFNamesURL,
		Dedup:         cfg.DedupPolicy(),
		Logger:        log,
		Metrics:       metrics,
	})
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
