// Package cmd implements the touchline CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/app"
	"github.com/pmartineau/touchline/internal/config"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	BaseURL string
	Format  string
	Out     string
	Timeout string
	Rate    float64
	Retries int
	League  int
	Season  int
	Quiet   bool
	Verbose bool
	Debug   bool
}

// rootCmd is the base command. Running `touchline` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "touchline",
	Short: "touchline — football statistics from your league backend",
	Long: `touchline is a command-line tool for exploring football statistics
served by a football-data backend: league tables, fixtures, squads and
player records.

Seasons follow the football calendar: season 2023 means 2023-2024 and
rolls over in August. The set of queryable seasons depends on the
backend provider's plan, which touchline detects automatically.

Quick start:
  touchline config init         # create a config.json
  touchline standings           # current league table
  touchline matches --status upcoming
  touchline teams --search paris`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		p := api.Describe(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if p.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", p.Suggestion)
		}
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug

	if globalFlags.BaseURL != "" {
		cfg.BaseURL = globalFlags.BaseURL
	}
	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.Timeout != "" {
		if d, err2 := time.ParseDuration(globalFlags.Timeout); err2 == nil {
			cfg.Timeout = d
		}
	}
	if globalFlags.Rate > 0 {
		cfg.Rate = globalFlags.Rate
	}
	if globalFlags.Retries > 0 {
		cfg.Retries = globalFlags.Retries
	}
	if globalFlags.League > 0 {
		cfg.DefaultLeague = globalFlags.League
	}
	if globalFlags.Season > 0 {
		cfg.DefaultSeason = globalFlags.Season
	}

	return app.New(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.BaseURL, "base-url", "",
		"backend base URL (overrides env TOUCHLINE_BASE_URL and config.json)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|jsonl|csv|tsv|md (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"HTTP request timeout (e.g. 30s, 2m)")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max backend requests per second (default: 5.0)")
	pf.IntVar(&globalFlags.Retries, "retries", 0,
		"retry transient failures up to N times (default: 0)")
	pf.IntVar(&globalFlags.League, "league", 0,
		"league ID (default: 61, Ligue 1)")
	pf.IntVar(&globalFlags.Season, "season", 0,
		"season start year, e.g. 2023 for 2023-2024 (default: recommended)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"show timing stats after output")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses")
}
