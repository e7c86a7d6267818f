package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/season"
)

var seasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Inspect and choose seasons",
	Long: `Commands around season selection.

A season is named by its starting year: season 2023 is 2023-2024. The
current season rolls over in August. Which historical seasons are
queryable depends on the backend provider's plan, detected on first use.`,
}

// ─── season list ──────────────────────────────────────────────────────────────

var seasonListCmd = &cobra.Command{
	Use:   "list",
	Short: "List seasons available under the detected plan",
	Example: `  touchline season list
  touchline season list --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}
		defer deps.Close()

		start := time.Now()
		seasons := deps.Seasons.AvailableSeasons(cmd.Context())
		result := newResult(model.KindSeasons, "season list", seasons, len(seasons), start)
		return emit(cmd, deps, result)
	},
}

// ─── season current ───────────────────────────────────────────────────────────

var seasonCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the recommended season",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}
		defer deps.Close()

		s := deps.Seasons.Recommended(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.Label, season.Context(s.Year, time.Now()))
		return nil
	},
}

// ─── season plan ──────────────────────────────────────────────────────────────

var seasonPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the detected provider plan",
	Long: `Show the provider plan behind the season range. Detection probes the
backend's status endpoint, then falls back to a standings request for
the current year and judges the tier from how the provider answers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}
		defer deps.Close()

		start := time.Now()
		plan := deps.Seasons.Plan(cmd.Context())
		result := newResult(model.KindPlan, "season plan", &plan, 1, start)
		return emit(cmd, deps, result)
	},
}

// ─── season set / clear ───────────────────────────────────────────────────────

var seasonSetCmd = &cobra.Command{
	Use:   "set <YEAR>",
	Short: "Persist a preferred season",
	Long: `Persist a preferred season in the local store. Commands use it when
no --season flag or config default is set, provided the detected plan
still allows it.`,
	Example: `  touchline season set 2022`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := parseIntID(args[0], "season year")
		if err != nil {
			return err
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		if !deps.Seasons.IsAvailable(cmd.Context(), year) {
			plan := deps.Seasons.Plan(cmd.Context())
			return fmt.Errorf("season %d is outside the %s plan range (%d-%d)",
				year, plan.Type, plan.AvailableFrom, plan.AvailableTo)
		}
		if err := deps.Store.SetPreferredSeason(year); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Preferred season set to %s\n", season.Label(year))
		return nil
	},
}

var seasonClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the persisted season preference",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Store.ClearPreferredSeason(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferred season cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seasonCmd)
	seasonCmd.AddCommand(seasonListCmd)
	seasonCmd.AddCommand(seasonCurrentCmd)
	seasonCmd.AddCommand(seasonPlanCmd)
	seasonCmd.AddCommand(seasonSetCmd)
	seasonCmd.AddCommand(seasonClearCmd)
}
