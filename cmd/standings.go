package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/standings"
)

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the league table",
	Long: `Fetch and display the league table for a league season.

The table is shown exactly as the backend ranks it; rows are never
re-sorted locally.`,
	Example: `  touchline standings
  touchline standings --league 39 --season 2022
  touchline standings --format csv --out table.csv`,
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
		league := resolveLeague(deps)
		season := resolveSeason(cmd.Context(), deps)

		resp, err := standings.Get(cmd.Context(), deps.Client, league, season)
		if err != nil {
			return err
		}
		result := newResult(model.KindStandings,
			fmt.Sprintf("standings %d %d", league, season),
			resp, len(resp.Standings), start)
		return emit(cmd, deps, result)
	},
}

// ─── standings summary ────────────────────────────────────────────────────────

var standingsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show headline figures derived from the table",
	Example: `  touchline standings summary
  touchline standings summary --league 140`,
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
		league := resolveLeague(deps)
		season := resolveSeason(cmd.Context(), deps)

		resp, err := standings.Get(cmd.Context(), deps.Client, league, season)
		if err != nil {
			return err
		}
		sum := standings.Summarize(resp)
		result := newResult(model.KindSummary,
			fmt.Sprintf("standings summary %d %d", league, season),
			&sum, sum.TotalTeams, start)
		return emit(cmd, deps, result)
	},
}

// ─── standings played ─────────────────────────────────────────────────────────

var standingsPlayedCmd = &cobra.Command{
	Use:   "played",
	Short: "Analyze matches-played spread across the table",
	Long: `Report the minimum, maximum and average matches played across the
table, and list teams trailing the average (postponed fixtures).`,
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
		league := resolveLeague(deps)
		season := resolveSeason(cmd.Context(), deps)

		resp, err := standings.Get(cmd.Context(), deps.Client, league, season)
		if err != nil {
			return err
		}
		analysis := standings.AnalyzeMatchesPlayed(resp.Standings)

		format := resolveFormat(deps.Config.Format)
		if format == "table" || format == "" {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Matches played: min %d, max %d, avg %.1f\n",
				analysis.MinMatches, analysis.MaxMatches, analysis.AverageMatches)
			if len(analysis.DelayedTeams) > 0 {
				printSimpleTable(out, []string{"#", "TEAM", "PLAYED"}, func(add func(...string)) {
					for _, e := range analysis.DelayedTeams {
						add(fmt.Sprintf("%d", e.Rank), e.Team.Name, fmt.Sprintf("%d", e.All.Played))
					}
				})
			}
			return nil
		}
		result := newResult(model.KindReport,
			fmt.Sprintf("standings played %d %d", league, season),
			&analysis, len(analysis.DelayedTeams), start)
		return emit(cmd, deps, result)
	},
}

func init() {
	rootCmd.AddCommand(standingsCmd)
	standingsCmd.AddCommand(standingsSummaryCmd)
	standingsCmd.AddCommand(standingsPlayedCmd)
}
