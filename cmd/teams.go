package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/teams"
	"github.com/pmartineau/touchline/internal/view"
)

var (
	teamsSearch        string
	teamsSort          string
	teamsQualification string
	teamsShowStats     bool
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams with their standings",
	Long: `List the teams of a league season with standings fields attached.

Search matches team name and country, case-insensitively. The
qualification filter buckets teams by final-table consequence:
champions-league (top 3), europa-league (4-6), relegation (bottom 2).`,
	Example: `  touchline teams
  touchline teams --search paris
  touchline teams --qualification champions-league --sort points
  touchline teams --stats`,
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

		v := view.NewTeamsView(view.ClientTeamsSource(deps.Client), league, season)
		defer v.Close()
		if err := v.Load(cmd.Context()); err != nil {
			return err
		}
		v.SetSearch(teamsSearch)
		v.SetSort(teams.SortKey(teamsSort))
		v.SetQualification(teams.Qualification(qualificationOrAll(teamsQualification)))
		list := v.Teams()

		if teamsShowStats {
			// Statistics always describe the unfiltered list.
			stats := v.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Teams: %d (showing %d)\n", stats.Total, stats.Filtered)
			fmt.Fprintf(out, "Average points: %.1f\n", stats.AveragePoints)
			if stats.TopScorer != nil {
				fmt.Fprintf(out, "Most goals: %s (%d)\n", stats.TopScorer.Name, stats.TopScorer.GoalsFor)
			}
			if stats.BestDefense != nil {
				fmt.Fprintf(out, "Best defense: %s (%d conceded)\n", stats.BestDefense.Name, stats.BestDefense.GoalsAgainst)
			}
			fmt.Fprintln(out)
		}

		result := newResult(model.KindTeams,
			fmt.Sprintf("teams %d %d", league, season),
			list, len(list), start)
		return emit(cmd, deps, result)
	},
}

// qualificationOrAll maps an empty flag value to the "all" bucket.
func qualificationOrAll(q string) string {
	if q == "" {
		return string(teams.QualificationAll)
	}
	return q
}

func init() {
	rootCmd.AddCommand(teamsCmd)

	teamsCmd.Flags().StringVar(&teamsSearch, "search", "", "filter by team name or country (case-insensitive)")
	teamsCmd.Flags().StringVar(&teamsSort, "sort", "position", "sort key: position|name|points")
	teamsCmd.Flags().StringVar(&teamsQualification, "qualification", "", "bucket: all|champions-league|europa-league|relegation")
	teamsCmd.Flags().BoolVar(&teamsShowStats, "stats", false, "print headline statistics before the list")
}
