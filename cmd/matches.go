package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/matches"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/view"
)

var (
	matchesTeam      int
	matchesFrom      string
	matchesTo        string
	matchesStatus    string
	matchesSort      string
	matchesShowStats bool
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List fixtures of a league season",
	Long: `Fetch fixtures for a league season. The full list plus the backend's
recent and upcoming windows are fetched in parallel; team, date and
status filters are applied locally.

Status accepts the raw match statuses (live, finished, scheduled,
postponed, cancelled) plus the window aliases recent and upcoming.`,
	Example: `  touchline matches
  touchline matches --status upcoming
  touchline matches --team 85 --sort date-desc
  touchline matches --from 2024-01-01 --to 2024-01-31`,
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

		filters := view.MatchFilters{
			TeamID: matchesTeam,
			Status: view.StatusFilter(matchesStatus),
		}
		if matchesFrom != "" {
			t, err := time.Parse("2006-01-02", matchesFrom)
			if err != nil {
				return fmt.Errorf("--from: invalid date %q, expected YYYY-MM-DD", matchesFrom)
			}
			filters.StartDate = t
		}
		if matchesTo != "" {
			t, err := time.Parse("2006-01-02", matchesTo)
			if err != nil {
				return fmt.Errorf("--to: invalid date %q, expected YYYY-MM-DD", matchesTo)
			}
			// Make the bound inclusive of the whole day.
			filters.EndDate = t.Add(24*time.Hour - time.Nanosecond)
		}

		v := view.NewMatchesView(view.ClientMatchesSource(deps.Client), league, season)
		defer v.Close()
		if err := v.Load(cmd.Context()); err != nil {
			return err
		}
		v.SetFilters(filters)
		v.SetSort(matches.SortOption(matchesSort))
		list := v.Matches()

		if matchesShowStats {
			s := v.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Matches: %d total, %d finished, %d live, %d upcoming (showing %d)\n\n",
				s.Total, s.Finished, s.Live, s.Upcoming, len(list))
		}

		result := newResult(model.KindMatches,
			fmt.Sprintf("matches %d %d", league, season),
			list, len(list), start)
		return emit(cmd, deps, result)
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd)

	matchesCmd.Flags().IntVar(&matchesTeam, "team", 0, "only matches involving this team ID")
	matchesCmd.Flags().StringVar(&matchesFrom, "from", "", "start date YYYY-MM-DD (inclusive)")
	matchesCmd.Flags().StringVar(&matchesTo, "to", "", "end date YYYY-MM-DD (inclusive)")
	matchesCmd.Flags().StringVar(&matchesStatus, "status", "", "status filter: all|live|finished|scheduled|postponed|cancelled|recent|upcoming")
	matchesCmd.Flags().StringVar(&matchesSort, "sort", "date", "sort: date|date-desc|team-home|team-away")
	matchesCmd.Flags().BoolVar(&matchesShowStats, "stats", false, "print window counts before the list")
}
