package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/view"
)

var (
	teamDetailed bool
	teamTop      bool
)

var teamCmd = &cobra.Command{
	Use:   "team <TEAM_ID>",
	Short: "Show a team's squad",
	Long: `Fetch a team's squad for a league season. The plain roster and the
statistics-bearing roster load in parallel; --detailed selects the
latter. --top additionally prints the team's top performers, a panel
that silently comes back empty when the backend cannot serve it.`,
	Example: `  touchline team 85
  touchline team 85 --detailed
  touchline team 85 --top`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		teamID, err := parseIntID(args[0], "team ID")
		if err != nil {
			return err
		}

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

		v := view.NewTeamDetailView(view.ClientTeamDetailSource(deps.Client), teamID, league, season)
		defer v.Close()
		if err := v.Load(cmd.Context()); err != nil {
			return err
		}

		var list []model.PlayerDetails
		if teamDetailed {
			if ds := v.DetailedSquad(); ds != nil {
				list = ds.Players
			}
		} else {
			if sq := v.Squad(); sq != nil {
				list = sq.Players
			}
		}

		if teamTop {
			top := v.TopPerformers()
			if len(top) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Top performers:")
				printSimpleTable(cmd.OutOrStdout(), []string{"NAME", "GOALS", "ASSISTS"}, func(add func(...string)) {
					for _, p := range top {
						goals, assists := "0", "0"
						if p.Performance != nil {
							goals = fmt.Sprintf("%d", p.Performance.Goals)
							assists = fmt.Sprintf("%d", p.Performance.Assists)
						}
						add(p.Name, goals, assists)
					}
				})
				fmt.Fprintln(cmd.OutOrStdout())
			}
		}

		result := newResult(model.KindPlayers,
			fmt.Sprintf("team %d %d %d", teamID, league, season),
			list, len(list), start)
		return emit(cmd, deps, result)
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)

	teamCmd.Flags().BoolVar(&teamDetailed, "detailed", false, "show the statistics-bearing roster")
	teamCmd.Flags().BoolVar(&teamTop, "top", false, "also show top performers")
}
