package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/leagues"
	"github.com/pmartineau/touchline/internal/model"
)

var leagueCmd = &cobra.Command{
	Use:   "league",
	Short: "Inspect known leagues",
	Long: `Commands around league identity.

League records come from the local store first and fall back to the
built-in table of major European competitions.`,
}

// ─── league list ──────────────────────────────────────────────────────────────

var leagueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known leagues",
	Example: `  touchline league list
  touchline league list --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		start := time.Now()

		// Merge stored records over the built-in table.
		byID := make(map[int]model.League)
		var order []int
		for _, l := range leagues.Known() {
			byID[l.ID] = l
			order = append(order, l.ID)
		}
		if err := deps.RequireStore(); err == nil {
			if stored, err := deps.Store.ListLeagues(); err == nil {
				for _, l := range stored {
					if _, known := byID[l.ID]; !known {
						order = append(order, l.ID)
					}
					byID[l.ID] = l
				}
			}
		}
		list := make([]model.League, 0, len(order))
		for _, id := range order {
			list = append(list, byID[id])
		}

		result := newResult(model.KindLeagues, "league list", list, len(list), start)
		return emit(cmd, deps, result)
	},
}

// ─── league info ──────────────────────────────────────────────────────────────

var leagueInfoCmd = &cobra.Command{
	Use:     "info <LEAGUE_ID>",
	Short:   "Show one league's record",
	Example: `  touchline league info 39`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "league ID")
		if err != nil {
			return err
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		_ = deps.RequireStore() // resolution works without a store too
		league, err := leagues.Resolve(deps.Store, id)
		if err != nil {
			return err
		}

		rows := [][]string{
			{"ID", fmt.Sprintf("%d", league.ID)},
			{"Name", league.Name},
			{"Country", fmt.Sprintf("%s (%s)", league.Country, league.CountryCode)},
			{"Description", league.Description},
		}
		printSimpleTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, func(add func(...string)) {
			for _, r := range rows {
				add(r...)
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leagueCmd)
	leagueCmd.AddCommand(leagueListCmd)
	leagueCmd.AddCommand(leagueInfoCmd)
}
