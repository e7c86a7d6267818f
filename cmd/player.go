package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/players"
	"github.com/pmartineau/touchline/internal/view"
)

var (
	playerHistory   bool
	playerTransfers bool
)

var playerCmd = &cobra.Command{
	Use:   "player <PLAYER_ID>",
	Short: "Show a player's record",
	Long: `Fetch one player's record for a league season. Derived statistics
(goals per match, efficiency, goal contribution) are recomputed locally
from the raw counts; upstream derived values are never trusted.

The match-history and transfer panels are fetched concurrently with the
record and silently come back empty when the backend cannot serve them.`,
	Example: `  touchline player 276
  touchline player 276 --history --transfers
  touchline player 276 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		playerID, err := parseIntID(args[0], "player ID")
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

		v := view.NewPlayerView(view.ClientPlayerSource(deps.Client), playerID, league, season)
		defer v.Close()
		if err := v.Load(cmd.Context()); err != nil {
			return err
		}

		result := newResult(model.KindPlayer,
			fmt.Sprintf("player %d", playerID),
			v.Player(), 1, start)
		if err := emit(cmd, deps, result); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if playerHistory {
			history := v.MatchHistory()
			if len(history) > 0 {
				fmt.Fprintln(out, "\nRecent matches:")
				printSimpleTable(out, []string{"DATE", "OPPONENT", "MIN", "G", "A", "RATING"}, func(add func(...string)) {
					for _, m := range history {
						rating := ""
						if m.Rating > 0 {
							rating = fmt.Sprintf("%.2f", m.Rating)
						}
						add(m.Date, m.Opponent,
							fmt.Sprintf("%d", m.Minutes),
							fmt.Sprintf("%d", m.Goals),
							fmt.Sprintf("%d", m.Assists),
							rating)
					}
				})
			}
		}
		if playerTransfers {
			transfers := v.Transfers()
			if len(transfers) > 0 {
				fmt.Fprintln(out, "\nTransfers:")
				printSimpleTable(out, []string{"DATE", "FROM", "TO", "TYPE"}, func(add func(...string)) {
					for _, t := range transfers {
						add(t.Date, t.TeamOut.Name, t.TeamIn.Name, t.Type)
					}
				})
			}
		}
		return nil
	},
}

// ─── player search ────────────────────────────────────────────────────────────

var playerSearchCmd = &cobra.Command{
	Use:   "search <QUERY>",
	Short: "Search players by name",
	Example: `  touchline player search mbappe
  touchline player search "di maria" --league 61`,
	Args: cobra.ExactArgs(1),
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

		list := players.SearchPlayers(cmd.Context(), deps.Client, args[0], league)
		result := newResult(model.KindPlayers,
			fmt.Sprintf("player search %s", args[0]),
			list, len(list), start)
		return emit(cmd, deps, result)
	},
}

// ─── player compare ───────────────────────────────────────────────────────────

var playerCompareCmd = &cobra.Command{
	Use:   "compare <PLAYER_ID> <PLAYER_ID...>",
	Short: "Compare players side by side",
	Example: `  touchline player compare 276 278
  touchline player compare 276 278 290 --season 2022`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, a := range args {
			id, err := parseIntID(a, "player ID")
			if err != nil {
				return err
			}
			ids = append(ids, id)
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

		list := players.Compare(cmd.Context(), deps.Client, ids, league, season)
		result := newResult(model.KindPlayers,
			"player compare",
			list, len(list), start)
		return emit(cmd, deps, result)
	},
}

func init() {
	rootCmd.AddCommand(playerCmd)
	playerCmd.AddCommand(playerSearchCmd)
	playerCmd.AddCommand(playerCompareCmd)

	playerCmd.Flags().BoolVar(&playerHistory, "history", false, "also show recent per-match lines")
	playerCmd.Flags().BoolVar(&playerTransfers, "transfers", false, "also show transfer history")
}
