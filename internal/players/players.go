// Package players fetches player records and recomputes derived statistics.
//
// Error policy: Details and the squad fetchers back primary views, so their
// errors propagate. MatchHistory, Transfers, SearchPlayers, Compare and
// TopPerformers back optional supplementary panels and deliberately degrade
// to an empty list on any fetch failure — each of those fallbacks is a
// documented branch, not an accident of a blanket recover.
package players

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
)

// ─── Primary fetchers (errors propagate) ──────────────────────────────────────

// Details fetches one player's record for a league season. Derived stats are
// always recomputed locally from the raw performance block; any upstream
// derived values are discarded.
func Details(ctx context.Context, client *api.Client, playerID, leagueID, seasonYear int) (*model.PlayerDetails, error) {
	var raw rawPlayer
	path := fmt.Sprintf("/players/%d/details", playerID)
	err := client.Get(ctx, path, api.Params{"league": leagueID, "season": seasonYear}, &raw)
	if err != nil {
		return nil, fmt.Errorf("player %d details: %w", playerID, err)
	}
	p := raw.normalize()
	return &p, nil
}

// Squad is a team plus its players for one season.
type Squad struct {
	Team    model.TeamRef         `json:"team"`
	Players []model.PlayerDetails `json:"players"`
}

// TeamSquad fetches a team's player roster.
func TeamSquad(ctx context.Context, client *api.Client, teamID, leagueID, seasonYear int) (*Squad, error) {
	var raw struct {
		Team    model.TeamRef `json:"team"`
		Players []rawPlayer   `json:"players"`
	}
	path := fmt.Sprintf("/teams/%d/players", teamID)
	err := client.Get(ctx, path, api.Params{"season": seasonYear, "league": leagueID}, &raw)
	if err != nil {
		return nil, fmt.Errorf("team %d squad: %w", teamID, err)
	}
	return &Squad{Team: raw.Team, Players: normalizeAll(raw.Players)}, nil
}

// DetailedSquad is the per-player statistics roster of one team.
type DetailedSquad struct {
	Players    []model.PlayerDetails `json:"players"`
	Total      int                   `json:"total"`
	LastUpdate string                `json:"last_update,omitempty"`
}

// TeamSquadDetailed fetches the statistics-bearing roster of a team.
func TeamSquadDetailed(ctx context.Context, client *api.Client, teamID, leagueID, seasonYear int) (*DetailedSquad, error) {
	var raw struct {
		Players    []rawPlayer `json:"players"`
		Total      int         `json:"total"`
		LastUpdate string      `json:"last_update"`
	}
	path := fmt.Sprintf("/teams/%d/players/detailed", teamID)
	err := client.Get(ctx, path, api.Params{"league": leagueID, "season": seasonYear}, &raw)
	if err != nil {
		return nil, fmt.Errorf("team %d detailed squad: %w", teamID, err)
	}
	return &DetailedSquad{
		Players:    normalizeAll(raw.Players),
		Total:      raw.Total,
		LastUpdate: raw.LastUpdate,
	}, nil
}

// ─── Supplementary fetchers (degrade to empty) ────────────────────────────────

// MatchHistory returns a player's recent per-match lines. Degrades to an
// empty list on any failure.
func MatchHistory(ctx context.Context, client *api.Client, playerID, leagueID, seasonYear, limit int) []model.PlayerMatch {
	var raw struct {
		Matches []model.PlayerMatch `json:"matches"`
	}
	path := fmt.Sprintf("/players/%d/matches", playerID)
	err := client.Get(ctx, path, api.Params{
		"league": leagueID,
		"season": seasonYear,
		"limit":  limit,
	}, &raw)
	if err != nil {
		slog.Debug("player match history unavailable", "player", playerID, "err", err)
		return nil
	}
	return raw.Matches
}

// Transfers returns a player's transfer history. Degrades to an empty list
// on any failure.
func Transfers(ctx context.Context, client *api.Client, playerID int) []model.Transfer {
	var raw struct {
		Transfers []model.Transfer `json:"transfers"`
	}
	path := fmt.Sprintf("/players/%d/transfers", playerID)
	if err := client.Get(ctx, path, nil, &raw); err != nil {
		slog.Debug("player transfers unavailable", "player", playerID, "err", err)
		return nil
	}
	return raw.Transfers
}

// SearchPlayers finds players by name, optionally scoped to a league.
// Degrades to an empty list on any failure.
func SearchPlayers(ctx context.Context, client *api.Client, query string, leagueID int) []model.PlayerDetails {
	params := api.Params{"q": query}
	if leagueID > 0 {
		params["league"] = leagueID
	}
	var raw struct {
		Players []rawPlayer `json:"players"`
	}
	if err := client.Get(ctx, "/players/search", params, &raw); err != nil {
		slog.Debug("player search unavailable", "query", query, "err", err)
		return nil
	}
	return normalizeAll(raw.Players)
}

// Compare fetches several players side by side. Degrades to an empty list
// on any failure.
func Compare(ctx context.Context, client *api.Client, playerIDs []int, leagueID, seasonYear int) []model.PlayerDetails {
	body := map[string]interface{}{
		"player_ids": playerIDs,
		"league":     leagueID,
		"season":     seasonYear,
	}
	var raw struct {
		Players []rawPlayer `json:"players"`
	}
	if err := client.Post(ctx, "/players/compare", body, &raw); err != nil {
		slog.Debug("player comparison unavailable", "players", playerIDs, "err", err)
		return nil
	}
	return normalizeAll(raw.Players)
}

// TopPerformers fetches a team's statistical leaders. Degrades to an empty
// list on any failure.
func TopPerformers(ctx context.Context, client *api.Client, teamID, leagueID, seasonYear int) []model.PlayerDetails {
	var raw struct {
		Players []rawPlayer `json:"players"`
	}
	path := fmt.Sprintf("/teams/%d/top-performers", teamID)
	err := client.Get(ctx, path, api.Params{"league": leagueID, "season": seasonYear}, &raw)
	if err != nil {
		slog.Debug("top performers unavailable", "team", teamID, "err", err)
		return nil
	}
	return normalizeAll(raw.Players)
}

// ─── Derived statistics ───────────────────────────────────────────────────────

// DeriveStats computes the per-match block from raw counts. Division guards:
// with zero appearances every per-match value is 0 — never NaN or Inf — while
// goal contribution still reflects the raw counts.
func DeriveStats(perf model.PlayerPerformance) model.DerivedStats {
	contribution := perf.Goals + perf.Assists
	if perf.Appearances == 0 {
		return model.DerivedStats{GoalContribution: contribution}
	}
	apps := float64(perf.Appearances)
	return model.DerivedStats{
		GoalsPerMatch:    round2(float64(perf.Goals) / apps),
		AssistsPerMatch:  round2(float64(perf.Assists) / apps),
		MinutesPerMatch:  int(math.Round(float64(perf.Minutes) / apps)),
		GoalContribution: contribution,
		Efficiency:       round1(float64(perf.Goals) / apps * 100),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
