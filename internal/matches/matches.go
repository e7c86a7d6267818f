// Package matches fetches fixtures and provides the pure transforms applied
// to them. The upstream API defines the recent/upcoming window semantics;
// this layer only normalizes payloads and filters locally.
package matches

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
)

// SortOption selects the ordering of a match list.
type SortOption string

const (
	SortByDate     SortOption = "date"
	SortByDateDesc SortOption = "date-desc"
	SortByHomeTeam SortOption = "team-home"
	SortByAwayTeam SortOption = "team-away"
)

// ─── Fetching ─────────────────────────────────────────────────────────────────

// FetchAll returns every fixture of a league season.
func FetchAll(ctx context.Context, client *api.Client, leagueID, seasonYear int) ([]model.MatchData, error) {
	return fetch(ctx, client, leagueID, seasonYear, "")
}

// FetchRecent returns the backend's recent window (finished fixtures).
func FetchRecent(ctx context.Context, client *api.Client, leagueID, seasonYear int) ([]model.MatchData, error) {
	return fetch(ctx, client, leagueID, seasonYear, "recent")
}

// FetchUpcoming returns the backend's upcoming window (scheduled fixtures).
func FetchUpcoming(ctx context.Context, client *api.Client, leagueID, seasonYear int) ([]model.MatchData, error) {
	return fetch(ctx, client, leagueID, seasonYear, "upcoming")
}

func fetch(ctx context.Context, client *api.Client, leagueID, seasonYear int, status string) ([]model.MatchData, error) {
	params := api.Params{
		"league": leagueID,
		"season": seasonYear,
	}
	if status != "" {
		params["status"] = status
	}

	var raw []rawMatch
	if err := client.Get(ctx, "/matches", params, &raw); err != nil {
		return nil, fmt.Errorf("matches league %d season %d: %w", leagueID, seasonYear, err)
	}

	out := make([]model.MatchData, len(raw))
	for i, r := range raw {
		out[i] = r.normalize()
	}
	return out, nil
}

// ─── Transforms ───────────────────────────────────────────────────────────────

// FilterByTeam keeps matches where either side is teamID.
func FilterByTeam(list []model.MatchData, teamID int) []model.MatchData {
	out := make([]model.MatchData, 0, len(list))
	for _, m := range list {
		if m.HomeTeam.ID == teamID || m.AwayTeam.ID == teamID {
			out = append(out, m)
		}
	}
	return out
}

// FilterByDateRange keeps matches whose kickoff lies in [start, end],
// bounds inclusive.
func FilterByDateRange(list []model.MatchData, start, end time.Time) []model.MatchData {
	out := make([]model.MatchData, 0, len(list))
	for _, m := range list {
		if !m.Kickoff.Before(start) && !m.Kickoff.After(end) {
			out = append(out, m)
		}
	}
	return out
}

// FilterByStatus keeps matches in the given status.
func FilterByStatus(list []model.MatchData, status model.MatchStatus) []model.MatchData {
	out := make([]model.MatchData, 0, len(list))
	for _, m := range list {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// Sort orders list by the given option. Stable; unknown options sort by date.
func Sort(list []model.MatchData, option SortOption) []model.MatchData {
	out := append([]model.MatchData(nil), list...)
	switch option {
	case SortByDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Kickoff.After(out[j].Kickoff) })
	case SortByHomeTeam:
		sort.SliceStable(out, func(i, j int) bool { return out[i].HomeTeam.Name < out[j].HomeTeam.Name })
	case SortByAwayTeam:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AwayTeam.Name < out[j].AwayTeam.Name })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Kickoff.Before(out[j].Kickoff) })
	}
	return out
}
