// Package standings fetches league tables and derives summaries over them.
// The backend owns the ordering: entries are returned exactly as ranked
// upstream, never re-sorted here.
package standings

import (
	"context"
	"fmt"
	"math"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
)

// Get fetches the full standings of a league for one season.
func Get(ctx context.Context, client *api.Client, leagueID, seasonYear int) (*model.StandingsResponse, error) {
	var resp model.StandingsResponse
	path := fmt.Sprintf("/standings/%d", leagueID)
	if err := client.Get(ctx, path, api.Params{"season": seasonYear}, &resp); err != nil {
		return nil, fmt.Errorf("standings league %d season %d: %w", leagueID, seasonYear, err)
	}
	return &resp, nil
}

// ─── Summary ──────────────────────────────────────────────────────────────────

// Summary condenses a standings response into headline figures.
type Summary struct {
	League         model.StandingsLeague `json:"league"`
	TotalTeams     int                   `json:"total_teams"`
	MatchesPlayed  float64               `json:"matches_played_average"`
	GoalsPerMatch  float64               `json:"goals_per_match"`
	Leader         *model.StandingEntry  `json:"leader,omitempty"`
	Top3           []model.StandingEntry `json:"top_3"`
	RelegationZone []model.StandingEntry `json:"relegation_zone"`
	LastUpdate     string                `json:"last_update,omitempty"`
}

// Summarize derives a Summary from resp. Pure; resp is not modified.
func Summarize(resp *model.StandingsResponse) Summary {
	s := Summary{
		League:     resp.League,
		TotalTeams: len(resp.Standings),
		LastUpdate: resp.LastUpdate,
	}
	if len(resp.Standings) == 0 {
		return s
	}

	leader := resp.Standings[0]
	s.Leader = &leader

	top := 3
	if top > len(resp.Standings) {
		top = len(resp.Standings)
	}
	s.Top3 = append([]model.StandingEntry(nil), resp.Standings[:top]...)

	relFrom := len(resp.Standings) - 2
	if relFrom < 0 {
		relFrom = 0
	}
	s.RelegationZone = append([]model.StandingEntry(nil), resp.Standings[relFrom:]...)

	var played, goals int
	for _, e := range resp.Standings {
		played += e.All.Played
		goals += e.All.Goals.For
	}
	s.MatchesPlayed = round1(float64(played) / float64(len(resp.Standings)))
	if played > 0 {
		// Each match is counted once per participating team.
		s.GoalsPerMatch = round1(float64(goals) / (float64(played) / 2))
	}
	return s
}

// ─── Schedule analysis ────────────────────────────────────────────────────────

// PlayedAnalysis reports how evenly the schedule has progressed across teams.
type PlayedAnalysis struct {
	MinMatches     int                   `json:"min_matches"`
	MaxMatches     int                   `json:"max_matches"`
	AverageMatches float64               `json:"average_matches"`
	DelayedTeams   []model.StandingEntry `json:"delayed_teams"`
}

// AnalyzeMatchesPlayed flags teams that have played fewer matches than the
// floor of the league average (i.e. games in hand).
func AnalyzeMatchesPlayed(entries []model.StandingEntry) PlayedAnalysis {
	if len(entries) == 0 {
		return PlayedAnalysis{}
	}

	minM, maxM, sum := entries[0].All.Played, entries[0].All.Played, 0
	for _, e := range entries {
		if e.All.Played < minM {
			minM = e.All.Played
		}
		if e.All.Played > maxM {
			maxM = e.All.Played
		}
		sum += e.All.Played
	}
	avg := float64(sum) / float64(len(entries))

	var delayed []model.StandingEntry
	for _, e := range entries {
		if float64(e.All.Played) < math.Floor(avg) {
			delayed = append(delayed, e)
		}
	}
	return PlayedAnalysis{
		MinMatches:     minM,
		MaxMatches:     maxM,
		AverageMatches: round1(avg),
		DelayedTeams:   delayed,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
