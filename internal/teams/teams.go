// Package teams projects standings into team views and provides the pure
// search/sort/filter transforms applied to them. Every transform is total and
// side-effect free: inputs are never mutated, outputs are fresh slices.
package teams

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/standings"
)

// SortKey selects the ordering of a team list.
type SortKey string

const (
	SortByPosition SortKey = "position"
	SortByName     SortKey = "name"
	SortByPoints   SortKey = "points"
)

// Qualification buckets a team list by final-table consequence.
type Qualification string

const (
	QualificationAll       Qualification = "all"
	QualificationChampions Qualification = "champions-league"
	QualificationEuropa    Qualification = "europa-league"
	QualificationRelegated Qualification = "relegation"
)

// ─── Fetching ─────────────────────────────────────────────────────────────────

// FromStandings fetches a league's standings and projects each entry into a
// TeamWithStanding. The projection is an explicit field mapping; the league's
// country is carried onto every team.
func FromStandings(ctx context.Context, client *api.Client, leagueID, seasonYear int) ([]model.TeamWithStanding, error) {
	resp, err := standings.Get(ctx, client, leagueID, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("teams from standings: %w", err)
	}
	return Project(resp), nil
}

// Project maps a standings response into a team list, preserving order.
func Project(resp *model.StandingsResponse) []model.TeamWithStanding {
	out := make([]model.TeamWithStanding, len(resp.Standings))
	for i, e := range resp.Standings {
		out[i] = model.TeamWithStanding{
			ID:           e.Team.ID,
			Name:         e.Team.Name,
			Logo:         e.Team.Logo,
			Country:      resp.League.Country,
			Position:     e.Rank,
			Points:       e.Points,
			Played:       e.All.Played,
			Won:          e.All.Win,
			Drawn:        e.All.Draw,
			Lost:         e.All.Lose,
			GoalsFor:     e.All.Goals.For,
			GoalsAgainst: e.All.Goals.Against,
			GoalsDiff:    e.GoalsDiff,
			Form:         e.Form,
		}
	}
	return out
}

// ─── Transforms ───────────────────────────────────────────────────────────────

// Search filters list to teams whose name or country contains query,
// case-insensitively. A blank or whitespace-only query returns the input
// unchanged.
func Search(list []model.TeamWithStanding, query string) []model.TeamWithStanding {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]model.TeamWithStanding, 0, len(list))
	for _, t := range list {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Country), q) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders list by key. The sort is stable: teams comparing equal keep
// their input-order relationship. Unknown keys fall back to position.
func Sort(list []model.TeamWithStanding, key SortKey) []model.TeamWithStanding {
	out := append([]model.TeamWithStanding(nil), list...)
	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortByPoints:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	}
	return out
}

// FilterByQualification partitions list by rank thresholds. The top brackets
// are absolute (ranks 1–3 and 4–6) while relegation is relative to the list
// length (bottom two); the asymmetry mirrors how the qualification spots are
// actually defined.
func FilterByQualification(list []model.TeamWithStanding, bucket Qualification) []model.TeamWithStanding {
	if bucket == QualificationAll || bucket == "" {
		return list
	}
	out := make([]model.TeamWithStanding, 0, len(list))
	for _, t := range list {
		if inBucket(t.Position, len(list), bucket) {
			out = append(out, t)
		}
	}
	return out
}

func inBucket(position, total int, bucket Qualification) bool {
	switch bucket {
	case QualificationChampions:
		return position <= 3
	case QualificationEuropa:
		return position >= 4 && position <= 6
	case QualificationRelegated:
		return position > total-2
	default:
		return false
	}
}

// ─── Statistics ───────────────────────────────────────────────────────────────

// Stats are headline figures for a team list. They are always computed over
// the full, unfiltered list: filtering affects what is shown, never what is
// measured.
type Stats struct {
	Total           int                     `json:"total"`
	ChampionsCount  int                     `json:"champions_league"`
	EuropaCount     int                     `json:"europa_league"`
	RelegationCount int                     `json:"relegation"`
	AveragePoints   float64                 `json:"average_points"`
	TopScorer       *model.TeamWithStanding `json:"top_scorer,omitempty"`
	BestDefense     *model.TeamWithStanding `json:"best_defense,omitempty"`
}

// ComputeStats derives Stats from list. Pure.
func ComputeStats(list []model.TeamWithStanding) Stats {
	s := Stats{Total: len(list)}
	if len(list) == 0 {
		return s
	}

	var points int
	topScorer, bestDefense := list[0], list[0]
	for _, t := range list {
		points += t.Points
		if inBucket(t.Position, len(list), QualificationChampions) {
			s.ChampionsCount++
		}
		if inBucket(t.Position, len(list), QualificationEuropa) {
			s.EuropaCount++
		}
		if inBucket(t.Position, len(list), QualificationRelegated) {
			s.RelegationCount++
		}
		if t.GoalsFor > topScorer.GoalsFor {
			topScorer = t
		}
		if t.GoalsAgainst < bestDefense.GoalsAgainst {
			bestDefense = t
		}
	}
	s.AveragePoints = float64(points) / float64(len(list))
	s.TopScorer = &topScorer
	s.BestDefense = &bestDefense
	return s
}
