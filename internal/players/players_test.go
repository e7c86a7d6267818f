package players_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/players"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func serve(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(api.Options{BaseURL: srv.URL, RatePerSec: 1000})
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func failing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}
}

// ─── DeriveStats ──────────────────────────────────────────────────────────────

func TestDeriveStats(t *testing.T) {
	d := players.DeriveStats(model.PlayerPerformance{
		Appearances: 30,
		Minutes:     2480,
		Goals:       25,
		Assists:     8,
	})
	if d.GoalsPerMatch != 0.83 {
		t.Errorf("goals/match: expected 0.83, got %g", d.GoalsPerMatch)
	}
	if d.AssistsPerMatch != 0.27 {
		t.Errorf("assists/match: expected 0.27, got %g", d.AssistsPerMatch)
	}
	if d.MinutesPerMatch != 83 {
		t.Errorf("minutes/match: expected 83, got %d", d.MinutesPerMatch)
	}
	if d.GoalContribution != 33 {
		t.Errorf("contribution: expected 33, got %d", d.GoalContribution)
	}
	if d.Efficiency != 83.3 {
		t.Errorf("efficiency: expected 83.3, got %g", d.Efficiency)
	}
}

// Zero appearances must never divide: per-match values stay 0, but the goal
// contribution still reflects the raw counts.
func TestDeriveStatsZeroAppearances(t *testing.T) {
	d := players.DeriveStats(model.PlayerPerformance{
		Appearances: 0,
		Minutes:     0,
		Goals:       2,
		Assists:     1,
	})
	if d.GoalsPerMatch != 0 || d.AssistsPerMatch != 0 || d.MinutesPerMatch != 0 || d.Efficiency != 0 {
		t.Errorf("per-match values must be 0 with no appearances, got %+v", d)
	}
	if d.GoalContribution != 3 {
		t.Errorf("contribution: expected 3, got %d", d.GoalContribution)
	}
}

// ─── Details ──────────────────────────────────────────────────────────────────

func TestDetailsRecomputesDerivedBlock(t *testing.T) {
	// The backend's own derived block is deliberately wrong; it must be
	// discarded and recomputed from the raw counts.
	body := `{
	  "id": 276, "name": "Neymar", "age": 31, "nationality": "Brazil",
	  "current_team": {"id": 85, "name": "PSG"},
	  "performance": {
	    "position": "Attacker", "appearances": 20, "minutes": 1620,
	    "rating": "8.1", "goals": 13, "assists": 11
	  },
	  "derived_stats": {"goals_per_match": 99, "goal_contribution": 99}
	}`
	client := serve(t, jsonBody(body))

	p, err := players.Details(context.Background(), client, 276, 61, 2023)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if p.Performance == nil || p.Derived == nil {
		t.Fatal("expected performance and derived blocks")
	}
	if p.Performance.Rating != 8.1 {
		t.Errorf("string rating must decode: got %g", p.Performance.Rating)
	}
	if p.Derived.GoalsPerMatch != 0.65 {
		t.Errorf("derived goals/match: expected 0.65, got %g", p.Derived.GoalsPerMatch)
	}
	if p.Derived.GoalContribution != 24 {
		t.Errorf("derived contribution: expected 24, got %d", p.Derived.GoalContribution)
	}
	if p.Derived.MinutesPerMatch != 81 {
		t.Errorf("derived minutes/match: expected 81, got %d", p.Derived.MinutesPerMatch)
	}
}

func TestDetailsPropagatesErrors(t *testing.T) {
	client := serve(t, failing())
	if _, err := players.Details(context.Background(), client, 276, 61, 2023); err == nil {
		t.Fatal("primary fetcher must propagate backend failures")
	}
}

// ─── Squads ───────────────────────────────────────────────────────────────────

func TestTeamSquad(t *testing.T) {
	body := `{
	  "team": {"id": 85, "name": "PSG"},
	  "players": [
	    {"id": 1, "name": "A", "performance": {"appearances": 10, "goals": 5, "assists": 0, "minutes": 900}},
	    {"id": 2, "name": "B"}
	  ]
	}`
	client := serve(t, jsonBody(body))

	sq, err := players.TeamSquad(context.Background(), client, 85, 61, 2023)
	if err != nil {
		t.Fatalf("TeamSquad: %v", err)
	}
	if sq.Team.Name != "PSG" || len(sq.Players) != 2 {
		t.Errorf("squad: %+v", sq)
	}
	if sq.Players[0].Derived == nil || sq.Players[0].Derived.GoalsPerMatch != 0.5 {
		t.Errorf("squad derived: %+v", sq.Players[0].Derived)
	}
	if sq.Players[1].Performance != nil || sq.Players[1].Derived != nil {
		t.Error("player without performance block stays bare")
	}
}

func TestTeamSquadDetailed(t *testing.T) {
	body := `{"players":[{"id":1,"name":"A"}],"total":1,"last_update":"2024-03-01"}`
	client := serve(t, jsonBody(body))

	ds, err := players.TeamSquadDetailed(context.Background(), client, 85, 61, 2023)
	if err != nil {
		t.Fatalf("TeamSquadDetailed: %v", err)
	}
	if ds.Total != 1 || ds.LastUpdate != "2024-03-01" || len(ds.Players) != 1 {
		t.Errorf("detailed squad: %+v", ds)
	}
}

// ─── Supplementary fetchers ───────────────────────────────────────────────────

func TestSupplementaryFetchersDegradeToEmpty(t *testing.T) {
	client := serve(t, failing())
	ctx := context.Background()

	if got := players.MatchHistory(ctx, client, 276, 61, 2023, 10); len(got) != 0 {
		t.Errorf("match history: expected empty, got %d", len(got))
	}
	if got := players.Transfers(ctx, client, 276); len(got) != 0 {
		t.Errorf("transfers: expected empty, got %d", len(got))
	}
	if got := players.SearchPlayers(ctx, client, "neymar", 61); len(got) != 0 {
		t.Errorf("search: expected empty, got %d", len(got))
	}
	if got := players.Compare(ctx, client, []int{1, 2}, 61, 2023); len(got) != 0 {
		t.Errorf("compare: expected empty, got %d", len(got))
	}
	if got := players.TopPerformers(ctx, client, 85, 61, 2023); len(got) != 0 {
		t.Errorf("top performers: expected empty, got %d", len(got))
	}
}

func TestSearchPlayersPassesQuery(t *testing.T) {
	var gotQ, gotLeague string
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotLeague = r.URL.Query().Get("league")
		w.Write([]byte(`{"players":[{"id":1,"name":"Neymar"}]}`))
	})

	got := players.SearchPlayers(context.Background(), client, "neymar", 61)
	if gotQ != "neymar" || gotLeague != "61" {
		t.Errorf("query params: q=%q league=%q", gotQ, gotLeague)
	}
	if len(got) != 1 || got[0].Name != "Neymar" {
		t.Errorf("results: %+v", got)
	}
}

func TestMatchHistoryDecodesMatches(t *testing.T) {
	body := `{"matches":[{"id":9,"date":"2024-03-01","opponent":"Lyon","minutes":90,"goals":1,"assists":0,"rating":7.4}]}`
	client := serve(t, jsonBody(body))

	got := players.MatchHistory(context.Background(), client, 276, 61, 2023, 10)
	if len(got) != 1 || got[0].Opponent != "Lyon" || got[0].Rating != 7.4 {
		t.Errorf("history: %+v", got)
	}
}
