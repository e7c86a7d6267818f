package teams_test

import (
	"testing"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/teams"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func team(pos int, name, country string, points, goalsFor, goalsAgainst int) model.TeamWithStanding {
	return model.TeamWithStanding{
		ID:           pos,
		Name:         name,
		Country:      country,
		Position:     pos,
		Points:       points,
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
	}
}

// table20 builds a 20-team league table with descending points.
func table20() []model.TeamWithStanding {
	out := make([]model.TeamWithStanding, 20)
	for i := range out {
		out[i] = team(i+1, "Team"+string(rune('A'+i)), "France", 80-i*3, 60-i*2, 20+i)
	}
	return out
}

func names(list []model.TeamWithStanding) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Name
	}
	return out
}

// ─── Project ──────────────────────────────────────────────────────────────────

func TestProjectCarriesStandingsFields(t *testing.T) {
	resp := &model.StandingsResponse{
		League: model.StandingsLeague{ID: 61, Country: "France"},
		Standings: []model.StandingEntry{{
			Rank:      3,
			Team:      model.TeamRef{ID: 85, Name: "Paris Saint Germain", Logo: "psg.png"},
			Points:    70,
			GoalsDiff: 45,
			Form:      "WWDWW",
			All: model.SplitRecord{
				Played: 30, Win: 22, Draw: 4, Lose: 4,
				Goals: model.GoalRecord{For: 75, Against: 30},
			},
		}},
	}

	list := teams.Project(resp)
	if len(list) != 1 {
		t.Fatalf("expected 1 team, got %d", len(list))
	}
	got := list[0]
	if got.ID != 85 || got.Name != "Paris Saint Germain" || got.Country != "France" {
		t.Errorf("identity mismatch: %+v", got)
	}
	if got.Position != 3 || got.Points != 70 || got.Played != 30 {
		t.Errorf("standing mismatch: %+v", got)
	}
	if got.Won != 22 || got.Drawn != 4 || got.Lost != 4 {
		t.Errorf("record mismatch: %+v", got)
	}
	if got.GoalsFor != 75 || got.GoalsAgainst != 30 || got.GoalsDiff != 45 {
		t.Errorf("goals mismatch: %+v", got)
	}
}

// ─── Search ───────────────────────────────────────────────────────────────────

func TestSearchMatchesNameAndCountry(t *testing.T) {
	list := []model.TeamWithStanding{
		team(1, "Paris Saint Germain", "France", 70, 60, 20),
		team(2, "Arsenal", "England", 68, 55, 25),
		team(3, "Paris FC", "France", 40, 30, 35),
	}

	if got := teams.Search(list, "paris"); len(got) != 2 {
		t.Errorf("name search: expected 2, got %d", len(got))
	}
	if got := teams.Search(list, "ENGLAND"); len(got) != 1 || got[0].Name != "Arsenal" {
		t.Errorf("country search is case-insensitive: got %v", names(got))
	}
	if got := teams.Search(list, "  "); len(got) != len(list) {
		t.Errorf("blank query is identity: got %d", len(got))
	}
}

// Applying the same filter twice yields the same result as applying it once.
func TestSearchIdempotent(t *testing.T) {
	list := table20()
	once := teams.Search(list, "teama")
	twice := teams.Search(once, "teama")
	if len(once) != len(twice) {
		t.Fatalf("idempotence: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("row %d differs after re-filtering", i)
		}
	}
}

// ─── Sort ─────────────────────────────────────────────────────────────────────

func TestSortByName(t *testing.T) {
	list := []model.TeamWithStanding{
		team(1, "Nice", "France", 60, 40, 30),
		team(2, "Brest", "France", 55, 38, 32),
		team(3, "Auxerre", "France", 40, 30, 45),
	}
	got := teams.Sort(list, teams.SortByName)
	if got[0].Name != "Auxerre" || got[2].Name != "Nice" {
		t.Errorf("name order: got %v", names(got))
	}
	// Input untouched.
	if list[0].Name != "Nice" {
		t.Error("Sort must not mutate its input")
	}
}

// Equal sort keys preserve the original relative order.
func TestSortStableOnEqualKeys(t *testing.T) {
	list := []model.TeamWithStanding{
		team(1, "First", "France", 50, 40, 30),
		team(2, "Second", "France", 50, 38, 31),
		team(3, "Third", "France", 50, 36, 32),
	}
	got := teams.Sort(list, teams.SortByPoints)
	want := []string{"First", "Second", "Third"}
	for i, n := range names(got) {
		if n != want[i] {
			t.Fatalf("stability violated: got %v", names(got))
		}
	}
}

func TestSortUnknownKeyFallsBackToPosition(t *testing.T) {
	list := []model.TeamWithStanding{
		team(3, "C", "France", 40, 30, 40),
		team(1, "A", "France", 60, 45, 25),
		team(2, "B", "France", 50, 38, 30),
	}
	got := teams.Sort(list, teams.SortKey("bogus"))
	if got[0].Position != 1 || got[2].Position != 3 {
		t.Errorf("fallback order: got %v", names(got))
	}
}

// ─── Qualification buckets ────────────────────────────────────────────────────

func TestQualificationBuckets20Teams(t *testing.T) {
	list := table20()

	cl := teams.FilterByQualification(list, teams.QualificationChampions)
	if len(cl) != 3 || cl[0].Position != 1 || cl[2].Position != 3 {
		t.Errorf("champions league: expected positions 1-3, got %v", names(cl))
	}

	el := teams.FilterByQualification(list, teams.QualificationEuropa)
	if len(el) != 3 || el[0].Position != 4 || el[2].Position != 6 {
		t.Errorf("europa league: expected positions 4-6, got %v", names(el))
	}

	rel := teams.FilterByQualification(list, teams.QualificationRelegated)
	if len(rel) != 2 || rel[0].Position != 19 || rel[1].Position != 20 {
		t.Errorf("relegation: expected positions 19-20, got %v", names(rel))
	}

	all := teams.FilterByQualification(list, teams.QualificationAll)
	if len(all) != 20 {
		t.Errorf("all bucket is identity: got %d", len(all))
	}
}

// The relegation boundary is relative to the list size, not a fixed rank.
func TestRelegationBoundarySmallLeague(t *testing.T) {
	list := table20()[:6]
	rel := teams.FilterByQualification(list, teams.QualificationRelegated)
	if len(rel) != 2 || rel[0].Position != 5 || rel[1].Position != 6 {
		t.Errorf("6-team relegation: expected positions 5-6, got %v", names(rel))
	}
}

// ─── Statistics ───────────────────────────────────────────────────────────────

func TestComputeStats(t *testing.T) {
	list := []model.TeamWithStanding{
		team(1, "A", "France", 60, 70, 28),
		team(2, "B", "France", 50, 55, 22),
		team(3, "C", "France", 40, 45, 40),
		team(4, "D", "France", 30, 30, 55),
	}
	s := teams.ComputeStats(list)
	if s.Total != 4 {
		t.Errorf("total: got %d", s.Total)
	}
	if s.AveragePoints != 45.0 {
		t.Errorf("average points: expected 45, got %g", s.AveragePoints)
	}
	if s.TopScorer == nil || s.TopScorer.Name != "A" {
		t.Errorf("top scorer: got %+v", s.TopScorer)
	}
	if s.BestDefense == nil || s.BestDefense.Name != "B" {
		t.Errorf("best defense: got %+v", s.BestDefense)
	}
	if s.RelegationCount != 2 {
		t.Errorf("relegation count: expected 2, got %d", s.RelegationCount)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := teams.ComputeStats(nil)
	if s.Total != 0 || s.TopScorer != nil || s.BestDefense != nil {
		t.Errorf("empty list should yield a zero Stats, got %+v", s)
	}
}
