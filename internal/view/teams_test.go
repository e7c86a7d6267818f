package view_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/teams"
	"github.com/pmartineau/touchline/internal/view"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// scriptedTeams returns a source that replays the given results in order,
// repeating the last one, and counts invocations.
type scriptedTeams struct {
	mu      sync.Mutex
	results []teamsResult
	calls   int
}

type teamsResult struct {
	list []model.TeamWithStanding
	err  error
}

func (s *scriptedTeams) source() view.TeamsSource {
	return func(ctx context.Context, leagueID, seasonYear int) ([]model.TeamWithStanding, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := s.calls
		if i >= len(s.results) {
			i = len(s.results) - 1
		}
		s.calls++
		r := s.results[i]
		return r.list, r.err
	}
}

func (s *scriptedTeams) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func fixtureTeams() []model.TeamWithStanding {
	return []model.TeamWithStanding{
		{ID: 85, Name: "Paris Saint Germain", Country: "France", Position: 1, Points: 76, GoalsFor: 81},
		{ID: 80, Name: "Monaco", Country: "France", Position: 2, Points: 67, GoalsFor: 68},
		{ID: 81, Name: "Marseille", Country: "France", Position: 3, Points: 61, GoalsFor: 53},
		{ID: 79, Name: "Lille", Country: "France", Position: 4, Points: 59, GoalsFor: 52},
	}
}

// debounceSettle comfortably exceeds the search debounce period.
const debounceSettle = 400 * time.Millisecond

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

// ─── Load / Refetch ───────────────────────────────────────────────────────────

func TestTeamsViewLoad(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()

	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.Loading() {
		t.Error("loading should be false after Load returns")
	}
	if got := v.Teams(); len(got) != 4 {
		t.Errorf("expected 4 teams, got %d", len(got))
	}
}

// A failed refetch keeps the previously loaded data; only the error changes.
func TestTeamsViewRefetchPreservesStaleData(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{
		{list: fixtureTeams()},
		{err: errors.New("backend down")},
	}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()

	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := v.Refetch(context.Background()); err == nil {
		t.Fatal("expected the refetch to fail")
	}

	if v.Err() == nil {
		t.Error("view should carry the refetch error")
	}
	if got := v.Teams(); len(got) != 4 {
		t.Errorf("stale data must survive the failed refetch, got %d teams", len(got))
	}
	if src.callCount() != 2 {
		t.Errorf("expected 2 fetches, got %d", src.callCount())
	}
}

func TestTeamsViewSuccessClearsError(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{
		{err: errors.New("boom")},
		{list: fixtureTeams()},
	}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()

	_ = v.Load(context.Background())
	if v.Err() == nil {
		t.Fatal("first load should fail")
	}
	if err := v.Refetch(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v.Err() != nil {
		t.Error("a successful fetch must clear the error")
	}
}

// ─── Filtering ────────────────────────────────────────────────────────────────

func TestTeamsViewFilterPipelineNeedsNoRefetch(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	v.SetSort(teams.SortByName)
	v.SetQualification(teams.QualificationChampions)
	got := v.Teams()
	if len(got) != 3 {
		t.Fatalf("champions bucket of 4 teams: expected 3, got %d", len(got))
	}
	if got[0].Name != "Marseille" {
		t.Errorf("name sort within bucket: got %s first", got[0].Name)
	}
	if src.callCount() != 1 {
		t.Errorf("filter changes must not refetch: %d calls", src.callCount())
	}
}

func TestTeamsViewStats(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	v.SetQualification(teams.QualificationRelegated)
	s := v.Stats()
	// Stats describe the unfiltered list; Filtered reports the visible rows.
	if s.Total != 4 {
		t.Errorf("total: expected 4, got %d", s.Total)
	}
	if s.Filtered != 2 {
		t.Errorf("filtered: expected 2, got %d", s.Filtered)
	}
	if s.TopScorer == nil || s.TopScorer.Name != "Paris Saint Germain" {
		t.Errorf("top scorer: %+v", s.TopScorer)
	}
}

func TestTeamsViewClearFilters(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	v.SetSort(teams.SortByName)
	v.SetQualification(teams.QualificationEuropa)
	v.SetSearchQuery("monaco")
	v.ClearFilters()

	f := v.Filters()
	if f.Search != "" || f.SortBy != teams.SortByPosition || f.Qualification != teams.QualificationAll {
		t.Errorf("filters after clear: %+v", f)
	}
	if v.SearchQuery() != "" {
		t.Error("raw search input should reset too")
	}
	if len(v.Teams()) != 4 {
		t.Error("clearing filters restores the full list")
	}
}

// ─── Debounced search ─────────────────────────────────────────────────────────

func TestSearchDebounceAppliesOnlyFinalQuery(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	// Rapid keystrokes: each one is echoed immediately, none filters yet.
	for _, q := range []string{"m", "mo", "mon", "mona"} {
		v.SetSearchQuery(q)
	}
	if v.SearchQuery() != "mona" {
		t.Errorf("raw input: expected mona, got %q", v.SearchQuery())
	}
	if f := v.Filters(); f.Search != "" {
		t.Errorf("filter must not update before the quiet period, got %q", f.Search)
	}

	waitFor(t, 2*time.Second, func() bool {
		return v.Filters().Search == "mona"
	})
	got := v.Teams()
	if len(got) != 1 || got[0].Name != "Monaco" {
		t.Errorf("debounced filter result: %+v", got)
	}
}

func TestSearchDebounceDropsSupersededQueries(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	v.SetSearchQuery("lille")
	time.Sleep(50 * time.Millisecond) // inside the quiet period
	v.SetSearchQuery("monaco")

	waitFor(t, 2*time.Second, func() bool {
		return v.Filters().Search != ""
	})
	if got := v.Filters().Search; got != "monaco" {
		t.Errorf("only the last keystroke wins: got %q", got)
	}
}

// Clearing filters supersedes a pending keystroke: the stale query must never
// land after the reset.
func TestClearFiltersCancelsPendingDebounce(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	v.SetSearchQuery("monaco")
	v.ClearFilters()

	time.Sleep(debounceSettle)
	if got := v.Filters().Search; got != "" {
		t.Errorf("stale keystroke applied after ClearFilters: search %q", got)
	}
	if v.SearchQuery() != "" {
		t.Error("raw input must stay reset")
	}
	if len(v.Teams()) != 4 {
		t.Error("full list visible after the reset")
	}
}

func TestSetSearchAppliesImmediately(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	defer v.Close()
	v.Load(context.Background())

	// A pending keystroke is superseded by the committed query.
	v.SetSearchQuery("lille")
	v.SetSearch("monaco")

	if got := v.Filters().Search; got != "monaco" {
		t.Fatalf("committed query must apply without waiting, got %q", got)
	}
	got := v.Teams()
	if len(got) != 1 || got[0].Name != "Monaco" {
		t.Errorf("filtered result: %+v", got)
	}

	time.Sleep(debounceSettle)
	if got := v.Filters().Search; got != "monaco" {
		t.Errorf("superseded keystroke landed late: search %q", got)
	}
}

// ─── Close ────────────────────────────────────────────────────────────────────

func TestTeamsViewCloseDiscardsPendingWork(t *testing.T) {
	src := &scriptedTeams{results: []teamsResult{{list: fixtureTeams()}}}
	v := view.NewTeamsView(src.source(), 61, 2023)
	v.Load(context.Background())

	v.SetSearchQuery("monaco")
	v.Close()

	// The pending debounce must not fire into a closed view.
	time.Sleep(debounceSettle)
	if f := v.Filters(); f.Search != "" {
		t.Errorf("no state mutation after Close, got search %q", f.Search)
	}

	// Loads after Close are no-ops.
	if err := v.Load(context.Background()); err != nil {
		t.Errorf("Load after Close should be a no-op, got %v", err)
	}
	if src.callCount() != 1 {
		t.Errorf("closed view must not fetch: %d calls", src.callCount())
	}
}
