package matches_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/matches"
	"github.com/pmartineau/touchline/internal/model"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func match(id int, kickoff time.Time, status model.MatchStatus, homeID, awayID int) model.MatchData {
	return model.MatchData{
		ID:       id,
		Kickoff:  kickoff,
		Status:   status,
		HomeTeam: model.TeamRef{ID: homeID, Name: "Home"},
		AwayTeam: model.TeamRef{ID: awayID, Name: "Away"},
	}
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 20, 0, 0, 0, time.UTC)
}

func serveMatches(t *testing.T, body string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return api.New(api.Options{BaseURL: srv.URL, RatePerSec: 1000})
}

// ─── Wire decoding ────────────────────────────────────────────────────────────

func TestFetchDecodesUnixAndISOKickoffs(t *testing.T) {
	body := `[
	  {"id":1,"date":1709999700,"status":"finished",
	   "home_team":{"id":85,"name":"PSG"},"away_team":{"id":80,"name":"Lyon"},
	   "score":{"home":2,"away":1}},
	  {"id":2,"date":"2024-03-20T20:00:00Z","status":"scheduled",
	   "home_team":{"id":81,"name":"Marseille"},"away_team":{"id":79,"name":"Lille"},
	   "score":{"home":null,"away":null}},
	  {"id":3,"date":"2024-04-02","status":"scheduled",
	   "home_team":{"id":82,"name":"Nice"},"away_team":{"id":83,"name":"Brest"},
	   "score":{"home":null,"away":null}}
	]`
	client := serveMatches(t, body)

	list, err := matches.FetchAll(context.Background(), client, 61, 2023)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(list))
	}
	if list[0].Kickoff != time.Unix(1709999700, 0).UTC() {
		t.Errorf("unix kickoff: got %v", list[0].Kickoff)
	}
	if want := time.Date(2024, 3, 20, 20, 0, 0, 0, time.UTC); !list[1].Kickoff.Equal(want) {
		t.Errorf("RFC3339 kickoff: got %v", list[1].Kickoff)
	}
	if want := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC); !list[2].Kickoff.Equal(want) {
		t.Errorf("date-only kickoff: got %v", list[2].Kickoff)
	}
}

func TestFetchEnforcesScoreInvariant(t *testing.T) {
	// A mixed score (home set, away null) must come out as no score at all.
	body := `[
	  {"id":1,"date":1709999700,"status":"finished",
	   "home_team":{"id":1,"name":"A"},"away_team":{"id":2,"name":"B"},
	   "score":{"home":2,"away":null}},
	  {"id":2,"date":1709999700,"status":"finished",
	   "home_team":{"id":3,"name":"C"},"away_team":{"id":4,"name":"D"},
	   "score":{"home":0,"away":0}}
	]`
	client := serveMatches(t, body)

	list, err := matches.FetchAll(context.Background(), client, 61, 2023)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if list[0].Score.Home != nil || list[0].Score.Away != nil {
		t.Error("mixed score must normalize to both halves nil")
	}
	if list[1].Score.Home == nil || list[1].Score.Away == nil {
		t.Error("a 0-0 score is a real score, not a missing one")
	}
	if *list[1].Score.Home != 0 || *list[1].Score.Away != 0 {
		t.Errorf("0-0: got %d-%d", *list[1].Score.Home, *list[1].Score.Away)
	}
}

func TestFetchNormalizesStatusAndElapsed(t *testing.T) {
	body := `[
	  {"id":1,"date":1709999700,"status":"LIVE","elapsed":67,
	   "home_team":{"id":1,"name":"A"},"away_team":{"id":2,"name":"B"},
	   "score":{"home":1,"away":0}},
	  {"id":2,"date":1709999700,"status":"weird","elapsed":30,
	   "home_team":{"id":3,"name":"C"},"away_team":{"id":4,"name":"D"},
	   "score":{"home":null,"away":null}}
	]`
	client := serveMatches(t, body)

	list, err := matches.FetchAll(context.Background(), client, 61, 2023)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if list[0].Status != model.StatusLive || list[0].Elapsed != 67 {
		t.Errorf("live match: got status %s elapsed %d", list[0].Status, list[0].Elapsed)
	}
	if list[1].Status != model.StatusScheduled {
		t.Errorf("unknown status defaults to scheduled, got %s", list[1].Status)
	}
	if list[1].Elapsed != 0 {
		t.Error("elapsed only carries on live matches")
	}
}

func TestFetchWindowsPassStatusParam(t *testing.T) {
	var gotStatus []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStatus = append(gotStatus, r.URL.Query().Get("status"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	client := api.New(api.Options{BaseURL: srv.URL, RatePerSec: 1000})

	ctx := context.Background()
	if _, err := matches.FetchAll(ctx, client, 61, 2023); err != nil {
		t.Fatal(err)
	}
	if _, err := matches.FetchRecent(ctx, client, 61, 2023); err != nil {
		t.Fatal(err)
	}
	if _, err := matches.FetchUpcoming(ctx, client, 61, 2023); err != nil {
		t.Fatal(err)
	}
	want := []string{"", "recent", "upcoming"}
	for i, w := range want {
		if gotStatus[i] != w {
			t.Errorf("call %d: status param %q, want %q", i, gotStatus[i], w)
		}
	}
}

// ─── Transforms ───────────────────────────────────────────────────────────────

func TestFilterByTeamEitherSide(t *testing.T) {
	list := []model.MatchData{
		match(1, day(1), model.StatusFinished, 85, 80),
		match(2, day(2), model.StatusFinished, 80, 81),
		match(3, day(3), model.StatusFinished, 81, 85),
	}
	got := matches.FilterByTeam(list, 85)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("expected matches 1 and 3, got %+v", got)
	}
}

func TestFilterByDateRangeInclusive(t *testing.T) {
	list := []model.MatchData{
		match(1, day(1), model.StatusFinished, 1, 2),
		match(2, day(10), model.StatusFinished, 1, 2),
		match(3, day(20), model.StatusFinished, 1, 2),
	}
	got := matches.FilterByDateRange(list, day(1), day(10))
	if len(got) != 2 {
		t.Fatalf("bounds are inclusive: expected 2, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("got matches %d, %d", got[0].ID, got[1].ID)
	}
}

func TestSortStableAndNonMutating(t *testing.T) {
	same := day(5)
	list := []model.MatchData{
		match(1, same, model.StatusFinished, 1, 2),
		match(2, same, model.StatusFinished, 3, 4),
		match(3, day(1), model.StatusFinished, 5, 6),
	}
	got := matches.Sort(list, matches.SortByDate)
	if got[0].ID != 3 {
		t.Errorf("earliest first: got %d", got[0].ID)
	}
	// Equal kickoffs preserve input order.
	if got[1].ID != 1 || got[2].ID != 2 {
		t.Errorf("stability violated: got %d, %d", got[1].ID, got[2].ID)
	}
	if list[0].ID != 1 {
		t.Error("Sort must not mutate its input")
	}
}

func TestSortByDateDesc(t *testing.T) {
	list := []model.MatchData{
		match(1, day(1), model.StatusFinished, 1, 2),
		match(2, day(20), model.StatusFinished, 3, 4),
	}
	got := matches.Sort(list, matches.SortByDateDesc)
	if got[0].ID != 2 {
		t.Errorf("latest first: got %d", got[0].ID)
	}
}
