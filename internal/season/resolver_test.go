package season_test

import (
	"context"
	"testing"
	"time"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/season"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// fakeClient scripts the two probes the resolver makes.
type fakeClient struct {
	plan       *model.Plan
	statusErr  error
	getErr     error
	statusHits int
	getHits    int
}

func (f *fakeClient) Status(ctx context.Context) (*model.Plan, error) {
	f.statusHits++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.plan, nil
}

func (f *fakeClient) Get(ctx context.Context, path string, params api.Params, out interface{}) error {
	f.getHits++
	return f.getErr
}

// sep2024 is a fixed clock in September 2024: current season is 2024.
func sep2024() time.Time {
	return time.Date(2024, time.September, 15, 12, 0, 0, 0, time.UTC)
}

func apiError(kind api.Kind, msg string) error {
	return &api.Error{Kind: kind, Message: msg}
}

func newResolver(c season.Client) *season.Resolver {
	return season.NewResolver(c, season.Options{Now: sep2024})
}

// ─── Plan detection ───────────────────────────────────────────────────────────

func TestPlanFromStatusEndpoint(t *testing.T) {
	c := &fakeClient{plan: &model.Plan{Type: model.PlanBasic, AvailableFrom: 2018, AvailableTo: 2023}}
	r := newResolver(c)

	plan := r.Plan(context.Background())
	if plan.Type != model.PlanBasic {
		t.Fatalf("expected basic from status, got %s", plan.Type)
	}
	if c.getHits != 0 {
		t.Error("status success should skip the standings heuristic")
	}
}

func TestDetectPremiumWhenCurrentYearSucceeds(t *testing.T) {
	c := &fakeClient{statusErr: apiError(api.KindNotFound, "no status endpoint")}
	r := newResolver(c)

	plan := r.Plan(context.Background())
	if plan.Type != model.PlanPremium {
		t.Fatalf("expected premium, got %s", plan.Type)
	}
	if plan.AvailableFrom != 2008 || plan.AvailableTo != 2024 {
		t.Errorf("premium range: expected 2008-2024, got %d-%d", plan.AvailableFrom, plan.AvailableTo)
	}
}

func TestDetectFreeFromRestrictionMessage(t *testing.T) {
	c := &fakeClient{
		statusErr: apiError(api.KindNotFound, "no status endpoint"),
		getErr:    apiError(api.KindValidation, "Free plans do not have access to this season"),
	}
	r := newResolver(c)

	plan := r.Plan(context.Background())
	if plan.Type != model.PlanFree {
		t.Fatalf("expected free, got %s", plan.Type)
	}
	if plan.AvailableFrom != 2021 || plan.AvailableTo != 2023 {
		t.Errorf("free range: expected 2021-2023, got %d-%d", plan.AvailableFrom, plan.AvailableTo)
	}
}

func TestDetectBasicFromOtherRestriction(t *testing.T) {
	c := &fakeClient{
		statusErr: apiError(api.KindNotFound, "no status endpoint"),
		getErr:    apiError(api.KindValidation, "season not covered by your subscription"),
	}
	r := newResolver(c)

	plan := r.Plan(context.Background())
	if plan.Type != model.PlanBasic {
		t.Fatalf("expected basic, got %s", plan.Type)
	}
	if plan.AvailableTo != 2023 {
		t.Errorf("basic excludes the current year: expected to=2023, got %d", plan.AvailableTo)
	}
}

func TestDetectFreeWhenBackendUnreachable(t *testing.T) {
	c := &fakeClient{
		statusErr: apiError(api.KindNetwork, "connection refused"),
		getErr:    apiError(api.KindNetwork, "connection refused"),
	}
	r := newResolver(c)

	if plan := r.Plan(context.Background()); plan.Type != model.PlanFree {
		t.Fatalf("total failure must default to free, got %s", plan.Type)
	}
}

func TestPlanIsCached(t *testing.T) {
	c := &fakeClient{plan: &model.Plan{Type: model.PlanPremium, AvailableFrom: 2008, AvailableTo: 2024}}
	r := newResolver(c)

	r.Plan(context.Background())
	r.Plan(context.Background())
	if c.statusHits != 1 {
		t.Errorf("expected one status probe, got %d", c.statusHits)
	}

	r.ClearCache()
	r.Plan(context.Background())
	if c.statusHits != 2 {
		t.Errorf("ClearCache should force a new probe, got %d hits", c.statusHits)
	}
}

// ─── Seasons ──────────────────────────────────────────────────────────────────

func TestAvailableSeasonsDescendingWithOneCurrent(t *testing.T) {
	c := &fakeClient{plan: &model.Plan{Type: model.PlanPremium, AvailableFrom: 2020, AvailableTo: 2024}}
	r := newResolver(c)

	seasons := r.AvailableSeasons(context.Background())
	if len(seasons) != 5 {
		t.Fatalf("expected 5 seasons, got %d", len(seasons))
	}
	currents := 0
	for i, s := range seasons {
		if i > 0 && seasons[i-1].Year <= s.Year {
			t.Fatal("seasons must be in descending year order")
		}
		if !s.Available {
			t.Errorf("season %d listed but not available", s.Year)
		}
		if s.Current {
			currents++
			if s.Year != 2024 {
				t.Errorf("current season should be 2024, got %d", s.Year)
			}
		}
	}
	if currents != 1 {
		t.Errorf("exactly one season must be current, got %d", currents)
	}
}

func TestRecommendedFallsBackWhenCurrentExcluded(t *testing.T) {
	// Free plan in September 2024: current season 2024 is outside 2021-2023,
	// so the newest in-range season wins.
	c := &fakeClient{
		statusErr: apiError(api.KindNotFound, "no status endpoint"),
		getErr:    apiError(api.KindValidation, "Free plans do not have access to this season"),
	}
	r := newResolver(c)

	rec := r.Recommended(context.Background())
	if rec.Year != 2023 {
		t.Fatalf("expected 2023 recommendation on a free plan, got %d", rec.Year)
	}
	if rec.Label != "2023-2024" {
		t.Errorf("label: expected 2023-2024, got %s", rec.Label)
	}
}

func TestRecommendedPrefersCurrentWhenAvailable(t *testing.T) {
	c := &fakeClient{plan: &model.Plan{Type: model.PlanPremium, AvailableFrom: 2008, AvailableTo: 2024}}
	r := newResolver(c)

	if rec := r.Recommended(context.Background()); rec.Year != 2024 || !rec.Current {
		t.Fatalf("expected current season 2024, got %+v", rec)
	}
}

func TestIsAvailable(t *testing.T) {
	c := &fakeClient{plan: &model.Plan{Type: model.PlanFree, AvailableFrom: 2021, AvailableTo: 2023}}
	r := newResolver(c)

	if !r.IsAvailable(context.Background(), 2022) {
		t.Error("2022 should be available on the free range")
	}
	if r.IsAvailable(context.Background(), 2024) {
		t.Error("2024 should not be available on the free range")
	}
}

// ─── Pure helpers ─────────────────────────────────────────────────────────────

func TestCurrentSeasonYearAugustRollover(t *testing.T) {
	cases := []struct {
		month time.Month
		want  int
	}{
		{time.January, 2023},
		{time.July, 2023},
		{time.August, 2024},
		{time.December, 2024},
	}
	for _, tc := range cases {
		now := time.Date(2024, tc.month, 10, 0, 0, 0, 0, time.UTC)
		if got := season.CurrentSeasonYear(now); got != tc.want {
			t.Errorf("%s 2024: expected season %d, got %d", tc.month, tc.want, got)
		}
	}
}

func TestLabelAndPeriodFormats(t *testing.T) {
	if got := season.Label(2023); got != "2023-2024" {
		t.Errorf("Label: got %q", got)
	}
	if got := season.ShortPeriod(2023); got != "2023-24" {
		t.Errorf("ShortPeriod: got %q", got)
	}
	if got := season.ShortPeriod(2009); got != "2009-10" {
		t.Errorf("ShortPeriod pads the short year: got %q", got)
	}
}

func TestPeriodWindow(t *testing.T) {
	start, end := season.Period(2023)
	if start.Month() != time.August || start.Year() != 2023 {
		t.Errorf("start: got %v", start)
	}
	if end.Month() != time.May || end.Year() != 2024 {
		t.Errorf("end: got %v", end)
	}
}

func TestSeasonContext(t *testing.T) {
	now := sep2024()
	cases := map[int]string{
		2024: "current season",
		2023: "previous season",
		2021: "3 seasons ago",
		2025: "future season",
	}
	for year, want := range cases {
		if got := season.Context(year, now); got != want {
			t.Errorf("Context(%d): expected %q, got %q", year, want, got)
		}
	}
}
