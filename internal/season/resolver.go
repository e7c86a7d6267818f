// Package season hides provider plan variability behind a stable season API.
//
// The backend data provider limits which historical seasons are queryable by
// subscription tier. The Resolver detects the tier once, caches it, and
// derives the season list from it. Season selection is a convenience feature:
// nothing in this package ever propagates an error — every method degrades to
// the free plan rather than blocking a view from rendering.
package season

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
)

// freePlanMarker is the error fragment the provider returns when a free-tier
// key requests a season outside its range.
const freePlanMarker = "Free plans do not have access"

// probeLeagueID is the league used by the detection heuristic (Ligue 1).
const probeLeagueID = 61

// Client is the slice of the API client the resolver needs.
type Client interface {
	Status(ctx context.Context) (*model.Plan, error)
	Get(ctx context.Context, path string, params api.Params, out interface{}) error
}

// Resolver detects the API plan and derives the queryable season list.
// Safe for concurrent use; one resolver is shared across views.
type Resolver struct {
	mu      sync.Mutex
	client  Client
	now     func() time.Time
	plan    *model.Plan
	seasons []model.Season
}

// Options tunes a Resolver. Now is injectable for tests; nil means wall clock.
type Options struct {
	Now func() time.Time
}

// NewResolver builds a Resolver around client.
func NewResolver(client Client, opts Options) *Resolver {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Resolver{client: client, now: now}
}

// ─── Plan detection ───────────────────────────────────────────────────────────

// Plan returns the detected provider plan, probing and caching on first use.
// Total failure defaults to the free plan; this method never fails.
func (r *Resolver) Plan(ctx context.Context) model.Plan {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plan != nil {
		return *r.plan
	}

	if plan, err := r.client.Status(ctx); err == nil {
		r.plan = plan
		return *plan
	}

	plan := r.detect(ctx)
	r.plan = &plan
	return plan
}

// detect runs the fallback heuristic: request current-year standings and
// judge the tier from how the provider answers.
func (r *Resolver) detect(ctx context.Context) model.Plan {
	year := r.now().Year()

	var raw json.RawMessage
	err := r.client.Get(ctx, fmt.Sprintf("/standings/%d", probeLeagueID),
		api.Params{"season": year}, &raw)
	if err == nil {
		return planForTier(model.PlanPremium, year)
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && strings.Contains(apiErr.Message, freePlanMarker) {
		return planForTier(model.PlanFree, year)
	}
	if api.IsKind(err, api.KindNetwork) || api.IsKind(err, api.KindTimeout) {
		// Backend unreachable: nothing to learn, assume the most
		// restrictive tier.
		return planForTier(model.PlanFree, year)
	}
	return planForTier(model.PlanBasic, year)
}

// planForTier returns the season range each tier is allowed to query.
func planForTier(tier model.PlanTier, currentYear int) model.Plan {
	switch tier {
	case model.PlanPremium:
		return model.Plan{Type: tier, AvailableFrom: 2008, AvailableTo: currentYear, MaxRequests: 10000}
	case model.PlanBasic:
		return model.Plan{Type: tier, AvailableFrom: 2018, AvailableTo: currentYear - 1, MaxRequests: 1000}
	default:
		return model.Plan{Type: model.PlanFree, AvailableFrom: 2021, AvailableTo: 2023, MaxRequests: 100}
	}
}

// ─── Seasons ──────────────────────────────────────────────────────────────────

// AvailableSeasons builds the descending season list for the detected plan.
// Exactly one entry carries Current; every listed entry is inside the plan
// range and therefore Available. Cached after first computation.
func (r *Resolver) AvailableSeasons(ctx context.Context) []model.Season {
	plan := r.Plan(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seasons != nil {
		return r.seasons
	}

	current := CurrentSeasonYear(r.now())
	seasons := make([]model.Season, 0, plan.AvailableTo-plan.AvailableFrom+1)
	for year := plan.AvailableTo; year >= plan.AvailableFrom; year-- {
		seasons = append(seasons, model.Season{
			Year:      year,
			Label:     Label(year),
			Period:    ShortPeriod(year),
			Current:   year == current,
			Available: plan.InRange(year),
		})
	}
	r.seasons = seasons
	return seasons
}

// Recommended returns the season a fresh view should default to: the current
// season when the plan allows it, else the most recent available one. A plan
// whose range excludes the present never causes a failure — the newest
// in-range season wins.
func (r *Resolver) Recommended(ctx context.Context) model.Season {
	seasons := r.AvailableSeasons(ctx)
	if len(seasons) == 0 {
		// Cannot occur by construction; return a sane default anyway.
		year := CurrentSeasonYear(r.now())
		return model.Season{Year: year, Label: Label(year), Period: ShortPeriod(year), Current: true}
	}
	for _, s := range seasons {
		if s.Current && s.Available {
			return s
		}
	}
	for _, s := range seasons {
		if s.Available {
			return s
		}
	}
	return seasons[0]
}

// IsAvailable reports whether year is a queryable season under the plan.
func (r *Resolver) IsAvailable(ctx context.Context, year int) bool {
	for _, s := range r.AvailableSeasons(ctx) {
		if s.Year == year && s.Available {
			return true
		}
	}
	return false
}

// ClearCache drops the cached plan and season list. Call it whenever the
// plan may have changed, e.g. after a new restriction error pattern.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plan = nil
	r.seasons = nil
}

// ─── Pure helpers ─────────────────────────────────────────────────────────────

// CurrentSeasonYear applies the August rollover rule: from August on, the
// season is the calendar year; before that it is the previous year.
func CurrentSeasonYear(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

// Label formats a season year as "2023-2024".
func Label(year int) string {
	return fmt.Sprintf("%d-%d", year, year+1)
}

// ShortPeriod formats a season year as "2023-24".
func ShortPeriod(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// Period returns the calendar window a season spans: Aug 1 to May 31.
func Period(year int) (start, end time.Time) {
	start = time.Date(year, time.August, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year+1, time.May, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// Context describes a season year relative to the present.
func Context(year int, now time.Time) string {
	current := CurrentSeasonYear(now)
	switch {
	case year == current:
		return "current season"
	case year == current-1:
		return "previous season"
	case year < current-1:
		n := current - year
		return fmt.Sprintf("%d seasons ago", n)
	default:
		return "future season"
	}
}
