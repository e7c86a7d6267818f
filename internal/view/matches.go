package view

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/matches"
	"github.com/pmartineau/touchline/internal/model"
)

// MatchWindow fetches one fixture window for a league season.
type MatchWindow func(ctx context.Context, leagueID, seasonYear int) ([]model.MatchData, error)

// MatchesSource bundles the three windows a matches view loads in parallel.
type MatchesSource struct {
	All      MatchWindow
	Recent   MatchWindow
	Upcoming MatchWindow
}

// ClientMatchesSource binds the match fetchers to client.
func ClientMatchesSource(client *api.Client) MatchesSource {
	return MatchesSource{
		All: func(ctx context.Context, l, s int) ([]model.MatchData, error) {
			return matches.FetchAll(ctx, client, l, s)
		},
		Recent: func(ctx context.Context, l, s int) ([]model.MatchData, error) {
			return matches.FetchRecent(ctx, client, l, s)
		},
		Upcoming: func(ctx context.Context, l, s int) ([]model.MatchData, error) {
			return matches.FetchUpcoming(ctx, client, l, s)
		},
	}
}

// StatusFilter is the status predicate of a matches view. Besides the raw
// match statuses it accepts the window aliases "recent" and "upcoming".
type StatusFilter string

const (
	StatusAll         StatusFilter = "all"
	StatusRecentAlias StatusFilter = "recent"
	StatusUpcoming    StatusFilter = "upcoming"
)

// MatchFilters is the value object holding the active predicate fields for
// a matches view.
type MatchFilters struct {
	TeamID    int
	StartDate time.Time
	EndDate   time.Time
	Status    StatusFilter
}

func defaultMatchFilters() MatchFilters {
	return MatchFilters{Status: StatusAll}
}

// MatchesStats counts the unfiltered windows.
type MatchesStats struct {
	Total    int `json:"total"`
	Recent   int `json:"recent"`
	Upcoming int `json:"upcoming"`
	Live     int `json:"live"`
	Finished int `json:"finished"`
}

// MatchesView owns the state of one fixtures listing. The three windows load
// in parallel with all-settle semantics: the view counts as loaded only when
// every fetch has settled, and the first failure (in completion order)
// becomes the view error.
type MatchesView struct {
	source     MatchesSource
	leagueID   int
	seasonYear int

	mu       sync.Mutex
	all      []model.MatchData
	recent   []model.MatchData
	upcoming []model.MatchData
	filters  MatchFilters
	sortBy   matches.SortOption
	loading  bool
	err      error
	closed   bool
}

// NewMatchesView constructs a view for one league season.
func NewMatchesView(source MatchesSource, leagueID, seasonYear int) *MatchesView {
	return &MatchesView{
		source:     source,
		leagueID:   leagueID,
		seasonYear: seasonYear,
		filters:    defaultMatchFilters(),
		sortBy:     matches.SortByDate,
	}
}

// Load fetches all three windows in parallel. On any failure the previously
// fetched windows are preserved untouched; data is replaced wholesale only
// when every window succeeded.
func (v *MatchesView) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	var all, recent, upcoming []model.MatchData

	// A bare errgroup (no shared context) deliberately lets every fetch run
	// to completion: Wait joins all of them and carries the first error.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		all, err = v.source.All(ctx, v.leagueID, v.seasonYear)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = v.source.Recent(ctx, v.leagueID, v.seasonYear)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = v.source.Upcoming(ctx, v.leagueID, v.seasonYear)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.loading = false
	if err != nil {
		v.err = err
		return err
	}
	v.all, v.recent, v.upcoming = all, recent, upcoming
	return nil
}

// Refetch re-invokes every underlying fetch for the current parameters.
func (v *MatchesView) Refetch(ctx context.Context) error {
	return v.Load(ctx)
}

// Matches returns the filtered, sorted fixture list, recomputed locally from
// the full window.
func (v *MatchesView) Matches() []model.MatchData {
	v.mu.Lock()
	all, filters, sortBy := v.all, v.filters, v.sortBy
	v.mu.Unlock()

	result := all
	if filters.TeamID != 0 {
		result = matches.FilterByTeam(result, filters.TeamID)
	}
	if !filters.StartDate.IsZero() && !filters.EndDate.IsZero() {
		result = matches.FilterByDateRange(result, filters.StartDate, filters.EndDate)
	}
	result = applyStatusFilter(result, filters.Status)
	return matches.Sort(result, sortBy)
}

// applyStatusFilter maps the view-level status predicate onto match
// statuses. The window aliases resolve to their terminal status.
func applyStatusFilter(list []model.MatchData, status StatusFilter) []model.MatchData {
	switch status {
	case "", StatusAll:
		return list
	case StatusRecentAlias:
		return matches.FilterByStatus(list, model.StatusFinished)
	case StatusUpcoming:
		return matches.FilterByStatus(list, model.StatusScheduled)
	default:
		return matches.FilterByStatus(list, model.MatchStatus(status))
	}
}

// AllMatches returns the unfiltered full window.
func (v *MatchesView) AllMatches() []model.MatchData {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.all
}

// RecentMatches returns the backend's recent window.
func (v *MatchesView) RecentMatches() []model.MatchData {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recent
}

// UpcomingMatches returns the backend's upcoming window.
func (v *MatchesView) UpcomingMatches() []model.MatchData {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.upcoming
}

// Stats counts the unfiltered windows; filtering never changes what is
// measured.
func (v *MatchesView) Stats() MatchesStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := MatchesStats{
		Total:    len(v.all),
		Recent:   len(v.recent),
		Upcoming: len(v.upcoming),
	}
	for _, m := range v.all {
		switch m.Status {
		case model.StatusLive:
			s.Live++
		case model.StatusFinished:
			s.Finished++
		}
	}
	return s
}

// ─── Filter state ─────────────────────────────────────────────────────────────

// Filters returns a snapshot of the active filter state.
func (v *MatchesView) Filters() MatchFilters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// SetFilters replaces the active filter object.
func (v *MatchesView) SetFilters(f MatchFilters) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if f.Status == "" {
		f.Status = StatusAll
	}
	v.filters = f
}

// SetSort changes the active sort option.
func (v *MatchesView) SetSort(option matches.SortOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortBy = option
}

// ClearFilters resets the filter object to the canonical empty value in one
// atomic replace.
func (v *MatchesView) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = defaultMatchFilters()
}

// ─── Lifecycle ────────────────────────────────────────────────────────────────

// Loading reports whether any window fetch is in flight.
func (v *MatchesView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the first error of the most recent load, nil on success.
func (v *MatchesView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Close disposes the view; in-flight completions are discarded.
func (v *MatchesView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}
