// Package view implements the per-view aggregation state of the dashboard:
// each view owns its fetched data, filter/sort/search state, and
// loading/error union, and recomputes its visible subset synchronously from
// both. The only asynchronous step is the underlying fetch — changing a
// filter or sort key never triggers network I/O.
//
// Views are constructed per (league, season) pair; a dependency-key change
// means constructing a new view. After Close, in-flight completions are
// discarded: no state mutation after disposal.
package view

import (
	"context"
	"sync"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/teams"
)

// TeamsSource fetches the unfiltered team list for a league season.
type TeamsSource func(ctx context.Context, leagueID, seasonYear int) ([]model.TeamWithStanding, error)

// ClientTeamsSource binds the standings-backed fetcher to client.
func ClientTeamsSource(client *api.Client) TeamsSource {
	return func(ctx context.Context, leagueID, seasonYear int) ([]model.TeamWithStanding, error) {
		return teams.FromStandings(ctx, client, leagueID, seasonYear)
	}
}

// TeamsFilters is the value object holding the active predicate fields for a
// teams view. The zero value is not the canonical empty state; see
// defaultTeamsFilters.
type TeamsFilters struct {
	Search        string
	SortBy        teams.SortKey
	Qualification teams.Qualification
}

func defaultTeamsFilters() TeamsFilters {
	return TeamsFilters{
		SortBy:        teams.SortByPosition,
		Qualification: teams.QualificationAll,
	}
}

// TeamsStats extends the list statistics with the filtered count. Statistics
// are computed from the unfiltered source list; Filtered only reports how
// many rows the current filters leave visible.
type TeamsStats struct {
	teams.Stats
	Filtered int `json:"filtered"`
}

// TeamsView owns the state of one teams listing.
type TeamsView struct {
	source     TeamsSource
	leagueID   int
	seasonYear int

	mu          sync.Mutex
	all         []model.TeamWithStanding
	filters     TeamsFilters
	searchInput string
	loading     bool
	err         error
	closed      bool

	deb *debouncer
}

// NewTeamsView constructs a view for one league season. Call Load to
// populate it and Close when the view is torn down.
func NewTeamsView(source TeamsSource, leagueID, seasonYear int) *TeamsView {
	return &TeamsView{
		source:     source,
		leagueID:   leagueID,
		seasonYear: seasonYear,
		filters:    defaultTeamsFilters(),
		deb:        newDebouncer(searchDebounce),
	}
}

// Load fetches the team list. On failure previously fetched data is
// preserved untouched and only the error changes (stale-while-revalidate).
func (v *TeamsView) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	list, err := v.source(ctx, v.leagueID, v.seasonYear)

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
	v.all = list
	return nil
}

// Refetch re-invokes the underlying fetch for the current parameters.
func (v *TeamsView) Refetch(ctx context.Context) error {
	return v.Load(ctx)
}

// Teams returns the filtered, sorted team list: a pure recomputation from
// the current filters and fetched data.
func (v *TeamsView) Teams() []model.TeamWithStanding {
	v.mu.Lock()
	all, filters := v.all, v.filters
	v.mu.Unlock()

	result := teams.Search(all, filters.Search)
	result = teams.FilterByQualification(result, filters.Qualification)
	return teams.Sort(result, filters.SortBy)
}

// AllTeams returns the unfiltered source list.
func (v *TeamsView) AllTeams() []model.TeamWithStanding {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.all
}

// Stats derives headline figures from the unfiltered list plus the current
// filtered count.
func (v *TeamsView) Stats() TeamsStats {
	filtered := len(v.Teams())
	v.mu.Lock()
	all := v.all
	v.mu.Unlock()
	return TeamsStats{Stats: teams.ComputeStats(all), Filtered: filtered}
}

// ─── Filter state ─────────────────────────────────────────────────────────────

// Filters returns a snapshot of the active filter state.
func (v *TeamsView) Filters() TeamsFilters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// SetSort changes the active sort key.
func (v *TeamsView) SetSort(key teams.SortKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.SortBy = key
}

// SetQualification changes the active qualification bucket.
func (v *TeamsView) SetQualification(q teams.Qualification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters.Qualification = q
}

// SetSearchQuery records a keystroke. The raw input is visible immediately
// via SearchQuery; the value used for filtering updates only after the
// debounce period passes with no further keystrokes.
func (v *TeamsView) SetSearchQuery(query string) {
	v.mu.Lock()
	v.searchInput = query
	v.mu.Unlock()

	v.deb.trigger(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed {
			return
		}
		v.filters.Search = query
	})
}

// SetSearch applies a committed query immediately, superseding any pending
// debounced keystroke. Interactive input goes through SetSearchQuery instead.
func (v *TeamsView) SetSearch(query string) {
	v.deb.cancel()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchInput = query
	v.filters.Search = query
}

// SearchQuery returns the raw, un-debounced input value.
func (v *TeamsView) SearchQuery() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.searchInput
}

// ClearFilters resets filter, sort and search state to the canonical empty
// value in one atomic replace. A pending debounced keystroke is superseded,
// never applied afterwards.
func (v *TeamsView) ClearFilters() {
	v.deb.cancel()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = defaultTeamsFilters()
	v.searchInput = ""
}

// ─── Lifecycle ────────────────────────────────────────────────────────────────

// Loading reports whether a fetch is in flight.
func (v *TeamsView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the most recent fetch error, nil after a successful fetch.
func (v *TeamsView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Close disposes the view. Pending debounce timers are cancelled and any
// in-flight fetch completion is discarded.
func (v *TeamsView) Close() {
	v.deb.stop()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}
