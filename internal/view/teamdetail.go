package view

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/players"
)

// TeamDetailSource bundles the fetchers behind a single team's detail panel.
// Squad and DetailedSquad are primary (their errors surface on the view);
// TopPerformers backs an optional panel and already degrades to empty inside
// the fetcher, so it never contributes an error.
type TeamDetailSource struct {
	Squad         func(ctx context.Context, teamID, leagueID, seasonYear int) (*players.Squad, error)
	DetailedSquad func(ctx context.Context, teamID, leagueID, seasonYear int) (*players.DetailedSquad, error)
	TopPerformers func(ctx context.Context, teamID, leagueID, seasonYear int) []model.PlayerDetails
}

// ClientTeamDetailSource binds the squad fetchers to client.
func ClientTeamDetailSource(client *api.Client) TeamDetailSource {
	return TeamDetailSource{
		Squad: func(ctx context.Context, t, l, s int) (*players.Squad, error) {
			return players.TeamSquad(ctx, client, t, l, s)
		},
		DetailedSquad: func(ctx context.Context, t, l, s int) (*players.DetailedSquad, error) {
			return players.TeamSquadDetailed(ctx, client, t, l, s)
		},
		TopPerformers: func(ctx context.Context, t, l, s int) []model.PlayerDetails {
			return players.TopPerformers(ctx, client, t, l, s)
		},
	}
}

// TeamDetailView owns the state of one team's detail panel: the plain roster,
// the statistics-bearing roster and the optional top-performer list, loaded
// in parallel. Loading is the OR of the underlying fetches; the view error is
// the first primary fetch to fail.
type TeamDetailView struct {
	source     TeamDetailSource
	teamID     int
	leagueID   int
	seasonYear int

	mu         sync.Mutex
	squad      *players.Squad
	detailed   *players.DetailedSquad
	performers []model.PlayerDetails
	loading    bool
	err        error
	closed     bool
}

// NewTeamDetailView constructs a view for one team in one league season.
func NewTeamDetailView(source TeamDetailSource, teamID, leagueID, seasonYear int) *TeamDetailView {
	return &TeamDetailView{
		source:     source,
		teamID:     teamID,
		leagueID:   leagueID,
		seasonYear: seasonYear,
	}
}

// Load fetches both rosters and the performer panel concurrently. Every fetch
// runs to completion; on failure previously fetched data is preserved.
func (v *TeamDetailView) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	var (
		squad      *players.Squad
		detailed   *players.DetailedSquad
		performers []model.PlayerDetails
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		squad, err = v.source.Squad(ctx, v.teamID, v.leagueID, v.seasonYear)
		return err
	})
	g.Go(func() error {
		var err error
		detailed, err = v.source.DetailedSquad(ctx, v.teamID, v.leagueID, v.seasonYear)
		return err
	})
	g.Go(func() error {
		if v.source.TopPerformers != nil {
			performers = v.source.TopPerformers(ctx, v.teamID, v.leagueID, v.seasonYear)
		}
		return nil
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
	v.squad, v.detailed, v.performers = squad, detailed, performers
	return nil
}

// Refetch re-invokes every underlying fetch for the current parameters.
func (v *TeamDetailView) Refetch(ctx context.Context) error {
	return v.Load(ctx)
}

// Squad returns the plain roster, nil before the first successful load.
func (v *TeamDetailView) Squad() *players.Squad {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.squad
}

// DetailedSquad returns the statistics roster, nil before the first
// successful load.
func (v *TeamDetailView) DetailedSquad() *players.DetailedSquad {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detailed
}

// TopPerformers returns the optional performer panel; empty when the fetch
// degraded or the source carries no performer fetcher.
func (v *TeamDetailView) TopPerformers() []model.PlayerDetails {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.performers
}

// Loading reports whether any fetch is in flight.
func (v *TeamDetailView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the first primary fetch error of the most recent load.
func (v *TeamDetailView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Close disposes the view; in-flight completions are discarded.
func (v *TeamDetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}
