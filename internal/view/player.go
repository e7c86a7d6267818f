package view

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/players"
)

// matchHistoryLimit bounds the per-match panel of a player view.
const matchHistoryLimit = 10

// PlayerSource bundles the fetchers behind a player detail panel. Details is
// primary; MatchHistory and Transfers back supplementary panels and degrade
// to empty inside the fetchers.
type PlayerSource struct {
	Details      func(ctx context.Context, playerID, leagueID, seasonYear int) (*model.PlayerDetails, error)
	MatchHistory func(ctx context.Context, playerID, leagueID, seasonYear, limit int) []model.PlayerMatch
	Transfers    func(ctx context.Context, playerID int) []model.Transfer
}

// ClientPlayerSource binds the player fetchers to client.
func ClientPlayerSource(client *api.Client) PlayerSource {
	return PlayerSource{
		Details: func(ctx context.Context, p, l, s int) (*model.PlayerDetails, error) {
			return players.Details(ctx, client, p, l, s)
		},
		MatchHistory: func(ctx context.Context, p, l, s, limit int) []model.PlayerMatch {
			return players.MatchHistory(ctx, client, p, l, s, limit)
		},
		Transfers: func(ctx context.Context, p int) []model.Transfer {
			return players.Transfers(ctx, client, p)
		},
	}
}

// PlayerView owns the state of one player's detail panel: the player record
// plus the match-history and transfer side panels, fetched concurrently. Only
// the record fetch can fail the view; the side panels come back empty when
// their fetches degrade.
type PlayerView struct {
	source     PlayerSource
	playerID   int
	leagueID   int
	seasonYear int

	mu        sync.Mutex
	player    *model.PlayerDetails
	history   []model.PlayerMatch
	transfers []model.Transfer
	loading   bool
	err       error
	closed    bool
}

// NewPlayerView constructs a view for one player in one league season.
func NewPlayerView(source PlayerSource, playerID, leagueID, seasonYear int) *PlayerView {
	return &PlayerView{
		source:     source,
		playerID:   playerID,
		leagueID:   leagueID,
		seasonYear: seasonYear,
	}
}

// Load fetches the record and both side panels concurrently. On failure the
// previously fetched record is preserved untouched.
func (v *PlayerView) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.loading = true
	v.err = nil
	v.mu.Unlock()

	var (
		player    *model.PlayerDetails
		history   []model.PlayerMatch
		transfers []model.Transfer
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		player, err = v.source.Details(ctx, v.playerID, v.leagueID, v.seasonYear)
		return err
	})
	g.Go(func() error {
		if v.source.MatchHistory != nil {
			history = v.source.MatchHistory(ctx, v.playerID, v.leagueID, v.seasonYear, matchHistoryLimit)
		}
		return nil
	})
	g.Go(func() error {
		if v.source.Transfers != nil {
			transfers = v.source.Transfers(ctx, v.playerID)
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
	v.player, v.history, v.transfers = player, history, transfers
	return nil
}

// Refetch re-invokes every underlying fetch for the current parameters.
func (v *PlayerView) Refetch(ctx context.Context) error {
	return v.Load(ctx)
}

// Player returns the record, nil before the first successful load.
func (v *PlayerView) Player() *model.PlayerDetails {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.player
}

// MatchHistory returns the per-match side panel.
func (v *PlayerView) MatchHistory() []model.PlayerMatch {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.history
}

// Transfers returns the transfer side panel.
func (v *PlayerView) Transfers() []model.Transfer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.transfers
}

// Loading reports whether a fetch is in flight.
func (v *PlayerView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the record-fetch error of the most recent load.
func (v *PlayerView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Close disposes the view; in-flight completions are discarded.
func (v *PlayerView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}
