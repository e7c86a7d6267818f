// Package app wires configuration, the API client, the season resolver and
// the local store into a single Deps struct that commands receive at runtime.
// Nothing here is a hidden global: the container is constructed per
// invocation and disposed explicitly.
package app

import (
	"fmt"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/config"
	"github.com/pmartineau/touchline/internal/season"
	"github.com/pmartineau/touchline/internal/store"
)

// Deps holds all runtime dependencies injected into command Run functions.
type Deps struct {
	Config  *config.Config
	Client  *api.Client
	Seasons *season.Resolver
	Store   *store.Store // opened lazily via RequireStore
}

// New builds a Deps from resolved config.
func New(cfg *config.Config) *Deps {
	client := api.New(api.Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		RatePerSec: cfg.Rate,
		Retries:    cfg.Retries,
		Debug:      cfg.Debug,
	})
	return &Deps{
		Config:  cfg,
		Client:  client,
		Seasons: season.NewResolver(client, season.Options{}),
	}
}

// RequireStore opens the local store if it is not open yet.
func (d *Deps) RequireStore() error {
	if d.Store != nil {
		return nil
	}
	if d.Config.DBPath == "" {
		return fmt.Errorf("no database path configured (set db_path or %s)", config.EnvDBPath)
	}
	s, err := store.Open(d.Config.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	d.Store = s
	return nil
}

// Close releases everything the container owns.
func (d *Deps) Close() {
	if d.Store != nil {
		_ = d.Store.Close()
		d.Store = nil
	}
}
