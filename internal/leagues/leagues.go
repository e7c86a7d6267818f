// Package leagues resolves league metadata for league-scoped views.
//
// Resolution order: local store cache, then the built-in table of major
// competitions. A fallback hit is persisted so the next lookup is served
// from the store. Records are replaced wholesale, never mutated in place.
package leagues

import (
	"fmt"
	"sort"

	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/store"
)

// fallback is the static table of major competitions used when a league is
// not in the store.
var fallback = map[int]model.League{
	61: {
		ID:          61,
		Name:        "Ligue 1",
		Country:     "France",
		CountryCode: "FR",
		Logo:        "https://media.api-sports.io/football/leagues/61.png",
		Color:       "#003d82",
		Description: "French top flight",
	},
	39: {
		ID:          39,
		Name:        "Premier League",
		Country:     "England",
		CountryCode: "GB-ENG",
		Logo:        "https://media.api-sports.io/football/leagues/39.png",
		Color:       "#3d1a78",
		Description: "English top flight",
	},
	140: {
		ID:          140,
		Name:        "La Liga",
		Country:     "Spain",
		CountryCode: "ES",
		Logo:        "https://media.api-sports.io/football/leagues/140.png",
		Color:       "#ff6b35",
		Description: "Spanish top flight",
	},
	135: {
		ID:          135,
		Name:        "Serie A",
		Country:     "Italy",
		CountryCode: "IT",
		Logo:        "https://media.api-sports.io/football/leagues/135.png",
		Color:       "#0066cc",
		Description: "Italian top flight",
	},
	78: {
		ID:          78,
		Name:        "Bundesliga",
		Country:     "Germany",
		CountryCode: "DE",
		Logo:        "https://media.api-sports.io/football/leagues/78.png",
		Color:       "#d20515",
		Description: "German top flight",
	},
	2: {
		ID:          2,
		Name:        "Champions League",
		Country:     "Europe",
		CountryCode: "EU",
		Logo:        "https://media.api-sports.io/football/leagues/2.png",
		Color:       "#00387b",
		Description: "European club competition",
	},
}

// Resolve returns the league record for id: store first, then the built-in
// table (persisting the hit). st may be nil, in which case only the built-in
// table is consulted.
func Resolve(st *store.Store, id int) (model.League, error) {
	if st != nil {
		league, ok, err := st.GetLeague(id)
		if err != nil {
			return model.League{}, fmt.Errorf("league cache: %w", err)
		}
		if ok {
			return league, nil
		}
	}

	league, ok := fallback[id]
	if !ok {
		return model.League{}, fmt.Errorf("unknown league %d", id)
	}
	if st != nil {
		// Best effort; resolution must not fail on a write error.
		_ = st.PutLeague(league)
	}
	return league, nil
}

// Save persists a league record, replacing any cached copy.
func Save(st *store.Store, league model.League) error {
	if st == nil {
		return nil
	}
	return st.PutLeague(league)
}

// Known returns the built-in competitions sorted by ID.
func Known() []model.League {
	out := make([]model.League, 0, len(fallback))
	for _, l := range fallback {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
