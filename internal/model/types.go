// Package model defines the canonical data types used throughout touchline.
// These types are the single source of truth for all football entities and
// the result envelope that every command returns.
package model

import "time"

// ─── Leagues ──────────────────────────────────────────────────────────────────

// League describes one competition as shown in league-scoped views.
type League struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
	Logo        string `json:"logo,omitempty"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ─── Seasons & API plan ───────────────────────────────────────────────────────

// PlanTier is the backend data provider's subscription level. It constrains
// which historical seasons are queryable.
type PlanTier string

const (
	PlanFree    PlanTier = "free"
	PlanBasic   PlanTier = "basic"
	PlanPremium PlanTier = "premium"
)

// Plan holds the detected API plan and its allowed season range.
type Plan struct {
	Type            PlanTier `json:"type"`
	AvailableFrom   int      `json:"available_from"`
	AvailableTo     int      `json:"available_to"`
	CurrentRequests int      `json:"current_requests"`
	MaxRequests     int      `json:"max_requests"`
}

// InRange reports whether year falls inside the plan's allowed season range.
func (p Plan) InRange(year int) bool {
	return year >= p.AvailableFrom && year <= p.AvailableTo
}

// Season is one football-calendar year window (August–May), represented by
// its starting year.
type Season struct {
	Year      int    `json:"year"`
	Label     string `json:"label"`  // "2023-2024"
	Period    string `json:"period"` // "2023-24"
	Current   bool   `json:"current"`
	Available bool   `json:"available"`
}

// ─── Standings ────────────────────────────────────────────────────────────────

// TeamRef is the minimal team identity embedded in standings and matches.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// GoalRecord is a goals-for/against pair.
type GoalRecord struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

// SplitRecord is a win/draw/lose record for one venue split.
type SplitRecord struct {
	Played int        `json:"played"`
	Win    int        `json:"win"`
	Draw   int        `json:"draw"`
	Lose   int        `json:"lose"`
	Goals  GoalRecord `json:"goals"`
}

// StandingEntry is one row of a league table, exactly as the backend ranks it.
// Rank is unique and assigned 1..N within a response; ordering is owned by the
// upstream source and must be preserved, never re-derived.
type StandingEntry struct {
	Rank        int         `json:"rank"`
	Team        TeamRef     `json:"team"`
	Points      int         `json:"points"`
	GoalsDiff   int         `json:"goalsDiff"`
	Group       string      `json:"group,omitempty"`
	Form        string      `json:"form,omitempty"` // recent results, e.g. "WWDLW"
	Status      string      `json:"status,omitempty"`
	Description string      `json:"description,omitempty"`
	All         SplitRecord `json:"all"`
	Home        SplitRecord `json:"home"`
	Away        SplitRecord `json:"away"`
	Update      string      `json:"update,omitempty"`
}

// StandingsLeague is the league header returned with a standings response.
type StandingsLeague struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo,omitempty"`
	Flag    string `json:"flag,omitempty"`
	Season  int    `json:"season"`
}

// StandingsResponse is the full payload of GET /standings/{leagueId}.
type StandingsResponse struct {
	League     StandingsLeague `json:"league"`
	Standings  []StandingEntry `json:"standings"`
	LastUpdate string          `json:"last_update,omitempty"`
}

// TeamWithStanding joins team identity with a projection of its standings
// fields. Produced client-side from a standings response, never by the
// backend directly.
type TeamWithStanding struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Logo         string `json:"logo,omitempty"`
	Country      string `json:"country,omitempty"`
	Position     int    `json:"position"`
	Points       int    `json:"points"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalsDiff    int    `json:"goals_diff"`
	Form         string `json:"form,omitempty"`
}

// ─── Matches ──────────────────────────────────────────────────────────────────

// MatchStatus is the lifecycle state of a fixture.
type MatchStatus string

const (
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
	StatusScheduled MatchStatus = "scheduled"
	StatusPostponed MatchStatus = "postponed"
	StatusCancelled MatchStatus = "cancelled"
)

// Score holds the goal count for each side. Both fields are nil before a
// match produces a score, and both are set afterwards — never mixed.
type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Venue is the optional ground a match is played at.
type Venue struct {
	Name string `json:"name,omitempty"`
	City string `json:"city,omitempty"`
}

// MatchData is one fixture with kickoff normalized to a single instant,
// regardless of whether the backend sent a Unix timestamp or an ISO date.
type MatchData struct {
	ID       int         `json:"id"`
	Kickoff  time.Time   `json:"kickoff"`
	Status   MatchStatus `json:"status"`
	Elapsed  int         `json:"elapsed,omitempty"` // minute counter while live
	HomeTeam TeamRef     `json:"home_team"`
	AwayTeam TeamRef     `json:"away_team"`
	Score    Score       `json:"score"`
	Venue    Venue       `json:"venue,omitempty"`
	Round    string      `json:"round,omitempty"`
}

// ─── Players ──────────────────────────────────────────────────────────────────

// PlayerPerformance is one season's raw performance block for a player.
type PlayerPerformance struct {
	Position    string  `json:"position,omitempty"`
	Appearances int     `json:"appearances"`
	Minutes     int     `json:"minutes"`
	Rating      float64 `json:"rating,omitempty"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	YellowCards int     `json:"yellow_cards"`
	RedCards    int     `json:"red_cards"`
	Captain     bool    `json:"captain"`
}

// DerivedStats are computed client-side from the raw performance block.
// Upstream derived values are never trusted when raw counts are present.
type DerivedStats struct {
	GoalsPerMatch    float64 `json:"goals_per_match"`
	AssistsPerMatch  float64 `json:"assists_per_match"`
	MinutesPerMatch  int     `json:"minutes_per_match"`
	GoalContribution int     `json:"goal_contribution"`
	Efficiency       float64 `json:"efficiency"`
}

// PlayerDetails is a player's identity, biography, current team and one
// season's performance, with derived stats recomputed locally.
type PlayerDetails struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Firstname    string             `json:"firstname,omitempty"`
	Lastname     string             `json:"lastname,omitempty"`
	Age          int                `json:"age,omitempty"`
	BirthDate    string             `json:"birth_date,omitempty"`
	BirthPlace   string             `json:"birth_place,omitempty"`
	BirthCountry string             `json:"birth_country,omitempty"`
	Nationality  string             `json:"nationality,omitempty"`
	Height       string             `json:"height,omitempty"`
	Weight       string             `json:"weight,omitempty"`
	Injured      bool               `json:"injured"`
	Photo        string             `json:"photo,omitempty"`
	CurrentTeam  *TeamRef           `json:"current_team,omitempty"`
	Performance  *PlayerPerformance `json:"performance,omitempty"`
	Derived      *DerivedStats      `json:"derived_stats,omitempty"`
}

// Transfer is one entry of a player's transfer history.
type Transfer struct {
	Date    string  `json:"date"`
	Type    string  `json:"type,omitempty"`
	TeamIn  TeamRef `json:"team_in"`
	TeamOut TeamRef `json:"team_out"`
}

// PlayerMatch is one row of a player's per-match history.
type PlayerMatch struct {
	ID       int     `json:"id"`
	Date     string  `json:"date"`
	Opponent string  `json:"opponent"`
	Minutes  int     `json:"minutes"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	Rating   float64 `json:"rating,omitempty"`
}

// ─── Result Envelope ─────────────────────────────────────────────────────────

// ResultStats carries performance and cache metadata for a command result.
type ResultStats struct {
	CacheHit   bool  `json:"cache_hit"`
	DurationMs int64 `json:"duration_ms"`
	Items      int   `json:"items"`
}

// Result is the uniform envelope returned by every command.
// The Data field holds the typed payload; Kind identifies what is in it.
// Renderers switch on Kind to format output appropriately.
type Result struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
	Command     string      `json:"command"`
	Data        interface{} `json:"data"`
	Warnings    []string    `json:"warnings,omitempty"`
	Stats       ResultStats `json:"stats"`
}

// Kind constants for Result.Kind.
const (
	KindStandings = "standings"
	KindSummary   = "standings_summary"
	KindTeams     = "teams"
	KindMatches   = "matches"
	KindPlayer    = "player"
	KindPlayers   = "players"
	KindTransfers = "transfers"
	KindSeasons   = "seasons"
	KindPlan      = "plan"
	KindLeagues   = "leagues"
	KindHealth    = "health"
	KindReport    = "report"
)
