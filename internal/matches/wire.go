package matches

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pmartineau/touchline/internal/model"
)

// kickoffTime decodes the backend's kickoff field, which arrives as either a
// Unix timestamp (number) or an ISO date string depending on the endpoint.
// Both normalize to one UTC instant.
type kickoffTime struct {
	time.Time
}

// isoLayouts are tried in order for string kickoffs.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (k *kickoffTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		k.Time = time.Time{}
		return nil
	}

	if s[0] != '"' {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		k.Time = time.Unix(secs, 0).UTC()
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	var lastErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			k.Time = t.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// rawMatch is the wire shape of one fixture.
type rawMatch struct {
	ID      int           `json:"id"`
	Date    kickoffTime   `json:"date"`
	Status  string        `json:"status"`
	Elapsed int           `json:"elapsed"`
	Home    model.TeamRef `json:"home_team"`
	Away    model.TeamRef `json:"away_team"`
	Score   struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"score"`
	Venue model.Venue `json:"venue"`
	Round string      `json:"round"`
}

// normalize converts a wire fixture into the canonical MatchData, enforcing
// the score invariant: both halves present or both absent, never mixed.
func (r rawMatch) normalize() model.MatchData {
	m := model.MatchData{
		ID:       r.ID,
		Kickoff:  r.Date.Time,
		Status:   normalizeStatus(r.Status),
		HomeTeam: r.Home,
		AwayTeam: r.Away,
		Venue:    r.Venue,
		Round:    r.Round,
	}
	if m.Status == model.StatusLive {
		m.Elapsed = r.Elapsed
	}
	if r.Score.Home != nil && r.Score.Away != nil {
		m.Score = model.Score{Home: r.Score.Home, Away: r.Score.Away}
	}
	return m
}

func normalizeStatus(s string) model.MatchStatus {
	switch model.MatchStatus(strings.ToLower(s)) {
	case model.StatusLive:
		return model.StatusLive
	case model.StatusFinished:
		return model.StatusFinished
	case model.StatusPostponed:
		return model.StatusPostponed
	case model.StatusCancelled:
		return model.StatusCancelled
	default:
		return model.StatusScheduled
	}
}
