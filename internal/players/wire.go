package players

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pmartineau/touchline/internal/model"
)

// flexFloat decodes a numeric field the backend sometimes serializes as a
// string (player ratings arrive both ways).
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// rawPlayer is the wire shape of one player record.
type rawPlayer struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Firstname    string         `json:"firstname"`
	Lastname     string         `json:"lastname"`
	Age          int            `json:"age"`
	BirthDate    string         `json:"birth_date"`
	BirthPlace   string         `json:"birth_place"`
	BirthCountry string         `json:"birth_country"`
	Nationality  string         `json:"nationality"`
	Height       string         `json:"height"`
	Weight       string         `json:"weight"`
	Injured      bool           `json:"injured"`
	Photo        string         `json:"photo"`
	CurrentTeam  *model.TeamRef `json:"current_team"`
	Performance  *struct {
		Position    string    `json:"position"`
		Appearances int       `json:"appearances"`
		Minutes     int       `json:"minutes"`
		Rating      flexFloat `json:"rating"`
		Goals       int       `json:"goals"`
		Assists     int       `json:"assists"`
		YellowCards int       `json:"yellow_cards"`
		RedCards    int       `json:"red_cards"`
		Captain     bool      `json:"captain"`
	} `json:"performance"`
}

// normalize converts a wire player into the canonical PlayerDetails,
// recomputing the derived block whenever raw counts are present.
func (r rawPlayer) normalize() model.PlayerDetails {
	p := model.PlayerDetails{
		ID:           r.ID,
		Name:         r.Name,
		Firstname:    r.Firstname,
		Lastname:     r.Lastname,
		Age:          r.Age,
		BirthDate:    r.BirthDate,
		BirthPlace:   r.BirthPlace,
		BirthCountry: r.BirthCountry,
		Nationality:  r.Nationality,
		Height:       r.Height,
		Weight:       r.Weight,
		Injured:      r.Injured,
		Photo:        r.Photo,
		CurrentTeam:  r.CurrentTeam,
	}
	if r.Performance != nil {
		perf := model.PlayerPerformance{
			Position:    r.Performance.Position,
			Appearances: r.Performance.Appearances,
			Minutes:     r.Performance.Minutes,
			Rating:      float64(r.Performance.Rating),
			Goals:       r.Performance.Goals,
			Assists:     r.Performance.Assists,
			YellowCards: r.Performance.YellowCards,
			RedCards:    r.Performance.RedCards,
			Captain:     r.Performance.Captain,
		}
		derived := DeriveStats(perf)
		p.Performance = &perf
		p.Derived = &derived
	}
	return p
}

func normalizeAll(raw []rawPlayer) []model.PlayerDetails {
	out := make([]model.PlayerDetails, len(raw))
	for i, r := range raw {
		out[i] = r.normalize()
	}
	return out
}
