// Package render converts Result values into human-readable or machine-parseable
// output. Each format is a separate function; the top-level Render dispatcher
// selects based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pmartineau/touchline/internal/api"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/standings"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatMD    = "md"
)

// Render writes result to w in the specified format.
func Render(w io.Writer, result *model.Result, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatJSONL:
		return renderJSONL(w, result)
	case FormatCSV:
		return renderDelimited(w, result, ',')
	case FormatTSV:
		return renderDelimited(w, result, '\t')
	case FormatMD:
		return renderMarkdown(w, result)
	default:
		return renderTable(w, result)
	}
}

// RenderTo writes to stdout by default; if path is non-empty, writes to file.
func RenderTo(path string, result *model.Result, format string) error {
	if path == "" {
		return Render(os.Stdout, result, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return Render(f, result, format)
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ─── JSONL ────────────────────────────────────────────────────────────────────

func renderJSONL(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	switch result.Kind {
	case model.KindStandings:
		sr, ok := result.Data.(*model.StandingsResponse)
		if !ok {
			return enc.Encode(result.Data)
		}
		for _, entry := range sr.Standings {
			if err := enc.Encode(entry); err != nil {
				return err
			}
		}
		return nil
	case model.KindTeams:
		list, ok := result.Data.([]model.TeamWithStanding)
		if !ok {
			return enc.Encode(result.Data)
		}
		for _, t := range list {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
		return nil
	case model.KindMatches:
		list, ok := result.Data.([]model.MatchData)
		if !ok {
			return enc.Encode(result.Data)
		}
		for _, m := range list {
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
		return nil
	case model.KindPlayers:
		list, ok := result.Data.([]model.PlayerDetails)
		if !ok {
			return enc.Encode(result.Data)
		}
		for _, p := range list {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
		return nil
	default:
		return enc.Encode(result.Data)
	}
}

// ─── Table ────────────────────────────────────────────────────────────────────

func renderTable(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindStandings:
		sr, ok := result.Data.(*model.StandingsResponse)
		if !ok {
			return fmt.Errorf("unexpected data type for standings")
		}
		return renderStandingsTable(w, sr)
	case model.KindSummary:
		sum, ok := result.Data.(*standings.Summary)
		if !ok {
			return fmt.Errorf("unexpected data type for standings_summary")
		}
		return renderSummaryTable(w, sum)
	case model.KindTeams:
		list, ok := result.Data.([]model.TeamWithStanding)
		if !ok {
			return fmt.Errorf("unexpected data type for teams")
		}
		return renderTeamsTable(w, list)
	case model.KindMatches:
		list, ok := result.Data.([]model.MatchData)
		if !ok {
			return fmt.Errorf("unexpected data type for matches")
		}
		return renderMatchesTable(w, list)
	case model.KindPlayer:
		p, ok := result.Data.(*model.PlayerDetails)
		if !ok {
			return fmt.Errorf("unexpected data type for player")
		}
		return renderPlayerTable(w, p)
	case model.KindPlayers:
		list, ok := result.Data.([]model.PlayerDetails)
		if !ok {
			return fmt.Errorf("unexpected data type for players")
		}
		return renderPlayersTable(w, list)
	case model.KindTransfers:
		list, ok := result.Data.([]model.Transfer)
		if !ok {
			return fmt.Errorf("unexpected data type for transfers")
		}
		return renderTransfersTable(w, list)
	case model.KindSeasons:
		list, ok := result.Data.([]model.Season)
		if !ok {
			return fmt.Errorf("unexpected data type for seasons")
		}
		return renderSeasonsTable(w, list)
	case model.KindPlan:
		plan, ok := result.Data.(*model.Plan)
		if !ok {
			return fmt.Errorf("unexpected data type for plan")
		}
		return renderPlanTable(w, plan)
	case model.KindLeagues:
		list, ok := result.Data.([]model.League)
		if !ok {
			return fmt.Errorf("unexpected data type for leagues")
		}
		return renderLeaguesTable(w, list)
	case model.KindHealth:
		hs, ok := result.Data.(*api.HealthStatus)
		if !ok {
			return fmt.Errorf("unexpected data type for health")
		}
		fmt.Fprintf(w, "status: %s\napi_version: %s\n", hs.Status, hs.APIVersion)
		return nil
	default:
		// Fallback: JSON
		return renderJSON(w, result)
	}
}

func newListTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

func renderStandingsTable(w io.Writer, sr *model.StandingsResponse) error {
	fmt.Fprintf(w, "%s — season %d\n\n", sr.League.Name, sr.League.Season)
	tw := newListTable(w, []string{"#", "TEAM", "P", "W", "D", "L", "GF", "GA", "GD", "PTS", "FORM"})
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})
	for _, e := range sr.Standings {
		tw.Append([]string{
			strconv.Itoa(e.Rank),
			e.Team.Name,
			strconv.Itoa(e.All.Played),
			strconv.Itoa(e.All.Win),
			strconv.Itoa(e.All.Draw),
			strconv.Itoa(e.All.Lose),
			strconv.Itoa(e.All.Goals.For),
			strconv.Itoa(e.All.Goals.Against),
			fmt.Sprintf("%+d", e.GoalsDiff),
			strconv.Itoa(e.Points),
			e.Form,
		})
	}
	tw.Render()
	return nil
}

func renderSummaryTable(w io.Writer, sum *standings.Summary) error {
	tw := newListTable(w, []string{"FIELD", "VALUE"})
	rows := [][]string{
		{"League", fmt.Sprintf("%s (%d)", sum.League.Name, sum.League.Season)},
		{"Teams", strconv.Itoa(sum.TotalTeams)},
		{"Matches Played (avg)", fmt.Sprintf("%.1f", sum.MatchesPlayed)},
		{"Goals / Match", fmt.Sprintf("%.1f", sum.GoalsPerMatch)},
	}
	if sum.Leader != nil {
		rows = append(rows, []string{"Leader", fmt.Sprintf("%s (%d pts)", sum.Leader.Team.Name, sum.Leader.Points)})
	}
	for _, e := range sum.RelegationZone {
		rows = append(rows, []string{"Relegation", fmt.Sprintf("%d. %s (%d pts)", e.Rank, e.Team.Name, e.Points)})
	}
	if sum.LastUpdate != "" {
		rows = append(rows, []string{"Last Update", sum.LastUpdate})
	}
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
	return nil
}

func renderTeamsTable(w io.Writer, list []model.TeamWithStanding) error {
	tw := newListTable(w, []string{"#", "TEAM", "P", "W", "D", "L", "GD", "PTS", "FORM"})
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, t := range list {
		tw.Append([]string{
			strconv.Itoa(t.Position),
			t.Name,
			strconv.Itoa(t.Played),
			strconv.Itoa(t.Won),
			strconv.Itoa(t.Drawn),
			strconv.Itoa(t.Lost),
			fmt.Sprintf("%+d", t.GoalsDiff),
			strconv.Itoa(t.Points),
			t.Form,
		})
	}
	tw.Render()
	return nil
}

func renderMatchesTable(w io.Writer, list []model.MatchData) error {
	tw := newListTable(w, []string{"DATE", "HOME", "SCORE", "AWAY", "STATUS", "ROUND"})
	for _, m := range list {
		tw.Append([]string{
			m.Kickoff.Format("2006-01-02 15:04"),
			m.HomeTeam.Name,
			formatScore(m),
			m.AwayTeam.Name,
			string(m.Status),
			m.Round,
		})
	}
	tw.Render()
	return nil
}

func renderPlayerTable(w io.Writer, p *model.PlayerDetails) error {
	tw := newListTable(w, []string{"FIELD", "VALUE"})
	tw.SetColWidth(60)
	tw.SetAutoWrapText(true)

	rows := [][]string{
		{"Name", p.Name},
		{"Age", strconv.Itoa(p.Age)},
		{"Nationality", p.Nationality},
	}
	if p.CurrentTeam != nil {
		rows = append(rows, []string{"Team", p.CurrentTeam.Name})
	}
	if perf := p.Performance; perf != nil {
		rows = append(rows,
			[]string{"Position", perf.Position},
			[]string{"Appearances", strconv.Itoa(perf.Appearances)},
			[]string{"Minutes", strconv.Itoa(perf.Minutes)},
			[]string{"Goals", strconv.Itoa(perf.Goals)},
			[]string{"Assists", strconv.Itoa(perf.Assists)},
		)
		if perf.Rating > 0 {
			rows = append(rows, []string{"Rating", fmt.Sprintf("%.2f", perf.Rating)})
		}
	}
	if d := p.Derived; d != nil {
		rows = append(rows,
			[]string{"Goals / Match", fmt.Sprintf("%.2f", d.GoalsPerMatch)},
			[]string{"Assists / Match", fmt.Sprintf("%.2f", d.AssistsPerMatch)},
			[]string{"Minutes / Match", strconv.Itoa(d.MinutesPerMatch)},
			[]string{"Goal Contribution", strconv.Itoa(d.GoalContribution)},
			[]string{"Efficiency", fmt.Sprintf("%.1f", d.Efficiency)},
		)
	}
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
	return nil
}

func renderPlayersTable(w io.Writer, list []model.PlayerDetails) error {
	tw := newListTable(w, []string{"ID", "NAME", "POS", "APPS", "GOALS", "ASSISTS", "RATING"})
	for _, p := range list {
		pos, apps, goals, assists, rating := "", "0", "0", "0", ""
		if perf := p.Performance; perf != nil {
			pos = perf.Position
			apps = strconv.Itoa(perf.Appearances)
			goals = strconv.Itoa(perf.Goals)
			assists = strconv.Itoa(perf.Assists)
			if perf.Rating > 0 {
				rating = fmt.Sprintf("%.2f", perf.Rating)
			}
		}
		tw.Append([]string{
			strconv.Itoa(p.ID), p.Name, pos, apps, goals, assists, rating,
		})
	}
	tw.Render()
	return nil
}

func renderTransfersTable(w io.Writer, list []model.Transfer) error {
	tw := newListTable(w, []string{"DATE", "FROM", "TO", "TYPE"})
	for _, t := range list {
		tw.Append([]string{t.Date, t.TeamOut.Name, t.TeamIn.Name, t.Type})
	}
	tw.Render()
	return nil
}

func renderSeasonsTable(w io.Writer, list []model.Season) error {
	tw := newListTable(w, []string{"YEAR", "LABEL", "CURRENT", "AVAILABLE"})
	for _, s := range list {
		tw.Append([]string{
			strconv.Itoa(s.Year),
			s.Label,
			boolMark(s.Current),
			boolMark(s.Available),
		})
	}
	tw.Render()
	return nil
}

func renderPlanTable(w io.Writer, plan *model.Plan) error {
	tw := newListTable(w, []string{"FIELD", "VALUE"})
	rows := [][]string{
		{"Plan", string(plan.Type)},
		{"Seasons", fmt.Sprintf("%d–%d", plan.AvailableFrom, plan.AvailableTo)},
	}
	if plan.MaxRequests > 0 {
		rows = append(rows, []string{"Requests", fmt.Sprintf("%d / %d", plan.CurrentRequests, plan.MaxRequests)})
	}
	for _, r := range rows {
		tw.Append(r)
	}
	tw.Render()
	return nil
}

func renderLeaguesTable(w io.Writer, list []model.League) error {
	tw := newListTable(w, []string{"ID", "NAME", "COUNTRY", "DESCRIPTION"})
	tw.SetColWidth(50)
	for _, l := range list {
		tw.Append([]string{
			strconv.Itoa(l.ID), l.Name, l.Country, l.Description,
		})
	}
	tw.Render()
	return nil
}

// ─── CSV / TSV ────────────────────────────────────────────────────────────────

func renderDelimited(w io.Writer, result *model.Result, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	switch result.Kind {
	case model.KindStandings:
		sr, ok := result.Data.(*model.StandingsResponse)
		if !ok {
			return fmt.Errorf("unexpected data type for standings")
		}
		_ = cw.Write([]string{"rank", "team", "played", "win", "draw", "lose", "goals_for", "goals_against", "goals_diff", "points", "form"})
		for _, e := range sr.Standings {
			_ = cw.Write([]string{
				strconv.Itoa(e.Rank), e.Team.Name,
				strconv.Itoa(e.All.Played), strconv.Itoa(e.All.Win),
				strconv.Itoa(e.All.Draw), strconv.Itoa(e.All.Lose),
				strconv.Itoa(e.All.Goals.For), strconv.Itoa(e.All.Goals.Against),
				strconv.Itoa(e.GoalsDiff), strconv.Itoa(e.Points), e.Form,
			})
		}
	case model.KindTeams:
		list, ok := result.Data.([]model.TeamWithStanding)
		if !ok {
			return fmt.Errorf("unexpected data type for teams")
		}
		_ = cw.Write([]string{"position", "team", "played", "won", "drawn", "lost", "goals_diff", "points", "form"})
		for _, t := range list {
			_ = cw.Write([]string{
				strconv.Itoa(t.Position), t.Name,
				strconv.Itoa(t.Played), strconv.Itoa(t.Won),
				strconv.Itoa(t.Drawn), strconv.Itoa(t.Lost),
				strconv.Itoa(t.GoalsDiff), strconv.Itoa(t.Points), t.Form,
			})
		}
	case model.KindMatches:
		list, ok := result.Data.([]model.MatchData)
		if !ok {
			return fmt.Errorf("unexpected data type for matches")
		}
		_ = cw.Write([]string{"id", "kickoff", "status", "home", "away", "score_home", "score_away", "round"})
		for _, m := range list {
			_ = cw.Write([]string{
				strconv.Itoa(m.ID),
				m.Kickoff.Format(time.RFC3339),
				string(m.Status),
				m.HomeTeam.Name,
				m.AwayTeam.Name,
				formatHalf(m.Score.Home),
				formatHalf(m.Score.Away),
				m.Round,
			})
		}
	case model.KindSeasons:
		list, ok := result.Data.([]model.Season)
		if !ok {
			return fmt.Errorf("unexpected data type for seasons")
		}
		_ = cw.Write([]string{"year", "label", "current", "available"})
		for _, s := range list {
			_ = cw.Write([]string{
				strconv.Itoa(s.Year), s.Label,
				strconv.FormatBool(s.Current), strconv.FormatBool(s.Available),
			})
		}
	case model.KindLeagues:
		list, ok := result.Data.([]model.League)
		if !ok {
			return fmt.Errorf("unexpected data type for leagues")
		}
		_ = cw.Write([]string{"id", "name", "country", "country_code"})
		for _, l := range list {
			_ = cw.Write([]string{strconv.Itoa(l.ID), l.Name, l.Country, l.CountryCode})
		}
	default:
		// Fallback: serialize as JSON on a single line
		b, _ := json.Marshal(result.Data)
		_ = cw.Write([]string{string(b)})
	}

	cw.Flush()
	return cw.Error()
}

// ─── Markdown ─────────────────────────────────────────────────────────────────

func renderMarkdown(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindStandings:
		sr, ok := result.Data.(*model.StandingsResponse)
		if !ok {
			return renderJSON(w, result)
		}
		fmt.Fprintf(w, "| # | TEAM | P | GD | PTS |\n|---|------|---|----|-----|\n")
		for _, e := range sr.Standings {
			fmt.Fprintf(w, "| %d | %s | %d | %+d | %d |\n",
				e.Rank, mdEscape(e.Team.Name), e.All.Played, e.GoalsDiff, e.Points)
		}
		return nil
	case model.KindTeams:
		list, ok := result.Data.([]model.TeamWithStanding)
		if !ok {
			return renderJSON(w, result)
		}
		fmt.Fprintf(w, "| # | TEAM | P | GD | PTS |\n|---|------|---|----|-----|\n")
		for _, t := range list {
			fmt.Fprintf(w, "| %d | %s | %d | %+d | %d |\n",
				t.Position, mdEscape(t.Name), t.Played, t.GoalsDiff, t.Points)
		}
		return nil
	case model.KindMatches:
		list, ok := result.Data.([]model.MatchData)
		if !ok {
			return renderJSON(w, result)
		}
		fmt.Fprintf(w, "| DATE | HOME | SCORE | AWAY | STATUS |\n|------|------|-------|------|--------|\n")
		for _, m := range list {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				m.Kickoff.Format("2006-01-02"),
				mdEscape(m.HomeTeam.Name), formatScore(m), mdEscape(m.AwayTeam.Name), m.Status)
		}
		return nil
	default:
		return renderJSON(w, result)
	}
}

// ─── Warnings / Stats Footer ─────────────────────────────────────────────────

// PrintFooter writes warnings and stats to w when verbose mode is on.
func PrintFooter(w io.Writer, result *model.Result, verbose bool) {
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "⚠  %s\n", warn)
	}
	if verbose {
		src := "live"
		if result.Stats.CacheHit {
			src = "cache"
		}
		fmt.Fprintf(w, "\n[%s • %d items • %dms • %s]\n",
			result.GeneratedAt.Format(time.RFC3339),
			result.Stats.Items,
			result.Stats.DurationMs,
			src,
		)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// formatScore renders "2-1" for scored fixtures and "vs" otherwise. A live
// match carries the elapsed minute.
func formatScore(m model.MatchData) string {
	if m.Score.Home == nil || m.Score.Away == nil {
		return "vs"
	}
	s := fmt.Sprintf("%d-%d", *m.Score.Home, *m.Score.Away)
	if m.Status == model.StatusLive && m.Elapsed > 0 {
		s += fmt.Sprintf(" (%d')", m.Elapsed)
	}
	return s
}

func formatHalf(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
