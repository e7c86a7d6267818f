package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pmartineau/touchline/internal/app"
	"github.com/pmartineau/touchline/internal/model"
	"github.com/pmartineau/touchline/internal/render"
)

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// resolveLeague returns the effective league ID: --league flag, then config.
func resolveLeague(deps *app.Deps) int {
	return deps.Config.DefaultLeague
}

// resolveSeason returns the effective season start year. Priority: the
// --season flag / config, then the persisted preference (when a store is
// available), then the plan-aware recommendation. Never fails: the
// recommendation degrades to the free plan when the backend is unreachable.
func resolveSeason(ctx context.Context, deps *app.Deps) int {
	if deps.Config.DefaultSeason > 0 {
		return deps.Config.DefaultSeason
	}
	// Best effort: the preference lives in the local store.
	if deps.Store == nil {
		_ = deps.RequireStore()
	}
	if deps.Store != nil {
		if year, ok, err := deps.Store.PreferredSeason(); err == nil && ok {
			if deps.Seasons.IsAvailable(ctx, year) {
				return year
			}
		}
	}
	return deps.Seasons.Recommended(ctx).Year
}

// parseIntID parses a string as a positive integer ID, with a descriptive label for errors.
func parseIntID(s, label string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: expected a positive integer", label, s)
	}
	return id, nil
}

// newResult wraps a payload in the standard Result envelope.
func newResult(kind, command string, data interface{}, items int, start time.Time) *model.Result {
	return &model.Result{
		Kind:        kind,
		GeneratedAt: time.Now(),
		Command:     command,
		Data:        data,
		Stats: model.ResultStats{
			DurationMs: time.Since(start).Milliseconds(),
			Items:      items,
		},
	}
}

// emit renders a result honoring --out / --format and prints the verbose footer.
func emit(cmd cmdOut, deps *app.Deps, result *model.Result) error {
	format := resolveFormat(deps.Config.Format)
	if err := render.RenderTo(globalFlags.Out, result, format); err != nil {
		return err
	}
	if !deps.Config.Quiet {
		render.PrintFooter(cmd.OutOrStdout(), result, deps.Config.Verbose)
	}
	return nil
}

// cmdOut is the slice of *cobra.Command the emit helper needs.
type cmdOut interface {
	OutOrStdout() io.Writer
}

// printSimpleTable renders a simple table with headers using tablewriter.
// The add callback is called with row values as variadic strings.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}
