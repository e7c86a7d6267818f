package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the local database",
	Long: `Commands for inspecting the local bolt database holding league
records and preferences.`,
}

// ─── store stats ──────────────────────────────────────────────────────────────

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-bucket row counts and sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		stats, err := deps.Store.Stats()
		if err != nil {
			return fmt.Errorf("reading store: %w", err)
		}

		printSimpleTable(cmd.OutOrStdout(), []string{"BUCKET", "ENTRIES", "BYTES"}, func(add func(...string)) {
			for _, s := range stats {
				add(s.Name, fmt.Sprintf("%d", s.Count), fmt.Sprintf("%d", s.Bytes))
			}
		})
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", deps.Store.Path())
		return nil
	},
}

// ─── store clear ──────────────────────────────────────────────────────────────

var storeClearCmd = &cobra.Command{
	Use:   "clear [BUCKET]",
	Short: "Delete entries from one bucket, or all of them",
	Example: `  touchline store clear leagues
  touchline store clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		if len(args) == 1 {
			name := args[0]
			valid := false
			for _, b := range store.AllBuckets {
				if b == name {
					valid = true
				}
			}
			if !valid {
				return fmt.Errorf("unknown bucket %q (valid: %v)", name, store.AllBuckets)
			}
			if err := deps.Store.ClearBucket(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared bucket %s\n", name)
			return nil
		}

		if err := deps.Store.ClearAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared all buckets")
		return nil
	},
}

// ─── store path ───────────────────────────────────────────────────────────────

var storePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the database file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), deps.Config.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeStatsCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storePathCmd)
}
