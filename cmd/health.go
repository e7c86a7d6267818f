package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/model"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend liveness",
	Example: `  touchline health
  touchline health --base-url http://staging:8000/api`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.Config.Validate(); err != nil {
			return err
		}
		defer deps.Close()

		start := time.Now()
		hs, err := deps.Client.Health(cmd.Context())
		if err != nil {
			return err
		}
		result := newResult(model.KindHealth, "health", hs, 1, start)
		return emit(cmd, deps, result)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
