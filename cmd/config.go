package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmartineau/touchline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage touchline configuration",
	Long:  `Read and write touchline configuration stored in config.json.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a template config.json in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config.json already exists at %s (delete it first to re-initialise)", path)
		}
		tmpl := config.Template()
		if err := config.WriteFile(path, tmpl); err != nil {
			return err
		}
		fmt.Printf("✓ Created %s\n", path)
		fmt.Println("  Edit it to point base_url at your backend.")
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		src := "(not found)"
		if cfg.ConfigPath != "" {
			src = cfg.ConfigPath
		}

		format := cfg.Format
		if globalFlags.Format != "" {
			format = globalFlags.Format
		}

		switch format {
		case "json":
			type configOut struct {
				BaseURL       string  `json:"base_url"`
				Format        string  `json:"default_format"`
				Timeout       string  `json:"timeout"`
				Rate          float64 `json:"rate"`
				Retries       int     `json:"retries"`
				DBPath        string  `json:"db_path"`
				DefaultLeague int     `json:"default_league"`
				DefaultSeason int     `json:"default_season"`
				ConfigFile    string  `json:"config_file"`
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(configOut{
				BaseURL:       cfg.BaseURL,
				Format:        cfg.Format,
				Timeout:       cfg.Timeout.String(),
				Rate:          cfg.Rate,
				Retries:       cfg.Retries,
				DBPath:        cfg.DBPath,
				DefaultLeague: cfg.DefaultLeague,
				DefaultSeason: cfg.DefaultSeason,
				ConfigFile:    src,
			})
		default:
			season := "(recommended)"
			if cfg.DefaultSeason > 0 {
				season = fmt.Sprintf("%d", cfg.DefaultSeason)
			}
			rows := [][]string{
				{"base_url", cfg.BaseURL},
				{"default_format", cfg.Format},
				{"timeout", cfg.Timeout.String()},
				{"rate", fmt.Sprintf("%.1f req/s", cfg.Rate)},
				{"retries", fmt.Sprintf("%d", cfg.Retries)},
				{"db_path", cfg.DBPath},
				{"default_league", fmt.Sprintf("%d", cfg.DefaultLeague)},
				{"default_season", season},
				{"config_file", src},
			}
			printKVTable(rows)
			return nil
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in config.json",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.ToLower(args[0])
		val := args[1]

		// Load existing file or start from template
		var f config.File
		existing, path, err := loadConfigFile()
		if err != nil {
			path = config.DefaultConfigFile
			f = config.Template()
		} else {
			f = *existing
		}

		switch key {
		case "base_url":
			f.BaseURL = val
		case "default_format", "format":
			f.DefaultFormat = val
		case "timeout":
			f.Timeout = val
		case "rate":
			var r float64
			if _, err := fmt.Sscanf(val, "%f", &r); err != nil {
				return fmt.Errorf("rate must be a number")
			}
			f.Rate = r
		case "retries":
			var n int
			if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
				return fmt.Errorf("retries must be an integer")
			}
			f.Retries = n
		case "db_path":
			f.DBPath = val
		case "default_league", "league":
			var n int
			if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
				return fmt.Errorf("default_league must be an integer")
			}
			f.DefaultLeague = n
		case "default_season", "season":
			var n int
			if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
				return fmt.Errorf("default_season must be an integer")
			}
			f.DefaultSeason = n
		default:
			return fmt.Errorf("unknown config key: %q\n\nValid keys: base_url, default_format, timeout, rate, retries, db_path, default_league, default_season", key)
		}

		if err := config.WriteFile(path, f); err != nil {
			return err
		}
		fmt.Printf("✓ Set %s in %s\n", key, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

// loadConfigFile reads config.json from cwd; used by configSetCmd.
func loadConfigFile() (*config.File, string, error) {
	path := config.DefaultConfigFile
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var f config.File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", err
	}
	return &f, path, nil
}

// printKVTable renders a two-column key/value table to stdout using aligned columns.
func printKVTable(rows [][]string) {
	maxKey := 0
	for _, r := range rows {
		if len(r[0]) > maxKey {
			maxKey = len(r[0])
		}
	}
	for _, r := range rows {
		padding := strings.Repeat(" ", maxKey-len(r[0]))
		fmt.Printf("  %s%s  %s\n", r[0], padding, r[1])
	}
}
