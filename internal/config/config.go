// Package config handles loading and resolving touchline configuration.
// Resolution order (first non-empty value wins):
//  1. CLI flags
//  2. Environment variables (TOUCHLINE_BASE_URL, TOUCHLINE_DB_PATH)
//  3. config.json in the current working directory
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultConfigFile = "config.json"
	DefaultFormat     = "table"
	DefaultBaseURL    = "http://localhost:8000/api"
	DefaultTimeout    = 10 * time.Second
	DefaultRate       = 5.0
	DefaultLeague     = 61 // Ligue 1
	EnvBaseURL        = "TOUCHLINE_BASE_URL"
	EnvDBPath         = "TOUCHLINE_DB_PATH"
)

// File is the on-disk representation of config.json.
type File struct {
	BaseURL       string  `json:"base_url"`
	DefaultFormat string  `json:"default_format"`
	Timeout       string  `json:"timeout"`
	Rate          float64 `json:"rate"`
	Retries       int     `json:"retries"`
	DBPath        string  `json:"db_path"`
	DefaultLeague int     `json:"default_league"`
	DefaultSeason int     `json:"default_season"`
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	BaseURL       string
	Format        string
	Timeout       time.Duration
	Rate          float64
	Retries       int
	DBPath        string
	DefaultLeague int
	DefaultSeason int // 0 = resolve via season recommendation
	ConfigPath    string

	// Runtime overrides set from CLI flags after Load()
	Quiet   bool
	Verbose bool
	Debug   bool
}

// Load resolves configuration from file and environment. Flag overrides are
// applied by the command layer afterwards.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:       DefaultBaseURL,
		Format:        DefaultFormat,
		Timeout:       DefaultTimeout,
		Rate:          DefaultRate,
		DefaultLeague: DefaultLeague,
	}

	// Layer 1: config.json (lowest priority)
	if f, path, err := loadFile(); err == nil {
		applyFile(cfg, f, path)
	}

	// Layer 2: environment variables
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}

	// Default DB path if still unset
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.DBPath = filepath.Join(home, ".touchline", "touchline.db")
		}
	}

	return cfg, nil
}

// Validate returns an error if the resolved configuration is unusable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: expected http(s)://host[:port]/path", c.BaseURL)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", c.Retries)
	}
	return nil
}

// loadFile attempts to read config.json from the current working directory.
func loadFile() (*File, string, error) {
	path, err := filepath.Abs(DefaultConfigFile)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("config.json not found at %s", path)
		}
		return nil, "", fmt.Errorf("reading config.json: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parsing config.json: %w", err)
	}
	return &f, path, nil
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.DefaultFormat != "" {
		cfg.Format = f.DefaultFormat
	}
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if f.Rate > 0 {
		cfg.Rate = f.Rate
	}
	if f.Retries > 0 {
		cfg.Retries = f.Retries
	}
	if f.DBPath != "" {
		cfg.DBPath = f.DBPath
	}
	if f.DefaultLeague > 0 {
		cfg.DefaultLeague = f.DefaultLeague
	}
	if f.DefaultSeason > 0 {
		cfg.DefaultSeason = f.DefaultSeason
	}
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial config.json via `touchline config init`.
func Template() File {
	return File{
		BaseURL:       DefaultBaseURL,
		DefaultFormat: DefaultFormat,
		Timeout:       "10s",
		Rate:          DefaultRate,
		Retries:       0,
		DefaultLeague: DefaultLeague,
	}
}

// WriteFile serialises a File to the given path.
func WriteFile(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
