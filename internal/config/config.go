package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Server struct {
	Port              string `json:"port" yaml:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec" yaml:"request_timeout_sec"`
}

type Upstream struct {
	// Scheme and host only; the clients add the paths.
	SearchBaseURL string `json:"search_base_url" yaml:"search_base_url"`
	QuoteBaseURL  string `json:"quote_base_url" yaml:"quote_base_url"`
	UserAgent     string `json:"user_agent" yaml:"user_agent"`
}

// Store selects where the recents list is persisted.
type Store struct {
	Backend  string `json:"backend" yaml:"backend"` // bolt, redis, memory
	Path     string `json:"path" yaml:"path"`
	RedisURL string `json:"redis_url" yaml:"redis_url"`
}

type Log struct {
	Level         string `json:"level" yaml:"level"`
	Format        string `json:"format" yaml:"format"` // json, pretty
	FileEnabled   bool   `json:"file_enabled" yaml:"file_enabled"`
	Dir           string `json:"dir" yaml:"dir"`
	RotationSize  int    `json:"rotation_size_mb" yaml:"rotation_size_mb"`
	RetentionDays int    `json:"retention_days" yaml:"retention_days"`
}

type Enrich struct {
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`
}

type Config struct {
	Server   Server   `json:"server" yaml:"server"`
	Upstream Upstream `json:"upstream" yaml:"upstream"`
	Store    Store    `json:"store" yaml:"store"`
	Log      Log      `json:"log" yaml:"log"`
	Enrich   Enrich   `json:"enrich" yaml:"enrich"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10},
		Upstream: Upstream{
			SearchBaseURL: "https://query1.finance.yahoo.com",
			QuoteBaseURL:  "https://quote-feed.zacks.com",
		},
		Store: Store{Backend: "bolt", Path: filepath.Join("data", "tickerlookup.db")},
		Log: Log{
			Level:         "info",
			Format:        "pretty",
			Dir:           "logs",
			RotationSize:  50,
			RetentionDays: 14,
		},
		Enrich: Enrich{MaxConcurrency: 4},
	}
}

const defaultPath = "config.json"

// Load reads config from path. If path is empty, config.json in the working
// directory is used when present; a path given explicitly must exist. Files
// ending in .yml or .yaml are YAML, anything else is JSON. Environment
// variables override the file.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config: %w", err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Unmarshal(b, cfg)
	default:
		return json.Unmarshal(b, cfg)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 {
		cfg.Server.RequestTimeoutSec = x
	}
	if v := os.Getenv("SEARCH_ENDPOINT"); v != "" {
		cfg.Upstream.SearchBaseURL = v
	}
	if v := os.Getenv("QUOTE_ENDPOINT"); v != "" {
		cfg.Upstream.QuoteBaseURL = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.Upstream.UserAgent = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Store.RedisURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FILE_ENABLED"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.Log.FileEnabled = true
		case "0", "false", "no", "n":
			cfg.Log.FileEnabled = false
		}
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if x, ok := envInt("ENRICH_MAX_CONCURRENCY"); ok && x > 0 {
		cfg.Enrich.MaxConcurrency = x
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	var x int
	if _, err := fmt.Sscanf(v, "%d", &x); err != nil {
		return 0, false
	}
	return x, true
}
