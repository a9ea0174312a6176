package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries pipeline settings. Zero values fall back to defaults, so
// a missing or partial file still yields a runnable configuration.
type Config struct {
	OutputDir           string `yaml:"output_dir"`
	ProgressDBPath      string `yaml:"progress_db_path"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	ChunkWords          int    `yaml:"chunk_words"`
	OverlapWords        int    `yaml:"overlap_words"`
	Workers             int    `yaml:"workers"`
	UseBrowser          bool   `yaml:"use_browser"`
	PubMedBaseURL       string `yaml:"pubmed_base_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:           "out",
		FetchTimeoutSeconds: 30,
		ChunkWords:          4000,
		OverlapWords:        1000,
		Workers:             1,
		UseBrowser:          true,
	}
}

// Load reads an optional YAML file over the defaults and then applies
// LITMINE_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}
	if cfg.ProgressDBPath == "" {
		cfg.ProgressDBPath = cfg.OutputDir + "/progress.db"
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = 30
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LITMINE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("LITMINE_PROGRESS_DB"); v != "" {
		cfg.ProgressDBPath = v
	}
	if v := os.Getenv("LITMINE_PUBMED_BASE_URL"); v != "" {
		cfg.PubMedBaseURL = v
	}
	if v, ok := getIntEnv("LITMINE_FETCH_TIMEOUT_SECONDS"); ok {
		cfg.FetchTimeoutSeconds = v
	}
	if v, ok := getIntEnv("LITMINE_WORKERS"); ok {
		cfg.Workers = v
	}
	if v := os.Getenv("LITMINE_USE_BROWSER"); v != "" {
		cfg.UseBrowser = v == "1" || v == "true"
	}
}

func getIntEnv(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
