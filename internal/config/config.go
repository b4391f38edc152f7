package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL      string  `yaml:"base_url"`
		APIKey       string  `yaml:"api_key"`
		TimeoutSec   int     `yaml:"timeout_sec"`
		RateLimitRPS float64 `yaml:"rate_limit_rps"`
	} `yaml:"data_source"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
		TTLHours   int    `yaml:"ttl_hours"`
	} `yaml:"cache"`
	Model struct {
		Coefficient    float64 `yaml:"coefficient"`
		Exponent       float64 `yaml:"exponent"`
		StdDev         float64 `yaml:"std_dev"`
		ChartMaxPoints int     `yaml:"chart_max_points"`
	} `yaml:"model"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		RunOnStart  bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("CACHE_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLHours = n
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "1" || v == "true"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8090"
	}
	if cfg.DataSource.TimeoutSec == 0 {
		cfg.DataSource.TimeoutSec = 30
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/sound_treasury.db"
	}
	if cfg.Cache.TTLHours == 0 {
		cfg.Cache.TTLHours = 24
	}
	if cfg.Model.Coefficient == 0 {
		cfg.Model.Coefficient = 1.0117e-17
	}
	if cfg.Model.Exponent == 0 {
		cfg.Model.Exponent = 5.82
	}
	if cfg.Model.StdDev == 0 {
		cfg.Model.StdDev = 0.6
	}
	if cfg.Model.ChartMaxPoints == 0 {
		cfg.Model.ChartMaxPoints = 800
	}
	if cfg.Schedule.RefreshCron == "" {
		// Every hour on the hour
		cfg.Schedule.RefreshCron = "0 0 * * * *"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 20
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 5
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if c.Model.Coefficient <= 0 {
		return fmt.Errorf("model.coefficient must be positive")
	}
	if c.Model.Exponent <= 0 {
		return fmt.Errorf("model.exponent must be positive")
	}
	if c.Model.StdDev <= 0 {
		return fmt.Errorf("model.std_dev must be positive")
	}
	if c.Model.ChartMaxPoints < 2 {
		return fmt.Errorf("model.chart_max_points must be at least 2")
	}
	return nil
}
