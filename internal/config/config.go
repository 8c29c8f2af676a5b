package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Schedule struct {
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Distribution struct {
		DefaultWeeks     int `yaml:"default_weeks"`
		ManualCutoffWeek int `yaml:"manual_cutoff_week"`
		FairnessPenalty  int `yaml:"fairness_penalty"`
		PlanTTLHours     int `yaml:"plan_ttl_hours"`
	} `yaml:"distribution"`
	Tables Tables `yaml:"tables"`
	Proxy  string `yaml:"proxy"`
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Address = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("PLAN_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Distribution.DefaultWeeks = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/raidledger.db"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Schedule.WeeklyCron == "" {
		// Tuesday 17:05, just after the weekly raid reset.
		cfg.Schedule.WeeklyCron = "0 5 17 * * 2"
	}
	if cfg.Distribution.DefaultWeeks == 0 {
		cfg.Distribution.DefaultWeeks = 12
	}
	if cfg.Distribution.ManualCutoffWeek == 0 {
		cfg.Distribution.ManualCutoffWeek = 8
	}
	if cfg.Distribution.FairnessPenalty == 0 {
		cfg.Distribution.FairnessPenalty = 2
	}
	if cfg.Distribution.PlanTTLHours == 0 {
		cfg.Distribution.PlanTTLHours = 24
	}
	cfg.Tables.applyDefaults()

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Distribution.DefaultWeeks <= 0 {
		return fmt.Errorf("distribution.default_weeks must be positive")
	}
	if c.Distribution.ManualCutoffWeek < 0 {
		return fmt.Errorf("distribution.manual_cutoff_week must not be negative")
	}
	if c.Distribution.FairnessPenalty <= 0 {
		return fmt.Errorf("distribution.fairness_penalty must be positive")
	}
	return c.Tables.Validate()
}

// PlanTTL returns the cached weekly plan lifetime as a duration.
func (c *Config) PlanTTL() time.Duration {
	return time.Duration(c.Distribution.PlanTTLHours) * time.Hour
}
