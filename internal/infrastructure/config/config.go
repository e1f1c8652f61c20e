package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the HTTP API and snapshot loading.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Data    DataConfig    `yaml:"data"`
	Refresh RefreshConfig `yaml:"refresh"`
	Search  SearchConfig  `yaml:"search"`
}

type HTTPConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

type DataConfig struct {
	Dir         string `yaml:"dir"`
	PriceMonths int    `yaml:"price_months"`
}

type RefreshConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
}

type SearchConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit"`
}

// LoadFromFile loads settings from a YAML config file. A missing file is
// not an error; defaults and environment variables still apply.
func LoadFromFile(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.StaticDir == "" {
		cfg.HTTP.StaticDir = "web"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.PriceMonths == 0 {
		cfg.Data.PriceMonths = 3
	}
	if cfg.Refresh.Cron == "" {
		// Weekday evenings, after the daily crawl output lands.
		cfg.Refresh.Cron = "0 19 * * 1-5"
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = 20
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("STATIC_DIR"); val != "" {
		cfg.HTTP.StaticDir = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		cfg.Data.Dir = val
	}
	if val := os.Getenv("PRICE_MONTHS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Data.PriceMonths = n
		}
	}
	if val := os.Getenv("REFRESH_ENABLED"); val != "" {
		cfg.Refresh.Enabled = (val == "true")
	}
	if val := os.Getenv("REFRESH_CRON"); val != "" {
		cfg.Refresh.Cron = val
	}
	if val := os.Getenv("SEARCH_ENABLED"); val != "" {
		cfg.Search.Enabled = (val == "true")
	}
	if val := os.Getenv("SEARCH_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.Search.Limit = n
		}
	}
	return cfg
}
