// config/config.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config loads the settings for the procedure analysis tools
// from a YAML file, a .env file, and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/mmp/ifpd/analysis"
	"github.com/mmp/ifpd/terrain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "ifpd.yaml"

type Config struct {
	Elevation ElevationConfig `yaml:"elevation"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Log       LogConfig       `yaml:"log"`
}

type ElevationConfig struct {
	URL         string        `yaml:"url"`
	Offline     bool          `yaml:"offline"` // only use synthetic terrain
	BatchSize   int           `yaml:"batch_size"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	CacheSize   int           `yaml:"cache_size"` // 0: no cache
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	CacheFile   string        `yaml:"cache_file"`
}

type AnalysisConfig struct {
	SamplesPerSegment int `yaml:"samples_per_segment"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Load reads the configuration from path; if path is empty, the file
// named by $IFPD_CONFIG is used, or ifpd.yaml if that isn't set. A
// missing configuration file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("IFPD_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies environment overrides and
// defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if u := os.Getenv("IFPD_ELEVATION_URL"); u != "" {
		cfg.Elevation.URL = u
	}
	if l := os.Getenv("IFPD_LOG_LEVEL"); l != "" {
		cfg.Log.Level = l
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	d := terrain.DefaultOpenElevationConfig
	e := &c.Elevation
	if e.URL == "" {
		e.URL = d.URL
	}
	if e.BatchSize == 0 {
		e.BatchSize = d.BatchSize
	}
	if e.MaxAttempts == 0 {
		e.MaxAttempts = d.MaxAttempts
	}
	if e.RetryDelay == 0 {
		e.RetryDelay = d.RetryDelay
	}
	if e.Timeout == 0 {
		e.Timeout = d.Timeout
	}
	if e.Concurrency == 0 {
		e.Concurrency = d.Concurrency
	}

	if c.Analysis.SamplesPerSegment == 0 {
		c.Analysis.SamplesPerSegment = analysis.DefaultSamplesPerSegment
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	e := c.Elevation
	if u, err := url.Parse(e.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("elevation.url %q must be an http or https URL (set IFPD_ELEVATION_URL or elevation.url)", e.URL)
	}
	if e.BatchSize < 1 {
		return fmt.Errorf("elevation.batch_size must be positive")
	}
	if e.MaxAttempts < 1 {
		return fmt.Errorf("elevation.max_attempts must be positive")
	}
	if e.RetryDelay < 0 || e.Timeout < 0 || e.CacheTTL < 0 {
		return fmt.Errorf("elevation durations must not be negative")
	}
	if e.Concurrency < 1 {
		return fmt.Errorf("elevation.concurrency must be positive")
	}
	if e.CacheSize < 0 {
		return fmt.Errorf("elevation.cache_size must not be negative")
	}
	if s := c.Analysis.SamplesPerSegment; s < 1 || s > 1000 {
		return fmt.Errorf("analysis.samples_per_segment %d must be between 1 and 1000", s)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error (set IFPD_LOG_LEVEL or log.level)", c.Log.Level)
	}
	return nil
}

// OpenElevationConfig returns the settings for the elevation service
// client.
func (e ElevationConfig) OpenElevationConfig() terrain.OpenElevationConfig {
	return terrain.OpenElevationConfig{
		URL:         e.URL,
		BatchSize:   e.BatchSize,
		MaxAttempts: e.MaxAttempts,
		RetryDelay:  e.RetryDelay,
		Timeout:     e.Timeout,
		Concurrency: e.Concurrency,
	}
}

// NewCache returns the elevation cache described by the configuration,
// or nil if caching is disabled. If a cache file is configured and
// exists, its entries are loaded.
func (e ElevationConfig) NewCache() (*terrain.Cache, error) {
	if e.CacheSize == 0 && e.CacheFile == "" {
		return nil, nil
	}
	c := terrain.NewCache(e.CacheSize, e.CacheTTL)
	if e.CacheFile != "" {
		if err := c.LoadFile(e.CacheFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("%s: %w", e.CacheFile, err)
		}
	}
	return c, nil
}
