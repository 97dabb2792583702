package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DataFile is the CSV or XLSX dataset loaded at startup.
	DataFile string

	SunburstWidth  int
	SunburstHeight int
	ChartWidth     int
	ChartHeight    int

	// CacheSize bounds the recompute memo. Zero disables it.
	CacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sunburstWidth, err := parsePositiveInt("SUNBURST_WIDTH", 600)
	if err != nil {
		return nil, err
	}
	sunburstHeight, err := parsePositiveInt("SUNBURST_HEIGHT", 600)
	if err != nil {
		return nil, err
	}
	chartWidth, err := parsePositiveInt("CHART_WIDTH", 800)
	if err != nil {
		return nil, err
	}
	chartHeight, err := parsePositiveInt("CHART_HEIGHT", 480)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DataFile:        sharedcfg.EnvOrDefault("DATA_FILE", "unemployment.csv"),
		SunburstWidth:   sunburstWidth,
		SunburstHeight:  sunburstHeight,
		ChartWidth:      chartWidth,
		ChartHeight:     chartHeight,
		CacheSize:       cacheSize,
	}

	if cfg.DataFile == "" {
		return nil, errors.New("DATA_FILE is required")
	}

	return cfg, nil
}

func parsePositiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", name)
	}
	return n, nil
}

func parseCacheSize() (int, error) {
	s := os.Getenv("DASHBOARD_CACHE_SIZE")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid DASHBOARD_CACHE_SIZE: must be zero or a positive integer")
	}
	return n, nil
}
