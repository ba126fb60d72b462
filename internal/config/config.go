// Package config defines the analyzer configuration and its loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import "regexp"

// Asset driver names accepted by AssetDriver.
const (
	DriverFilesystem = "fs"
	DriverS3         = "s3"
	DriverMemory     = "memory"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// BackgroundPath is the asset key of the optional background image.
	BackgroundPath string `koanf:"background_path"`

	// AssetDriver selects where the background comes from: fs, s3 or memory.
	AssetDriver string `koanf:"asset_driver"`

	// AssetRoot is the directory the fs driver resolves keys against.
	AssetRoot string `koanf:"asset_root"`

	// S3 settings, used when AssetDriver is s3.
	S3Bucket    string `koanf:"s3_bucket"`
	S3Region    string `koanf:"s3_region"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3PathStyle bool   `koanf:"s3_path_style"`
	S3Prefix    string `koanf:"s3_prefix"`

	// ChartWidth and ChartHeight size the trend chart in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsEnabled turns metric recording off without removing /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8501",
		BackgroundPath:   "background.png",
		AssetDriver:      DriverFilesystem,
		AssetRoot:        ".",
		S3Region:         "us-east-1",
		ChartWidth:       1024,
		ChartHeight:      480,
		MetricsNamespace: "wellguard",
		MetricsEnabled:   true,
	}
}
