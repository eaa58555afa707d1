package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Export       ExportConfig    `mapstructure:"export"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	EnableWAL  bool   `mapstructure:"enable_wal"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// ExportConfig contains annotation export settings
type ExportConfig struct {
	DefaultFormat      string `mapstructure:"default_format"`
	PointCueDurationMs int    `mapstructure:"point_cue_duration_ms"`
	OutputDir          string `mapstructure:"output_dir"`
}

// RateLimitConfig contains per-client API rate limits
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}
