// Package config provides configuration management for the Strikeout Edge
// pipeline.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Model    ModelConfig    `mapstructure:"model" validate:"required"`
	Resolver ResolverConfig `mapstructure:"resolver" validate:"required"`
	Odds     OddsConfig     `mapstructure:"odds" validate:"required"`
	Backfill BackfillConfig `mapstructure:"backfill" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	AWSRegion   string `mapstructure:"aws_region"`
	SecretsName string `mapstructure:"secrets_name"`
}

// DataConfig locates the tabular inputs and outputs exchanged with the
// external scraping and display collaborators.
type DataConfig struct {
	BoxScorePath   string `mapstructure:"box_score_path" validate:"required"`
	IncomingPath   string `mapstructure:"incoming_path"`
	FeaturePath    string `mapstructure:"feature_path" validate:"required"`
	SchedulePath   string `mapstructure:"schedule_path" validate:"required"`
	PredictionsDir string `mapstructure:"predictions_dir" validate:"required"`
}

// ModelConfig locates the trained scorer artifact
type ModelConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ResolverConfig tunes identity resolution
type ResolverConfig struct {
	MinScore        int `mapstructure:"min_score" validate:"required,gte=1,lte=100"`
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// OddsConfig configures the props ledger join
type OddsConfig struct {
	PropsPath string `mapstructure:"props_path" validate:"required"`
	Market    string `mapstructure:"market" validate:"required"`
	APIKey    string `mapstructure:"api_key"`
}

// BackfillConfig represents backfill evaluation configuration
type BackfillConfig struct {
	StartDate  string  `mapstructure:"start_date" validate:"required,datestr"`
	EndDate    string  `mapstructure:"end_date" validate:"required,datestr"`
	FlatLine   float64 `mapstructure:"flat_line" validate:"required,gt=0"`
	OutputPath string  `mapstructure:"output_path" validate:"required"`
}

// DatabaseConfig represents optional Postgres persistence. Skipped
// entirely when Enabled is false; CSV stays the interchange boundary.
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig represents the cron schedule for the daily pipeline
type ScheduleConfig struct {
	DailyRun string `mapstructure:"daily_run" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// BackfillRange parses the configured backfill date range
func (c *Config) BackfillRange() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Backfill.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid backfill start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Backfill.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid backfill end date: %w", err)
	}
	return start, end, nil
}

// ResolverCacheTTL returns the resolver cache TTL as a duration
func (c *Config) ResolverCacheTTL() time.Duration {
	return time.Duration(c.Resolver.CacheTTLSeconds) * time.Second
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
