package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "strikeout-edge",
			Environment: "development",
			LogLevel:    "info",
		},
		Data: DataConfig{
			BoxScorePath:   "data/master_box_scores.csv",
			FeaturePath:    "data/features.csv",
			SchedulePath:   "data/schedule.csv",
			PredictionsDir: "data/predictions",
		},
		Model: ModelConfig{Path: "models/linear.json"},
		Resolver: ResolverConfig{
			MinScore:        80,
			CacheTTLSeconds: 3600,
		},
		Odds: OddsConfig{
			PropsPath: "data/props.csv",
			Market:    "pitcher_strikeouts",
		},
		Backfill: BackfillConfig{
			StartDate:  "2024-04-01",
			EndDate:    "2024-09-30",
			FlatLine:   4.5,
			OutputPath: "data/backfill.csv",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
		Schedule: ScheduleConfig{DailyRun: "0 11 * * *"},
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_ENVIRONMENT", "staging")
	t.Setenv("TEST_ODDS_API_KEY", "secret-key")

	path := writeConfigFile(t, `
app:
  name: strikeout-edge
  environment: ${TEST_ENVIRONMENT}
  log_level: debug
data:
  box_score_path: data/box.csv
  feature_path: data/features.csv
  schedule_path: data/schedule.csv
  predictions_dir: data/predictions
model:
  path: models/linear.json
resolver:
  min_score: 85
odds:
  props_path: data/props.csv
  market: pitcher_strikeouts
  api_key: ${TEST_ODDS_API_KEY}
backfill:
  start_date: "2024-04-01"
  end_date: "2024-09-30"
  flat_line: 4.5
  output_path: data/backfill.csv
metrics:
  port: 9090
  path: /metrics
schedule:
  daily_run: "0 11 * * *"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "secret-key", cfg.Odds.APIKey)
	assert.Equal(t, 85, cfg.Resolver.MinScore)
	assert.Equal(t, "data/predictions", cfg.Data.PredictionsDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "strikeout-edge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 80, cfg.Resolver.MinScore)
	assert.Equal(t, "pitcher_strikeouts", cfg.Odds.Market)
	assert.Equal(t, 4.5, cfg.Backfill.FlatLine)
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "0 11 * * *", cfg.Schedule.DailyRun)
}

func TestLoadWithDefaultsFileOverrides(t *testing.T) {
	path := writeConfigFile(t, `
resolver:
  min_score: 90
backfill:
  flat_line: 5.5
`)

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Resolver.MinScore)
	assert.Equal(t, 5.5, cfg.Backfill.FlatLine)
	assert.Equal(t, 9090, cfg.Metrics.Port, "untouched keys keep defaults")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }},
		{"bad log level", func(c *Config) { c.App.LogLevel = "verbose" }},
		{"bad start date", func(c *Config) { c.Backfill.StartDate = "04/01/2024" }},
		{"min score over 100", func(c *Config) { c.Resolver.MinScore = 101 }},
		{"missing model path", func(c *Config) { c.Model.Path = "" }},
		{"database enabled without host", func(c *Config) {
			c.Database.Enabled = true
			c.Database.Name = "edge"
			c.Database.User = "edge"
		}},
		{"end date precedes start", func(c *Config) {
			c.Backfill.StartDate = "2024-09-30"
			c.Backfill.EndDate = "2024-04-01"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestBackfillRange(t *testing.T) {
	cfg := validConfig()
	start, end, err := cfg.BackfillRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC), end)

	cfg.Backfill.EndDate = "not-a-date"
	_, _, err = cfg.BackfillRange()
	assert.Error(t, err)
}

func TestResolverCacheTTL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, time.Hour, cfg.ResolverCacheTTL())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "strikeout_edge",
		User:     "edge",
		Password: "pw",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"postgres://edge:pw@localhost:5432/strikeout_edge?sslmode=disable",
		cfg.GetDatabaseDSN())
}
