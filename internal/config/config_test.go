package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("/tmp/sprout-data")
	cfg.Defaults.RolloverEnabled = true
	cfg.Display.CurrencySymbol = "€"

	path := filepath.Join(t.TempDir(), "sprout.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Storage.DatabasePath, got.Storage.DatabasePath)
	assert.Equal(t, cfg.Storage.DataDir, got.Storage.DataDir)
	assert.Equal(t, cfg.Defaults.DailyLimit, got.Defaults.DailyLimit)
	assert.True(t, got.Defaults.RolloverEnabled)
	assert.Equal(t, "€", got.Display.CurrencySymbol)
	assert.Equal(t, cfg.Display.HeatmapDays, got.Display.HeatmapDays)
}

func TestDefaults(t *testing.T) {
	cfg := Default("/home/me/.sprout")

	assert.Equal(t, "/home/me/.sprout/sprout.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "/home/me/.sprout", cfg.Storage.DataDir)
	assert.Equal(t, "30.00", cfg.Defaults.DailyLimit)
	assert.True(t, cfg.Defaults.RequireCategories)
	assert.False(t, cfg.Defaults.RolloverEnabled)
	assert.Equal(t, "$", cfg.Display.CurrencySymbol)
	assert.Equal(t, 28, cfg.Display.HeatmapDays)
	assert.Equal(t, 7, cfg.Display.HistoryDays)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("/tmp/data")
	path := filepath.Join(t.TempDir(), "sprout.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "database_path: /tmp/data/sprout.db")
	assert.Contains(t, contents, "daily_limit: \"30.00\"")
	assert.Contains(t, contents, "require_categories: true")
	assert.Contains(t, contents, "heatmap_days: 28")
}
