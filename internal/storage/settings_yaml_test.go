package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingclock/internal/core/model"
	"livingclock/internal/platform"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDir(t *testing.T) {
	dir, err := Dir("/tmp/custom")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir, err = Dir("")
	require.NoError(t, err)
	configDir, err := platform.ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, AppDirName), dir)
}

func TestSettingsMissingFileWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	file := NewSettingsFile(dir, quietLogger())

	settings, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
	assert.FileExists(t, file.Path())

	again, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, again)
}

func TestSettingsCorruptFileSelfHeals(t *testing.T) {
	dir := t.TempDir()
	file := NewSettingsFile(dir, quietLogger())
	require.NoError(t, os.WriteFile(file.Path(), []byte("theme_name: [unterminated"), 0o644))

	settings, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	rawData, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	assert.Contains(t, string(rawData), "theme_name: Purple")
}

func TestSettingsRoundTrip(t *testing.T) {
	file := NewSettingsFile(t.TempDir(), quietLogger())

	settings := model.DefaultSettings()
	settings.ThemeName = "Orange"
	settings.DigitColorName = "Gray"
	settings.Background = model.BackgroundCustom
	settings.CustomBackgroundPath = "/home/me/wall.png"
	settings.Weather.APIKey = "k"
	settings.Weather.City = "Lisbon"
	settings.Weather.Units = model.UnitsImperial
	settings.Pomodoro.FocusMinutes = 50
	settings.Pomodoro.AutoAdvance = false
	settings.Sound.GainPercent = 0
	settings.Sound.Enabled = false
	settings.TaskBackend = model.TaskBackendSQLite

	require.NoError(t, file.Save(settings))
	loaded, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSettingsPartialFileKeepsDefaults(t *testing.T) {
	file := NewSettingsFile(t.TempDir(), quietLogger())
	require.NoError(t, os.WriteFile(file.Path(), []byte("theme_name: Cyan\npomodoro:\n  focus_minutes: 40\n"), 0o644))

	settings, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, "Cyan", settings.ThemeName)
	assert.Equal(t, 40, settings.Pomodoro.FocusMinutes)
	assert.Equal(t, 5, settings.Pomodoro.ShortBreakMinutes)
	assert.Equal(t, 100, settings.Sound.GainPercent)
	assert.Equal(t, "Dhaka", settings.Weather.City)
}

func TestSettingsClampedOnLoad(t *testing.T) {
	file := NewSettingsFile(t.TempDir(), quietLogger())
	content := `
theme_name: Neon
background: bg9
pomodoro:
  focus_minutes: 0
  short_break_minutes: 500
  long_break_minutes: 15
  sessions_before_long: 42
sound:
  gain_percent: 350
weather:
  units: kelvin
  refresh_minutes: 0
`
	require.NoError(t, os.WriteFile(file.Path(), []byte(content), 0o644))

	settings, err := file.Load()
	require.NoError(t, err)
	assert.Equal(t, "Purple", settings.ThemeName)
	assert.Equal(t, model.BackgroundDefault, settings.Background)
	assert.Equal(t, 1, settings.Pomodoro.FocusMinutes)
	assert.Equal(t, 180, settings.Pomodoro.ShortBreakMinutes)
	assert.Equal(t, 10, settings.Pomodoro.SessionsBeforeLong)
	assert.Equal(t, 200, settings.Sound.GainPercent)
	assert.Equal(t, model.UnitsMetric, settings.Weather.Units)
	assert.Equal(t, 1, settings.Weather.RefreshMinutes)

	rawData, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	assert.Contains(t, string(rawData), "gain_percent: 200")
}

func TestSettingsLegacyVolumeMigrated(t *testing.T) {
	tests := []struct {
		name    string
		content string
		gain    int
	}{
		{"half volume", "sound:\n  enabled: true\n  volume: 0.5\n", 50},
		{"full volume", "sound:\n  enabled: true\n  volume: 1.0\n", 100},
		{"gain wins over volume", "sound:\n  enabled: true\n  volume: 0.2\n  gain_percent: 150\n", 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := NewSettingsFile(t.TempDir(), quietLogger())
			require.NoError(t, os.WriteFile(file.Path(), []byte(tt.content), 0o644))

			settings, err := file.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.gain, settings.Sound.GainPercent)

			rawData, err := os.ReadFile(file.Path())
			require.NoError(t, err)
			if tt.gain != 150 {
				assert.NotContains(t, string(rawData), "volume:")
			}
		})
	}
}
