package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"livingclock/internal/core/model"
	"livingclock/internal/platform"
)

const (
	// AppDirName is the directory created under the user config dir.
	AppDirName       = "LivingClock"
	settingsFileName = "settings.yaml"
)

type yamlSettings struct {
	Background           string       `yaml:"background"`
	ThemeName            string       `yaml:"theme_name"`
	DigitColorName       string       `yaml:"digit_color_name"`
	CustomBackgroundPath string       `yaml:"custom_background_path"`
	Weather              yamlWeather  `yaml:"weather"`
	Pomodoro             yamlPomodoro `yaml:"pomodoro"`
	Sound                yamlSound    `yaml:"sound"`
	Tasks                yamlTasks    `yaml:"tasks"`
}

type yamlWeather struct {
	APIKey         string `yaml:"api_key"`
	City           string `yaml:"city"`
	Units          string `yaml:"units"`
	RefreshMinutes int    `yaml:"refresh_minutes"`
}

type yamlPomodoro struct {
	FocusMinutes       int  `yaml:"focus_minutes"`
	ShortBreakMinutes  int  `yaml:"short_break_minutes"`
	LongBreakMinutes   int  `yaml:"long_break_minutes"`
	SessionsBeforeLong int  `yaml:"sessions_before_long"`
	AutoAdvance        bool `yaml:"auto_advance"`
}

type yamlSound struct {
	Enabled     bool   `yaml:"enabled"`
	Path        string `yaml:"path"`
	GainPercent *int   `yaml:"gain_percent,omitempty"`
	// Volume is the pre-gain 0..1 setting, read for migration only.
	Volume *float64 `yaml:"volume,omitempty"`
}

type yamlTasks struct {
	Backend string `yaml:"backend"`
}

// Dir returns override when set, otherwise <config dir>/LivingClock, using
// the platform config directory.
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppDirName), nil
}

// SettingsFile stores model.Settings as YAML.
type SettingsFile struct {
	path   string
	logger *slog.Logger
}

// NewSettingsFile returns a settings store inside dir.
func NewSettingsFile(dir string, logger *slog.Logger) *SettingsFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsFile{path: filepath.Join(dir, settingsFileName), logger: logger}
}

// Path returns the settings file location.
func (file *SettingsFile) Path() string {
	return file.path
}

// Load reads the settings. A missing or unparsable file is replaced with
// defaults, so the returned settings are always usable; the error reports
// only a failure to write the replacement.
func (file *SettingsFile) Load() (model.Settings, error) {
	defaults := model.DefaultSettings()

	rawData, err := os.ReadFile(file.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			file.logger.Warn("settings unreadable, using defaults", "path", file.path, "error", err)
		}
		return defaults, file.Save(defaults)
	}

	fileData := toYAML(defaults)
	fileData.Sound.GainPercent = nil
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		file.logger.Warn("settings corrupt, using defaults", "path", file.path, "error", err)
		return defaults, file.Save(defaults)
	}

	settings, migrated := fromYAML(fileData)
	normalized := settings.Normalized()
	if migrated || normalized != settings {
		file.logger.Info("settings normalized", "path", file.path, "migrated_volume", migrated)
		return normalized, file.Save(normalized)
	}
	return normalized, nil
}

// Save writes settings to disk.
func (file *SettingsFile) Save(settings model.Settings) error {
	if err := ensureDir(filepath.Dir(file.path)); err != nil {
		return err
	}

	serialized, err := yaml.Marshal(toYAML(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(file.path, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func toYAML(settings model.Settings) yamlSettings {
	gain := settings.Sound.GainPercent
	return yamlSettings{
		Background:           settings.Background,
		ThemeName:            settings.ThemeName,
		DigitColorName:       settings.DigitColorName,
		CustomBackgroundPath: settings.CustomBackgroundPath,
		Weather: yamlWeather{
			APIKey:         settings.Weather.APIKey,
			City:           settings.Weather.City,
			Units:          string(settings.Weather.Units),
			RefreshMinutes: settings.Weather.RefreshMinutes,
		},
		Pomodoro: yamlPomodoro{
			FocusMinutes:       settings.Pomodoro.FocusMinutes,
			ShortBreakMinutes:  settings.Pomodoro.ShortBreakMinutes,
			LongBreakMinutes:   settings.Pomodoro.LongBreakMinutes,
			SessionsBeforeLong: settings.Pomodoro.SessionsBeforeLong,
			AutoAdvance:        settings.Pomodoro.AutoAdvance,
		},
		Sound: yamlSound{
			Enabled:     settings.Sound.Enabled,
			Path:        settings.Sound.Path,
			GainPercent: &gain,
		},
		Tasks: yamlTasks{Backend: string(settings.TaskBackend)},
	}
}

// fromYAML converts file data and reports whether a legacy volume was migrated.
func fromYAML(fileData yamlSettings) (model.Settings, bool) {
	settings := model.Settings{
		Background:           fileData.Background,
		ThemeName:            fileData.ThemeName,
		DigitColorName:       fileData.DigitColorName,
		CustomBackgroundPath: fileData.CustomBackgroundPath,
		Weather: model.WeatherConfig{
			APIKey:         fileData.Weather.APIKey,
			City:           fileData.Weather.City,
			Units:          model.Units(fileData.Weather.Units),
			RefreshMinutes: fileData.Weather.RefreshMinutes,
		},
		Pomodoro: model.PomodoroConfig{
			FocusMinutes:       fileData.Pomodoro.FocusMinutes,
			ShortBreakMinutes:  fileData.Pomodoro.ShortBreakMinutes,
			LongBreakMinutes:   fileData.Pomodoro.LongBreakMinutes,
			SessionsBeforeLong: fileData.Pomodoro.SessionsBeforeLong,
			AutoAdvance:        fileData.Pomodoro.AutoAdvance,
		},
		Sound: model.SoundConfig{
			Enabled: fileData.Sound.Enabled,
			Path:    fileData.Sound.Path,
		},
		TaskBackend: model.TaskBackend(fileData.Tasks.Backend),
	}

	switch {
	case fileData.Sound.GainPercent != nil:
		settings.Sound.GainPercent = *fileData.Sound.GainPercent
	case fileData.Sound.Volume != nil:
		settings.Sound.GainPercent = int(math.Round(*fileData.Sound.Volume * 100))
		return settings, true
	default:
		settings.Sound.GainPercent = model.DefaultSettings().Sound.GainPercent
	}
	return settings, false
}

// writeFileAtomic replaces path through a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return nil
}
