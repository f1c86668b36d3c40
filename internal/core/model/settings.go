package model

import "image/color"

// TaskBackend selects where the to-do list is persisted.
type TaskBackend string

const (
	TaskBackendYAML   TaskBackend = "yaml"
	TaskBackendSQLite TaskBackend = "sqlite"
)

// Background ids shipped with the widget.
const (
	BackgroundDefault = "bg1"
	BackgroundAlt     = "bg2"
	BackgroundCustom  = "custom"
)

// Themes maps theme names to accent colors.
var Themes = map[string]color.NRGBA{
	"Purple": {R: 189, G: 147, B: 249, A: 255},
	"Cyan":   {R: 136, G: 192, B: 208, A: 255},
	"Orange": {R: 255, G: 184, B: 108, A: 255},
}

// DigitColors maps digit color names to clock colors.
var DigitColors = map[string]color.NRGBA{
	"White": {R: 255, G: 255, B: 255, A: 255},
	"Black": {R: 0, G: 0, B: 0, A: 255},
	"Gray":  {R: 200, G: 200, B: 200, A: 255},
}

// ThemeOrder and DigitColorOrder fix the on-screen button order.
var (
	ThemeOrder      = []string{"Purple", "Cyan", "Orange"}
	DigitColorOrder = []string{"White", "Black", "Gray"}
)

// Settings is everything persisted in the settings file.
type Settings struct {
	Background           string
	ThemeName            string
	DigitColorName       string
	CustomBackgroundPath string

	Weather  WeatherConfig
	Pomodoro PomodoroConfig
	Sound    SoundConfig

	TaskBackend TaskBackend
}

// DefaultSettings returns the settings used on first start.
func DefaultSettings() Settings {
	return Settings{
		Background:     BackgroundDefault,
		ThemeName:      "Purple",
		DigitColorName: "White",
		Weather: WeatherConfig{
			City:           "Dhaka",
			Units:          UnitsMetric,
			RefreshMinutes: 15,
		},
		Pomodoro: PomodoroConfig{
			FocusMinutes:       25,
			ShortBreakMinutes:  5,
			LongBreakMinutes:   15,
			SessionsBeforeLong: 4,
			AutoAdvance:        true,
		},
		Sound: SoundConfig{
			Enabled:     true,
			GainPercent: 100,
		},
		TaskBackend: TaskBackendYAML,
	}
}

// Normalized replaces unknown names with defaults and clamps every numeric field.
func (settings Settings) Normalized() Settings {
	defaults := DefaultSettings()
	if _, ok := Themes[settings.ThemeName]; !ok {
		settings.ThemeName = defaults.ThemeName
	}
	if _, ok := DigitColors[settings.DigitColorName]; !ok {
		settings.DigitColorName = defaults.DigitColorName
	}
	switch settings.Background {
	case BackgroundDefault, BackgroundAlt:
	case BackgroundCustom:
		if settings.CustomBackgroundPath == "" {
			settings.Background = defaults.Background
		}
	default:
		settings.Background = defaults.Background
	}
	if settings.TaskBackend != TaskBackendSQLite {
		settings.TaskBackend = TaskBackendYAML
	}
	settings.Weather = settings.Weather.Clamped()
	settings.Pomodoro = settings.Pomodoro.Clamped()
	settings.Sound = settings.Sound.Clamped()
	return settings
}

// ThemeColor returns the accent color for the selected theme.
func (settings Settings) ThemeColor() color.NRGBA {
	if value, ok := Themes[settings.ThemeName]; ok {
		return value
	}
	return Themes["Purple"]
}

// DigitColor returns the clock digit color.
func (settings Settings) DigitColor() color.NRGBA {
	if value, ok := DigitColors[settings.DigitColorName]; ok {
		return value
	}
	return DigitColors["White"]
}

// SecondaryDigitColor is used for seconds and AM/PM next to the main digits.
func (settings Settings) SecondaryDigitColor() color.NRGBA {
	if settings.DigitColorName == "Black" {
		return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	}
	return color.NRGBA{R: 200, G: 200, B: 200, A: 255}
}

// BackgroundIDs lists selectable backgrounds in display order.
func (settings Settings) BackgroundIDs() []string {
	ids := []string{BackgroundDefault, BackgroundAlt}
	if settings.CustomBackgroundPath != "" {
		ids = append(ids, BackgroundCustom)
	}
	return ids
}
