package model

import "time"

const (
	MinSessionMinutes = 1
	MaxSessionMinutes = 180

	MinSessionsBeforeLong = 1
	MaxSessionsBeforeLong = 10

	MinGainPercent  = 0
	MaxGainPercent  = 200
	GainPercentStep = 5

	MinRefreshMinutes = 1
)

// PomodoroConfig defines the focus/break cycle.
type PomodoroConfig struct {
	FocusMinutes       int
	ShortBreakMinutes  int
	LongBreakMinutes   int
	SessionsBeforeLong int
	AutoAdvance        bool
}

// Focus returns the focus interval duration.
func (config PomodoroConfig) Focus() time.Duration {
	return time.Duration(config.FocusMinutes) * time.Minute
}

// ShortBreak returns the short break duration.
func (config PomodoroConfig) ShortBreak() time.Duration {
	return time.Duration(config.ShortBreakMinutes) * time.Minute
}

// LongBreak returns the long break duration.
func (config PomodoroConfig) LongBreak() time.Duration {
	return time.Duration(config.LongBreakMinutes) * time.Minute
}

// Clamped returns a copy with every field inside the editor limits.
func (config PomodoroConfig) Clamped() PomodoroConfig {
	config.FocusMinutes = ClampInt(config.FocusMinutes, MinSessionMinutes, MaxSessionMinutes)
	config.ShortBreakMinutes = ClampInt(config.ShortBreakMinutes, MinSessionMinutes, MaxSessionMinutes)
	config.LongBreakMinutes = ClampInt(config.LongBreakMinutes, MinSessionMinutes, MaxSessionMinutes)
	config.SessionsBeforeLong = ClampInt(config.SessionsBeforeLong, MinSessionsBeforeLong, MaxSessionsBeforeLong)
	return config
}

// Units selects the measurement system for weather values.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// WeatherConfig defines the weather poller source.
type WeatherConfig struct {
	APIKey         string
	City           string
	Units          Units
	RefreshMinutes int
}

// RefreshInterval returns the configured refresh interval.
func (config WeatherConfig) RefreshInterval() time.Duration {
	return time.Duration(config.RefreshMinutes) * time.Minute
}

// Clamped returns a copy with a known unit system and a positive refresh interval.
func (config WeatherConfig) Clamped() WeatherConfig {
	if config.Units != UnitsImperial {
		config.Units = UnitsMetric
	}
	if config.RefreshMinutes < MinRefreshMinutes {
		config.RefreshMinutes = MinRefreshMinutes
	}
	return config
}

// SoundConfig defines the session-complete notification.
type SoundConfig struct {
	Enabled     bool
	Path        string
	GainPercent int
}

// Clamped returns a copy with the gain inside [0, 200].
func (config SoundConfig) Clamped() SoundConfig {
	config.GainPercent = ClampInt(config.GainPercent, MinGainPercent, MaxGainPercent)
	return config
}

// ClampInt bounds value to [low, high].
func ClampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
