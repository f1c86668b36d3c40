// Package sound plays the session-complete notification.
//
// Gain runs from 0 to 200 percent. Up to 100 it scales the volume of a single
// play; above that, extra overlapping plays at full volume make the sound
// louder than the player alone allows.
package sound

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"livingclock/internal/core/model"
	"livingclock/resources"
)

const chimeFileName = "chime.wav"

// Manager holds the sound settings and fires plays on demand.
type Manager struct {
	player       Player
	logger       *slog.Logger
	config       model.SoundConfig
	fallbackPath string
}

// NewManager creates a manager. fallbackPath is played when no custom path is
// configured; an empty fallback disables the built-in chime.
func NewManager(config model.SoundConfig, player Player, fallbackPath string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		player:       player,
		logger:       logger,
		config:       config.Clamped(),
		fallbackPath: fallbackPath,
	}
}

// Config returns the current sound settings.
func (manager *Manager) Config() model.SoundConfig {
	return manager.config
}

// Apply replaces the sound settings.
func (manager *Manager) Apply(config model.SoundConfig) {
	manager.config = config.Clamped()
}

// SetEnabled turns notifications on or off.
func (manager *Manager) SetEnabled(enabled bool) {
	manager.config.Enabled = enabled
}

// SetPath selects a custom sound file. An empty path restores the chime.
func (manager *Manager) SetPath(path string) {
	manager.config.Path = path
}

// SetGainPercent sets the gain, clamped to [0, 200].
func (manager *Manager) SetGainPercent(gain int) {
	manager.config.GainPercent = model.ClampInt(gain, model.MinGainPercent, model.MaxGainPercent)
}

// Play starts the notification and returns how many plays were launched.
// Disabled sound, zero gain or a missing player launch nothing.
func (manager *Manager) Play() int {
	if !manager.config.Enabled || manager.player == nil {
		return 0
	}
	gain := manager.config.GainPercent
	if gain <= 0 {
		return 0
	}
	path := manager.config.Path
	if path == "" {
		path = manager.fallbackPath
	}
	if path == "" {
		return 0
	}

	launched := 0
	volume := BaseVolume(gain)
	for i := 0; i < 1+ExtraPlays(gain); i++ {
		if err := manager.player.Play(path, volume); err != nil {
			manager.logger.Warn("play notification", "path", path, "error", err)
			break
		}
		launched++
	}
	return launched
}

// BaseVolume is the volume of each play for gain.
func BaseVolume(gain int) float64 {
	gain = model.ClampInt(gain, model.MinGainPercent, model.MaxGainPercent)
	return min(1, float64(gain)/100)
}

// ExtraPlays is the number of additional overlapping plays for gain:
// one from 150 percent, two at 200.
func ExtraPlays(gain int) int {
	gain = model.ClampInt(gain, model.MinGainPercent, model.MaxGainPercent)
	if gain <= 100 {
		return 0
	}
	return (gain - 100) / 50
}

// EnsureChime writes the built-in chime into dir once and returns its path.
func EnsureChime(dir string) (string, error) {
	path := filepath.Join(dir, chimeFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat chime: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create sound cache: %w", err)
	}
	if err := os.WriteFile(path, resources.ChimeWAV(), 0o644); err != nil {
		return "", fmt.Errorf("write chime: %w", err)
	}
	return path, nil
}
