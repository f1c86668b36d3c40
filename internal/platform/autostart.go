// Package platform wraps the operating system services the widget needs
// outside fyne: login autostart, a single-instance lock and capability
// probing.
package platform

import (
	"fmt"
	"os"
	"strings"
)

// Autostart registers the widget to launch at login.
type Autostart interface {
	Enable(execPath string) error
	Disable() error
	Enabled() (bool, error)
}

type autostart struct {
	name string
}

// NewAutostart returns the implementation for the running OS.
func NewAutostart(appName string) Autostart {
	return &autostart{name: strings.TrimSpace(appName)}
}

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}

func (entry *autostart) check(action, execPath string, needPath bool) error {
	if entry.name == "" {
		return fmt.Errorf("%s autostart: app name is empty", action)
	}
	if needPath && execPath == "" {
		return fmt.Errorf("%s autostart: exec path is empty", action)
	}
	return nil
}

// slug lowercases name and replaces spaces for use in file names.
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
