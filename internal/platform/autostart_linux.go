//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (entry *autostart) Enable(execPath string) error {
	if err := entry.check("enable", execPath, true); err != nil {
		return err
	}
	path, err := entry.desktopFile()
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(desktopEntry(entry.name, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

func (entry *autostart) Disable() error {
	if err := entry.check("disable", "", false); err != nil {
		return err
	}
	path, err := entry.desktopFile()
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

func (entry *autostart) Enabled() (bool, error) {
	path, err := entry.desktopFile()
	if err != nil {
		return false, err
	}
	return fileExists(path)
}

func (entry *autostart) desktopFile() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", slug(entry.name)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopEntry(appName, execPath string) string {
	if strings.ContainsAny(execPath, " \t") && !strings.HasPrefix(execPath, `"`) {
		execPath = `"` + execPath + `"`
	}
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Desktop clock with tasks, weather and a pomodoro timer
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, appName, execPath)
}
