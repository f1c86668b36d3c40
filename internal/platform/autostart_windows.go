//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (entry *autostart) Enable(execPath string) error {
	if err := entry.check("enable", execPath, true); err != nil {
		return err
	}
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	if _, err := reg("add", registryRunKey, "/v", entry.name, "/t", "REG_SZ", "/d", quoted, "/f"); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (entry *autostart) Disable() error {
	if err := entry.check("disable", "", false); err != nil {
		return err
	}
	if _, err := reg("delete", registryRunKey, "/v", entry.name, "/f"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func (entry *autostart) Enabled() (bool, error) {
	// reg query exits non-zero when the value is missing.
	_, err := reg("query", registryRunKey, "/v", entry.name)
	return err == nil, nil
}

func reg(args ...string) (string, error) {
	output, err := exec.Command("reg", args...).CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		return trimmed, fmt.Errorf("reg %s failed: %w: %s", args[0], err, trimmed)
	}
	return trimmed, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}
