package platform

import (
	"os"
	"runtime"

	"livingclock/internal/core/app"
)

// Probe describes what the host offers beyond drawing.
type Probe struct {
	GOOS string
	// Getenv reads the environment; nil uses os.Getenv.
	Getenv func(string) string
	// AudioPlayer reports that a sound player was found.
	AudioPlayer bool
	// SystemTray reports that the fyne driver supports a tray icon.
	SystemTray bool
}

// DetectCapabilities resolves the optional features once at startup.
func DetectCapabilities(probe Probe) app.Capabilities {
	if probe.GOOS == "" {
		probe.GOOS = runtime.GOOS
	}
	if probe.Getenv == nil {
		probe.Getenv = os.Getenv
	}
	display := hasDisplay(probe.GOOS, probe.Getenv)
	return app.Capabilities{
		Transparency: probe.GOOS == "windows",
		Audio:        probe.AudioPlayer,
		FilePicker:   display,
		Tray:         probe.SystemTray && display,
	}
}

func hasDisplay(goos string, getenv func(string) string) bool {
	switch goos {
	case "windows", "darwin":
		return true
	default:
		return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
	}
}
