// Package tray exposes the pomodoro controls in the system tray.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"livingclock/internal/core/app"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowHide    func()
	OnToggleTimer func()
	OnReset       func()
	OnSkip        func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	status    string
	running   bool
}

// New creates a tray manager with the provided callbacks and installs its menu.
func New(desktopApp desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       desktopApp,
		callbacks: callbacks,
		status:    "starting...",
	}
	manager.refreshMenu()
	return manager
}

// Observe updates the menu from a rendered view. The menu is rebuilt only
// when its text changes.
func (manager *Manager) Observe(view app.View) {
	status := fmt.Sprintf("%s %s", view.Countdown.Mode.Label(), view.Remaining)
	if status == manager.status && view.Countdown.Running == manager.running {
		return
	}
	manager.status = status
	manager.running = view.Countdown.Running
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.status
}

func (manager *Manager) menu() *fyne.Menu {
	statusItem := fyne.NewMenuItem("Pomodoro: "+manager.status, nil)
	statusItem.Disabled = true

	toggleLabel := "Start timer"
	if manager.running {
		toggleLabel = "Pause timer"
	}
	quit := fyne.NewMenuItem("Quit", invoke(manager.callbacks.OnQuit))
	quit.IsQuit = true
	return fyne.NewMenu("Living Clock",
		statusItem,
		fyne.NewMenuItem("Show / Hide", invoke(manager.callbacks.OnShowHide)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(toggleLabel, invoke(manager.callbacks.OnToggleTimer)),
		fyne.NewMenuItem("Reset timer", invoke(manager.callbacks.OnReset)),
		fyne.NewMenuItem("Skip interval", invoke(manager.callbacks.OnSkip)),
		fyne.NewMenuItemSeparator(),
		quit,
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu())
	}
}

func invoke(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
