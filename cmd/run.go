package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"livingclock/internal/core/app"
	"livingclock/internal/core/model"
	"livingclock/internal/core/snapshot"
	"livingclock/internal/core/tasks"
	"livingclock/internal/platform"
	"livingclock/internal/sound"
	"livingclock/internal/storage"
	"livingclock/internal/ui/overlay"
	"livingclock/internal/ui/tray"
	"livingclock/internal/weather"
	"livingclock/resources"
)

type taskStore interface {
	tasks.Store
	Close() error
}

type fileStore struct {
	*storage.TaskFile
}

func (fileStore) Close() error { return nil }

func run(opts *options, logger *slog.Logger) error {
	wakes := make(chan struct{}, 1)
	guard, err := platform.AcquireSingleInstance(appName, func() {
		select {
		case wakes <- struct{}{}:
		default:
		}
	})
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, showing the existing window")
		return platform.Wake(appName)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	dir, err := storage.Dir(opts.configDir)
	if err != nil {
		return err
	}
	boot, err := loadStartup(opts, dir, os.Getenv, logger)
	if err != nil {
		return err
	}
	settings := boot.settings

	store, err := openTaskStore(boot.backend, dir)
	if err != nil {
		return err
	}
	defer store.Close()
	taskList := tasks.Open(store, logger)

	player := sound.NewCommandPlayer()
	if !player.Available() {
		logger.Info("no audio player found, sounds disabled")
	}
	chime := ""
	if cacheDir, err := os.UserCacheDir(); err == nil {
		if chime, err = sound.EnsureChime(filepath.Join(cacheDir, storage.AppDirName)); err != nil {
			logger.Warn("built-in chime unavailable", "error", err)
		}
	}
	notifier := sound.NewManager(settings.Sound, player, chime, logger)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.Logo(settings.ThemeColor()))
	desktopApp, isDesktop := fyneApp.(desktop.App)
	capabilities := platform.DetectCapabilities(platform.Probe{
		AudioPlayer: player.Available(),
		SystemTray:  isDesktop,
	})
	logger.Debug("capabilities detected",
		"transparency", capabilities.Transparency,
		"audio", capabilities.Audio,
		"file_picker", capabilities.FilePicker,
		"tray", capabilities.Tray)

	deps := app.Deps{
		Settings:      settings,
		SettingsStore: boot.settingsFile,
		Tasks:         taskList,
		Sound:         notifier,
		Capabilities:  capabilities,
		Logger:        logger,
	}
	if source := weatherSource(boot.weather, opts.noWeather, logger); source != nil {
		source.Start()
		defer source.Stop()
		deps.Weather = source
	}
	controller, err := app.New(deps)
	if err != nil {
		return fmt.Errorf("create controller: %w", err)
	}

	var trayManager *tray.Manager
	window := overlay.New(fyneApp, controller, overlay.Config{
		Opacity: opacityToAlpha(opts.opacity),
		Logger:  logger,
		OnFrame: func(view app.View) {
			if trayManager != nil {
				trayManager.Observe(view)
			}
		},
		OnQuit: fyneApp.Quit,
	})

	if capabilities.Tray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowHide:    window.Toggle,
			OnToggleTimer: controller.ToggleTimer,
			OnReset:       controller.ResetTimer,
			OnSkip:        controller.SkipTimer,
			OnQuit:        controller.RequestQuit,
		})
		desktopApp.SetSystemTrayIcon(resources.Logo(settings.ThemeColor()))
	}

	go func() {
		for range wakes {
			fyne.Do(window.Show)
		}
	}()

	window.Show()
	fyneApp.Run()
	logger.Info("living clock stopped", "sessions", controller.Timer().SessionsCompleted)
	return nil
}

// startup holds what run needs before building the controller. Command-line
// and environment overrides live beside settings, never in them, so a later
// save cannot write them to disk.
type startup struct {
	settingsFile *storage.SettingsFile
	settings     model.Settings
	weather      model.WeatherConfig
	backend      model.TaskBackend
}

func loadStartup(opts *options, dir string, getenv func(string) string, logger *slog.Logger) (startup, error) {
	settingsFile := storage.NewSettingsFile(dir, logger)
	settings, err := settingsFile.Load()
	if err != nil {
		logger.Warn("write default settings", "path", settingsFile.Path(), "error", err)
	}
	boot := startup{
		settingsFile: settingsFile,
		settings:     settings,
		weather:      settings.Weather,
		backend:      settings.TaskBackend,
	}
	if opts.taskBackend != "" {
		boot.backend = model.TaskBackend(strings.ToLower(opts.taskBackend))
		if boot.backend != model.TaskBackendYAML && boot.backend != model.TaskBackendSQLite {
			return startup{}, fmt.Errorf("unknown task backend %q", opts.taskBackend)
		}
	}
	if key := strings.TrimSpace(getenv(weatherKeyEnv)); key != "" {
		boot.weather.APIKey = key
	}
	return boot, nil
}

func openTaskStore(backend model.TaskBackend, dir string) (taskStore, error) {
	if backend == model.TaskBackendSQLite {
		store, err := storage.OpenTaskDB(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return fileStore{storage.NewTaskFile(dir)}, nil
}

// weatherSource returns nil when weather is switched off or has no key.
func weatherSource(config model.WeatherConfig, disabled bool, logger *slog.Logger) *snapshot.Source[weather.Data] {
	if disabled {
		return nil
	}
	if strings.TrimSpace(config.APIKey) == "" {
		logger.Info("weather disabled, no API key", "env", weatherKeyEnv)
		return nil
	}
	client := weather.NewClient(config, &http.Client{Timeout: snapshot.DefaultTimeout})
	return snapshot.New(client.Fetch, snapshot.Config[weather.Data]{
		RefreshInterval: config.RefreshInterval(),
		Clone:           weather.Data.Clone,
		Logger:          logger.With("component", "weather"),
	})
}
