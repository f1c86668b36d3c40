package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName = "Living Clock"
	appID   = "com.livingclock.app"
	// weatherKeyEnv overrides the API key stored in settings.
	weatherKeyEnv = "LIVINGCLOCK_WEATHER_API_KEY"
)

type options struct {
	configDir   string
	taskBackend string
	opacity     float64
	noWeather   bool
	debug       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "livingclock",
		Short: "Desktop clock with tasks, weather and a pomodoro timer",
		Long: `Living Clock is a small always-on-top widget showing the time,
a to-do list, the local weather and a pomodoro timer.

Settings are stored as YAML in the config directory. Weather needs an
API key, either in settings.yaml or in ` + weatherKeyEnv + `.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, newLogger(cmd.ErrOrStderr(), opts.debug))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "", "directory for settings and tasks (default: user config dir)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.Flags().StringVar(&opts.taskBackend, "task-backend", "", "task storage: yaml or sqlite (default: from settings)")
	root.Flags().Float64Var(&opts.opacity, "opacity", 1, "window opacity from 0 to 1 where supported")
	root.Flags().BoolVar(&opts.noWeather, "no-weather", false, "disable weather polling")

	root.AddCommand(newAutostartCmd())
	return root
}

func newLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
