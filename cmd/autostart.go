package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"livingclock/internal/platform"
)

func newAutostartCmd() *cobra.Command {
	autostartCmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launching the widget at login",
	}

	autostartCmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Start the widget at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				execPath, err := executablePath()
				if err != nil {
					return err
				}
				if err := platform.NewAutostart(appName).Enable(execPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Autostart enabled for %s\n", execPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop starting the widget at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := platform.NewAutostart(appName).Disable(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the widget starts at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				enabled, err := platform.NewAutostart(appName).Enabled()
				if err != nil {
					return fmt.Errorf("check autostart: %w", err)
				}
				state := "disabled"
				if enabled {
					state = "enabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Autostart %s\n", state)
				return nil
			},
		},
	)
	return autostartCmd
}

func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return execPath, nil
}
