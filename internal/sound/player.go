package sound

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// Player starts playback of an audio file without waiting for it to finish.
type Player interface {
	Play(path string, volume float64) error
}

// CommandPlayer plays files through the platform's command-line player.
type CommandPlayer struct {
	name string
	path string
}

// NewCommandPlayer resolves the first available player for the current OS.
func NewCommandPlayer() *CommandPlayer {
	for _, name := range candidates(runtime.GOOS) {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandPlayer{name: name, path: path}
		}
	}
	return &CommandPlayer{}
}

// Available reports whether a player binary was found.
func (player *CommandPlayer) Available() bool {
	return player != nil && player.path != ""
}

// Name returns the resolved player binary name.
func (player *CommandPlayer) Name() string {
	if player == nil {
		return ""
	}
	return player.name
}

// Play spawns the player and reaps it in the background.
func (player *CommandPlayer) Play(path string, volume float64) error {
	if !player.Available() {
		return fmt.Errorf("play sound: no audio player found")
	}
	command := exec.Command(player.path, playerArgs(player.name, path, volume)...)
	if err := command.Start(); err != nil {
		return fmt.Errorf("play sound: start %s: %w", player.name, err)
	}
	go func() { _ = command.Wait() }()
	return nil
}

func candidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"afplay"}
	case "windows":
		return []string{"powershell"}
	default:
		return []string{"paplay", "pw-play", "aplay"}
	}
}

func playerArgs(name, path string, volume float64) []string {
	switch name {
	case "afplay":
		return []string{"-v", strconv.FormatFloat(volume, 'f', 2, 64), path}
	case "paplay":
		return []string{"--volume=" + strconv.Itoa(int(volume*65536)), path}
	case "pw-play":
		return []string{"--volume=" + strconv.FormatFloat(volume, 'f', 2, 64), path}
	case "powershell":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(path, "'", "''"))
		return []string{"-NoProfile", "-NonInteractive", "-Command", script}
	default:
		return []string{"-q", path}
	}
}
