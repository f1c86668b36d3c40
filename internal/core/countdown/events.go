package countdown

import "time"

// Mode represents the current pomodoro interval.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Label returns the on-screen name of the mode.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

// IsBreak reports whether mode is a break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Event is emitted when an interval runs out.
type Event struct {
	Previous          Mode
	Next              Mode
	SessionsCompleted uint
	At                time.Time
}
