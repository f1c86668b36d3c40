// Package countdown implements the pomodoro timer: a cyclic focus / short
// break / long break sequence driven by wall-clock deltas passed to Update.
//
// The timer is owned by the frame loop and is not safe for concurrent use.
package countdown

import (
	"fmt"
	"time"

	"livingclock/internal/core/model"
)

// State is a copy of the timer state for rendering.
type State struct {
	Mode               Mode
	Remaining          time.Duration
	Running            bool
	SessionsCompleted  uint
	Durations          Durations
	SessionsBeforeLong uint
	AutoAdvance        bool
}

// Durations holds the configured interval lengths.
type Durations struct {
	Focus time.Duration
	Short time.Duration
	Long  time.Duration
}

// Timer is the pomodoro state machine.
type Timer struct {
	mode               Mode
	remaining          time.Duration
	running            bool
	sessionsCompleted  uint
	durations          Durations
	sessionsBeforeLong uint
	autoAdvance        bool
	lastTick           time.Time
	onComplete         func(Event)
}

// New creates a stopped timer in focus mode.
func New(config model.PomodoroConfig, now time.Time) *Timer {
	timer := &Timer{
		mode:     ModeFocus,
		lastTick: now,
	}
	timer.applyConfig(config)
	timer.remaining = timer.durationFor(timer.mode)
	return timer
}

// SetOnComplete registers the handler invoked when an interval runs out.
func (timer *Timer) SetOnComplete(handler func(Event)) {
	timer.onComplete = handler
}

// Toggle starts or pauses the timer and re-anchors the tick reference so a
// long pause is never applied retroactively.
func (timer *Timer) Toggle(now time.Time) {
	timer.running = !timer.running
	timer.lastTick = now
}

// Reset stops the timer and refills the current interval.
func (timer *Timer) Reset() {
	timer.running = false
	timer.remaining = timer.durationFor(timer.mode)
}

// Skip ends the current interval immediately. The completion handler is not
// invoked; the timer resumes only when auto advance is on.
func (timer *Timer) Skip(now time.Time) {
	timer.running = false
	timer.advance()
	timer.running = timer.autoAdvance
	timer.lastTick = now
}

// Update applies the wall-clock time elapsed since the previous call.
func (timer *Timer) Update(now time.Time) {
	if !timer.running {
		timer.lastTick = now
		return
	}
	elapsed := now.Sub(timer.lastTick)
	timer.lastTick = now
	if elapsed < 0 {
		elapsed = 0
	}
	timer.remaining -= elapsed
	if timer.remaining > 0 {
		return
	}
	timer.remaining = 0

	previous := timer.mode
	timer.running = false
	timer.advance()
	timer.running = timer.autoAdvance
	if timer.onComplete != nil {
		timer.onComplete(Event{
			Previous:          previous,
			Next:              timer.mode,
			SessionsCompleted: timer.sessionsCompleted,
			At:                now,
		})
	}
}

// SetAutoAdvance toggles whether the next interval starts automatically.
func (timer *Timer) SetAutoAdvance(enabled bool) {
	timer.autoAdvance = enabled
}

// UpdateConfig applies new durations and resets the current interval.
func (timer *Timer) UpdateConfig(config model.PomodoroConfig) {
	timer.applyConfig(config)
	timer.Reset()
}

// ProgressRatio returns the elapsed fraction of the current interval.
func (timer *Timer) ProgressRatio() float64 {
	total := timer.durationFor(timer.mode)
	if total <= 0 {
		return 0
	}
	return 1 - float64(timer.remaining)/float64(total)
}

// Format returns the remaining time as MM:SS.
func (timer *Timer) Format() string {
	return FormatRemaining(timer.remaining)
}

// State returns a copy of the timer state.
func (timer *Timer) State() State {
	return State{
		Mode:               timer.mode,
		Remaining:          timer.remaining,
		Running:            timer.running,
		SessionsCompleted:  timer.sessionsCompleted,
		Durations:          timer.durations,
		SessionsBeforeLong: timer.sessionsBeforeLong,
		AutoAdvance:        timer.autoAdvance,
	}
}

// DurationFor returns the configured length of mode.
func (timer *Timer) DurationFor(mode Mode) time.Duration {
	return timer.durationFor(mode)
}

func (timer *Timer) advance() {
	if timer.mode == ModeFocus {
		timer.sessionsCompleted++
		if timer.sessionsCompleted%timer.sessionsBeforeLong == 0 {
			timer.mode = ModeLongBreak
		} else {
			timer.mode = ModeShortBreak
		}
	} else {
		timer.mode = ModeFocus
	}
	timer.remaining = timer.durationFor(timer.mode)
}

func (timer *Timer) applyConfig(config model.PomodoroConfig) {
	config = config.Clamped()
	timer.durations = Durations{
		Focus: config.Focus(),
		Short: config.ShortBreak(),
		Long:  config.LongBreak(),
	}
	timer.sessionsBeforeLong = uint(config.SessionsBeforeLong)
	timer.autoAdvance = config.AutoAdvance
}

func (timer *Timer) durationFor(mode Mode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return timer.durations.Short
	case ModeLongBreak:
		return timer.durations.Long
	default:
		return timer.durations.Focus
	}
}

// FormatRemaining renders a duration as MM:SS, truncating partial seconds.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
