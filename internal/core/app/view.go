package app

import (
	"time"

	"livingclock/internal/core/countdown"
	"livingclock/internal/core/mascot"
	"livingclock/internal/core/model"
	"livingclock/internal/core/snapshot"
	"livingclock/internal/core/tasks"
	"livingclock/internal/core/transition"
	"livingclock/internal/weather"
)

// View is everything the renderer needs for one frame. It holds copies only.
type View struct {
	// Page is the page whose content is drawn; it switches halfway
	// through a flip. Committed is where input goes.
	Page       transition.Page
	Committed  transition.Page
	Transition transition.State
	Distortion transition.Distortion
	// Regions is the layout of Page.
	Regions []Region

	Settings    model.Settings
	Tasks       []tasks.Item
	HiddenTasks int
	Input       TaskInput
	Editor      Editor

	Countdown countdown.State
	Remaining string
	Progress  float64

	Weather snapshot.Snapshot[weather.Data]

	Mascot     mascot.Frame
	ColonAlpha uint8
	Clock      Clock

	Pick   Pick
	Status string
	// Completed counts intervals that ran out during this frame.
	Completed int
	Quit      bool
}

// Flipping reports whether the page is mid-transition.
func (view View) Flipping() bool {
	return view.Transition.Active
}

// Clock is the formatted wall time on the main page.
type Clock struct {
	Time     string
	Seconds  string
	Meridiem string
	Date     string
}

// NewClock formats now as a 12-hour clock.
func NewClock(now time.Time) Clock {
	return Clock{
		Time:     now.Format("03:04"),
		Seconds:  now.Format("05"),
		Meridiem: now.Format("PM"),
		Date:     now.Format("Monday, January 02"),
	}
}
