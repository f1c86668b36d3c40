package pages

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"livingclock/internal/core/app"
	"livingclock/internal/core/countdown"
)

var ringTrack = color4(255, 255, 255, 50)

func buildPomodoro(page *pageView, view app.View) {
	panel, _ := app.Find(view.Regions, app.RegionPomodoroPanel)
	ringRegion, _ := app.Find(view.Regions, app.RegionRing)
	info, _ := app.Find(view.Regions, app.RegionInfo)

	mode := canvas.NewText(panel.Label, view.Settings.ThemeColor())
	mode.TextSize = 24
	mode.TextStyle.Bold = true
	page.add(place(mode, image.Rect(panel.Rect.Min.X+20, panel.Rect.Min.Y+20, panel.Rect.Min.X+300, panel.Rect.Min.Y+52)))

	progress := newRing(ringRegion.Rect, ringTrack, view.Settings.ThemeColor())
	page.add(progress.track)
	page.add(progress.fill)

	remaining := canvas.NewText("", whiteText)
	remaining.TextSize = 56
	remaining.TextStyle.Bold = true
	remaining.Alignment = fyne.TextAlignCenter
	middle := ringRegion.Rect.Min.Y + ringRegion.Rect.Dy()/2
	page.add(place(remaining, image.Rect(ringRegion.Rect.Min.X, middle-40, ringRegion.Rect.Max.X, middle+24)))

	state := canvas.NewText("", mutedText)
	state.TextSize = 14
	state.Alignment = fyne.TextAlignCenter
	page.add(place(state, image.Rect(ringRegion.Rect.Min.X, middle+30, ringRegion.Rect.Max.X, middle+50)))

	infoText := canvas.NewText("", whiteText)
	infoText.TextSize = 14
	infoText.Alignment = fyne.TextAlignCenter
	page.add(place(infoText, info.Rect))

	page.onUpdate(func(view app.View) {
		accent := view.Settings.ThemeColor()
		setColor(mode, accent)
		setColor(remaining, view.Settings.DigitColor())

		progress.set(view.Progress, accent)
		setText(remaining, view.Remaining)
		if view.Countdown.Running {
			setText(state, "running")
		} else {
			setText(state, "paused")
		}
		setText(infoText, sessionInfo(view.Countdown))
	})
}

func sessionInfo(state countdown.State) string {
	before := state.SessionsBeforeLong
	if before == 0 {
		before = 1
	}
	cycle := state.SessionsCompleted % before
	return fmt.Sprintf("Sessions completed: %d  •  %d of %d before long break",
		state.SessionsCompleted, cycle, before)
}
