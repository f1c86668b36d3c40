package pages

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"livingclock/internal/core/app"
	"livingclock/internal/core/mascot"
	"livingclock/resources"
)

const (
	clockTop      = 60
	clockSize     = 96
	secondsSize   = 28
	dateSize      = 20
	mascotTop     = 205
	taskHeaderTop = app.Height/2 + 62
)

func buildMain(page *pageView, view app.View) {
	hours := clockText(clockSize, true)
	colon := clockText(clockSize, true)
	minutes := clockText(clockSize, true)
	seconds := clockText(secondsSize, false)
	meridiem := clockText(secondsSize, false)
	date := canvas.NewText("", view.Settings.SecondaryDigitColor())
	date.TextSize = dateSize
	date.Alignment = fyne.TextAlignCenter
	place(date, image.Rect(0, clockTop+clockSize+14, app.Width, clockTop+clockSize+40))

	summary := canvas.NewText("", view.Settings.SecondaryDigitColor())
	summary.TextSize = 14
	summary.Alignment = fyne.TextAlignTrailing
	place(summary, image.Rect(130, 14, app.Width-50, 36))

	sprite := canvas.NewImageFromImage(nil)
	sprite.FillMode = canvas.ImageFillContain

	header := canvas.NewText("Tasks", view.Settings.ThemeColor())
	header.TextSize = 18
	header.TextStyle.Bold = true
	place(header, image.Rect(50, taskHeaderTop, 300, taskHeaderTop+24))

	more := canvas.NewText("", mutedText)
	more.TextSize = 13
	moreTop := app.Height/2 + 90 + app.MaxVisibleTasks*28
	place(more, image.Rect(78, moreTop, 400, moreTop+18))

	status := canvas.NewText("", mutedText)
	status.TextSize = 13
	place(status, image.Rect(50, app.Height-40, app.Width-70, app.Height-20))

	page.add(hours, colon, minutes, seconds, meridiem, date, summary, sprite, header, more, status)

	var (
		lastClock app.Clock
		lastFrame = mascot.Frame{Index: -1}
	)
	page.onUpdate(func(view app.View) {
		digits := view.Settings.DigitColor()
		for _, text := range []*canvas.Text{hours, minutes, seconds, meridiem} {
			setColor(text, digits)
		}
		setColor(colon, withAlpha(digits, view.ColonAlpha))
		setColor(date, view.Settings.SecondaryDigitColor())
		setColor(summary, view.Settings.SecondaryDigitColor())
		setColor(header, view.Settings.ThemeColor())

		if view.Clock != lastClock {
			lastClock = view.Clock
			layoutClock(view.Clock, hours, colon, minutes, seconds, meridiem)
			setText(date, view.Clock.Date)
		}

		if view.Mascot.Mood != lastFrame.Mood || view.Mascot.Index != lastFrame.Index {
			sprite.Image = resources.Sprite(view.Mascot.Mood == mascot.MoodBlush, view.Mascot.Index)
			sprite.Refresh()
		}
		if view.Mascot != lastFrame {
			top := mascotTop + float32(view.Mascot.Bob)
			sprite.Move(fyne.NewPos(float32(app.Width-resources.SpriteSize)/2, top))
			sprite.Resize(fyne.NewSize(resources.SpriteSize, resources.SpriteSize))
			lastFrame = view.Mascot
		}

		if view.Weather.OK {
			setText(summary, view.Weather.Value.Summary())
		} else {
			setText(summary, "")
		}
		if view.HiddenTasks > 0 {
			setText(more, fmt.Sprintf("+%d more", view.HiddenTasks))
		} else {
			setText(more, "")
		}
		setText(status, view.Status)
	})
}

func clockText(size float32, bold bool) *canvas.Text {
	text := canvas.NewText("", whiteText)
	text.TextSize = size
	text.TextStyle.Bold = bold
	return text
}

// layoutClock centers "HH:MM" with the seconds and meridiem stacked to its right.
func layoutClock(clock app.Clock, hours, colon, minutes, seconds, meridiem *canvas.Text) {
	hoursText, minutesText := clock.Time, ""
	if len(clock.Time) == 5 {
		hoursText, minutesText = clock.Time[:2], clock.Time[3:]
	}
	hours.Text, colon.Text, minutes.Text = hoursText, ":", minutesText
	seconds.Text, meridiem.Text = clock.Seconds, clock.Meridiem

	style := fyne.TextStyle{Bold: true}
	hoursSize := fyne.MeasureText(hoursText, clockSize, style)
	colonSize := fyne.MeasureText(":", clockSize, style)
	minutesSize := fyne.MeasureText(minutesText, clockSize, style)
	sideSize := fyne.MeasureText("PM", secondsSize, fyne.TextStyle{})

	total := hoursSize.Width + colonSize.Width + minutesSize.Width + 10 + sideSize.Width
	x := (app.Width - total) / 2
	for _, part := range []struct {
		text *canvas.Text
		size fyne.Size
	}{{hours, hoursSize}, {colon, colonSize}, {minutes, minutesSize}} {
		part.text.Move(fyne.NewPos(x, clockTop))
		part.text.Resize(part.size)
		part.text.Refresh()
		x += part.size.Width
	}
	x += 10
	seconds.Move(fyne.NewPos(x, clockTop+14))
	seconds.Resize(sideSize)
	seconds.Refresh()
	meridiem.Move(fyne.NewPos(x, clockTop+14+sideSize.Height+4))
	meridiem.Resize(sideSize)
	meridiem.Refresh()
}
