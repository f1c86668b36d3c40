package pages

import (
	"image"

	"fyne.io/fyne/v2/canvas"

	"livingclock/internal/core/app"
)

func buildSettings(page *pageView, view app.View) {
	accent := view.Settings.ThemeColor()
	for _, heading := range []struct {
		title string
		top   int
	}{
		{"Theme", 108},
		{"Background", 228},
		{"Digit color", 348},
		{"Completion sound", 468},
	} {
		title := canvas.NewText(heading.title, accent)
		title.TextSize = 18
		title.TextStyle.Bold = true
		page.add(place(title, image.Rect(50, heading.top, 400, heading.top+24)))
	}

	sound := canvas.NewText(shortPath(view.Settings.Sound.Path), whiteText)
	sound.TextSize = 14
	page.add(place(sound, image.Rect(170, 520, app.Width-50, 540)))

	status := canvas.NewText("", mutedText)
	status.TextSize = 13
	page.add(place(status, image.Rect(50, app.Height-30, app.Width-50, app.Height-12)))
	page.onUpdate(func(view app.View) {
		setText(status, view.Status)
	})
}
