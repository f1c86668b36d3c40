package pages

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"livingclock/internal/core/app"
	"livingclock/internal/core/model"
)

func buildAdjust(page *pageView, view app.View) {
	title := canvas.NewText("Adjust timer", view.Settings.ThemeColor())
	title.TextSize = 24
	title.TextStyle.Bold = true
	page.add(place(title, image.Rect(60, 72, app.Width-60, 104)))
}

// drawSlider draws the track of an adjust field; the fill, knob and value
// follow the editor on every frame.
func (page *pageView) drawSlider(region app.Region, settings model.Settings) {
	field := region.Action.Field
	spec := field.Spec()
	accent := settings.ThemeColor()

	centerY := region.Rect.Min.Y + 12
	track := image.Rect(region.Rect.Min.X, centerY-3, region.Rect.Max.X, centerY+3)
	page.add(box(track, ringTrack, 3))

	fill := canvas.NewRectangle(accent)
	fill.CornerRadius = 3
	knob := canvas.NewCircle(whiteText)
	knob.StrokeColor = accent
	knob.StrokeWidth = 3

	name := canvas.NewText(spec.Label, whiteText)
	name.TextSize = 15
	page.add(place(name, image.Rect(region.Rect.Min.X, region.Rect.Min.Y-26, region.Rect.Max.X, region.Rect.Min.Y-6)))

	value := canvas.NewText("", accent)
	value.TextSize = 15
	value.TextStyle.Bold = true
	value.Alignment = fyne.TextAlignTrailing
	page.add(place(value, image.Rect(region.Rect.Min.X, region.Rect.Min.Y-26, region.Rect.Max.X, region.Rect.Min.Y-6)))
	page.add(fill, knob)

	last := -1
	page.onUpdate(func(view app.View) {
		current := view.Editor.Value(field)
		if current == last {
			return
		}
		last = current
		width := int(spec.Fraction(current) * float64(track.Dx()))
		place(fill, image.Rect(track.Min.X, track.Min.Y, track.Min.X+width, track.Max.Y))
		knobX := track.Min.X + width
		place(knob, image.Rect(knobX-9, centerY-9, knobX+9, centerY+9))
		setText(value, fmt.Sprintf("%d %s", current, spec.Unit))
		fill.Refresh()
		knob.Refresh()
	})
}

func color4(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
