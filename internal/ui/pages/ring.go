package pages

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2/canvas"
)

const ringThickness = 14

// ring is the pomodoro progress ring: a full track with a fill arc drawn
// clockwise from twelve o'clock on top.
type ring struct {
	track *canvas.Arc
	fill  *canvas.Arc
}

func newRing(rect image.Rectangle, track, fill color.NRGBA) *ring {
	cutout := cutoutRatio(min(rect.Dx(), rect.Dy()))
	progress := &ring{
		track: canvas.NewArc(0, 360, cutout, track),
		fill:  canvas.NewArc(0, 0, cutout, fill),
	}
	place(progress.track, rect)
	place(progress.fill, rect)
	return progress
}

// set moves the fill arc to progress and recolors it. Unchanged values do not
// trigger a refresh.
func (progress *ring) set(value float64, fill color.NRGBA) {
	end := float32(clamp01(value) * 360)
	if progress.fill.EndAngle == end && progress.fill.FillColor == color.Color(fill) {
		return
	}
	progress.fill.EndAngle = end
	progress.fill.FillColor = fill
	progress.fill.Refresh()
}

func cutoutRatio(size int) float32 {
	radius := float64(size) / 2
	if radius <= ringThickness {
		return 0
	}
	return float32((radius - ringThickness) / radius)
}

func clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
