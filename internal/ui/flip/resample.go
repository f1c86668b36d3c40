// Package flip renders a page image through a transition distortion.
package flip

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"livingclock/internal/core/transition"
)

// Resample returns a copy of src squeezed horizontally to the distortion's
// visible width, centered, with each scanline shifted by its row offset.
// The output has the bounds of src, translated to the origin; uncovered
// pixels are transparent.
func Resample(src image.Image, distortion transition.Distortion) *image.NRGBA {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}

	if distortion.Identity() {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		return dst
	}

	visible := distortion.VisibleWidth(width)
	if visible < 1 {
		return dst
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, visible, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, xdraw.Src, nil)

	left := distortion.Left(width)
	for y := 0; y < height; y++ {
		x := left + int(math.Round(distortion.RowOffset(y, height)))
		from, to := 0, visible
		if x < 0 {
			from = -x
		}
		if x+visible > width {
			to = width - x
		}
		if from >= to {
			continue
		}
		srcOffset := scaled.PixOffset(from, y)
		dstOffset := dst.PixOffset(x+from, y)
		copy(dst.Pix[dstOffset:dstOffset+4*(to-from)], scaled.Pix[srcOffset:srcOffset+4*(to-from)])
	}
	return dst
}
