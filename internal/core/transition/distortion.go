package transition

import "math"

// DefaultShiftAmount is the perspective shift in pixels at the edge rows
// when the card is edge-on.
const DefaultShiftAmount = 50.0

// Distortion describes how a full page image is resampled for one frame.
// It is a pure function of progress and direction.
type Distortion struct {
	Progress  float64
	Eased     float64
	ScaleX    float64
	Direction Direction
	// Shift is the horizontal offset applied to the top and bottom rows.
	Shift float64
}

// EaseInOutQuad is the easing curve of the flip.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -2*t*t + 4*t - 1
}

// ComputeDistortion computes the distortion for progress in [0,1].
func ComputeDistortion(progress float64, direction Direction) Distortion {
	return ComputeDistortionWithShift(progress, direction, DefaultShiftAmount)
}

// ComputeDistortionWithShift is ComputeDistortion with an explicit shift amount.
func ComputeDistortionWithShift(progress float64, direction Direction, shiftAmount float64) Distortion {
	progress = clamp01(progress)
	if direction != Backward {
		direction = Forward
	}
	eased := EaseInOutQuad(progress)
	scaleX := math.Cos(eased * math.Pi)
	widthFraction := math.Abs(scaleX)
	shift := (1 - widthFraction) * shiftAmount * float64(direction)
	if shift == 0 {
		// normalize -0
		shift = 0
	}
	return Distortion{
		Progress:  progress,
		Eased:     eased,
		ScaleX:    scaleX,
		Direction: direction,
		Shift:     shift,
	}
}

// WidthFraction is the visible fraction of the full width.
func (distortion Distortion) WidthFraction() float64 {
	return math.Abs(distortion.ScaleX)
}

// VisibleWidth returns the scaled width in pixels for a full width.
func (distortion Distortion) VisibleWidth(fullWidth int) int {
	return int(float64(fullWidth) * distortion.WidthFraction())
}

// Left returns the x position that centers the scaled page.
func (distortion Distortion) Left(fullWidth int) int {
	return (fullWidth - distortion.VisibleWidth(fullWidth)) / 2
}

// RowOffset returns the horizontal shift of scanline y in an image of the
// given height. Rows above the center shift against rows below it.
func (distortion Distortion) RowOffset(y, height int) float64 {
	if height <= 0 {
		return 0
	}
	half := float64(height) / 2
	return distortion.Shift * ((float64(y) - half) / half)
}

// Identity reports whether the page renders undistorted.
func (distortion Distortion) Identity() bool {
	return distortion.WidthFraction() == 1 && distortion.Shift == 0
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
