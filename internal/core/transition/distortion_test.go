package transition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistortionRestingEndpoints(t *testing.T) {
	for _, direction := range []Direction{Forward, Backward} {
		for _, progress := range []float64{0, 1} {
			distortion := ComputeDistortion(progress, direction)
			assert.Equal(t, 1.0, distortion.WidthFraction(), "progress %v %s", progress, direction)
			assert.Equal(t, 0.0, distortion.Shift, "progress %v %s", progress, direction)
			assert.True(t, distortion.Identity())
			assert.Equal(t, 600, distortion.VisibleWidth(600))
			assert.Equal(t, 0, distortion.Left(600))
			assert.Equal(t, 0.0, distortion.RowOffset(0, 600))
		}
	}
}

func TestDistortionEdgeOnAtHalfway(t *testing.T) {
	distortion := ComputeDistortion(0.5, Forward)
	assert.InDelta(t, 0.5, distortion.Eased, 1e-12)
	assert.InDelta(t, 0, distortion.WidthFraction(), 1e-9)
	assert.InDelta(t, DefaultShiftAmount, distortion.Shift, 1e-9)
	assert.Equal(t, 300, distortion.Left(600))
}

func TestDistortionDirectionSign(t *testing.T) {
	forward := ComputeDistortion(0.3, Forward)
	backward := ComputeDistortion(0.3, Backward)
	assert.Greater(t, forward.Shift, 0.0)
	assert.Less(t, backward.Shift, 0.0)
	assert.InDelta(t, forward.Shift, -backward.Shift, 1e-12)
}

func TestRowOffsetSymmetry(t *testing.T) {
	distortion := ComputeDistortion(0.4, Forward)
	height := 600

	assert.InDelta(t, -distortion.Shift, distortion.RowOffset(0, height), 1e-9)
	assert.InDelta(t, 0, distortion.RowOffset(300, height), 1e-9)
	assert.InDelta(t, distortion.RowOffset(100, height), -distortion.RowOffset(500, height), 1e-9)
	assert.Equal(t, 0.0, distortion.RowOffset(10, 0))
}

func TestEaseInOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, EaseInOutQuad(tt.in), 1e-12, "ease(%v)", tt.in)
	}
}

func TestDistortionClampsProgress(t *testing.T) {
	assert.Equal(t, ComputeDistortion(0, Forward), ComputeDistortion(-2, Forward))
	assert.Equal(t, ComputeDistortion(1, Forward), ComputeDistortion(7, Forward))
	assert.False(t, math.IsNaN(ComputeDistortion(0.73, Backward).ScaleX))
}
