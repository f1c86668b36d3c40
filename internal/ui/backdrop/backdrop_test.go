package backdrop

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingclock/internal/core/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGradientEndpoints(t *testing.T) {
	img := Gradient(model.BackgroundAlt, image.Pt(10, 50))
	assert.Equal(t, gradients[model.BackgroundAlt].top, img.NRGBAAt(5, 0))
	assert.Equal(t, gradients[model.BackgroundAlt].bottom, img.NRGBAAt(5, 49))

	unknown := Gradient("nope", image.Pt(4, 4))
	assert.Equal(t, gradients[model.BackgroundDefault].top, unknown.NRGBAAt(0, 0))
}

func TestRoundCorners(t *testing.T) {
	img := Gradient(model.BackgroundDefault, image.Pt(100, 80))
	RoundCorners(img, CornerRadius)

	for _, corner := range []image.Point{{0, 0}, {99, 0}, {0, 79}, {99, 79}} {
		assert.Zero(t, img.NRGBAAt(corner.X, corner.Y).A, "corner %v", corner)
	}
	assert.Equal(t, uint8(255), img.NRGBAAt(50, 0).A)
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 40).A)
	assert.Equal(t, uint8(255), img.NRGBAAt(CornerRadius, CornerRadius).A)
}

func TestDimDarkens(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	Dim(img, OverlayAlpha)
	got := img.NRGBAAt(0, 0)
	assert.Less(t, got.R, uint8(200))
	assert.Equal(t, uint8(255), got.A)
}

func TestBuilderCustomImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	src := imaging.New(300, 100, color.NRGBA{R: 255, A: 255})
	require.NoError(t, imaging.Save(src, path))

	settings := model.DefaultSettings()
	settings.Background = model.BackgroundCustom
	settings.CustomBackgroundPath = path

	builder := NewBuilder(quietLogger())
	img := builder.Image(settings, image.Pt(120, 120))
	assert.Equal(t, image.Rect(0, 0, 120, 120), img.Bounds())
	center := img.NRGBAAt(60, 60)
	assert.Greater(t, center.R, center.G)

	assert.Same(t, img, builder.Image(settings, image.Pt(120, 120)))
	assert.NotSame(t, img, builder.Image(settings, image.Pt(60, 60)))
}

func TestBuilderFallsBackWhenCustomMissing(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Background = model.BackgroundCustom
	settings.CustomBackgroundPath = filepath.Join(t.TempDir(), "missing.png")

	img := NewBuilder(quietLogger()).Image(settings, image.Pt(50, 50))
	want := Gradient(model.BackgroundDefault, image.Pt(50, 50))
	Dim(want, OverlayAlpha)
	RoundCorners(want, CornerRadius)
	assert.Equal(t, want.Pix, img.Pix)
}
