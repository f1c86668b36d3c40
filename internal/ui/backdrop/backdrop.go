// Package backdrop produces the rounded, dimmed page background.
package backdrop

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"livingclock/internal/core/model"
)

const (
	// OverlayAlpha is the opacity of the black layer drawn over backgrounds.
	OverlayAlpha = 80
	// CornerRadius rounds the widget corners.
	CornerRadius = 25
)

type gradient struct {
	top, bottom color.NRGBA
}

var gradients = map[string]gradient{
	model.BackgroundDefault: {
		top:    color.NRGBA{R: 58, G: 42, B: 92, A: 255},
		bottom: color.NRGBA{R: 18, G: 20, B: 44, A: 255},
	},
	model.BackgroundAlt: {
		top:    color.NRGBA{R: 24, G: 82, B: 96, A: 255},
		bottom: color.NRGBA{R: 12, G: 26, B: 40, A: 255},
	},
}

type cacheKey struct {
	id   string
	path string
	size image.Point
}

// Builder renders backgrounds and caches the last result.
type Builder struct {
	logger *slog.Logger
	key    cacheKey
	image  *image.NRGBA
}

// NewBuilder creates a background builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Image returns the background selected by settings at size. A custom image
// that cannot be loaded falls back to the default gradient.
func (builder *Builder) Image(settings model.Settings, size image.Point) *image.NRGBA {
	key := cacheKey{id: settings.Background, size: size}
	if settings.Background == model.BackgroundCustom {
		key.path = settings.CustomBackgroundPath
	}
	if builder.image != nil && builder.key == key {
		return builder.image
	}

	var base *image.NRGBA
	if key.id == model.BackgroundCustom {
		custom, err := LoadCustom(key.path, size)
		if err != nil {
			builder.logger.Warn("custom background unavailable", "path", key.path, "error", err)
		} else {
			base = custom
		}
	}
	if base == nil {
		base = Gradient(key.id, size)
	}

	Dim(base, OverlayAlpha)
	RoundCorners(base, CornerRadius)
	builder.key, builder.image = key, base
	return base
}

// LoadCustom decodes the image at path and crops it to fill size.
func LoadCustom(path string, size image.Point) (*image.NRGBA, error) {
	if path == "" {
		return nil, fmt.Errorf("load background: empty path")
	}
	source, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load background: %w", err)
	}
	return imaging.Fill(source, size.X, size.Y, imaging.Center, imaging.Lanczos), nil
}

// Gradient draws the built-in background id. Unknown ids use the default.
func Gradient(id string, size image.Point) *image.NRGBA {
	colors, ok := gradients[id]
	if !ok {
		colors = gradients[model.BackgroundDefault]
	}
	img := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		t := 0.0
		if size.Y > 1 {
			t = float64(y) / float64(size.Y-1)
		}
		row := color.NRGBA{
			R: lerp(colors.top.R, colors.bottom.R, t),
			G: lerp(colors.top.G, colors.bottom.G, t),
			B: lerp(colors.top.B, colors.bottom.B, t),
			A: 255,
		}
		draw.Draw(img, image.Rect(0, y, size.X, y+1), &image.Uniform{C: row}, image.Point{}, draw.Src)
	}
	return img
}

// Dim draws black at alpha over img in place.
func Dim(img *image.NRGBA, alpha uint8) {
	overlay := &image.Uniform{C: color.NRGBA{A: alpha}}
	draw.Draw(img, img.Bounds(), overlay, image.Point{}, draw.Over)
}

// RoundCorners clears pixels outside the rounded rectangle of radius.
func RoundCorners(img *image.NRGBA, radius int) {
	bounds := img.Bounds()
	radius = min(radius, bounds.Dx()/2, bounds.Dy()/2)
	if radius <= 0 {
		return
	}
	r := float64(radius)
	for y := 0; y < radius; y++ {
		for x := 0; x < radius; x++ {
			dx := r - (float64(x) + 0.5)
			dy := r - (float64(y) + 0.5)
			if math.Hypot(dx, dy) <= r {
				continue
			}
			for _, point := range []image.Point{
				{bounds.Min.X + x, bounds.Min.Y + y},
				{bounds.Max.X - 1 - x, bounds.Min.Y + y},
				{bounds.Min.X + x, bounds.Max.Y - 1 - y},
				{bounds.Max.X - 1 - x, bounds.Max.Y - 1 - y},
			} {
				img.SetNRGBA(point.X, point.Y, color.NRGBA{})
			}
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
