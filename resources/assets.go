// Package resources draws the widget's built-in artwork and sound. Nothing is
// loaded from disk, so the binary runs without an asset directory.
package resources

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	// SpriteSize is the edge of the square mascot sprites.
	SpriteSize = 160

	chimeSampleRate = 44100
	chimeDuration   = 0.9
)

var (
	spriteCache sync.Map
	logoCache   sync.Map

	chimeOnce sync.Once
	chimeData []byte
)

var (
	skinColor  = color.NRGBA{R: 255, G: 226, B: 204, A: 255}
	hairColor  = color.NRGBA{R: 92, G: 64, B: 120, A: 255}
	eyeColor   = color.NRGBA{R: 40, G: 30, B: 60, A: 255}
	blushColor = color.NRGBA{R: 255, G: 128, B: 150, A: 170}
	mouthColor = color.NRGBA{R: 180, G: 80, B: 90, A: 255}
)

// Sprite returns the mascot frame for the given eye state (0 open, 1 half,
// 2 closed) with or without blush.
func Sprite(blush bool, frame int) image.Image {
	key := fmt.Sprintf("%t/%d", blush, frame)
	if cached, ok := spriteCache.Load(key); ok {
		return cached.(image.Image)
	}
	sprite := drawSprite(blush, frame)
	spriteCache.Store(key, sprite)
	return sprite
}

// Logo returns the application icon tinted with accent.
func Logo(accent color.NRGBA) fyne.Resource {
	key := fmt.Sprintf("logo-%02x%02x%02x", accent.R, accent.G, accent.B)
	return loadResource(key, &logoCache, func() image.Image { return drawLogo(accent) })
}

// ChimeWAV returns a short two-tone chime as a 16-bit mono WAV file.
func ChimeWAV() []byte {
	chimeOnce.Do(func() { chimeData = synthChime() })
	return chimeData
}

func loadResource(name string, cache *sync.Map, draw func() image.Image) fyne.Resource {
	if cached, ok := cache.Load(name); ok {
		return cached.(fyne.Resource)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, draw()); err != nil {
		panic(fmt.Errorf("encode resource %s: %w", name, err))
	}

	resource := fyne.NewStaticResource(name+".png", buffer.Bytes())
	cache.Store(name, resource)
	return resource
}

func drawSprite(blush bool, frame int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	center := float64(SpriteSize) / 2

	fillEllipse(canvas, center, center+6, 62, 60, skinColor)
	fillEllipse(canvas, center, center-34, 70, 36, hairColor)
	fillEllipse(canvas, center-58, center-4, 14, 34, hairColor)
	fillEllipse(canvas, center+58, center-4, 14, 34, hairColor)

	eyeY := center + 8
	for _, eyeX := range []float64{center - 24, center + 24} {
		switch frame {
		case 0:
			fillEllipse(canvas, eyeX, eyeY, 9, 12, eyeColor)
			fillEllipse(canvas, eyeX+3, eyeY-4, 3, 3, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		case 1:
			fillEllipse(canvas, eyeX, eyeY+3, 9, 5, eyeColor)
		default:
			fillEllipse(canvas, eyeX, eyeY+5, 10, 2, eyeColor)
		}
	}
	if blush {
		fillEllipse(canvas, center-36, center+26, 12, 6, blushColor)
		fillEllipse(canvas, center+36, center+26, 12, 6, blushColor)
	}
	fillEllipse(canvas, center, center+36, 7, 3, mouthColor)
	return canvas
}

func drawLogo(accent color.NRGBA) *image.NRGBA {
	const size = 64
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillEllipse(canvas, size/2, size/2, 30, 30, accent)
	fillEllipse(canvas, size/2, size/2, 24, 24, color.NRGBA{R: 30, G: 30, B: 40, A: 255})
	hand := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 14; y <= size/2; y++ {
		canvas.SetNRGBA(size/2, y, hand)
		canvas.SetNRGBA(size/2+1, y, hand)
	}
	for x := size / 2; x <= size/2+14; x++ {
		canvas.SetNRGBA(x, size/2, hand)
		canvas.SetNRGBA(x, size/2+1, hand)
	}
	return canvas
}

// fillEllipse alpha-blends an axis-aligned ellipse onto canvas.
func fillEllipse(canvas *image.NRGBA, cx, cy, rx, ry float64, fill color.NRGBA) {
	bounds := canvas.Bounds()
	minX, maxX := int(math.Floor(cx-rx)), int(math.Ceil(cx+rx))
	minY, maxY := int(math.Floor(cy-ry)), int(math.Ceil(cy+ry))
	for y := max(minY, bounds.Min.Y); y < min(maxY+1, bounds.Max.Y); y++ {
		for x := max(minX, bounds.Min.X); x < min(maxX+1, bounds.Max.X); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			canvas.SetNRGBA(x, y, blend(canvas.NRGBAAt(x, y), fill))
		}
	}
}

func blend(dst, src color.NRGBA) color.NRGBA {
	if src.A == 255 || dst.A == 0 {
		return src
	}
	alpha := float64(src.A) / 255
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-alpha) + float64(b)*alpha))
	}
	return color.NRGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: max(dst.A, src.A),
	}
}

func synthChime() []byte {
	samples := int(chimeSampleRate * chimeDuration)
	pcm := make([]int16, samples)
	for i := range pcm {
		t := float64(i) / chimeSampleRate
		envelope := math.Exp(-4 * t)
		second := 0.0
		if t > 0.18 {
			second = math.Sin(2*math.Pi*1318.5*(t-0.18)) * math.Exp(-4*(t-0.18))
		}
		value := 0.45 * (envelope*math.Sin(2*math.Pi*880*t) + second)
		pcm[i] = int16(max(-1, min(1, value)) * math.MaxInt16)
	}

	var buffer bytes.Buffer
	dataSize := uint32(len(pcm) * 2)
	buffer.WriteString("RIFF")
	_ = binary.Write(&buffer, binary.LittleEndian, 36+dataSize)
	buffer.WriteString("WAVEfmt ")
	_ = binary.Write(&buffer, binary.LittleEndian, struct {
		Size          uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{16, 1, 1, chimeSampleRate, chimeSampleRate * 2, 2, 16})
	buffer.WriteString("data")
	_ = binary.Write(&buffer, binary.LittleEndian, dataSize)
	_ = binary.Write(&buffer, binary.LittleEndian, pcm)
	return buffer.Bytes()
}
