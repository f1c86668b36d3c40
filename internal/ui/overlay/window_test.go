package overlay

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingclock/internal/core/app"
	"livingclock/internal/core/model"
	"livingclock/internal/core/tasks"
	"livingclock/internal/core/transition"
)

type nopTasks struct{}

func (nopTasks) Load() ([]tasks.Item, error) { return nil, nil }
func (nopTasks) Save([]tasks.Item) error     { return nil }

func newTestWindow(t *testing.T, config Config) (*Window, *app.Controller) {
	t.Helper()
	return newTestWindowWith(t, config, app.Capabilities{})
}

func newTestWindowWith(t *testing.T, config Config, capabilities app.Capabilities) (*Window, *app.Controller) {
	t.Helper()
	fyneApp := test.NewTempApp(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller, err := app.New(app.Deps{
		Settings:     model.DefaultSettings(),
		Tasks:        tasks.Open(nopTasks{}, logger),
		Logger:       logger,
		Capabilities: capabilities,
	})
	require.NoError(t, err)
	config.Logger = logger
	return New(fyneApp, controller, config), controller
}

func TestFlipShowsCapturedPage(t *testing.T) {
	overlay, controller := newTestWindow(t, Config{})

	overlay.dispatch(app.Action{Kind: app.ActionOpenWeather})
	overlay.frame()
	assert.False(t, overlay.flipLayer.Hidden)
	assert.False(t, overlay.live.Object().Visible())
	require.NotNil(t, overlay.flipImage.Image)
	assert.Equal(t, image.Rect(0, 0, app.Width, app.Height), overlay.flipImage.Image.Bounds())

	for index := 0; index < 25; index++ {
		overlay.frame()
	}
	assert.True(t, overlay.flipLayer.Hidden)
	assert.True(t, overlay.live.Object().Visible())
	assert.Equal(t, transition.PageWeather, controller.Committed())
}

func TestKeyboardRoutesToController(t *testing.T) {
	var quits int
	overlay, controller := newTestWindow(t, Config{OnQuit: func() { quits++ }})

	overlay.dispatch(app.Action{Kind: app.ActionToggleInput})
	overlay.typedRune('h')
	overlay.typedRune('i')
	overlay.typedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, "h", controller.State().Input.Text)

	overlay.typedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.False(t, controller.State().Input.Active)

	overlay.typedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	overlay.frame()
	overlay.frame()
	assert.Equal(t, 1, quits)
}

func TestPointerRoutesToController(t *testing.T) {
	var views int
	overlay, controller := newTestWindow(t, Config{OnFrame: func(app.View) { views++ }})

	add, ok := app.Find(controller.Layout(), app.RegionAddTask)
	require.True(t, ok)
	overlay.pressed(fyne.NewPos(float32(add.Rect.Min.X+5), float32(add.Rect.Min.Y+5)))
	overlay.released()
	assert.True(t, controller.State().Input.Active)

	overlay.frame()
	assert.Equal(t, 1, views)
}

func TestToPoint(t *testing.T) {
	assert.Equal(t, image.Pt(12, 40), toPoint(fyne.NewPos(12.7, 40.2)))
}

func TestHiddenWindowKeepsObservingWithoutDrawing(t *testing.T) {
	var views int
	overlay, _ := newTestWindow(t, Config{OnFrame: func(app.View) { views++ }})
	overlay.Hide()
	overlay.stop()

	overlay.dispatch(app.Action{Kind: app.ActionOpenWeather})
	overlay.frame()
	assert.Equal(t, 1, views)
	assert.True(t, overlay.flipLayer.Hidden)
	assert.Nil(t, overlay.flipImage.Image)
}

func TestNativeOpacityNeedsTransparency(t *testing.T) {
	plain, _ := newTestWindowWith(t, Config{Opacity: 200}, app.Capabilities{})
	_, ok := plain.nativeOpacity()
	assert.False(t, ok)

	translucent, _ := newTestWindowWith(t, Config{Opacity: 200}, app.Capabilities{Transparency: true})
	alpha, ok := translucent.nativeOpacity()
	assert.True(t, ok)
	assert.Equal(t, uint8(200), alpha)

	opaque, _ := newTestWindowWith(t, Config{Opacity: 255}, app.Capabilities{Transparency: true})
	_, ok = opaque.nativeOpacity()
	assert.False(t, ok)
}
