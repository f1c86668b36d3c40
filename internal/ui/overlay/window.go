// Package overlay hosts the widget in a frameless fyne window: it runs the
// frame loop, forwards pointer and keyboard input to the controller, shows
// file pickers on request and draws page flips from offscreen captures.
package overlay

import (
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/software"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"livingclock/internal/core/app"
	"livingclock/internal/ui/backdrop"
	"livingclock/internal/ui/flip"
	"livingclock/internal/ui/pages"
)

// DefaultFrameRate is the number of frames rendered per second.
const DefaultFrameRate = 60

// hiddenTick keeps the timer and tray current while the window is hidden.
const hiddenTick = time.Second

var (
	imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif"}
	soundExtensions = []string{".wav", ".mp3", ".ogg", ".flac"}
)

// Config defines the window behaviour.
type Config struct {
	// Opacity is the whole-window alpha where the platform supports it.
	Opacity   uint8
	FrameRate int
	Logger    *slog.Logger
	// OnFrame observes every rendered view.
	OnFrame func(app.View)
	// OnQuit runs once when the controller asks to exit.
	OnQuit func()
}

// Window is the widget window.
type Window struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     Config
	controller *app.Controller
	logger     *slog.Logger

	live       *pages.Renderer
	offscreen  *pages.Renderer
	capture    test.WindowlessCanvas
	builder    *backdrop.Builder
	flipLayer  *fyne.Container
	flipBack   *canvas.Image
	flipImage  *canvas.Image
	pickerOpen bool
	quitting   bool
	hidden     bool

	cancelCtx context.CancelFunc
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the widget window. It is not shown until Show.
func New(fyneApp fyne.App, controller *app.Controller, config Config) *Window {
	if config.FrameRate <= 0 {
		config.FrameRate = DefaultFrameRate
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	window := fyneApp.NewWindow("Living Clock")
	if driver, ok := fyneApp.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if fyneApp.Icon() != nil {
		window.SetIcon(fyneApp.Icon())
	}
	window.SetPadded(false)

	builder := backdrop.NewBuilder(config.Logger)
	overlay := &Window{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		controller: controller,
		logger:     config.Logger,
		live:       pages.NewRenderer(builder),
		offscreen:  pages.NewRenderer(nil),
		capture:    software.NewTransparentCanvas(),
		builder:    builder,
		flipBack:   canvas.NewImageFromImage(nil),
		flipImage:  canvas.NewImageFromImage(nil),
	}
	overlay.flipBack.FillMode = canvas.ImageFillStretch
	overlay.flipImage.FillMode = canvas.ImageFillStretch
	overlay.flipLayer = container.NewStack(overlay.flipBack, overlay.flipImage)
	overlay.flipLayer.Hide()

	overlay.capture.SetPadded(false)
	overlay.capture.SetContent(overlay.offscreen.Object())
	overlay.capture.Resize(fyne.NewSize(app.Width, app.Height))

	input := newInputLayer(overlay)
	window.SetContent(container.NewStack(overlay.live.Object(), overlay.flipLayer, input))
	window.Resize(fyne.NewSize(app.Width, app.Height))
	window.SetFixedSize(true)
	window.Canvas().SetOnTypedRune(overlay.typedRune)
	window.Canvas().SetOnTypedKey(overlay.typedKey)

	overlay.live.Update(controller.Frame(time.Now()))
	return overlay
}

// Show displays the window and starts the frame loop.
func (overlay *Window) Show() {
	overlay.window.CenterOnScreen()
	overlay.window.Show()
	overlay.window.RequestFocus()
	if alpha, ok := overlay.nativeOpacity(); ok {
		overlay.applyNativeOpacity(alpha)
	}
	overlay.hidden = false
	overlay.start(time.Second / time.Duration(overlay.config.FrameRate))
}

// Hide hides the window. Frames keep running at a slow rate without drawing
// so completions still chime.
func (overlay *Window) Hide() {
	overlay.window.Hide()
	overlay.hidden = true
	overlay.start(hiddenTick)
}

// Toggle shows a hidden window and hides a visible one.
func (overlay *Window) Toggle() {
	if overlay.cancelCtx != nil && !overlay.hidden {
		overlay.Hide()
		return
	}
	overlay.Show()
}

// nativeOpacity reports the window alpha to apply, if the platform can
// make the window translucent and the configured opacity is partial.
func (overlay *Window) nativeOpacity() (uint8, bool) {
	alpha := overlay.config.Opacity
	if !overlay.controller.State().Capabilities.Transparency {
		return 0, false
	}
	return alpha, alpha > 0 && alpha < 255
}

func (overlay *Window) start(interval time.Duration) {
	overlay.stop()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(overlay.frame)
			}
		}
	}()
}

func (overlay *Window) stop() {
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
}

func (overlay *Window) frame() {
	if overlay.quitting {
		return
	}
	view := overlay.controller.Frame(time.Now())
	if view.Quit {
		overlay.quit()
		return
	}

	switch {
	case overlay.hidden:
	case view.Flipping():
		overlay.drawFlip(view)
	default:
		if !overlay.flipLayer.Hidden {
			overlay.flipLayer.Hide()
			overlay.live.Object().Show()
		}
		overlay.live.Update(view)
	}

	if overlay.config.OnFrame != nil {
		overlay.config.OnFrame(view)
	}
	overlay.handlePick()
}

// drawFlip renders the visible page offscreen and shows it squeezed by the
// transition distortion over the static background.
func (overlay *Window) drawFlip(view app.View) {
	overlay.offscreen.Update(view)
	captured := overlay.capture.Capture()

	background := overlay.builder.Image(view.Settings, image.Pt(app.Width, app.Height))
	if overlay.flipBack.Image != background {
		overlay.flipBack.Image = background
		overlay.flipBack.Refresh()
	}
	overlay.flipImage.Image = flip.Resample(captured, view.Distortion)
	overlay.flipImage.Refresh()

	if overlay.flipLayer.Hidden {
		overlay.live.Object().Hide()
		overlay.flipLayer.Show()
	}
}

func (overlay *Window) quit() {
	overlay.quitting = true
	overlay.stop()
	if overlay.config.OnQuit != nil {
		overlay.config.OnQuit()
	}
}

func (overlay *Window) dispatch(action app.Action) {
	if err := overlay.controller.Dispatch(action); err != nil {
		overlay.logAction(action, err)
	}
}

func (overlay *Window) logAction(action app.Action, err error) {
	if errors.Is(err, app.ErrWrongPage) {
		overlay.logger.Debug("action ignored", "action", action.Kind.String(), "error", err)
		return
	}
	overlay.logger.Warn("action failed", "action", action.Kind.String(), "error", err)
}

func (overlay *Window) pressed(position fyne.Position) {
	if _, err := overlay.controller.Click(toPoint(position)); err != nil {
		overlay.logger.Warn("click failed", "error", err)
	}
}

func (overlay *Window) dragged(position fyne.Position) {
	if err := overlay.controller.Drag(toPoint(position)); err != nil {
		overlay.logger.Warn("drag failed", "error", err)
	}
}

func (overlay *Window) released() {
	overlay.controller.Release()
}

func (overlay *Window) typedRune(r rune) {
	overlay.dispatch(app.Action{Kind: app.ActionTypeText, Text: string(r)})
}

func (overlay *Window) typedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyBackspace:
		overlay.dispatch(app.Action{Kind: app.ActionBackspace})
	case fyne.KeyReturn, fyne.KeyEnter:
		overlay.dispatch(app.Action{Kind: app.ActionEnter})
	case fyne.KeyEscape:
		overlay.dispatch(app.Action{Kind: app.ActionEscape})
	}
}

func (overlay *Window) handlePick() {
	if overlay.pickerOpen {
		return
	}
	pick := overlay.controller.TakePick()
	if pick == app.PickNone {
		return
	}

	kind, extensions := app.ActionSetCustomBackground, imageExtensions
	if pick == app.PickSound {
		kind, extensions = app.ActionSetSoundPath, soundExtensions
	}
	overlay.pickerOpen = true
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		overlay.pickerOpen = false
		if err != nil {
			overlay.logger.Warn("file picker failed", "error", err)
			return
		}
		if reader == nil {
			overlay.dispatch(app.Action{Kind: kind})
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		overlay.dispatch(app.Action{Kind: kind, Path: path})
	}, overlay.window)
	picker.SetFilter(storage.NewExtensionFileFilter(extensions))
	picker.Resize(fyne.NewSize(app.Width-40, app.Height-60))
	picker.Show()
}

func toPoint(position fyne.Position) image.Point {
	return image.Pt(int(position.X), int(position.Y))
}

// inputLayer covers the window and turns pointer events into controller input.
type inputLayer struct {
	widget.BaseWidget
	overlay *Window
}

var (
	_ desktop.Mouseable = (*inputLayer)(nil)
	_ fyne.Draggable    = (*inputLayer)(nil)
)

func newInputLayer(overlay *Window) *inputLayer {
	layer := &inputLayer{overlay: overlay}
	layer.ExtendBaseWidget(layer)
	return layer
}

func (layer *inputLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (layer *inputLayer) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		layer.overlay.pressed(event.Position)
	}
}

func (layer *inputLayer) MouseUp(*desktop.MouseEvent) {
	layer.overlay.released()
}

func (layer *inputLayer) Dragged(event *fyne.DragEvent) {
	layer.overlay.dragged(event.Position)
}

func (layer *inputLayer) DragEnd() {
	layer.overlay.released()
}
