// Package pages draws the widget pages with fyne canvas objects. Each page
// keeps one object tree built from the controller's layout regions; the tree
// is rebuilt only when the layout changes and is otherwise updated in place
// from every frame's view.
package pages

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"livingclock/internal/core/app"
	"livingclock/internal/core/model"
	"livingclock/internal/core/transition"
	"livingclock/internal/ui/backdrop"
)

var (
	panelFill   = color.NRGBA{R: 0, G: 0, B: 0, A: 110}
	buttonFill  = color.NRGBA{R: 255, G: 255, B: 255, A: 36}
	inputFill   = color.NRGBA{R: 0, G: 0, B: 0, A: 140}
	mutedText   = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	whiteText   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	outline     = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
	transparent = color.NRGBA{}
)

var regionIcons = map[string]func() fyne.Resource{
	app.RegionSettingsButton: theme.SettingsIcon,
	app.RegionWeatherButton:  theme.InfoIcon,
	app.RegionPomodoroButton: theme.HistoryIcon,
	app.RegionCloseButton:    theme.CancelIcon,
	app.RegionAddTask:        theme.ContentAddIcon,
}

// Renderer owns the object trees of every page.
type Renderer struct {
	root       *fyne.Container
	background *canvas.Image
	backdrop   *backdrop.Builder
	pages      map[transition.Page]*pageView
	shown      *pageView
}

type pageView struct {
	container *fyne.Container
	regions   []app.Region
	updates   []func(app.View)
}

// NewRenderer creates a renderer. A nil builder draws pages over a
// transparent background, which is how flip frames are captured.
func NewRenderer(builder *backdrop.Builder) *Renderer {
	renderer := &Renderer{
		root:     container.NewStack(),
		backdrop: builder,
		pages:    make(map[transition.Page]*pageView),
	}
	if builder != nil {
		renderer.background = canvas.NewImageFromImage(nil)
		renderer.background.FillMode = canvas.ImageFillStretch
	}
	return renderer
}

// Object is the root canvas object.
func (renderer *Renderer) Object() fyne.CanvasObject {
	return renderer.root
}

// Update draws view.
func (renderer *Renderer) Update(view app.View) {
	if renderer.background != nil {
		img := renderer.backdrop.Image(view.Settings, image.Pt(app.Width, app.Height))
		if renderer.background.Image != img {
			renderer.background.Image = img
			renderer.background.Refresh()
		}
	}

	page := renderer.pages[view.Page]
	if page == nil || !sameLayout(page.regions, view.Regions) {
		page = build(view)
		renderer.pages[view.Page] = page
	}
	if renderer.shown != page {
		renderer.shown = page
		objects := []fyne.CanvasObject{page.container}
		if renderer.background != nil {
			objects = []fyne.CanvasObject{renderer.background, page.container}
		}
		renderer.root.Objects = objects
		renderer.root.Refresh()
	}
	for _, update := range page.updates {
		update(view)
	}
}

// sameLayout reports whether two region slices are the same cached layout.
func sameLayout(a, b []app.Region) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

func build(view app.View) *pageView {
	page := &pageView{
		container: container.NewWithoutLayout(),
		regions:   view.Regions,
	}
	for _, region := range view.Regions {
		page.drawRegion(region, view.Settings)
	}
	switch view.Page {
	case transition.PageMain:
		buildMain(page, view)
	case transition.PageSettings:
		buildSettings(page, view)
	case transition.PageWeather:
		buildWeather(page)
	case transition.PagePomodoro:
		buildPomodoro(page, view)
	case transition.PagePomodoroAdjust:
		buildAdjust(page, view)
	}
	return page
}

func (page *pageView) add(objects ...fyne.CanvasObject) {
	for _, object := range objects {
		page.container.Add(object)
	}
}

func (page *pageView) onUpdate(update func(app.View)) {
	page.updates = append(page.updates, update)
}

func (page *pageView) drawRegion(region app.Region, settings model.Settings) {
	accent := settings.ThemeColor()
	switch region.Kind {
	case app.KindPanel:
		page.add(box(region.Rect, panelFill, 18))
	case app.KindButton:
		fill := buttonFill
		if region.Selected {
			fill = withAlpha(accent, 200)
		}
		page.add(box(region.Rect, fill, 8))
		if icon, ok := regionIcons[region.ID]; ok {
			glyph := canvas.NewImageFromResource(icon())
			glyph.FillMode = canvas.ImageFillContain
			page.add(place(glyph, region.Rect.Inset(5)))
			return
		}
		page.add(label(region.Label, region.Rect, 15, whiteText, true))
	case app.KindSwatch:
		fill := swatchColor(region)
		swatch := box(region.Rect, fill, 8)
		if region.Selected {
			swatch.StrokeColor = outline
			swatch.StrokeWidth = 3
		}
		page.add(swatch, label(region.Label, region.Rect, 13, contrast(fill), false))
	case app.KindBackground:
		page.add(place(thumbnail(region.Action.Name, settings, region.Rect.Size()), region.Rect))
		if region.Selected {
			frame := box(region.Rect, transparent, 6)
			frame.StrokeColor = outline
			frame.StrokeWidth = 3
			page.add(frame)
		}
	case app.KindTask:
		check := image.Rect(region.Rect.Min.X, region.Rect.Min.Y+3, region.Rect.Min.X+18, region.Rect.Min.Y+21)
		mark := box(check, transparent, 4)
		mark.StrokeColor = accent
		mark.StrokeWidth = 2
		textColor := settings.DigitColor()
		if region.Selected {
			mark.FillColor = accent
			textColor = mutedText
		}
		text := canvas.NewText(region.Label, textColor)
		text.TextSize = 16
		text.TextStyle.Italic = region.Selected
		page.add(mark, place(text, image.Rect(region.Rect.Min.X+28, region.Rect.Min.Y, region.Rect.Max.X, region.Rect.Max.Y)))
	case app.KindTaskDelete:
		glyph := canvas.NewImageFromResource(theme.DeleteIcon())
		glyph.FillMode = canvas.ImageFillContain
		page.add(place(glyph, region.Rect.Inset(3)))
	case app.KindInput:
		page.add(box(region.Rect, inputFill, 8))
		text := canvas.NewText("", whiteText)
		text.TextSize = 16
		page.add(place(text, region.Rect.Inset(10)))
		page.onUpdate(func(view app.View) {
			setText(text, view.Input.Text+"_")
		})
	case app.KindSlider:
		page.drawSlider(region, settings)
	}
}

func swatchColor(region app.Region) color.NRGBA {
	if region.Action.Kind == app.ActionSelectDigitColor {
		return model.DigitColors[region.Action.Name]
	}
	return model.Themes[region.Action.Name]
}

func thumbnail(id string, settings model.Settings, size image.Point) *canvas.Image {
	var img image.Image = backdrop.Gradient(id, size)
	if id == model.BackgroundCustom {
		if custom, err := backdrop.LoadCustom(settings.CustomBackgroundPath, size); err == nil {
			img = custom
		}
	}
	thumb := canvas.NewImageFromImage(img)
	thumb.FillMode = canvas.ImageFillStretch
	return thumb
}

func box(rect image.Rectangle, fill color.Color, radius float32) *canvas.Rectangle {
	rectangle := canvas.NewRectangle(fill)
	rectangle.CornerRadius = radius
	place(rectangle, rect)
	return rectangle
}

func label(value string, rect image.Rectangle, size float32, fill color.Color, bold bool) *canvas.Text {
	text := canvas.NewText(value, fill)
	text.TextSize = size
	text.TextStyle.Bold = bold
	text.Alignment = fyne.TextAlignCenter
	place(text, rect)
	return text
}

func place(object fyne.CanvasObject, rect image.Rectangle) fyne.CanvasObject {
	object.Move(fyne.NewPos(float32(rect.Min.X), float32(rect.Min.Y)))
	object.Resize(fyne.NewSize(float32(rect.Dx()), float32(rect.Dy())))
	return object
}

func setText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}

func setColor(text *canvas.Text, fill color.NRGBA) {
	if current, ok := text.Color.(color.NRGBA); ok && current == fill {
		return
	}
	text.Color = fill
	text.Refresh()
}

func withAlpha(value color.NRGBA, alpha uint8) color.NRGBA {
	value.A = alpha
	return value
}

func contrast(fill color.NRGBA) color.NRGBA {
	luma := 0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)
	if luma > 150 {
		return color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	}
	return whiteText
}

func shortPath(path string) string {
	if path == "" {
		return "Built-in chime"
	}
	name := filepath.Base(path)
	if len(name) > 36 {
		name = name[:33] + "..."
	}
	return strings.TrimSpace(name)
}
