package app

import (
	"image"

	"livingclock/internal/core/countdown"
	"livingclock/internal/core/model"
	"livingclock/internal/core/tasks"
	"livingclock/internal/core/transition"
)

// Window size in pixels.
const (
	Width  = 600
	Height = 600
)

// Region ids shared by the renderer and the input router.
const (
	RegionSettingsButton = "top.settings"
	RegionWeatherButton  = "top.weather"
	RegionPomodoroButton = "top.pomodoro"
	RegionCloseButton    = "top.close"

	RegionAddTask   = "main.add"
	RegionTaskInput = "main.input"

	RegionCustomBackground = "settings.background.add"
	RegionChooseSound      = "settings.sound"

	RegionWeatherPanel = "weather.panel"

	RegionPomodoroPanel = "pomodoro.panel"
	RegionAdjust        = "pomodoro.adjust"
	RegionRing          = "pomodoro.ring"
	RegionInfo          = "pomodoro.info"
	RegionStart         = "pomodoro.start"
	RegionReset         = "pomodoro.reset"
	RegionSkip          = "pomodoro.skip"
	RegionAuto          = "pomodoro.auto"
	RegionSoundToggle   = "pomodoro.sound"

	RegionSave = "adjust.save"
	RegionBack = "adjust.back"
)

// RegionKind tells the renderer how to draw a region.
type RegionKind int

const (
	KindButton RegionKind = iota
	KindSwatch
	KindBackground
	KindSlider
	KindTask
	KindTaskDelete
	KindInput
	KindPanel
	KindDisplay
)

// Region is one rectangle of a page. Regions without an action are drawn
// but never hit.
type Region struct {
	ID       string
	Kind     RegionKind
	Rect     image.Rectangle
	Action   Action
	Label    string
	Selected bool
}

// Interactive reports whether the region reacts to clicks.
func (region Region) Interactive() bool {
	return region.Action.Kind != ActionNone
}

// layoutKey captures everything a page layout depends on.
type layoutKey struct {
	page            transition.Page
	tasksVersion    uint64
	settingsVersion uint64
	inputActive     bool
	running         bool
	autoAdvance     bool
	mode            countdown.Mode
}

type layoutInput struct {
	settings model.Settings
	items    []tasks.Item
	input    TaskInput
	timer    countdown.State
}

func rect(x, y, width, height int) image.Rectangle {
	return image.Rect(x, y, x+width, y+height)
}

func topBar() []Region {
	return []Region{
		{ID: RegionSettingsButton, Kind: KindButton, Rect: rect(10, 10, 30, 30), Action: Action{Kind: ActionOpenSettings}, Label: "Settings"},
		{ID: RegionWeatherButton, Kind: KindButton, Rect: rect(50, 10, 30, 30), Action: Action{Kind: ActionOpenWeather}, Label: "Weather"},
		{ID: RegionPomodoroButton, Kind: KindButton, Rect: rect(90, 10, 30, 30), Action: Action{Kind: ActionOpenPomodoro}, Label: "Pomodoro"},
		{ID: RegionCloseButton, Kind: KindButton, Rect: rect(Width-40, 10, 30, 30), Action: Action{Kind: ActionClose}, Label: "Close"},
	}
}

// Task list geometry on the main page.
const (
	taskListTop    = Height/2 + 90
	taskRowHeight  = 28
	taskRowLimit   = Height - 90
	taskTextLeft   = 50
	taskTextWidth  = 400
	taskDeleteSize = 24
)

// MaxVisibleTasks is the number of task rows that fit on the main page.
const MaxVisibleTasks = (taskRowLimit - taskListTop) / taskRowHeight

func buildLayout(page transition.Page, in layoutInput) []Region {
	regions := topBar()
	switch page {
	case transition.PageMain:
		regions = append(regions, mainLayout(in)...)
	case transition.PageSettings:
		regions = append(regions, settingsLayout(in)...)
	case transition.PageWeather:
		regions = append(regions, Region{
			ID: RegionWeatherPanel, Kind: KindPanel, Rect: rect(24, 70, Width-48, Height-110),
			Action: Action{Kind: ActionRefreshWeather},
		})
	case transition.PagePomodoro:
		regions = append(regions, pomodoroLayout(in)...)
	case transition.PagePomodoroAdjust:
		regions = append(regions, adjustLayout()...)
	}
	return regions
}

func mainLayout(in layoutInput) []Region {
	var regions []Region
	for index, item := range in.items {
		if index == MaxVisibleTasks {
			break
		}
		y := taskListTop + index*taskRowHeight
		regions = append(regions,
			Region{
				ID: "task:" + item.ID, Kind: KindTask, Rect: rect(taskTextLeft, y, taskTextWidth, taskDeleteSize),
				Action: Action{Kind: ActionToggleTask, ID: item.ID}, Label: item.Text, Selected: item.Completed,
			},
			Region{
				ID: "task:" + item.ID + ":delete", Kind: KindTaskDelete, Rect: rect(taskTextLeft+taskTextWidth+10, y, taskDeleteSize, taskDeleteSize),
				Action: Action{Kind: ActionDeleteTask, ID: item.ID}, Label: "Delete",
			},
		)
	}
	if in.input.Active {
		regions = append(regions, Region{ID: RegionTaskInput, Kind: KindInput, Rect: rect(Width/2-150, Height-80, 300, 40)})
	}
	regions = append(regions, Region{
		ID: RegionAddTask, Kind: KindButton, Rect: rect(Width-50, Height-50, 30, 30),
		Action: Action{Kind: ActionToggleInput}, Label: "+", Selected: in.input.Active,
	})
	return regions
}

func settingsLayout(in layoutInput) []Region {
	var regions []Region
	settings := in.settings

	x := 50
	for _, name := range model.ThemeOrder {
		regions = append(regions, Region{
			ID: "theme:" + name, Kind: KindSwatch, Rect: rect(x, 140, 80, 40),
			Action: Action{Kind: ActionSelectTheme, Name: name}, Label: name, Selected: settings.ThemeName == name,
		})
		x += 100
	}

	x = 50
	for _, id := range settings.BackgroundIDs() {
		regions = append(regions, Region{
			ID: "background:" + id, Kind: KindBackground, Rect: rect(x, 260, 100, 60),
			Action: Action{Kind: ActionSelectBackground, Name: id}, Label: id, Selected: settings.Background == id,
		})
		x += 120
	}
	regions = append(regions, Region{
		ID: RegionCustomBackground, Kind: KindButton, Rect: rect(x, 260, 100, 60),
		Action: Action{Kind: ActionChooseBackground}, Label: "+",
	})

	x = 50
	for _, name := range model.DigitColorOrder {
		regions = append(regions, Region{
			ID: "digit:" + name, Kind: KindSwatch, Rect: rect(x, 380, 80, 40),
			Action: Action{Kind: ActionSelectDigitColor, Name: name}, Label: name, Selected: settings.DigitColorName == name,
		})
		x += 100
	}

	regions = append(regions, Region{
		ID: RegionChooseSound, Kind: KindButton, Rect: rect(50, 500, 100, 60),
		Action: Action{Kind: ActionChooseSound}, Label: "+",
	})
	return regions
}

func pomodoroLayout(in layoutInput) []Region {
	panel := rect(24, 70, Width-48, Height-110)
	const (
		pad      = 20
		diameter = 270
		buttonW  = 120
		buttonH  = 40
		gap      = 18
		toggleW  = 140
		toggleH  = 34
		toggleG  = 16
	)
	center := image.Pt((panel.Min.X+panel.Max.X)/2, (panel.Min.Y+panel.Max.Y)/2-20)
	ring := image.Rect(center.X-diameter/2, center.Y-diameter/2, center.X+diameter/2, center.Y+diameter/2)
	infoY := ring.Max.Y + 8
	buttonY := infoY + 30
	startX := center.X - (buttonW*3+gap*2)/2
	toggleY := buttonY + buttonH + 18
	toggleX := center.X - (toggleW*2+toggleG)/2

	startLabel := "Start"
	if in.timer.Running {
		startLabel = "Pause"
	}
	return []Region{
		{ID: RegionPomodoroPanel, Kind: KindPanel, Rect: panel, Label: in.timer.Mode.Label()},
		{ID: RegionAdjust, Kind: KindButton, Rect: rect(panel.Max.X-140, panel.Min.Y+pad, 120, 32), Action: Action{Kind: ActionOpenAdjust}, Label: "Adjust"},
		{ID: RegionRing, Kind: KindDisplay, Rect: ring},
		{ID: RegionInfo, Kind: KindDisplay, Rect: rect(panel.Min.X+pad, infoY, panel.Dx()-2*pad, 22)},
		{ID: RegionStart, Kind: KindButton, Rect: rect(startX, buttonY, buttonW, buttonH), Action: Action{Kind: ActionToggleTimer}, Label: startLabel},
		{ID: RegionReset, Kind: KindButton, Rect: rect(startX+buttonW+gap, buttonY, buttonW, buttonH), Action: Action{Kind: ActionResetTimer}, Label: "Reset"},
		{ID: RegionSkip, Kind: KindButton, Rect: rect(startX+2*(buttonW+gap), buttonY, buttonW, buttonH), Action: Action{Kind: ActionSkipTimer}, Label: "Skip"},
		{ID: RegionAuto, Kind: KindButton, Rect: rect(toggleX, toggleY, toggleW, toggleH), Action: Action{Kind: ActionToggleAutoAdvance}, Label: "Auto: " + onOff(in.timer.AutoAdvance), Selected: in.timer.AutoAdvance},
		{ID: RegionSoundToggle, Kind: KindButton, Rect: rect(toggleX+toggleW+toggleG, toggleY, toggleW, toggleH), Action: Action{Kind: ActionToggleSound}, Label: "Sound: " + onOff(in.settings.Sound.Enabled), Selected: in.settings.Sound.Enabled},
	}
}

func adjustLayout() []Region {
	const (
		padX   = 60
		startY = 150
		gap    = 70
	)
	var regions []Region
	for index, field := range Fields {
		y := startY + index*gap
		regions = append(regions, Region{
			ID: "slider:" + field.Spec().Label, Kind: KindSlider,
			Rect:   image.Rect(padX, y-12, Width-padX, y+18),
			Action: Action{Kind: ActionSlideField, Field: field},
			Label:  field.Spec().Label,
		})
	}

	const buttonW, buttonH, gapX = 140, 40, 16
	startX := Width/2 - (buttonW*2+gapX)/2
	y := 70 + (Height - 110) - 60
	regions = append(regions,
		Region{ID: RegionSave, Kind: KindButton, Rect: rect(startX, y, buttonW, buttonH), Action: Action{Kind: ActionSaveAdjust}, Label: "Save"},
		Region{ID: RegionBack, Kind: KindButton, Rect: rect(startX+buttonW+gapX, y, buttonW, buttonH), Action: Action{Kind: ActionBackAdjust}, Label: "Back"},
	)
	return regions
}

// hitTest returns the topmost interactive region containing point.
func hitTest(regions []Region, point image.Point) (Region, bool) {
	for index := len(regions) - 1; index >= 0; index-- {
		region := regions[index]
		if region.Interactive() && point.In(region.Rect) {
			return region, true
		}
	}
	return Region{}, false
}

// Find returns the region with id.
func Find(regions []Region, id string) (Region, bool) {
	for _, region := range regions {
		if region.ID == id {
			return region, true
		}
	}
	return Region{}, false
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}
