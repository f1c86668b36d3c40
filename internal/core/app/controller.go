// Package app composes the widget: it owns the page state machine, the
// pomodoro timer, the task list and the settings, routes user actions to
// them and produces one immutable View per frame for the renderer.
//
// The controller belongs to the frame loop. The only state shared with
// another goroutine is the weather snapshot, read through its own lock.
package app

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"
	"unicode/utf8"

	"livingclock/internal/core/countdown"
	"livingclock/internal/core/mascot"
	"livingclock/internal/core/model"
	"livingclock/internal/core/snapshot"
	"livingclock/internal/core/tasks"
	"livingclock/internal/core/transition"
	"livingclock/internal/weather"
)

// SettingsStore persists settings.
type SettingsStore interface {
	Save(settings model.Settings) error
}

// Notifier plays the session-complete sound.
type Notifier interface {
	Apply(config model.SoundConfig)
	Play() int
}

// WeatherSource is the background weather poller.
type WeatherSource interface {
	Get() snapshot.Snapshot[weather.Data]
	Updates() <-chan struct{}
	Refresh()
}

// Deps are the collaborators of a Controller. Tasks is required; nil
// optional collaborators disable their feature.
type Deps struct {
	Settings      model.Settings
	SettingsStore SettingsStore
	Tasks         *tasks.List
	Weather       WeatherSource
	Sound         Notifier
	Capabilities  Capabilities
	Logger        *slog.Logger
	// TransitionStep overrides the per-frame flip increment.
	TransitionStep float64
	Mascot         mascot.Config
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

type cachedLayout struct {
	key     layoutKey
	regions []Region
}

// Controller is the application core.
type Controller struct {
	state      AppState
	store      SettingsStore
	tasks      *tasks.List
	timer      *countdown.Timer
	transition *transition.Controller
	mascot     *mascot.Animator
	weather    WeatherSource
	sound      Notifier
	logger     *slog.Logger
	now        func() time.Time
	started    time.Time

	completions []countdown.Event
	weatherSnap snapshot.Snapshot[weather.Data]
	layouts     map[transition.Page]cachedLayout
}

// New builds a controller resting on the main page.
func New(deps Deps) (*Controller, error) {
	if deps.Tasks == nil {
		return nil, errors.New("new app controller: task list is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Mascot == (mascot.Config{}) {
		deps.Mascot = mascot.DefaultConfig()
	}

	now := deps.Now()
	settings := deps.Settings.Normalized()
	controller := &Controller{
		state: AppState{
			Settings:     settings,
			Capabilities: deps.Capabilities,
			Editor:       NewEditor(settings.Pomodoro, settings.Sound),
			ActiveSlider: -1,
		},
		store:      deps.SettingsStore,
		tasks:      deps.Tasks,
		timer:      countdown.New(settings.Pomodoro, now),
		transition: transition.New(transition.PageMain, deps.TransitionStep),
		mascot:     mascot.New(deps.Mascot, nil, now),
		weather:    deps.Weather,
		sound:      deps.Sound,
		logger:     deps.Logger,
		now:        deps.Now,
		started:    now,
		layouts:    make(map[transition.Page]cachedLayout),
	}
	controller.timer.SetOnComplete(func(event countdown.Event) {
		controller.completions = append(controller.completions, event)
	})
	if controller.weather != nil {
		controller.weatherSnap = controller.weather.Get()
	} else {
		controller.weatherSnap = snapshot.Snapshot[weather.Data]{Reason: "Weather disabled."}
	}
	if controller.sound != nil {
		controller.sound.Apply(settings.Sound)
	}
	return controller, nil
}

// State returns a copy of the application state.
func (controller *Controller) State() AppState {
	return controller.state
}

// Timer exposes the countdown for the tray menu.
func (controller *Controller) Timer() countdown.State {
	return controller.timer.State()
}

// Committed returns the page input is routed to.
func (controller *Controller) Committed() transition.Page {
	return controller.transition.Committed()
}

// Layout returns the regions of the committed page.
func (controller *Controller) Layout() []Region {
	return controller.layoutFor(controller.transition.Committed())
}

// HitTest finds the interactive region of the committed page under point.
func (controller *Controller) HitTest(point image.Point) (Region, bool) {
	return hitTest(controller.Layout(), point)
}

// Click routes a primary-button press at point. It reports whether a region
// handled it.
func (controller *Controller) Click(point image.Point) (bool, error) {
	region, ok := controller.HitTest(point)
	if !ok {
		if controller.transition.Committed() == transition.PageMain && controller.state.Input.Active {
			return false, controller.Dispatch(Action{Kind: ActionDismissInput})
		}
		return false, nil
	}

	action := region.Action
	if action.Kind == ActionSlideField {
		controller.state.ActiveSlider = action.Field
		action.Fraction = sliderFraction(region.Rect, point)
	} else if controller.state.Input.Active && action.Kind != ActionToggleInput &&
		controller.transition.Committed() == transition.PageMain {
		if err := controller.Dispatch(Action{Kind: ActionDismissInput}); err != nil {
			return true, err
		}
	}
	return true, controller.Dispatch(action)
}

// Drag moves the active slider, if any, to point.
func (controller *Controller) Drag(point image.Point) error {
	field := controller.state.ActiveSlider
	if !field.Valid() || controller.transition.Committed() != transition.PagePomodoroAdjust {
		return nil
	}
	for _, region := range controller.Layout() {
		if region.Kind == KindSlider && region.Action.Field == field {
			return controller.Dispatch(Action{Kind: ActionSlideField, Field: field, Fraction: sliderFraction(region.Rect, point)})
		}
	}
	return nil
}

// Release ends a slider drag.
func (controller *Controller) Release() {
	controller.state.ActiveSlider = -1
}

func sliderFraction(track image.Rectangle, point image.Point) float64 {
	if track.Dx() <= 0 {
		return 0
	}
	return float64(point.X-track.Min.X) / float64(track.Dx())
}

// Dispatch applies one action. Page actions are accepted only while their
// page is committed; top bar, keyboard and picker results work everywhere.
func (controller *Controller) Dispatch(action Action) error {
	if page, scoped := action.Kind.page(); scoped && page != controller.transition.Committed() {
		return fmt.Errorf("%s: %w", action.Kind, ErrWrongPage)
	}

	switch action.Kind {
	case ActionNone:
		return nil
	case ActionOpenSettings:
		controller.toggleTo(transition.PageSettings)
	case ActionOpenWeather:
		controller.toggleTo(transition.PageWeather)
	case ActionOpenPomodoro:
		switch controller.transition.Committed() {
		case transition.PagePomodoro, transition.PagePomodoroAdjust:
			controller.transition.Request(transition.PageMain)
		default:
			controller.transition.Request(transition.PagePomodoro)
		}
	case ActionClose:
		controller.state.Quit = true

	case ActionSelectTheme:
		if _, ok := model.Themes[action.Name]; !ok {
			return fmt.Errorf("select theme %q: unknown theme", action.Name)
		}
		controller.state.Settings.ThemeName = action.Name
		return controller.saveSettings()
	case ActionSelectBackground:
		return controller.selectBackground(action.Name)
	case ActionSelectDigitColor:
		if _, ok := model.DigitColors[action.Name]; !ok {
			return fmt.Errorf("select digit color %q: unknown color", action.Name)
		}
		controller.state.Settings.DigitColorName = action.Name
		return controller.saveSettings()
	case ActionChooseBackground:
		controller.requestPick(PickBackground)
	case ActionChooseSound:
		controller.requestPick(PickSound)
	case ActionSetCustomBackground:
		controller.state.Pick = PickNone
		if action.Path == "" {
			return nil
		}
		controller.state.Settings.CustomBackgroundPath = action.Path
		controller.state.Settings.Background = model.BackgroundCustom
		return controller.saveSettings()
	case ActionSetSoundPath:
		controller.state.Pick = PickNone
		if action.Path == "" {
			return nil
		}
		controller.state.Settings.Sound.Path = action.Path
		return controller.saveSettings()

	case ActionRefreshWeather:
		if controller.weather != nil {
			controller.weather.Refresh()
		}

	case ActionToggleTimer:
		controller.timer.Toggle(controller.now())
	case ActionResetTimer:
		controller.timer.Reset()
	case ActionSkipTimer:
		controller.timer.Skip(controller.now())
	case ActionToggleAutoAdvance:
		enabled := !controller.timer.State().AutoAdvance
		controller.timer.SetAutoAdvance(enabled)
		controller.state.Settings.Pomodoro.AutoAdvance = enabled
		return controller.saveSettings()
	case ActionToggleSound:
		controller.state.Settings.Sound.Enabled = !controller.state.Settings.Sound.Enabled
		return controller.saveSettings()
	case ActionOpenAdjust:
		controller.state.Editor = NewEditor(controller.state.Settings.Pomodoro, controller.state.Settings.Sound)
		controller.transition.Request(transition.PagePomodoroAdjust)

	case ActionSetField:
		controller.state.Editor.Set(action.Field, action.Value)
	case ActionSlideField:
		controller.state.Editor.Set(action.Field, action.Field.Spec().FromFraction(action.Fraction))
	case ActionSaveAdjust:
		controller.state.Settings = controller.state.Editor.Apply(controller.state.Settings)
		controller.timer.UpdateConfig(controller.state.Settings.Pomodoro)
		err := controller.saveSettings()
		controller.transition.Request(transition.PagePomodoro)
		return err
	case ActionBackAdjust:
		controller.transition.Request(transition.PagePomodoro)

	case ActionToggleInput:
		if controller.state.Input.Active {
			return controller.closeInput(true)
		}
		controller.state.Input.Active = true
	case ActionDismissInput:
		return controller.closeInput(true)
	case ActionToggleTask:
		_, err := controller.tasks.Toggle(action.ID)
		return err
	case ActionDeleteTask:
		_, err := controller.tasks.Delete(action.ID)
		return err

	case ActionTypeText:
		if !controller.typing() {
			if action.Text == "q" || action.Text == "Q" {
				controller.state.Quit = true
			}
			return nil
		}
		controller.appendInput(action.Text)
	case ActionBackspace:
		if controller.typing() && controller.state.Input.Text != "" {
			_, size := utf8.DecodeLastRuneInString(controller.state.Input.Text)
			controller.state.Input.Text = controller.state.Input.Text[:len(controller.state.Input.Text)-size]
		}
	case ActionEnter:
		if controller.typing() {
			return controller.closeInput(true)
		}
	case ActionEscape:
		if controller.typing() {
			return controller.closeInput(false)
		}
		controller.state.Quit = true

	default:
		return fmt.Errorf("dispatch %d: %w", action.Kind, ErrUnknownAction)
	}
	return nil
}

// Frame advances every per-frame component to now and returns what to draw.
func (controller *Controller) Frame(now time.Time) View {
	controller.timer.Update(now)
	completed := len(controller.completions)
	for _, event := range controller.completions {
		plays := 0
		if controller.sound != nil && controller.state.Capabilities.Audio {
			plays = controller.sound.Play()
		}
		controller.logger.Info("session complete",
			"previous", event.Previous, "next", event.Next,
			"sessions", event.SessionsCompleted, "plays", plays)
	}
	controller.completions = controller.completions[:0]

	controller.drainWeather()
	frame := controller.mascot.Update(now)
	controller.transition.Tick()

	visible := controller.transition.VisibleContent()
	timerState := controller.timer.State()
	return View{
		Page:        visible,
		Committed:   controller.transition.Committed(),
		Transition:  controller.transition.State(),
		Distortion:  controller.transition.Distortion(),
		Regions:     controller.layoutFor(visible),
		Settings:    controller.state.Settings,
		Tasks:       controller.tasks.Items(),
		HiddenTasks: max(0, controller.tasks.Len()-MaxVisibleTasks),
		Input:       controller.state.Input,
		Editor:      controller.state.Editor,
		Countdown:   timerState,
		Remaining:   countdown.FormatRemaining(timerState.Remaining),
		Progress:    controller.timer.ProgressRatio(),
		Weather:     controller.weatherSnap,
		Mascot:      frame,
		ColonAlpha:  mascot.ColonAlpha(now.Sub(controller.started)),
		Clock:       NewClock(now),
		Pick:        controller.state.Pick,
		Status:      controller.state.Status,
		Completed:   completed,
		Quit:        controller.state.Quit,
	}
}

// TakePick returns the pending file picker request and clears it. The host
// answers with ActionSetCustomBackground or ActionSetSoundPath.
func (controller *Controller) TakePick() Pick {
	pick := controller.state.Pick
	controller.state.Pick = PickNone
	return pick
}

// ToggleTimer starts or pauses the countdown from outside the pages.
func (controller *Controller) ToggleTimer() {
	controller.timer.Toggle(controller.now())
}

// ResetTimer refills the current interval from outside the pages.
func (controller *Controller) ResetTimer() {
	controller.timer.Reset()
}

// SkipTimer ends the current interval from outside the pages.
func (controller *Controller) SkipTimer() {
	controller.timer.Skip(controller.now())
}

// RequestQuit asks the frame loop to exit.
func (controller *Controller) RequestQuit() {
	controller.state.Quit = true
}

// Quit reports whether the user asked to exit.
func (controller *Controller) Quit() bool {
	return controller.state.Quit
}

func (controller *Controller) drainWeather() {
	if controller.weather == nil {
		return
	}
	updated := false
	for drained := false; !drained; {
		select {
		case <-controller.weather.Updates():
			updated = true
		default:
			drained = true
		}
	}
	if updated {
		controller.weatherSnap = controller.weather.Get()
	}
}

func (controller *Controller) toggleTo(page transition.Page) {
	if controller.transition.Committed() == page {
		controller.transition.Request(transition.PageMain)
		return
	}
	controller.transition.Request(page)
}

func (controller *Controller) selectBackground(id string) error {
	switch id {
	case model.BackgroundDefault, model.BackgroundAlt:
	case model.BackgroundCustom:
		if controller.state.Settings.CustomBackgroundPath == "" {
			controller.requestPick(PickBackground)
			return nil
		}
	default:
		return fmt.Errorf("select background %q: unknown background", id)
	}
	controller.state.Settings.Background = id
	return controller.saveSettings()
}

func (controller *Controller) requestPick(pick Pick) {
	if !controller.state.Capabilities.FilePicker {
		controller.state.Status = "File picker unavailable."
		return
	}
	controller.state.Status = ""
	controller.state.Pick = pick
}

func (controller *Controller) typing() bool {
	return controller.state.Input.Active && controller.transition.Committed() == transition.PageMain
}

func (controller *Controller) appendInput(text string) {
	for _, r := range text {
		if utf8.RuneCountInString(controller.state.Input.Text) >= MaxInputRunes {
			return
		}
		if r < ' ' {
			continue
		}
		controller.state.Input.Text += string(r)
	}
}

// closeInput hides the input box, adding its text as a task when commit is set.
func (controller *Controller) closeInput(commit bool) error {
	text := controller.state.Input.Text
	controller.state.Input = TaskInput{}
	if !commit || text == "" {
		return nil
	}
	if _, err := controller.tasks.Add(text); err != nil && !errors.Is(err, tasks.ErrEmptyText) {
		return err
	}
	return nil
}

func (controller *Controller) saveSettings() error {
	controller.state.Settings = controller.state.Settings.Normalized()
	controller.state.SettingsVersion++
	if controller.sound != nil {
		controller.sound.Apply(controller.state.Settings.Sound)
	}
	if controller.store == nil {
		return nil
	}
	if err := controller.store.Save(controller.state.Settings); err != nil {
		controller.logger.Warn("save settings", "error", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (controller *Controller) layoutFor(page transition.Page) []Region {
	timerState := controller.timer.State()
	key := layoutKey{
		page:            page,
		tasksVersion:    controller.tasks.Version(),
		settingsVersion: controller.state.SettingsVersion,
		inputActive:     controller.state.Input.Active,
		running:         timerState.Running,
		autoAdvance:     timerState.AutoAdvance,
		mode:            timerState.Mode,
	}
	if cached, ok := controller.layouts[page]; ok && cached.key == key {
		return cached.regions
	}
	regions := buildLayout(page, layoutInput{
		settings: controller.state.Settings,
		items:    controller.tasks.Items(),
		input:    controller.state.Input,
		timer:    timerState,
	})
	controller.layouts[page] = cachedLayout{key: key, regions: regions}
	return regions
}
