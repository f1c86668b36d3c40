package app

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livingclock/internal/core/countdown"
	"livingclock/internal/core/model"
	"livingclock/internal/core/snapshot"
	"livingclock/internal/core/tasks"
	"livingclock/internal/core/transition"
	"livingclock/internal/weather"
)

type settingsRecorder struct {
	saved []model.Settings
	err   error
}

func (recorder *settingsRecorder) Save(settings model.Settings) error {
	recorder.saved = append(recorder.saved, settings)
	return recorder.err
}

type notifierRecorder struct {
	applied []model.SoundConfig
	plays   int
}

func (recorder *notifierRecorder) Apply(config model.SoundConfig) {
	recorder.applied = append(recorder.applied, config)
}

func (recorder *notifierRecorder) Play() int {
	recorder.plays++
	return 1
}

type stubWeather struct {
	snap      snapshot.Snapshot[weather.Data]
	updates   chan struct{}
	gets      int
	refreshes int
}

func newStubWeather() *stubWeather {
	return &stubWeather{
		snap:    snapshot.Snapshot[weather.Data]{Reason: "Not fetched yet."},
		updates: make(chan struct{}, 1),
	}
}

func (stub *stubWeather) Get() snapshot.Snapshot[weather.Data] {
	stub.gets++
	return stub.snap
}

func (stub *stubWeather) Updates() <-chan struct{} { return stub.updates }

func (stub *stubWeather) Refresh() { stub.refreshes++ }

type memoryTasks struct {
	items []tasks.Item
}

func (store *memoryTasks) Load() ([]tasks.Item, error) {
	return append([]tasks.Item(nil), store.items...), nil
}

func (store *memoryTasks) Save(items []tasks.Item) error {
	store.items = append([]tasks.Item(nil), items...)
	return nil
}

type harness struct {
	controller *Controller
	store      *settingsRecorder
	sound      *notifierRecorder
	weather    *stubWeather
	tasks      *memoryTasks
	now        time.Time
}

func newHarness(t *testing.T, mutate func(*Deps)) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &harness{
		store:   &settingsRecorder{},
		sound:   &notifierRecorder{},
		weather: newStubWeather(),
		tasks:   &memoryTasks{},
		now:     time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC),
	}
	deps := Deps{
		Settings:      model.DefaultSettings(),
		SettingsStore: h.store,
		Tasks:         tasks.Open(h.tasks, logger),
		Weather:       h.weather,
		Sound:         h.sound,
		Capabilities:  Capabilities{Audio: true, FilePicker: true},
		Logger:        logger,
		Now:           func() time.Time { return h.now },
	}
	if mutate != nil {
		mutate(&deps)
	}
	controller, err := New(deps)
	require.NoError(t, err)
	h.controller = controller
	return h
}

// settle renders frames until any running flip has committed.
func (h *harness) settle() View {
	view := h.controller.Frame(h.now)
	for index := 0; index < 40 && view.Flipping(); index++ {
		view = h.controller.Frame(h.now)
	}
	return view
}

func (h *harness) goTo(t *testing.T, kind ActionKind, page transition.Page) {
	t.Helper()
	require.NoError(t, h.controller.Dispatch(Action{Kind: kind}))
	h.settle()
	require.Equal(t, page, h.controller.Committed())
}

func (h *harness) region(t *testing.T, id string) Region {
	t.Helper()
	region, ok := Find(h.controller.Layout(), id)
	require.True(t, ok, "region %s", id)
	return region
}

func center(region Region) image.Point {
	return image.Pt((region.Rect.Min.X+region.Rect.Max.X)/2, (region.Rect.Min.Y+region.Rect.Max.Y)/2)
}

func TestNewRequiresTaskList(t *testing.T) {
	_, err := New(Deps{})
	require.Error(t, err)
}

func TestTopBarButtonsToggleTheirPage(t *testing.T) {
	h := newHarness(t, nil)

	h.goTo(t, ActionOpenSettings, transition.PageSettings)
	h.goTo(t, ActionOpenSettings, transition.PageMain)
	h.goTo(t, ActionOpenWeather, transition.PageWeather)
	h.goTo(t, ActionOpenSettings, transition.PageSettings)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	h.goTo(t, ActionOpenPomodoro, transition.PageMain)
}

func TestPomodoroButtonLeavesAdjustPage(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	h.goTo(t, ActionOpenAdjust, transition.PagePomodoroAdjust)
	h.goTo(t, ActionOpenPomodoro, transition.PageMain)
}

func TestPageActionsRequireCommittedPage(t *testing.T) {
	h := newHarness(t, nil)

	err := h.controller.Dispatch(Action{Kind: ActionToggleTimer})
	assert.ErrorIs(t, err, ErrWrongPage)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionOpenPomodoro}))
	view := h.controller.Frame(h.now)
	require.True(t, view.Flipping())
	assert.Equal(t, transition.PageMain, view.Committed)
	assert.ErrorIs(t, h.controller.Dispatch(Action{Kind: ActionToggleTimer}), ErrWrongPage)

	h.settle()
	assert.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleTimer}))
	assert.True(t, h.controller.Timer().Running)
}

func TestRequestDuringFlipIsIgnored(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionOpenSettings}))
	h.controller.Frame(h.now)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionOpenWeather}))
	h.settle()
	assert.Equal(t, transition.PageSettings, h.controller.Committed())
}

func TestVisiblePageSwitchesHalfway(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionOpenWeather}))

	var pages []transition.Page
	for index := 0; index < 20; index++ {
		pages = append(pages, h.controller.Frame(h.now).Page)
	}
	assert.Equal(t, transition.PageMain, pages[0])
	assert.Equal(t, transition.PageMain, pages[9])
	assert.Equal(t, transition.PageWeather, pages[10])
	assert.Equal(t, transition.PageWeather, pages[19])
}

func TestSelectThemePersists(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenSettings, transition.PageSettings)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSelectTheme, Name: "Cyan"}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSelectDigitColor, Name: "Gray"}))

	state := h.controller.State()
	assert.Equal(t, "Cyan", state.Settings.ThemeName)
	assert.Equal(t, "Gray", state.Settings.DigitColorName)
	assert.Equal(t, uint64(2), state.SettingsVersion)
	require.Len(t, h.store.saved, 2)
	assert.Equal(t, "Gray", h.store.saved[1].DigitColorName)

	assert.Error(t, h.controller.Dispatch(Action{Kind: ActionSelectTheme, Name: "Plaid"}))
	assert.Error(t, h.controller.Dispatch(Action{Kind: ActionSelectBackground, Name: "bg9"}))
	assert.Len(t, h.store.saved, 2)
}

func TestSettingsSaveFailureKeepsState(t *testing.T) {
	h := newHarness(t, nil)
	h.store.err = errors.New("disk full")
	h.goTo(t, ActionOpenSettings, transition.PageSettings)

	err := h.controller.Dispatch(Action{Kind: ActionSelectTheme, Name: "Orange"})
	require.Error(t, err)
	assert.Equal(t, "Orange", h.controller.State().Settings.ThemeName)
}

func TestChooseBackgroundWithoutPicker(t *testing.T) {
	h := newHarness(t, func(deps *Deps) { deps.Capabilities.FilePicker = false })
	h.goTo(t, ActionOpenSettings, transition.PageSettings)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionChooseBackground}))
	assert.Equal(t, PickNone, h.controller.TakePick())
	assert.Equal(t, "File picker unavailable.", h.controller.State().Status)
}

func TestCustomBackgroundPickFlow(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenSettings, transition.PageSettings)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSelectBackground, Name: model.BackgroundCustom}))
	assert.Equal(t, PickBackground, h.controller.TakePick())
	assert.Equal(t, PickNone, h.controller.TakePick())
	assert.Equal(t, model.BackgroundDefault, h.controller.State().Settings.Background)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetCustomBackground}))
	assert.Equal(t, model.BackgroundDefault, h.controller.State().Settings.Background)
	assert.Empty(t, h.store.saved)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetCustomBackground, Path: "/tmp/sky.png"}))
	settings := h.controller.State().Settings
	assert.Equal(t, model.BackgroundCustom, settings.Background)
	assert.Equal(t, "/tmp/sky.png", settings.CustomBackgroundPath)
	assert.Contains(t, settings.BackgroundIDs(), model.BackgroundCustom)

	_, ok := Find(h.controller.Layout(), "background:"+model.BackgroundCustom)
	assert.True(t, ok)
}

func TestChooseSoundSetsPath(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenSettings, transition.PageSettings)

	handled, err := h.controller.Click(center(h.region(t, RegionChooseSound)))
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, PickSound, h.controller.TakePick())

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetSoundPath, Path: "/tmp/bell.wav"}))
	assert.Equal(t, "/tmp/bell.wav", h.controller.State().Settings.Sound.Path)
	assert.Equal(t, "/tmp/bell.wav", h.sound.applied[len(h.sound.applied)-1].Path)
}

func TestAdjustSaveAppliesAndPersists(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	h.goTo(t, ActionOpenAdjust, transition.PagePomodoroAdjust)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetField, Field: FieldFocus, Value: 10}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetField, Field: FieldGain, Value: 152}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetField, Field: FieldSessions, Value: 99}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSaveAdjust}))

	settings := h.controller.State().Settings
	assert.Equal(t, 10, settings.Pomodoro.FocusMinutes)
	assert.Equal(t, model.MaxSessionsBeforeLong, settings.Pomodoro.SessionsBeforeLong)
	assert.Equal(t, 150, settings.Sound.GainPercent)
	assert.Equal(t, 10*time.Minute, h.controller.Timer().Remaining)
	assert.Equal(t, 150, h.sound.applied[len(h.sound.applied)-1].GainPercent)
	require.Len(t, h.store.saved, 1)

	h.settle()
	assert.Equal(t, transition.PagePomodoro, h.controller.Committed())
}

func TestAdjustBackDiscardsEdits(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	h.goTo(t, ActionOpenAdjust, transition.PagePomodoroAdjust)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionSetField, Field: FieldFocus, Value: 50}))
	h.goTo(t, ActionBackAdjust, transition.PagePomodoro)

	assert.Equal(t, 25, h.controller.State().Settings.Pomodoro.FocusMinutes)
	assert.Empty(t, h.store.saved)

	h.goTo(t, ActionOpenAdjust, transition.PagePomodoroAdjust)
	assert.Equal(t, 25, h.controller.State().Editor.Value(FieldFocus))
}

func TestSliderClickAndDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	h.goTo(t, ActionOpenAdjust, transition.PagePomodoroAdjust)

	slider := h.region(t, "slider:"+FieldFocus.Spec().Label)
	handled, err := h.controller.Click(image.Pt(slider.Rect.Min.X, center(slider).Y))
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, model.MinSessionMinutes, h.controller.State().Editor.Value(FieldFocus))
	assert.Equal(t, FieldFocus, h.controller.State().ActiveSlider)

	require.NoError(t, h.controller.Drag(image.Pt(slider.Rect.Max.X+40, 0)))
	assert.Equal(t, model.MaxSessionMinutes, h.controller.State().Editor.Value(FieldFocus))

	h.controller.Release()
	require.NoError(t, h.controller.Drag(image.Pt(slider.Rect.Min.X, 0)))
	assert.Equal(t, model.MaxSessionMinutes, h.controller.State().Editor.Value(FieldFocus))
}

func TestGainSliderSnapsToStep(t *testing.T) {
	spec := FieldGain.Spec()
	assert.Equal(t, 0, spec.FromFraction(-1))
	assert.Equal(t, 200, spec.FromFraction(2))
	assert.Equal(t, 100, spec.FromFraction(0.5))
	assert.Equal(t, 105, spec.Clamp(103))
	assert.InDelta(t, 0.75, spec.Fraction(150), 1e-9)
}

func TestTypingAddsTask(t *testing.T) {
	h := newHarness(t, nil)

	handled, err := h.controller.Click(center(h.region(t, RegionAddTask)))
	require.NoError(t, err)
	require.True(t, handled)
	require.True(t, h.controller.State().Input.Active)
	_, ok := Find(h.controller.Layout(), RegionTaskInput)
	assert.True(t, ok)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: "Buy milk"}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionEnter}))

	assert.False(t, h.controller.State().Input.Active)
	view := h.controller.Frame(h.now)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "Buy milk", view.Tasks[0].Text)
	require.Len(t, h.tasks.items, 1)
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: "q"}))
	assert.False(t, h.controller.Quit())
	assert.Equal(t, "q", h.controller.State().Input.Text)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionEscape}))
	assert.False(t, h.controller.Quit())
	assert.False(t, h.controller.State().Input.Active)
	assert.Equal(t, 0, h.controller.tasks.Len())

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: "q"}))
	assert.True(t, h.controller.Quit())

	h = newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionEscape}))
	assert.True(t, h.controller.Quit())

	h = newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionClose}))
	assert.True(t, h.controller.Frame(h.now).Quit)
}

func TestInputEditing(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: "café\t"}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionBackspace}))
	assert.Equal(t, "caf", h.controller.State().Input.Text)

	long := make([]rune, MaxInputRunes+10)
	for index := range long {
		long[index] = 'x'
	}
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: string(long)}))
	assert.Len(t, []rune(h.controller.State().Input.Text), MaxInputRunes)
}

func TestClickOutsideCommitsInput(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: "Water plants"}))

	handled, err := h.controller.Click(image.Pt(300, 200))
	require.NoError(t, err)
	assert.False(t, handled)
	assert.False(t, h.controller.State().Input.Active)
	require.Equal(t, 1, h.controller.tasks.Len())

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))
	assert.Equal(t, 1, h.controller.tasks.Len())
}

func TestTaskRowsToggleAndDelete(t *testing.T) {
	h := newHarness(t, nil)
	for _, text := range []string{"A", "B", "C"} {
		require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))
		require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: text}))
		require.NoError(t, h.controller.Dispatch(Action{Kind: ActionEnter}))
	}
	items := h.controller.Frame(h.now).Tasks
	require.Len(t, items, 3)

	handled, err := h.controller.Click(center(h.region(t, "task:"+items[1].ID)))
	require.NoError(t, err)
	require.True(t, handled)

	view := h.controller.Frame(h.now)
	texts := []string{view.Tasks[0].Text, view.Tasks[1].Text, view.Tasks[2].Text}
	assert.Equal(t, []string{"A", "C", "B"}, texts)
	assert.True(t, view.Tasks[2].Completed)

	_, err = h.controller.Click(center(h.region(t, "task:"+items[0].ID+":delete")))
	require.NoError(t, err)
	assert.Equal(t, 2, h.controller.tasks.Len())
}

func TestHiddenTasksCount(t *testing.T) {
	h := newHarness(t, nil)
	for index := 0; index < MaxVisibleTasks+2; index++ {
		require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))
		require.NoError(t, h.controller.Dispatch(Action{Kind: ActionTypeText, Text: "task"}))
		require.NoError(t, h.controller.Dispatch(Action{Kind: ActionEnter}))
	}
	view := h.controller.Frame(h.now)
	assert.Equal(t, 2, view.HiddenTasks)

	rows := 0
	for _, region := range view.Regions {
		if region.Kind == KindTask {
			rows++
		}
	}
	assert.Equal(t, MaxVisibleTasks, rows)
}

func TestLayoutIsCachedUntilInputsChange(t *testing.T) {
	h := newHarness(t, nil)
	first := h.controller.Layout()
	second := h.controller.Layout()
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleInput}))
	third := h.controller.Layout()
	assert.NotSame(t, &first[0], &third[0])
	assert.Len(t, third, len(first)+1)
}

func TestHitTestSkipsDisplayRegions(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)

	_, ok := h.controller.HitTest(center(h.region(t, RegionRing)))
	assert.False(t, ok)

	region, ok := h.controller.HitTest(center(h.region(t, RegionStart)))
	require.True(t, ok)
	assert.Equal(t, ActionToggleTimer, region.Action.Kind)
	assert.Equal(t, "Start", region.Label)

	_, err := h.controller.Click(center(region))
	require.NoError(t, err)
	assert.Equal(t, "Pause", h.region(t, RegionStart).Label)
}

func TestCompletionPlaysSound(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro.FocusMinutes = 1
	h := newHarness(t, func(deps *Deps) { deps.Settings = settings })
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleTimer}))

	h.now = h.now.Add(30 * time.Second)
	view := h.controller.Frame(h.now)
	assert.Equal(t, "00:30", view.Remaining)
	assert.InDelta(t, 0.5, view.Progress, 1e-9)
	assert.Zero(t, h.sound.plays)

	h.now = h.now.Add(31 * time.Second)
	view = h.controller.Frame(h.now)
	assert.Equal(t, 1, view.Completed)
	assert.Equal(t, 1, h.sound.plays)
	assert.Equal(t, countdown.ModeShortBreak, view.Countdown.Mode)
	assert.Equal(t, uint(1), view.Countdown.SessionsCompleted)

	view = h.controller.Frame(h.now)
	assert.Zero(t, view.Completed)
	assert.Equal(t, 1, h.sound.plays)
}

func TestCompletionSilentWithoutAudio(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pomodoro.FocusMinutes = 1
	h := newHarness(t, func(deps *Deps) {
		deps.Settings = settings
		deps.Capabilities.Audio = false
	})
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleTimer}))

	h.now = h.now.Add(2 * time.Minute)
	view := h.controller.Frame(h.now)
	assert.Equal(t, 1, view.Completed)
	assert.Zero(t, h.sound.plays)
}

func TestWeatherReadOnlyAfterNotification(t *testing.T) {
	h := newHarness(t, nil)
	gets := h.weather.gets

	view := h.controller.Frame(h.now)
	assert.Equal(t, gets, h.weather.gets)
	assert.False(t, view.Weather.OK)

	h.weather.snap = snapshot.Snapshot[weather.Data]{OK: true, Value: weather.Data{City: "Dhaka", Temp: 31}, FetchedAt: h.now}
	h.weather.updates <- struct{}{}
	view = h.controller.Frame(h.now)
	assert.Equal(t, gets+1, h.weather.gets)
	require.True(t, view.Weather.OK)
	assert.Equal(t, "Dhaka", view.Weather.Value.City)

	h.goTo(t, ActionOpenWeather, transition.PageWeather)
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionRefreshWeather}))
	assert.Equal(t, 1, h.weather.refreshes)
}

func TestWeatherDisabled(t *testing.T) {
	h := newHarness(t, func(deps *Deps) { deps.Weather = nil })
	view := h.controller.Frame(h.now)
	assert.False(t, view.Weather.OK)
	assert.Equal(t, "Weather disabled.", view.Weather.Reason)

	h.goTo(t, ActionOpenWeather, transition.PageWeather)
	assert.NoError(t, h.controller.Dispatch(Action{Kind: ActionRefreshWeather}))
}

func TestToggleSoundAndAutoAdvancePersist(t *testing.T) {
	h := newHarness(t, nil)
	h.goTo(t, ActionOpenPomodoro, transition.PagePomodoro)

	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleSound}))
	require.NoError(t, h.controller.Dispatch(Action{Kind: ActionToggleAutoAdvance}))

	settings := h.controller.State().Settings
	assert.False(t, settings.Sound.Enabled)
	assert.False(t, settings.Pomodoro.AutoAdvance)
	assert.False(t, h.controller.Timer().AutoAdvance)
	require.Len(t, h.store.saved, 2)
	assert.Equal(t, "Sound: OFF", h.region(t, RegionSoundToggle).Label)
	assert.Equal(t, "Auto: OFF", h.region(t, RegionAuto).Label)
}

func TestTimerControlsIgnorePage(t *testing.T) {
	h := newHarness(t, nil)

	h.controller.ToggleTimer()
	assert.True(t, h.controller.Timer().Running)
	h.controller.SkipTimer()
	assert.Equal(t, countdown.ModeShortBreak, h.controller.Timer().Mode)
	h.controller.ResetTimer()
	assert.False(t, h.controller.Timer().Running)
	assert.Equal(t, 5*time.Minute, h.controller.Timer().Remaining)

	h.controller.RequestQuit()
	assert.True(t, h.controller.Quit())
}

func TestNewClock(t *testing.T) {
	clock := NewClock(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, Clock{Time: "03:04", Seconds: "05", Meridiem: "PM", Date: "Tuesday, January 02"}, clock)
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "toggle_timer", ActionToggleTimer.String())
	assert.Equal(t, "unknown", ActionKind(999).String())
	assert.ErrorIs(t, newHarnessController(t).Dispatch(Action{Kind: ActionKind(999)}), ErrUnknownAction)
}

func newHarnessController(t *testing.T) *Controller {
	return newHarness(t, nil).controller
}
