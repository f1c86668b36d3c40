package app

import (
	"errors"

	"livingclock/internal/core/transition"
)

var (
	// ErrWrongPage is returned for a page action while another page is committed.
	ErrWrongPage = errors.New("action not available on this page")
	// ErrUnknownAction is returned for an undeclared action kind.
	ErrUnknownAction = errors.New("unknown action")
)

// ActionKind enumerates everything the user can do.
type ActionKind int

const (
	ActionNone ActionKind = iota

	// Top bar, available everywhere.
	ActionOpenSettings
	ActionOpenWeather
	ActionOpenPomodoro
	ActionClose

	// Settings page.
	ActionSelectTheme
	ActionSelectBackground
	ActionSelectDigitColor
	ActionChooseBackground
	ActionSetCustomBackground
	ActionChooseSound
	ActionSetSoundPath

	// Weather page.
	ActionRefreshWeather

	// Pomodoro page.
	ActionToggleTimer
	ActionResetTimer
	ActionSkipTimer
	ActionToggleAutoAdvance
	ActionToggleSound
	ActionOpenAdjust

	// Adjust page.
	ActionSetField
	ActionSlideField
	ActionSaveAdjust
	ActionBackAdjust

	// Main page.
	ActionToggleInput
	ActionDismissInput
	ActionToggleTask
	ActionDeleteTask

	// Keyboard.
	ActionTypeText
	ActionBackspace
	ActionEnter
	ActionEscape
)

var actionNames = map[ActionKind]string{
	ActionNone:                "none",
	ActionOpenSettings:        "open_settings",
	ActionOpenWeather:         "open_weather",
	ActionOpenPomodoro:        "open_pomodoro",
	ActionClose:               "close",
	ActionSelectTheme:         "select_theme",
	ActionSelectBackground:    "select_background",
	ActionSelectDigitColor:    "select_digit_color",
	ActionChooseBackground:    "choose_background",
	ActionSetCustomBackground: "set_custom_background",
	ActionChooseSound:         "choose_sound",
	ActionSetSoundPath:        "set_sound_path",
	ActionRefreshWeather:      "refresh_weather",
	ActionToggleTimer:         "toggle_timer",
	ActionResetTimer:          "reset_timer",
	ActionSkipTimer:           "skip_timer",
	ActionToggleAutoAdvance:   "toggle_auto_advance",
	ActionToggleSound:         "toggle_sound",
	ActionOpenAdjust:          "open_adjust",
	ActionSetField:            "set_field",
	ActionSlideField:          "slide_field",
	ActionSaveAdjust:          "save_adjust",
	ActionBackAdjust:          "back_adjust",
	ActionToggleInput:         "toggle_input",
	ActionDismissInput:        "dismiss_input",
	ActionToggleTask:          "toggle_task",
	ActionDeleteTask:          "delete_task",
	ActionTypeText:            "type_text",
	ActionBackspace:           "backspace",
	ActionEnter:               "enter",
	ActionEscape:              "escape",
}

func (kind ActionKind) String() string {
	if name, ok := actionNames[kind]; ok {
		return name
	}
	return "unknown"
}

// page returns the page an action belongs to. Global actions report false.
func (kind ActionKind) page() (transition.Page, bool) {
	switch kind {
	case ActionSelectTheme, ActionSelectBackground, ActionSelectDigitColor,
		ActionChooseBackground, ActionChooseSound:
		return transition.PageSettings, true
	case ActionRefreshWeather:
		return transition.PageWeather, true
	case ActionToggleTimer, ActionResetTimer, ActionSkipTimer,
		ActionToggleAutoAdvance, ActionToggleSound, ActionOpenAdjust:
		return transition.PagePomodoro, true
	case ActionSetField, ActionSlideField, ActionSaveAdjust, ActionBackAdjust:
		return transition.PagePomodoroAdjust, true
	case ActionToggleInput, ActionDismissInput, ActionToggleTask, ActionDeleteTask:
		return transition.PageMain, true
	default:
		return transition.PageMain, false
	}
}

// Action is one user intent with its payload.
type Action struct {
	Kind ActionKind
	// Name selects a theme, background or digit color.
	Name string
	// ID is a task id.
	ID string
	// Path is a file chosen in a picker. Empty means cancelled.
	Path string
	// Text is typed input.
	Text  string
	Field Field
	Value int
	// Fraction is the pointer position along a slider track.
	Fraction float64
}
