package app

import (
	"math"

	"livingclock/internal/core/model"
)

// Capabilities are optional platform services resolved once at startup.
type Capabilities struct {
	Transparency bool
	Audio        bool
	FilePicker   bool
	Tray         bool
}

// MaxInputRunes bounds the task input line.
const MaxInputRunes = 60

// TaskInput is the add-task text box on the main page.
type TaskInput struct {
	Active bool
	Text   string
}

// Pick is a pending request for the host to show a file picker.
type Pick int

const (
	PickNone Pick = iota
	PickBackground
	PickSound
)

// Field is one value on the adjust page.
type Field int

const (
	FieldFocus Field = iota
	FieldShortBreak
	FieldLongBreak
	FieldSessions
	FieldGain
	fieldCount
)

// Fields lists the adjust page fields in display order.
var Fields = []Field{FieldFocus, FieldShortBreak, FieldLongBreak, FieldSessions, FieldGain}

// FieldSpec describes the range and presentation of a field.
type FieldSpec struct {
	Label string
	Min   int
	Max   int
	Step  int
	Unit  string
}

var fieldSpecs = [fieldCount]FieldSpec{
	FieldFocus:      {Label: "Focus", Min: model.MinSessionMinutes, Max: model.MaxSessionMinutes, Step: 1, Unit: "min"},
	FieldShortBreak: {Label: "Short break", Min: model.MinSessionMinutes, Max: model.MaxSessionMinutes, Step: 1, Unit: "min"},
	FieldLongBreak:  {Label: "Long break", Min: model.MinSessionMinutes, Max: model.MaxSessionMinutes, Step: 1, Unit: "min"},
	FieldSessions:   {Label: "Sessions before long", Min: model.MinSessionsBeforeLong, Max: model.MaxSessionsBeforeLong, Step: 1, Unit: "sessions"},
	FieldGain:       {Label: "Volume", Min: model.MinGainPercent, Max: model.MaxGainPercent, Step: model.GainPercentStep, Unit: "%"},
}

// Spec returns the field's range and label.
func (field Field) Spec() FieldSpec {
	if field < 0 || field >= fieldCount {
		return FieldSpec{}
	}
	return fieldSpecs[field]
}

// Valid reports whether field is declared.
func (field Field) Valid() bool {
	return field >= 0 && field < fieldCount
}

// Clamp bounds value to the field range and snaps it to the step.
func (spec FieldSpec) Clamp(value int) int {
	if spec.Step > 1 {
		value = spec.Min + int(math.Round(float64(value-spec.Min)/float64(spec.Step)))*spec.Step
	}
	return model.ClampInt(value, spec.Min, spec.Max)
}

// FromFraction maps a position along the slider track to a value.
func (spec FieldSpec) FromFraction(fraction float64) int {
	fraction = math.Max(0, math.Min(1, fraction))
	return spec.Clamp(spec.Min + int(math.Round(fraction*float64(spec.Max-spec.Min))))
}

// Fraction is the inverse of FromFraction.
func (spec FieldSpec) Fraction(value int) float64 {
	if spec.Max == spec.Min {
		return 0
	}
	return float64(value-spec.Min) / float64(spec.Max-spec.Min)
}

// Editor holds the adjust page values until they are saved.
type Editor struct {
	values [fieldCount]int
}

// NewEditor seeds an editor from the saved configuration.
func NewEditor(pomodoro model.PomodoroConfig, sound model.SoundConfig) Editor {
	var editor Editor
	editor.Set(FieldFocus, pomodoro.FocusMinutes)
	editor.Set(FieldShortBreak, pomodoro.ShortBreakMinutes)
	editor.Set(FieldLongBreak, pomodoro.LongBreakMinutes)
	editor.Set(FieldSessions, pomodoro.SessionsBeforeLong)
	editor.Set(FieldGain, sound.GainPercent)
	return editor
}

// Value returns the current value of field.
func (editor Editor) Value(field Field) int {
	if !field.Valid() {
		return 0
	}
	return editor.values[field]
}

// Set stores a clamped value.
func (editor *Editor) Set(field Field, value int) {
	if !field.Valid() {
		return
	}
	editor.values[field] = field.Spec().Clamp(value)
}

// Apply copies the edited values into pomodoro and sound settings.
func (editor Editor) Apply(settings model.Settings) model.Settings {
	settings.Pomodoro.FocusMinutes = editor.Value(FieldFocus)
	settings.Pomodoro.ShortBreakMinutes = editor.Value(FieldShortBreak)
	settings.Pomodoro.LongBreakMinutes = editor.Value(FieldLongBreak)
	settings.Pomodoro.SessionsBeforeLong = editor.Value(FieldSessions)
	settings.Sound.GainPercent = editor.Value(FieldGain)
	return settings
}

// AppState is all UI state owned by the controller.
type AppState struct {
	Settings        model.Settings
	SettingsVersion uint64
	Capabilities    Capabilities

	Input        TaskInput
	Editor       Editor
	ActiveSlider Field
	Pick         Pick
	Status       string
	Quit         bool
}
