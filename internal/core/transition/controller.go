// Package transition owns the page state machine and the card-flip animation
// that moves the widget from one page to another.
//
// The controller is driven by the frame loop: one Tick per rendered frame.
// Progress advances by a fixed step per tick, so the visual duration follows
// the frame rate (20 ticks at 60 fps is roughly a third of a second).
package transition

import "math"

// DefaultStep is the per-tick progress increment.
const DefaultStep = 0.05

// State is a snapshot of the transition.
type State struct {
	Source    Page
	Target    Page
	Progress  float64
	Direction Direction
	Active    bool
}

// Controller is the sole authority on the committed page.
type Controller struct {
	committed  Page
	state      State
	totalSteps int
	steps      int
}

// New creates a controller resting on the initial page.
// A non-positive step uses DefaultStep.
func New(initial Page, step float64) *Controller {
	if !initial.Valid() {
		initial = PageMain
	}
	if step <= 0 || step > 1 {
		step = DefaultStep
	}
	totalSteps := int(math.Round(1 / step))
	if totalSteps < 1 {
		totalSteps = 1
	}
	return &Controller{
		committed:  initial,
		totalSteps: totalSteps,
		state: State{
			Source:    initial,
			Target:    initial,
			Direction: Forward,
		},
	}
}

// Request starts a transition to target. It returns false and leaves the
// state untouched when a transition is already running, when target is the
// committed page, or when target is not a declared page.
func (controller *Controller) Request(target Page) bool {
	if controller.state.Active || target == controller.committed || !target.Valid() {
		return false
	}
	direction := Forward
	if target == PageMain {
		direction = Backward
	}
	controller.state = State{
		Source:    controller.committed,
		Target:    target,
		Progress:  0,
		Direction: direction,
		Active:    true,
	}
	controller.steps = 0
	return true
}

// Tick advances an active transition by one step and commits the target
// when progress reaches 1. It reports whether the transition finished on
// this tick.
func (controller *Controller) Tick() bool {
	if !controller.state.Active {
		return false
	}
	controller.steps++
	if controller.steps >= controller.totalSteps {
		controller.steps = controller.totalSteps
		controller.state.Progress = 1
		controller.state.Active = false
		controller.committed = controller.state.Target
		return true
	}
	controller.state.Progress = float64(controller.steps) / float64(controller.totalSteps)
	return false
}

// VisibleContent returns the page whose content is drawn this frame.
// The new page shows once the flip is past its halfway point.
func (controller *Controller) VisibleContent() Page {
	if controller.state.Progress > 0.5 {
		return controller.state.Target
	}
	return controller.state.Source
}

// Committed returns the page input is routed to.
func (controller *Controller) Committed() Page {
	return controller.committed
}

// Active reports whether a transition is running.
func (controller *Controller) Active() bool {
	return controller.state.Active
}

// State returns a copy of the transition state.
func (controller *Controller) State() State {
	return controller.state
}

// Distortion returns the render distortion for the current state.
func (controller *Controller) Distortion() Distortion {
	return ComputeDistortion(controller.state.Progress, controller.state.Direction)
}
