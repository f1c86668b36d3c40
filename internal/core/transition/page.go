package transition

// Page is one of the mutually exclusive top-level screens of the widget.
type Page int

const (
	PageMain Page = iota
	PageSettings
	PageWeather
	PagePomodoro
	PagePomodoroAdjust

	pageCount
)

// Pages lists every page in declaration order.
var Pages = []Page{PageMain, PageSettings, PageWeather, PagePomodoro, PagePomodoroAdjust}

// Valid reports whether page is a declared page.
func (page Page) Valid() bool {
	return page >= PageMain && page < pageCount
}

func (page Page) String() string {
	switch page {
	case PageMain:
		return "main"
	case PageSettings:
		return "settings"
	case PageWeather:
		return "weather"
	case PagePomodoro:
		return "pomodoro"
	case PagePomodoroAdjust:
		return "pomodoro_adjust"
	default:
		return "unknown"
	}
}

// Direction is the flip direction. Returning to the main page flips backward.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (direction Direction) String() string {
	if direction == Backward {
		return "backward"
	}
	return "forward"
}
