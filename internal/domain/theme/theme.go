// Package theme holds the theme domain model: a theme is a curated basket
// of stocks tracked together, with momentum metrics computed per lookback
// window and a lifecycle stage describing how far the move has spread.
package theme

// Theme is one curated basket. Stocks keeps the feed's constituent order;
// the order never changes results but keeps tie-breaking reproducible.
type Theme struct {
	ID     string   `json:"id" validate:"required"`
	Name   string   `json:"name" validate:"required"`
	Stocks []string `json:"stocks"`
}

// Window is a lookback period in weeks.
type Window int

const (
	Window3W Window = 3
	Window6W Window = 6
	Window9W Window = 9
)

// Windows lists every supported lookback, shortest first.
var Windows = []Window{Window3W, Window6W, Window9W}

// Weeks returns the window length in weeks.
func (w Window) Weeks() int { return int(w) }

func (w Window) String() string {
	switch w {
	case Window3W:
		return "3w"
	case Window6W:
		return "6w"
	case Window9W:
		return "9w"
	}
	return "unknown"
}

// ParseWindow maps a period string like "6w" to a Window.
func ParseWindow(s string) (Window, bool) {
	for _, w := range Windows {
		if w.String() == s {
			return w, true
		}
	}
	return 0, false
}

// SpreadThreshold returns the return threshold (in percent) a constituent
// must clear to count toward the window's spread. Spread is only defined
// for the 3w and 6w windows; the classifier ignores 9w spread on purpose.
func SpreadThreshold(w Window) (float64, bool) {
	switch w {
	case Window3W:
		return 10, true
	case Window6W:
		return 15, true
	}
	return 0, false
}
