package theme

// StockMetrics holds one constituent's per-window returns and trailing
// traded value. Returns default to 0 when no valid return exists; the
// aggregation layer excludes those from averages before defaulting.
type StockMetrics struct {
	Return3W   float64
	Return6W   float64
	Return9W   float64
	AvgValue1W float64
}

// Return selects the return for a window.
func (m StockMetrics) Return(w Window) float64 {
	switch w {
	case Window3W:
		return m.Return3W
	case Window6W:
		return m.Return6W
	case Window9W:
		return m.Return9W
	}
	return 0
}

// ThemeMetrics is the fully computed metric set for one theme. An empty
// leader string means no constituent qualified.
type ThemeMetrics struct {
	Return3W float64
	Return6W float64
	Return9W float64

	Spread3W int
	Spread6W int

	Rank3W int
	Rank6W int
	Rank9W int

	Leader3W     string
	Leader6W     string
	Leader9W     string
	LeaderVolume string

	Stage Stage
}

// Return selects the theme return for a window.
func (m ThemeMetrics) Return(w Window) float64 {
	switch w {
	case Window3W:
		return m.Return3W
	case Window6W:
		return m.Return6W
	case Window9W:
		return m.Return9W
	}
	return 0
}

// Rank selects the 1-based rank for a window (0 before ranking ran).
func (m ThemeMetrics) Rank(w Window) int {
	switch w {
	case Window3W:
		return m.Rank3W
	case Window6W:
		return m.Rank6W
	case Window9W:
		return m.Rank9W
	}
	return 0
}

// SetRank writes a window's rank in place.
func (m *ThemeMetrics) SetRank(w Window, rank int) {
	switch w {
	case Window3W:
		m.Rank3W = rank
	case Window6W:
		m.Rank6W = rank
	case Window9W:
		m.Rank9W = rank
	}
}

// Leader selects the return leader for a window.
func (m ThemeMetrics) Leader(w Window) string {
	switch w {
	case Window3W:
		return m.Leader3W
	case Window6W:
		return m.Leader6W
	case Window9W:
		return m.Leader9W
	}
	return ""
}

// Trend describes how a theme's rank moves against the next longer window.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = ""
)

// RankTrend compares a window's rank with the adjacent longer window: a
// numerically lower rank is an improvement. The 9w window has no longer
// neighbor and never shows a trend.
func (m ThemeMetrics) RankTrend(w Window) Trend {
	var cur, next int
	switch w {
	case Window3W:
		cur, next = m.Rank3W, m.Rank6W
	case Window6W:
		cur, next = m.Rank6W, m.Rank9W
	default:
		return TrendFlat
	}
	switch {
	case cur < next:
		return TrendUp
	case cur > next:
		return TrendDown
	}
	return TrendFlat
}

// CalculatedTheme is one theme with its metrics materialized, the unit the
// dashboard consumes. Immutable once the engine returns it.
type CalculatedTheme struct {
	ID           string
	Name         string
	Stocks       []string
	Metrics      ThemeMetrics
	StockMetrics map[string]StockMetrics
}
