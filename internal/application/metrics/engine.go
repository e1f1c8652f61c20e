// Package metrics computes theme momentum metrics over an immutable
// snapshot: per-stock and per-theme returns across three lookback
// windows, spread, leaders, lifecycle stage, and cross-theme ranks.
package metrics

import (
	"github.com/naongcode/thema-signal/internal/domain/snapshot"
	"github.com/naongcode/thema-signal/internal/domain/theme"
)

// Engine derives the calculated theme set from a snapshot. It holds no
// state; Calculate is a pure function and safe to call repeatedly.
type Engine struct{}

// NewEngine builds the metrics engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate runs the two-pass computation: every theme's metrics first,
// then ranking across the full set. Ranking must see every theme's return,
// so it cannot fold into the first pass.
func (e *Engine) Calculate(snap *snapshot.Snapshot) []theme.CalculatedTheme {
	out := make([]theme.CalculatedTheme, 0, len(snap.Themes))
	for _, th := range snap.Themes {
		out = append(out, e.calculateOne(snap, th))
	}
	assignRanks(out)
	return out
}

func (e *Engine) calculateOne(snap *snapshot.Snapshot, th theme.Theme) theme.CalculatedTheme {
	m := theme.ThemeMetrics{
		Return3W: themeReturn(snap, th, theme.Window3W),
		Return6W: themeReturn(snap, th, theme.Window6W),
		Return9W: themeReturn(snap, th, theme.Window9W),

		Spread3W: themeSpread(snap, th, theme.Window3W),
		Spread6W: themeSpread(snap, th, theme.Window6W),

		Leader3W:     returnLeader(snap, th, theme.Window3W),
		Leader6W:     returnLeader(snap, th, theme.Window6W),
		Leader9W:     returnLeader(snap, th, theme.Window9W),
		LeaderVolume: volumeLeader(snap, th),
	}

	m.Stage = theme.ClassifyStage(theme.StageInput{
		Return3W: m.Return3W,
		Return6W: m.Return6W,
		Spread3W: float64(m.Spread3W),
		Spread6W: float64(m.Spread6W),
	})

	perStock := make(map[string]theme.StockMetrics, len(th.Stocks))
	for _, code := range th.Stocks {
		perStock[code] = stockMetrics(snap, code)
	}

	return theme.CalculatedTheme{
		ID:           th.ID,
		Name:         th.Name,
		Stocks:       th.Stocks,
		Metrics:      m,
		StockMetrics: perStock,
	}
}
