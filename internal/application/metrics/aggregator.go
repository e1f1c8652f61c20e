package metrics

import (
	"math"
	"sort"

	"github.com/naongcode/thema-signal/internal/domain/snapshot"
	"github.com/naongcode/thema-signal/internal/domain/theme"
)

// avgValueDays is the trailing window for the one-week traded value.
const avgValueDays = 5

// validReturns collects constituents' returns for a window, dropping
// stocks with no usable history. Order follows constituent order.
func validReturns(snap *snapshot.Snapshot, th theme.Theme, w theme.Window) []float64 {
	out := make([]float64, 0, len(th.Stocks))
	for _, code := range th.Stocks {
		if r := snap.History(code).ReturnPct(w.Weeks()); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// themeReturn averages the top slice of constituent returns. The top count
// is clamp(floor(n/2), 3, 5); when fewer valid returns exist than the
// clamp asks for, whatever exists is averaged. This deliberately measures
// the best-performing core of the basket, not the whole tail.
func themeReturn(snap *snapshot.Snapshot, th theme.Theme, w theme.Window) float64 {
	returns := validReturns(snap, th, w)
	if len(returns) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(returns)))

	topCount := len(returns) / 2
	if topCount < 3 {
		topCount = 3
	}
	if topCount > 5 {
		topCount = 5
	}
	if topCount > len(returns) {
		topCount = len(returns)
	}

	sum := 0.0
	for _, r := range returns[:topCount] {
		sum += r
	}
	return sum / float64(topCount)
}

// themeSpread is the rounded percentage of valid returns at or above the
// window's threshold. Windows without a threshold (9w) yield 0.
func themeSpread(snap *snapshot.Snapshot, th theme.Theme, w theme.Window) int {
	threshold, ok := theme.SpreadThreshold(w)
	if !ok {
		return 0
	}
	returns := validReturns(snap, th, w)
	if len(returns) == 0 {
		return 0
	}
	above := 0
	for _, r := range returns {
		if r >= threshold {
			above++
		}
	}
	return int(math.Round(float64(above) / float64(len(returns)) * 100))
}

// returnLeader picks the constituent with the strictly greatest return for
// the window. Ties keep the earlier constituent; no valid return means no
// leader.
func returnLeader(snap *snapshot.Snapshot, th theme.Theme, w theme.Window) string {
	best := math.Inf(-1)
	leader := ""
	for _, code := range th.Stocks {
		r := snap.History(code).ReturnPct(w.Weeks())
		if r != nil && *r > best {
			best = *r
			leader = code
		}
	}
	return leader
}

// volumeLeader picks the constituent with the strictly greatest trailing
// traded value. The 0 baseline means a theme with no volume at all has no
// leader.
func volumeLeader(snap *snapshot.Snapshot, th theme.Theme) string {
	best := 0.0
	leader := ""
	for _, code := range th.Stocks {
		if v := snap.History(code).AvgTradedValue(avgValueDays); v > best {
			best = v
			leader = code
		}
	}
	return leader
}

// stockMetrics materializes one constituent's per-window returns, with
// missing returns defaulted to 0 for display.
func stockMetrics(snap *snapshot.Snapshot, code string) theme.StockMetrics {
	h := snap.History(code)
	return theme.StockMetrics{
		Return3W:   zeroIfNil(h.ReturnPct(theme.Window3W.Weeks())),
		Return6W:   zeroIfNil(h.ReturnPct(theme.Window6W.Weeks())),
		Return9W:   zeroIfNil(h.ReturnPct(theme.Window9W.Weeks())),
		AvgValue1W: h.AvgTradedValue(avgValueDays),
	}
}

func zeroIfNil(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
