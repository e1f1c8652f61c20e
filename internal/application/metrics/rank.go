package metrics

import (
	"sort"

	"github.com/naongcode/thema-signal/internal/domain/theme"
)

// assignRanks writes 1..N ranks per window, each window independently
// sorted descending by that window's theme return. The sort is stable and
// no secondary key exists, so ties keep snapshot theme order.
func assignRanks(themes []theme.CalculatedTheme) {
	idx := make([]int, len(themes))
	for _, w := range theme.Windows {
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return themes[idx[a]].Metrics.Return(w) > themes[idx[b]].Metrics.Return(w)
		})
		for pos, i := range idx {
			themes[i].Metrics.SetRank(w, pos+1)
		}
	}
}
