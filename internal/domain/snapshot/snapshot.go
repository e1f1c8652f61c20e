// Package snapshot defines the immutable data set the metrics engine runs
// on: one base date's stock reference, theme definitions, merged price
// history, and drill-down market/financial figures. A snapshot is built
// once by the loader, passed by reference, and never mutated; computation
// over it is safe to share across goroutines.
package snapshot

import (
	"github.com/naongcode/thema-signal/internal/domain/market"
	"github.com/naongcode/thema-signal/internal/domain/theme"
)

// MarketInfo carries per-stock market figures from the market crawl.
type MarketInfo struct {
	MarketCap float64
	Shares    float64
	PER       float64
	PBR       float64
}

// FinancialInfo carries per-stock financials from the quarterly crawl.
type FinancialInfo struct {
	Revenue         float64
	OperatingProfit float64
}

// Snapshot is one fully loaded data set for a single base date.
type Snapshot struct {
	Stocks    map[string]market.Stock
	Themes    []theme.Theme
	Prices    map[string]*market.PriceHistory
	Market    map[string]MarketInfo
	Financial map[string]FinancialInfo

	// BaseDate is the market-data date, display only.
	BaseDate string
	// Quarter is the financial-data quarter, display only.
	Quarter string
}

// Stock resolves reference data for a code. Unknown codes get a stub with
// the code as name so rendering never breaks on stale theme constituents.
func (s *Snapshot) Stock(code string) market.Stock {
	if st, ok := s.Stocks[code]; ok {
		return st
	}
	return market.Stock{Code: code, Name: code, Market: market.MarketUnknown}
}

// History returns the price series for a code, nil when none was loaded.
func (s *Snapshot) History(code string) *market.PriceHistory {
	return s.Prices[code]
}
