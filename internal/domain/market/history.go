package market

import "sort"

// TradingDaysPerWeek approximates one week as five trading days when
// converting week windows to series offsets.
const TradingDaysPerWeek = 5

// DailyPrice holds one day's close price and traded value for a stock.
// A missing traded value in the feed decodes to 0.
type DailyPrice struct {
	Date  TradeDate
	Close float64
	Value float64
}

// PriceHistory is an immutable price series for one stock, ordered newest
// first. Offsets address the Nth most recent available record, not the
// calendar-exact Nth day back; non-trading days simply do not appear.
type PriceHistory struct {
	records []DailyPrice
}

// NewPriceHistory builds a history from daily records in any order.
func NewPriceHistory(records []DailyPrice) *PriceHistory {
	sorted := make([]DailyPrice, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return &PriceHistory{records: sorted}
}

// Len returns the number of available daily records.
func (h *PriceHistory) Len() int {
	if h == nil {
		return 0
	}
	return len(h.records)
}

// ClosePrice returns the close price daysAgo records back, or nil when the
// series is too short. A recorded close of 0 also counts as missing; the
// feed uses it for halted or unlisted days.
func (h *PriceHistory) ClosePrice(daysAgo int) *float64 {
	if h == nil || daysAgo < 0 || daysAgo >= len(h.records) {
		return nil
	}
	c := h.records[daysAgo].Close
	if c == 0 {
		return nil
	}
	return &c
}

// ReturnPct computes the percentage return over a window of weeks, using
// weeks*5 record offsets. Returns nil when either endpoint is unavailable,
// so a caller never sees NaN or Inf.
func (h *PriceHistory) ReturnPct(weeks int) *float64 {
	current := h.ClosePrice(0)
	past := h.ClosePrice(weeks * TradingDaysPerWeek)
	if current == nil || past == nil {
		return nil
	}
	r := (*current - *past) / *past * 100
	return &r
}

// AvgTradedValue averages traded value over the days most recent available
// records. Records with no traded value contribute 0 to the sum; an empty
// series yields 0.
func (h *PriceHistory) AvgTradedValue(days int) float64 {
	if h == nil || days <= 0 || len(h.records) == 0 {
		return 0
	}
	if days > len(h.records) {
		days = len(h.records)
	}
	total := 0.0
	for i := 0; i < days; i++ {
		total += h.records[i].Value
	}
	return total / float64(days)
}
