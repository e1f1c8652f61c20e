package market

import (
	"fmt"
	"time"
)

const tradeDateLayout = "2006-01-02"

// TradeDate is a calendar date with day precision. The crawler feed keys
// prices by "YYYY-MM-DD" strings; this type gives those keys an explicit
// chronological comparator instead of relying on string order.
type TradeDate struct {
	t time.Time
}

// ParseTradeDate parses a YYYY-MM-DD string.
func ParseTradeDate(s string) (TradeDate, error) {
	t, err := time.Parse(tradeDateLayout, s)
	if err != nil {
		return TradeDate{}, fmt.Errorf("parse trade date %q: %w", s, err)
	}
	return TradeDate{t: t}, nil
}

// NewTradeDate builds a TradeDate from components. Intended for tests.
func NewTradeDate(year int, month time.Month, day int) TradeDate {
	return TradeDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// AddDays returns the date shifted by n calendar days.
func (d TradeDate) AddDays(n int) TradeDate {
	return TradeDate{t: d.t.AddDate(0, 0, n)}
}

func (d TradeDate) Before(o TradeDate) bool { return d.t.Before(o.t) }
func (d TradeDate) After(o TradeDate) bool  { return d.t.After(o.t) }
func (d TradeDate) Equal(o TradeDate) bool  { return d.t.Equal(o.t) }
func (d TradeDate) IsZero() bool            { return d.t.IsZero() }

func (d TradeDate) String() string {
	return d.t.Format(tradeDateLayout)
}
