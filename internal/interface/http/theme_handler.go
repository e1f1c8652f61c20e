package httpapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/naongcode/thema-signal/internal/domain/snapshot"
	"github.com/naongcode/thema-signal/internal/domain/theme"
)

type stageDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type leaderDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// windowDTO is one lookback window's slice of a theme. Spread is absent
// for windows that have no spread threshold.
type windowDTO struct {
	Return float64    `json:"return"`
	Spread *int       `json:"spread,omitempty"`
	Rank   int        `json:"rank"`
	Trend  string     `json:"trend,omitempty"`
	Leader *leaderDTO `json:"leader,omitempty"`
}

type themeSummary struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	StockCount   int                  `json:"stock_count"`
	Stage        stageDTO             `json:"stage"`
	Windows      map[string]windowDTO `json:"windows"`
	VolumeLeader *leaderDTO           `json:"volume_leader,omitempty"`
}

type marketInfoDTO struct {
	MarketCap float64 `json:"market_cap"`
	Shares    float64 `json:"shares"`
	PER       float64 `json:"per"`
	PBR       float64 `json:"pbr"`
}

type financialInfoDTO struct {
	Revenue         float64 `json:"revenue"`
	OperatingProfit float64 `json:"operating_profit"`
}

type stockDetail struct {
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	Market     string            `json:"market"`
	Return3W   float64           `json:"return_3w"`
	Return6W   float64           `json:"return_6w"`
	Return9W   float64           `json:"return_9w"`
	AvgValue1W float64           `json:"avg_value_1w"`
	MarketInfo *marketInfoDTO    `json:"market_info,omitempty"`
	Financial  *financialInfoDTO `json:"financial,omitempty"`
}

func (s *Server) handleListThemes(c *gin.Context) {
	if !s.themes.Ready() {
		respondError(c, http.StatusServiceUnavailable, errCodeSnapshotNotReady, "snapshot not loaded yet")
		return
	}

	period := c.DefaultQuery("period", "3w")
	window, ok := theme.ParseWindow(period)
	if !ok {
		respondError(c, http.StatusBadRequest, errCodeBadRequest, "period must be one of 3w, 6w, 9w")
		return
	}

	snap := s.themes.Snapshot()
	ranked := s.themes.ThemesByRank(window)
	summaries := make([]themeSummary, 0, len(ranked))
	for _, ct := range ranked {
		summaries = append(summaries, buildSummary(snap, ct))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"period":    window.String(),
		"base_date": snap.BaseDate,
		"count":     len(summaries),
		"themes":    summaries,
	})
}

func (s *Server) handleThemeDetail(c *gin.Context) {
	if !s.themes.Ready() {
		respondError(c, http.StatusServiceUnavailable, errCodeSnapshotNotReady, "snapshot not loaded yet")
		return
	}

	period := c.DefaultQuery("period", "3w")
	window, okPeriod := theme.ParseWindow(period)
	if !okPeriod {
		respondError(c, http.StatusBadRequest, errCodeBadRequest, "period must be one of 3w, 6w, 9w")
		return
	}

	id := c.Param("id")
	ct, ok := s.themes.Theme(id)
	if !ok {
		respondError(c, http.StatusNotFound, errCodeNotFound, "theme not found")
		return
	}

	snap := s.themes.Snapshot()
	stocks := make([]stockDetail, 0, len(ct.Stocks))
	for _, code := range ct.Stocks {
		stock := snap.Stock(code)
		sm := ct.StockMetrics[code]
		detail := stockDetail{
			Code:       code,
			Name:       stock.Name,
			Market:     string(stock.Market),
			Return3W:   sm.Return3W,
			Return6W:   sm.Return6W,
			Return9W:   sm.Return9W,
			AvgValue1W: sm.AvgValue1W,
		}
		if mi, ok := snap.Market[code]; ok {
			detail.MarketInfo = &marketInfoDTO{
				MarketCap: mi.MarketCap,
				Shares:    mi.Shares,
				PER:       mi.PER,
				PBR:       mi.PBR,
			}
		}
		if fi, ok := snap.Financial[code]; ok {
			detail.Financial = &financialInfoDTO{
				Revenue:         fi.Revenue,
				OperatingProfit: fi.OperatingProfit,
			}
		}
		stocks = append(stocks, detail)
	}

	// Constituents sort by the requested window's return; ties keep feed
	// order.
	sort.SliceStable(stocks, func(i, j int) bool {
		return stockReturn(stocks[i], window) > stockReturn(stocks[j], window)
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"period":    window.String(),
		"base_date": snap.BaseDate,
		"quarter":   snap.Quarter,
		"theme":     buildSummary(snap, ct),
		"stocks":    stocks,
	})
}

func buildSummary(snap *snapshot.Snapshot, ct theme.CalculatedTheme) themeSummary {
	windows := make(map[string]windowDTO, len(theme.Windows))
	for _, w := range theme.Windows {
		dto := windowDTO{
			Return: ct.Metrics.Return(w),
			Rank:   ct.Metrics.Rank(w),
			Trend:  string(ct.Metrics.RankTrend(w)),
			Leader: leaderFor(snap, ct.Metrics.Leader(w)),
		}
		if _, ok := theme.SpreadThreshold(w); ok {
			spread := spreadFor(ct.Metrics, w)
			dto.Spread = &spread
		}
		windows[w.String()] = dto
	}

	return themeSummary{
		ID:         ct.ID,
		Name:       ct.Name,
		StockCount: len(ct.Stocks),
		Stage: stageDTO{
			Code:  string(ct.Metrics.Stage),
			Label: ct.Metrics.Stage.Label(),
		},
		Windows:      windows,
		VolumeLeader: leaderFor(snap, ct.Metrics.LeaderVolume),
	}
}

func spreadFor(m theme.ThemeMetrics, w theme.Window) int {
	switch w {
	case theme.Window3W:
		return m.Spread3W
	case theme.Window6W:
		return m.Spread6W
	}
	return 0
}

func stockReturn(d stockDetail, w theme.Window) float64 {
	switch w {
	case theme.Window3W:
		return d.Return3W
	case theme.Window6W:
		return d.Return6W
	}
	return d.Return9W
}

func leaderFor(snap *snapshot.Snapshot, code string) *leaderDTO {
	if code == "" {
		return nil
	}
	return &leaderDTO{Code: code, Name: snap.Stock(code).Name}
}
