// Package dataload reads the crawler's JSON output from disk and builds a
// snapshot the metrics engine can run on. The crawler writes one file per
// concern (stocks, themes, market, financial) plus monthly price
// partitions under prices/.
package dataload

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/naongcode/thema-signal/internal/domain/market"
	"github.com/naongcode/thema-signal/internal/domain/snapshot"
	"github.com/naongcode/thema-signal/internal/domain/theme"
)

const (
	stocksFile    = "stocks.json"
	themesFile    = "themes.json"
	marketFile    = "market.json"
	financialFile = "financial.json"
	pricesDir     = "prices"
)

type stockRecord struct {
	Name   string `json:"name"`
	Market string `json:"market"`
}

type themesFileBody struct {
	Themes []theme.Theme `json:"themes"`
}

type marketFileBody struct {
	Date string                  `json:"date"`
	Data map[string]marketRecord `json:"data"`
}

type marketRecord struct {
	MarketCap float64 `json:"market_cap"`
	Shares    float64 `json:"shares"`
	PER       float64 `json:"per"`
	PBR       float64 `json:"pbr"`
}

type financialFileBody struct {
	Quarter string                     `json:"quarter"`
	Data    map[string]financialRecord `json:"data"`
}

type financialRecord struct {
	Revenue         float64 `json:"revenue"`
	OperatingProfit float64 `json:"operating_profit"`
}

type priceRecord struct {
	Close float64 `json:"close"`
	Value float64 `json:"value"`
}

// Loader builds snapshots from a crawler output directory.
type Loader struct {
	dir      string
	months   int
	validate *validator.Validate
}

// NewLoader reads from dir, merging at most months of the newest price
// partitions.
func NewLoader(dir string, months int) *Loader {
	if months <= 0 {
		months = 3
	}
	return &Loader{
		dir:      dir,
		months:   months,
		validate: validator.New(),
	}
}

// Load reads every file and assembles a snapshot. Stocks and themes are
// mandatory; market, financial, and price files degrade to empty data so a
// partial crawl still produces a servable snapshot. Invalid records are
// skipped with a log line, but a theme file that yields zero valid themes
// fails the whole load.
func (l *Loader) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stocks, err := l.loadStocks()
	if err != nil {
		return nil, err
	}
	themes, err := l.loadThemes()
	if err != nil {
		return nil, err
	}

	snap := &snapshot.Snapshot{
		Stocks:    stocks,
		Themes:    themes,
		Prices:    map[string]*market.PriceHistory{},
		Market:    map[string]snapshot.MarketInfo{},
		Financial: map[string]snapshot.FinancialInfo{},
	}

	if err := l.loadMarket(snap); err != nil {
		return nil, err
	}
	if err := l.loadFinancial(snap); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.loadPrices(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (l *Loader) loadStocks() (map[string]market.Stock, error) {
	var raw map[string]stockRecord
	if err := l.readJSON(stocksFile, &raw); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s missing in %s", stocksFile, l.dir)
		}
		return nil, err
	}

	stocks := make(map[string]market.Stock, len(raw))
	for code, rec := range raw {
		stock := market.Stock{
			Code:   code,
			Name:   rec.Name,
			Market: market.ParseMarket(rec.Market),
		}
		if err := stock.Validate(); err != nil {
			log.Printf("dataload: skip stock code=%s err=%v", code, err)
			continue
		}
		stocks[code] = stock
	}
	return stocks, nil
}

func (l *Loader) loadThemes() ([]theme.Theme, error) {
	var body themesFileBody
	if err := l.readJSON(themesFile, &body); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s missing in %s", themesFile, l.dir)
		}
		return nil, err
	}

	themes := make([]theme.Theme, 0, len(body.Themes))
	for _, th := range body.Themes {
		if err := l.validate.Struct(th); err != nil {
			log.Printf("dataload: skip theme id=%q err=%v", th.ID, err)
			continue
		}
		themes = append(themes, th)
	}
	if len(themes) == 0 {
		return nil, fmt.Errorf("%s contains no valid themes", themesFile)
	}
	return themes, nil
}

func (l *Loader) loadMarket(snap *snapshot.Snapshot) error {
	var body marketFileBody
	if err := l.readJSON(marketFile, &body); err != nil {
		if os.IsNotExist(err) {
			log.Printf("dataload: %s missing, market figures unavailable", marketFile)
			return nil
		}
		return err
	}
	snap.BaseDate = body.Date
	for code, rec := range body.Data {
		snap.Market[code] = snapshot.MarketInfo{
			MarketCap: rec.MarketCap,
			Shares:    rec.Shares,
			PER:       rec.PER,
			PBR:       rec.PBR,
		}
	}
	return nil
}

func (l *Loader) loadFinancial(snap *snapshot.Snapshot) error {
	var body financialFileBody
	if err := l.readJSON(financialFile, &body); err != nil {
		if os.IsNotExist(err) {
			log.Printf("dataload: %s missing, financial figures unavailable", financialFile)
			return nil
		}
		return err
	}
	snap.Quarter = body.Quarter
	for code, rec := range body.Data {
		snap.Financial[code] = snapshot.FinancialInfo{
			Revenue:         rec.Revenue,
			OperatingProfit: rec.OperatingProfit,
		}
	}
	return nil
}

// loadPrices merges the newest month partitions into one series per stock.
// Partition file names sort lexically by month (2025-01.json < 2025-02.json),
// so the newest months are the tail of the sorted listing.
func (l *Loader) loadPrices(snap *snapshot.Snapshot) error {
	dir := filepath.Join(l.dir, pricesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("dataload: %s/ missing, price history unavailable", pricesDir)
			return nil
		}
		return fmt.Errorf("read prices dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) > l.months {
		names = names[len(names)-l.months:]
	}

	daily := map[string][]market.DailyPrice{}
	for _, name := range names {
		var partition map[string]map[string]priceRecord
		if err := l.readJSON(filepath.Join(pricesDir, name), &partition); err != nil {
			return err
		}
		for code, days := range partition {
			for dateStr, rec := range days {
				date, err := market.ParseTradeDate(dateStr)
				if err != nil {
					log.Printf("dataload: skip price code=%s date=%q err=%v", code, dateStr, err)
					continue
				}
				if rec.Close < 0 {
					log.Printf("dataload: skip price code=%s date=%s close=%v", code, dateStr, rec.Close)
					continue
				}
				daily[code] = append(daily[code], market.DailyPrice{
					Date:  date,
					Close: rec.Close,
					Value: rec.Value,
				})
			}
		}
	}

	for code, records := range daily {
		snap.Prices[code] = market.NewPriceHistory(records)
	}
	return nil
}

func (l *Loader) readJSON(name string, out interface{}) error {
	path := filepath.Join(l.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
