package dataload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/naongcode/thema-signal/internal/domain/market"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fullFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "stocks.json", `{
		"005930": {"name": "삼성전자", "market": "KOSPI"},
		"000660": {"name": "SK하이닉스", "market": "KOSPI"},
		"247540": {"name": "에코프로비엠", "market": "KOSDAQ"}
	}`)
	writeFixture(t, dir, "themes.json", `{"themes": [
		{"id": "T001", "name": "반도체", "stocks": ["005930", "000660"]},
		{"id": "T002", "name": "이차전지", "stocks": ["247540"]}
	]}`)
	writeFixture(t, dir, "market.json", `{"date": "2025-03-07", "data": {
		"005930": {"market_cap": 3.3e14, "shares": 5.9e9, "per": 12.1, "pbr": 1.1}
	}}`)
	writeFixture(t, dir, "financial.json", `{"quarter": "2024Q4", "data": {
		"005930": {"revenue": 7.9e13, "operating_profit": 6.5e12}
	}}`)
	writeFixture(t, dir, "prices/2025-02.json", `{
		"005930": {"2025-02-28": {"close": 53000, "value": 900000000}}
	}`)
	writeFixture(t, dir, "prices/2025-03.json", `{
		"005930": {
			"2025-03-06": {"close": 54000, "value": 1000000000},
			"2025-03-07": {"close": 55100, "value": 1200000000}
		},
		"000660": {"2025-03-07": {"close": 180000, "value": 800000000}}
	}`)
	return dir
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader(fullFixtureDir(t), 3)
	snap, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(snap.Stocks) != 3 {
		t.Errorf("stocks = %d, want 3", len(snap.Stocks))
	}
	if got := snap.Stocks["247540"].Market; got != market.MarketKOSDAQ {
		t.Errorf("247540 market = %s, want KOSDAQ", got)
	}
	if len(snap.Themes) != 2 {
		t.Errorf("themes = %d, want 2", len(snap.Themes))
	}
	if snap.BaseDate != "2025-03-07" {
		t.Errorf("base date = %s, want 2025-03-07", snap.BaseDate)
	}
	if snap.Quarter != "2024Q4" {
		t.Errorf("quarter = %s, want 2024Q4", snap.Quarter)
	}
	if snap.Market["005930"].PER != 12.1 {
		t.Errorf("PER = %v, want 12.1", snap.Market["005930"].PER)
	}
	if snap.Financial["005930"].Revenue != 7.9e13 {
		t.Errorf("revenue = %v, want 7.9e13", snap.Financial["005930"].Revenue)
	}

	hist := snap.History("005930")
	if hist.Len() != 3 {
		t.Fatalf("005930 history len = %d, want 3 merged across months", hist.Len())
	}
	if got := hist.ClosePrice(0); got == nil || *got != 55100 {
		t.Errorf("newest close = %v, want 55100", got)
	}
	if got := hist.ClosePrice(2); got == nil || *got != 53000 {
		t.Errorf("oldest close = %v, want 53000 from the earlier partition", got)
	}
}

func TestLoader_SkipsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stocks.json", `{
		"005930": {"name": "삼성전자", "market": "KOSPI"},
		"999999": {"name": "", "market": "KOSPI"}
	}`)
	writeFixture(t, dir, "themes.json", `{"themes": [
		{"id": "T001", "name": "반도체", "stocks": ["005930"]},
		{"id": "", "name": "이름없음", "stocks": []}
	]}`)

	snap, err := NewLoader(dir, 3).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Stocks) != 1 {
		t.Errorf("stocks = %d, want invalid record skipped", len(snap.Stocks))
	}
	if len(snap.Themes) != 1 || snap.Themes[0].ID != "T001" {
		t.Errorf("themes = %v, want only T001", snap.Themes)
	}
}

func TestLoader_NoValidThemesFails(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stocks.json", `{"005930": {"name": "삼성전자", "market": "KOSPI"}}`)
	writeFixture(t, dir, "themes.json", `{"themes": [{"id": "", "name": "", "stocks": []}]}`)

	if _, err := NewLoader(dir, 3).Load(context.Background()); err == nil {
		t.Fatal("Load() error = nil, want error when every theme is invalid")
	}
}

func TestLoader_MissingMandatoryFile(t *testing.T) {
	if _, err := NewLoader(t.TempDir(), 3).Load(context.Background()); err == nil {
		t.Fatal("Load() error = nil, want error for missing stocks.json")
	}
}

func TestLoader_OptionalFilesMissing(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stocks.json", `{"005930": {"name": "삼성전자", "market": "KOSPI"}}`)
	writeFixture(t, dir, "themes.json", `{"themes": [{"id": "T001", "name": "반도체", "stocks": ["005930"]}]}`)

	snap, err := NewLoader(dir, 3).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.BaseDate != "" || snap.Quarter != "" {
		t.Errorf("expected empty base date and quarter, got %q %q", snap.BaseDate, snap.Quarter)
	}
	if snap.History("005930").Len() != 0 {
		t.Error("expected no price history when prices/ is absent")
	}
}

func TestLoader_MonthWindowLimitsPartitions(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stocks.json", `{"005930": {"name": "삼성전자", "market": "KOSPI"}}`)
	writeFixture(t, dir, "themes.json", `{"themes": [{"id": "T001", "name": "반도체", "stocks": ["005930"]}]}`)
	writeFixture(t, dir, "prices/2025-01.json", `{"005930": {"2025-01-15": {"close": 50000, "value": 1}}}`)
	writeFixture(t, dir, "prices/2025-02.json", `{"005930": {"2025-02-14": {"close": 52000, "value": 1}}}`)
	writeFixture(t, dir, "prices/2025-03.json", `{"005930": {"2025-03-07": {"close": 55100, "value": 1}}}`)

	snap, err := NewLoader(dir, 2).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	hist := snap.History("005930")
	if hist.Len() != 2 {
		t.Fatalf("history len = %d, want only the 2 newest partitions", hist.Len())
	}
	if got := hist.ClosePrice(1); got == nil || *got != 52000 {
		t.Errorf("oldest kept close = %v, want 52000; 2025-01 must be dropped", got)
	}
}

func TestLoader_SkipsBadPriceDates(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stocks.json", `{"005930": {"name": "삼성전자", "market": "KOSPI"}}`)
	writeFixture(t, dir, "themes.json", `{"themes": [{"id": "T001", "name": "반도체", "stocks": ["005930"]}]}`)
	writeFixture(t, dir, "prices/2025-03.json", `{"005930": {
		"2025-03-07": {"close": 55100, "value": 1},
		"2025-03-06": {"close": -5, "value": 1},
		"not-a-date": {"close": 1, "value": 1}
	}}`)

	snap, err := NewLoader(dir, 3).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.History("005930").Len() != 1 {
		t.Errorf("history len = %d, want malformed date and negative close skipped", snap.History("005930").Len())
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(fullFixtureDir(t), 3).Load(ctx); err == nil {
		t.Fatal("Load() error = nil, want context error")
	}
}
