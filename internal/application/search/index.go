// Package search keeps an in-memory full-text index over theme names and
// stock names/codes so the dashboard can jump to a theme or constituent
// without scanning the whole set. The index is rebuilt from scratch on
// every snapshot reload.
package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/naongcode/thema-signal/internal/domain/snapshot"
)

// Kind tells what a search hit points at.
type Kind string

const (
	KindTheme Kind = "theme"
	KindStock Kind = "stock"
)

// Result is one search hit. Themes carries the owning theme ids when the
// hit is a stock.
type Result struct {
	Kind   Kind
	ID     string
	Name   string
	Market string
	Themes []string
	Score  float64
}

// Index wraps a memory-only bleve index behind a swap lock.
type Index struct {
	mu  sync.RWMutex
	idx bleve.Index
}

// NewIndex builds an empty index; Rebuild populates it.
func NewIndex() *Index {
	return &Index{}
}

// Rebuild indexes the snapshot's themes and stocks into a fresh in-memory
// index and swaps it in atomically. Stocks outside every theme are not
// searchable on purpose; the dashboard has nowhere to take them.
func (i *Index) Rebuild(snap *snapshot.Snapshot) error {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	themesByStock := make(map[string][]string)
	batch := idx.NewBatch()
	for _, th := range snap.Themes {
		doc := map[string]interface{}{
			"kind": string(KindTheme),
			"code": strings.ToLower(th.ID),
			"name": th.Name,
		}
		if err := batch.Index("theme-"+th.ID, doc); err != nil {
			return fmt.Errorf("index theme %s: %w", th.ID, err)
		}
		for _, code := range th.Stocks {
			themesByStock[code] = append(themesByStock[code], th.ID)
		}
	}

	for code, themeIDs := range themesByStock {
		stock := snap.Stock(code)
		doc := map[string]interface{}{
			"kind":   string(KindStock),
			"code":   strings.ToLower(code),
			"name":   stock.Name,
			"market": string(stock.Market),
			"themes": strings.Join(themeIDs, " "),
		}
		if err := batch.Index("stock-"+code, doc); err != nil {
			return fmt.Errorf("index stock %s: %w", code, err)
		}
	}

	if err := idx.Batch(batch); err != nil {
		return fmt.Errorf("execute index batch: %w", err)
	}

	i.mu.Lock()
	old := i.idx
	i.idx = idx
	i.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Search runs a boosted disjunction of exact code, code prefix, name
// match, and name wildcard clauses. Before the first rebuild it returns
// no hits.
func (i *Index) Search(query string, limit int) ([]Result, error) {
	i.mu.RLock()
	idx := i.idx
	i.mu.RUnlock()
	if idx == nil || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	lowered := strings.ToLower(strings.TrimSpace(query))

	exactCode := bleve.NewTermQuery(lowered)
	exactCode.SetField("code")
	exactCode.SetBoost(10.0)

	prefixCode := bleve.NewPrefixQuery(lowered)
	prefixCode.SetField("code")
	prefixCode.SetBoost(5.0)

	nameMatch := bleve.NewMatchQuery(query)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)

	nameWildcard := bleve.NewWildcardQuery("*" + lowered + "*")
	nameWildcard.SetField("name")
	nameWildcard.SetBoost(1.5)

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(exactCode, prefixCode, nameMatch, nameWildcard))
	req.Fields = []string{"kind", "code", "name", "market", "themes"}
	req.Size = limit

	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := Result{
			Kind:   Kind(fieldString(hit.Fields, "kind")),
			ID:     strings.ToUpper(fieldString(hit.Fields, "code")),
			Name:   fieldString(hit.Fields, "name"),
			Market: fieldString(hit.Fields, "market"),
			Score:  hit.Score,
		}
		if themes := fieldString(hit.Fields, "themes"); themes != "" {
			r.Themes = strings.Fields(themes)
		}
		out = append(out, r)
	}
	return out, nil
}

// Close releases the current index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.idx == nil {
		return nil
	}
	err := i.idx.Close()
	i.idx = nil
	return err
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
