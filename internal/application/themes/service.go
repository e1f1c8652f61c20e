// Package themes wires the snapshot loader and the metrics engine behind
// one service that always exposes the last complete calculation. A failed
// reload never disturbs the data readers currently see.
package themes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/naongcode/thema-signal/internal/application/metrics"
	"github.com/naongcode/thema-signal/internal/domain/snapshot"
	"github.com/naongcode/thema-signal/internal/domain/theme"
)

// maxRunHistory bounds the in-memory reload run log.
const maxRunHistory = 20

// Loader produces a fully materialized snapshot. The engine needs the
// whole set; a partial load is the loader's error, never a degraded run.
type Loader interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

// ReloadRun records one reload attempt for the admin endpoints.
type ReloadRun struct {
	ID         string
	Trigger    string
	StartedAt  time.Time
	FinishedAt time.Time
	Success    bool
	Error      string
	BaseDate   string
	ThemeCount int
	StockCount int
}

// Service holds the current snapshot and calculated theme set. All reads
// see a consistent pair; Reload swaps both together.
type Service struct {
	loader Loader
	engine *metrics.Engine

	mu         sync.RWMutex
	snap       *snapshot.Snapshot
	calculated []theme.CalculatedTheme
	loadedAt   time.Time
	runs       []ReloadRun
}

// NewService builds the theme metrics service. No data is loaded until
// the first Reload.
func NewService(loader Loader) *Service {
	return &Service{
		loader: loader,
		engine: metrics.NewEngine(),
	}
}

// Reload loads a fresh snapshot, recomputes every theme, and swaps the
// published pair. On error the previous snapshot stays live.
func (s *Service) Reload(ctx context.Context, trigger string) (ReloadRun, error) {
	run := ReloadRun{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now(),
	}

	snap, err := s.loader.Load(ctx)
	if err != nil {
		run.FinishedAt = time.Now()
		run.Error = err.Error()
		s.recordRun(run)
		return run, fmt.Errorf("load snapshot: %w", err)
	}

	calculated := s.engine.Calculate(snap)

	run.FinishedAt = time.Now()
	run.Success = true
	run.BaseDate = snap.BaseDate
	run.ThemeCount = len(calculated)
	run.StockCount = len(snap.Stocks)

	s.mu.Lock()
	s.snap = snap
	s.calculated = calculated
	s.loadedAt = run.FinishedAt
	s.mu.Unlock()

	s.recordRun(run)
	return run, nil
}

func (s *Service) recordRun(run ReloadRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	if len(s.runs) > maxRunHistory {
		s.runs = s.runs[len(s.runs)-maxRunHistory:]
	}
}

// Ready reports whether at least one reload completed.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// Snapshot returns the current snapshot, nil before the first reload.
func (s *Service) Snapshot() *snapshot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// LoadedAt returns when the current snapshot went live.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Themes returns the calculated set in snapshot order.
func (s *Service) Themes() []theme.CalculatedTheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calculated
}

// ThemesByRank returns a copy of the calculated set sorted ascending by
// the window's precomputed rank. No metric is recomputed here.
func (s *Service) ThemesByRank(w theme.Window) []theme.CalculatedTheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]theme.CalculatedTheme, len(s.calculated))
	copy(out, s.calculated)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metrics.Rank(w) < out[j].Metrics.Rank(w)
	})
	return out
}

// Theme looks up one calculated theme by id.
func (s *Service) Theme(id string) (theme.CalculatedTheme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ct := range s.calculated {
		if ct.ID == id {
			return ct, true
		}
	}
	return theme.CalculatedTheme{}, false
}

// Runs returns the most recent reload runs, newest last.
func (s *Service) Runs(limit int) []ReloadRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.runs)
	if limit > 0 && n > limit {
		return append([]ReloadRun(nil), s.runs[n-limit:]...)
	}
	return append([]ReloadRun(nil), s.runs...)
}

// LastRun returns the most recent reload attempt.
func (s *Service) LastRun() (ReloadRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.runs) == 0 {
		return ReloadRun{}, false
	}
	return s.runs[len(s.runs)-1], true
}
