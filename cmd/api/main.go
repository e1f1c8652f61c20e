package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/naongcode/thema-signal/internal/application/search"
	"github.com/naongcode/thema-signal/internal/application/themes"
	"github.com/naongcode/thema-signal/internal/infrastructure/config"
	"github.com/naongcode/thema-signal/internal/infrastructure/dataload"
	"github.com/naongcode/thema-signal/internal/infrastructure/schedule"
	httpapi "github.com/naongcode/thema-signal/internal/interface/http"
)

const startupTimeout = 2 * time.Minute

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}
	log.Printf("configuration loaded (HTTP_ADDR=%s DATA_DIR=%s)", cfg.HTTP.Addr, cfg.Data.Dir)

	loader := dataload.NewLoader(cfg.Data.Dir, cfg.Data.PriceMonths)
	svc := themes.NewService(loader)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	run, err := svc.Reload(ctx, "startup")
	cancel()
	if err != nil {
		// Serve anyway; the API answers 503 until a refresh succeeds.
		log.Printf("warning: initial snapshot load failed: %v", err)
	} else {
		log.Printf("snapshot loaded base_date=%s themes=%d stocks=%d", run.BaseDate, run.ThemeCount, run.StockCount)
	}

	var idx *search.Index
	if cfg.Search.Enabled {
		idx = search.NewIndex()
		if svc.Ready() {
			if err := idx.Rebuild(svc.Snapshot()); err != nil {
				log.Printf("warning: search index build failed: %v", err)
			}
		}
	}

	if cfg.Refresh.Enabled {
		refresher := schedule.NewRefresher(func(ctx context.Context) error {
			if _, err := svc.Reload(ctx, "scheduled"); err != nil {
				return err
			}
			if idx != nil {
				return idx.Rebuild(svc.Snapshot())
			}
			return nil
		})
		if err := refresher.Start(cfg.Refresh.Cron); err != nil {
			log.Fatalf("CRITICAL: invalid refresh schedule %q: %v", cfg.Refresh.Cron, err)
		}
		defer refresher.Stop()
	}

	if _, err := os.Stat(cfg.HTTP.StaticDir); os.IsNotExist(err) {
		log.Printf("warning: static dir %q not found, dashboard will not be served", cfg.HTTP.StaticDir)
	}

	apiServer := httpapi.NewServer(cfg, svc, idx)
	log.Printf("starting HTTP server on %s", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, apiServer.Handler()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
