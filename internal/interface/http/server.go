// Package httpapi exposes the theme dashboard API over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naongcode/thema-signal/internal/application/search"
	"github.com/naongcode/thema-signal/internal/application/themes"
	"github.com/naongcode/thema-signal/internal/infrastructure/config"
)

const (
	errCodeBadRequest       = "BAD_REQUEST"
	errCodeNotFound         = "NOT_FOUND"
	errCodeSnapshotNotReady = "SNAPSHOT_NOT_READY"
	errCodeSearchDisabled   = "SEARCH_DISABLED"
	errCodeReloadFailed     = "RELOAD_FAILED"
	errCodeInternal         = "INTERNAL_ERROR"
)

// Server wires the HTTP routes to the theme service and search index.
type Server struct {
	engine      *gin.Engine
	themes      *themes.Service
	search      *search.Index
	searchLimit int
}

// NewServer builds the API server. search may be nil when disabled by
// config; the search endpoint then answers 503.
func NewServer(cfg config.Config, svc *themes.Service, idx *search.Index) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ginLogger())
	engine.Use(corsMiddleware())

	s := &Server{
		engine:      engine,
		themes:      svc,
		search:      idx,
		searchLimit: cfg.Search.Limit,
	}
	s.registerRoutes(cfg.HTTP.StaticDir)
	return s
}

// Handler returns the route handler for mounting on an HTTP server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes(staticDir string) {
	api := s.engine.Group("/api")
	api.GET("/ping", s.handlePing)
	api.GET("/health", s.handleHealth)
	api.GET("/themes", s.handleListThemes)
	api.GET("/themes/:id", s.handleThemeDetail)
	api.GET("/search", s.handleSearch)
	api.POST("/admin/reload", s.handleReload)
	api.GET("/admin/reloads", s.handleListReloads)

	// Dashboard front end.
	if staticDir != "" {
		s.engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}
}
