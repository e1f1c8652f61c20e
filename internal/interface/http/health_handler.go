package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"status":    "alive",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	snapStatus := "ok"
	var baseDate string
	themeCount := 0
	stockCount := 0
	if !s.themes.Ready() {
		snapStatus = "not_loaded"
	} else {
		snap := s.themes.Snapshot()
		baseDate = snap.BaseDate
		themeCount = len(snap.Themes)
		stockCount = len(snap.Stocks)
	}

	body := gin.H{
		"success":   true,
		"health":    "ok",
		"snapshot":  snapStatus,
		"base_date": baseDate,
		"themes":    themeCount,
		"stocks":    stockCount,
		"loaded_at": formatTime(s.themes.LoadedAt()),
		"time":      time.Now().Format(time.RFC3339),
	}
	if run, ok := s.themes.LastRun(); ok {
		body["last_reload"] = gin.H{
			"trigger":     run.Trigger,
			"success":     run.Success,
			"finished_at": run.FinishedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, body)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
