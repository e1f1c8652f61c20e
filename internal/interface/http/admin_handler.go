package httpapi

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naongcode/thema-signal/internal/application/themes"
)

type reloadRunDTO struct {
	ID         string `json:"id"`
	Trigger    string `json:"trigger"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	BaseDate   string `json:"base_date,omitempty"`
	ThemeCount int    `json:"theme_count"`
	StockCount int    `json:"stock_count"`
}

func (s *Server) handleReload(c *gin.Context) {
	run, err := s.themes.Reload(c.Request.Context(), "manual")
	if err != nil {
		respondError(c, http.StatusInternalServerError, errCodeReloadFailed, err.Error())
		return
	}

	if s.search != nil {
		if err := s.search.Rebuild(s.themes.Snapshot()); err != nil {
			// The snapshot already swapped; serve it even if the index
			// rebuild fails.
			log.Printf("httpapi: search rebuild failed err=%v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"run":     runDTO(run),
	})
}

func (s *Server) handleListReloads(c *gin.Context) {
	limit := parseIntDefault(c.Query("limit"), 20)
	runs := s.themes.Runs(limit)

	dtos := make([]reloadRunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, runDTO(run))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(dtos),
		"runs":    dtos,
	})
}

func runDTO(run themes.ReloadRun) reloadRunDTO {
	return reloadRunDTO{
		ID:         run.ID,
		Trigger:    run.Trigger,
		StartedAt:  run.StartedAt.Format(time.RFC3339),
		FinishedAt: run.FinishedAt.Format(time.RFC3339),
		Success:    run.Success,
		Error:      run.Error,
		BaseDate:   run.BaseDate,
		ThemeCount: run.ThemeCount,
		StockCount: run.StockCount,
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
