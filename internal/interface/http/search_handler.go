package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type searchHit struct {
	Kind   string   `json:"kind"`
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Market string   `json:"market,omitempty"`
	Themes []string `json:"themes,omitempty"`
	Score  float64  `json:"score"`
}

func (s *Server) handleSearch(c *gin.Context) {
	if s.search == nil {
		respondError(c, http.StatusServiceUnavailable, errCodeSearchDisabled, "search is disabled")
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, http.StatusBadRequest, errCodeBadRequest, "q is required")
		return
	}

	results, err := s.search.Search(query, s.searchLimit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, errCodeInternal, "search failed")
		return
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{
			Kind:   string(r.Kind),
			ID:     r.ID,
			Name:   r.Name,
			Market: r.Market,
			Themes: r.Themes,
			Score:  r.Score,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"count":   len(hits),
		"results": hits,
	})
}
