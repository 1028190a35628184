package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pokemmohub/companion/backend/internal/dex"
	"github.com/pokemmohub/companion/backend/internal/metrics"
	"github.com/pokemmohub/companion/backend/internal/models"
)

type AreaHandler struct {
	index *dex.Index
}

func NewAreaHandler(index *dex.Index) *AreaHandler {
	return &AreaHandler{index: index}
}

// SearchAreas resolves a free-text map query and returns the grouped species
// lists per matched area. methods is a comma-separated filter set; Lure
// encounters only appear when "Lure" is among the enabled methods.
func (h *AreaHandler) SearchAreas(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	region := c.Query("region")

	var filters []string
	if raw := strings.TrimSpace(c.Query("methods")); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				filters = append(filters, f)
			}
		}
	}

	metrics.AreaSearchesTotal.Inc()
	hits := h.index.SpeciesForArea(region, query, filters)
	if hits == nil {
		hits = []models.AreaHit{}
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits, "count": len(hits)})
}

// MatchArea resolves a query to the single best area, the endpoint behind
// location autocomplete.
func (h *AreaHandler) MatchArea(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	match := h.index.MatchArea(query)
	if match == nil {
		metrics.AreaMatchesTotal.WithLabelValues("miss").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "no area matched"})
		return
	}
	metrics.AreaMatchesTotal.WithLabelValues("hit").Inc()
	c.JSON(http.StatusOK, match)
}

type matchTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// MatchAreaInText scans arbitrary text (e.g. a pasted HUD line) for the best
// area match, discarding unrelated leading words.
func (h *AreaHandler) MatchAreaInText(c *gin.Context) {
	var req matchTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'text' is required"})
		return
	}
	clean, match := h.index.MatchAreaInText(req.Text)
	if match == nil {
		metrics.AreaMatchesTotal.WithLabelValues("miss").Inc()
		c.JSON(http.StatusOK, gin.H{"text": clean, "match": nil})
		return
	}
	metrics.AreaMatchesTotal.WithLabelValues("hit").Inc()
	c.JSON(http.StatusOK, gin.H{"text": clean, "match": match})
}
