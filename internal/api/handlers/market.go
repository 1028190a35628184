package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokemmohub/companion/backend/internal/services"
)

type MarketHandler struct {
	marketService *services.MarketService
}

func NewMarketHandler(market *services.MarketService) *MarketHandler {
	return &MarketHandler{marketService: market}
}

// GetListings returns GTL item listings, falling back to the static item
// catalog when the market endpoint is unavailable.
func (h *MarketHandler) GetListings(c *gin.Context) {
	items, err := h.marketService.GetListings(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
