package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokemmohub/companion/backend/internal/services"
)

// ReferenceHandler serves the auxiliary reference lookups: TM locations,
// competitive movesets and ability descriptions.
type ReferenceHandler struct {
	tmService      *services.TMLocationService
	smogonService  *services.SmogonService
	abilityService *services.AbilityService
}

func NewReferenceHandler(tm *services.TMLocationService, smogon *services.SmogonService, ability *services.AbilityService) *ReferenceHandler {
	return &ReferenceHandler{
		tmService:      tm,
		smogonService:  smogon,
		abilityService: ability,
	}
}

func (h *ReferenceHandler) GetTMLocations(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		rows, err := h.tmService.Search(c.Request.Context(), query)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"locations": rows, "count": len(rows)})
		return
	}

	byRegion, err := h.tmService.ByRegion(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, byRegion)
}

func (h *ReferenceHandler) GetSmogonSets(c *gin.Context) {
	format := c.Param("format")
	species := c.Param("species")

	sets, err := h.smogonService.GetSets(c.Request.Context(), format, species)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if sets == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sets for this species in this format"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"format": format, "species": species, "sets": sets})
}

func (h *ReferenceHandler) GetAbility(c *gin.Context) {
	name := c.Param("name")

	desc, err := h.abilityService.GetDescription(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if desc == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "ability not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "description": desc})
}
