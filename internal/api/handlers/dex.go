package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokemmohub/companion/backend/internal/dex"
	"github.com/pokemmohub/companion/backend/internal/models"
)

type DexHandler struct {
	index *dex.Index
}

func NewDexHandler(index *dex.Index) *DexHandler {
	return &DexHandler{index: index}
}

func (h *DexHandler) SearchSpecies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	c.JSON(http.StatusOK, h.index.SearchSpecies(query))
}

func (h *DexHandler) GetSpecies(c *gin.Context) {
	mon := h.index.SpeciesByKey(c.Param("key"))
	if mon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "species not found"})
		return
	}
	c.JSON(http.StatusOK, mon)
}

// GetSpeciesEncounters returns the merged per-area encounter list for one
// species, every raw source already deduplicated and time-combined.
func (h *DexHandler) GetSpeciesEncounters(c *gin.Context) {
	key := c.Param("key")
	if h.index.SpeciesByKey(key) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "species not found"})
		return
	}
	encounters := h.index.EncountersForSpecies(key)
	if encounters == nil {
		encounters = []models.SpeciesEncounters{}
	}
	c.JSON(http.StatusOK, gin.H{"encounters": encounters})
}

func (h *DexHandler) GetSpeciesAreas(c *gin.Context) {
	mon := h.index.SpeciesByKey(c.Param("key"))
	if mon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "species not found"})
		return
	}
	areas := h.index.AreasForSpecies(mon.ID)
	if areas == nil {
		areas = []models.SpeciesEncounters{}
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

func (h *DexHandler) GetRegionalDexNumber(c *gin.Context) {
	key := c.Param("key")
	region := c.Query("region")
	if region == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'region' is required"})
		return
	}
	number, ok := h.index.RegionalDexNumber(key, region)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no regional dex number for this species and region"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": region, "number": number})
}

func (h *DexHandler) GetEncounterTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"encounter_types": h.index.EncounterTypes()})
}

func (h *DexHandler) GetRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": h.index.Regions()})
}
