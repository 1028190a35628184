package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pokemmohub/companion/backend/internal/database"
	"github.com/pokemmohub/companion/backend/internal/dex"
	"github.com/pokemmohub/companion/backend/internal/metrics"
	"github.com/pokemmohub/companion/backend/internal/models"
)

type CaughtHandler struct {
	index *dex.Index
}

func NewCaughtHandler(index *dex.Index) *CaughtHandler {
	return &CaughtHandler{index: index}
}

func (h *CaughtHandler) refreshGauge() {
	var count int64
	if err := database.GetDB().Model(&models.CaughtEntry{}).Count(&count).Error; err == nil {
		metrics.CaughtEntriesTotal.Set(float64(count))
	}
}

func (h *CaughtHandler) GetCaught(c *gin.Context) {
	var entries []models.CaughtEntry
	if err := database.GetDB().Order("caught_at desc").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (h *CaughtHandler) AddCaught(c *gin.Context) {
	var req models.AddCaughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'species_id' is required"})
		return
	}

	mon := h.index.SpeciesByID(req.SpeciesID)
	if mon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown species id"})
		return
	}

	entry := models.CaughtEntry{
		SpeciesID:  req.SpeciesID,
		SpeciesKey: dex.NormalizeKey(mon.Name),
		Shiny:      req.Shiny,
		CaughtAt:   time.Now(),
	}
	// The (species_id, shiny) pair is unique; re-adding is a no-op.
	err := database.GetDB().
		Where("species_id = ? AND shiny = ?", req.SpeciesID, req.Shiny).
		FirstOrCreate(&entry).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.refreshGauge()
	c.JSON(http.StatusOK, entry)
}

func (h *CaughtHandler) DeleteCaught(c *gin.Context) {
	id := c.Param("id")
	shiny := c.Query("shiny") == "true"

	result := database.GetDB().
		Where("species_id = ? AND shiny = ?", id, shiny).
		Delete(&models.CaughtEntry{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not caught"})
		return
	}

	h.refreshGauge()
	c.JSON(http.StatusOK, gin.H{"deleted": result.RowsAffected})
}

func (h *CaughtHandler) GetStats(c *gin.Context) {
	db := database.GetDB()
	var total, shiny int64
	if err := db.Model(&models.CaughtEntry{}).Where("shiny = ?", false).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := db.Model(&models.CaughtEntry{}).Where("shiny = ?", true).Count(&shiny).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := models.CaughtStats{
		Total:   int(total),
		Shiny:   int(shiny),
		DexSize: h.index.SpeciesCount(),
	}
	if stats.DexSize > 0 {
		stats.Percentage = stats.Total * 100 / stats.DexSize
	}
	c.JSON(http.StatusOK, stats)
}

type caughtExportPayload struct {
	Caught []int `json:"caught"`
	Shiny  []int `json:"shiny"`
}

// ExportCaught snapshots the caught list under a fresh share token.
func (h *CaughtHandler) ExportCaught(c *gin.Context) {
	var entries []models.CaughtEntry
	if err := database.GetDB().Order("species_id").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload := caughtExportPayload{Caught: []int{}, Shiny: []int{}}
	for _, e := range entries {
		if e.Shiny {
			payload.Shiny = append(payload.Shiny, e.SpeciesID)
		} else {
			payload.Caught = append(payload.Caught, e.SpeciesID)
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	export := models.CaughtExport{
		Token:     uuid.NewString(),
		Payload:   string(data),
		CreatedAt: time.Now(),
	}
	if err := database.GetDB().Create(&export).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.CaughtExportsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"token": export.Token, "created_at": export.CreatedAt})
}

// ImportCaught merges a previously exported snapshot into the caught list.
func (h *CaughtHandler) ImportCaught(c *gin.Context) {
	token := c.Param("token")

	var export models.CaughtExport
	if err := database.GetDB().First(&export, "token = ?", token).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown export token"})
		return
	}

	var payload caughtExportPayload
	if err := json.Unmarshal([]byte(export.Payload), &payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt export payload"})
		return
	}

	imported := 0
	add := func(speciesID int, shiny bool) {
		mon := h.index.SpeciesByID(speciesID)
		if mon == nil {
			log.Printf("Warning: export %s references unknown species %d", token, speciesID)
			return
		}
		entry := models.CaughtEntry{
			SpeciesID:  speciesID,
			SpeciesKey: dex.NormalizeKey(mon.Name),
			Shiny:      shiny,
			CaughtAt:   time.Now(),
		}
		err := database.GetDB().
			Where("species_id = ? AND shiny = ?", speciesID, shiny).
			FirstOrCreate(&entry).Error
		if err == nil {
			imported++
		}
	}
	for _, id := range payload.Caught {
		add(id, false)
	}
	for _, id := range payload.Shiny {
		add(id, true)
	}

	h.refreshGauge()
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
