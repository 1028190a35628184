package models

import (
	"time"
)

// CaughtEntry is a user-scoped caught flag for one species. The dex dataset
// itself is immutable; these rows are the only mutable state the server owns.
type CaughtEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SpeciesID  int       `json:"species_id" gorm:"not null;uniqueIndex:idx_species_shiny"`
	SpeciesKey string    `json:"species_key" gorm:"not null;index"`
	Shiny      bool      `json:"shiny" gorm:"uniqueIndex:idx_species_shiny;default:false"`
	CaughtAt   time.Time `json:"caught_at"`
}

// CaughtExport is a point-in-time snapshot of the caught list, identified by
// a share token so it can be re-imported on another device.
type CaughtExport struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	Payload   string    `json:"payload"` // JSON-encoded species id list
	CreatedAt time.Time `json:"created_at"`
}

type AddCaughtRequest struct {
	SpeciesID int  `json:"species_id" binding:"required"`
	Shiny     bool `json:"shiny"`
}

type CaughtStats struct {
	Total      int `json:"total"`
	Shiny      int `json:"shiny"`
	DexSize    int `json:"dex_size"`
	Percentage int `json:"percentage"`
}
