package models

// Encounter is the display-ready unit: one merged method label (possibly
// carrying a combined time tag), a ranked rarity set, a level range, held
// items, and an optional horde size.
type Encounter struct {
	Method    string   `json:"method"`
	Rarities  []string `json:"rarities"`
	MinLevel  *int     `json:"min_level"`
	MaxLevel  *int     `json:"max_level"`
	Items     []string `json:"items"`
	HordeSize int      `json:"horde_size,omitempty"`
}

// SpeciesEncounters groups a species' encounters for one canonical map.
type SpeciesEncounters struct {
	Region     string      `json:"region"`
	Map        string      `json:"map"`
	Encounters []Encounter `json:"encounters"`
}

// AreaSpecies is one species' encounter set within an area result.
type AreaSpecies struct {
	SpeciesID   int         `json:"species_id"`
	SpeciesName string      `json:"species_name"`
	Encounters  []Encounter `json:"encounters"`
}

// AreaHit is one matched area with its grouped species list.
type AreaHit struct {
	Region  string        `json:"region"`
	Map     string        `json:"map"`
	Count   int           `json:"count"`
	Species []AreaSpecies `json:"species"`
}

// MarketItem is one listing from the GTL endpoint, already coerced into a
// uniform shape regardless of which of the endpoint's response layouts it
// came from.
type MarketItem struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type SpeciesSearchResult struct {
	Species    []SpeciesSummary `json:"species"`
	TotalCount int              `json:"total_count"`
	HasMore    bool             `json:"has_more"`
}

// SpeciesSummary is the lightweight shape returned by name search.
type SpeciesSummary struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
}
