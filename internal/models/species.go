package models

// Species is one entry of the static dex dataset. Loaded once at startup and
// immutable for the lifetime of the process; user-scoped caught flags live in
// the database instead.
type Species struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Types       []string       `json:"types"`
	EggGroups   []string       `json:"egg_groups"`
	Abilities   []Ability      `json:"abilities"`
	HeldItems   []HeldItem     `json:"held_items"`
	Stats       StatBlock      `json:"stats"`
	Locations   []RawLocation  `json:"locations"`
	Moves       []RawMove      `json:"moves"`
	Evolutions  []Evolution    `json:"evolutions"`
	Forms       []Species      `json:"forms"`
	RegionalDex map[string]int `json:"regional_dex"`
	CatchRate   int            `json:"catch_rate"`
}

type Ability struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

type HeldItem struct {
	Name string `json:"name"`
}

type StatBlock struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// RawLocation is one row of the per-species location table as it appears in
// the dataset. The method label lives in Type and is not independently
// trustworthy: a rarity of "Lure" is really a method (see the ingestor).
type RawLocation struct {
	RegionName string `json:"region_name"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	Rarity     string `json:"rarity"`
	MinLevel   *int   `json:"min_level"`
	MaxLevel   *int   `json:"max_level"`
}

type RawMove struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Level  int    `json:"level"`
}

type Evolution struct {
	ToID      int    `json:"to_id"`
	Condition string `json:"condition"`
	ItemName  string `json:"item_name"`
}

// Item is one entry of the static item dataset.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageID     *int   `json:"imageId"`
}

// HordeDataset mirrors the horde-size dataset file.
type HordeDataset struct {
	Regions []HordeRegion `json:"horderegiondata"`
}

type HordeRegion struct {
	Region string      `json:"region"`
	Areas  []HordeArea `json:"areas"`
}

type HordeArea struct {
	Name             string         `json:"name"`
	DefaultHordeSize int            `json:"defaultHordeSize"`
	Pokemon          []HordePokemon `json:"pokemon"`
}

type HordePokemon struct {
	Name      string `json:"name"`
	HordeSize int    `json:"hordeSize"`
}

// TMLocation is one row of the TM location dataset, keyed by region in the
// source file.
type TMLocation struct {
	TM       string `json:"tm"`
	Location string `json:"location"`
	Region   string `json:"region,omitempty"`
}
