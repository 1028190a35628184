package dex

import (
	"reflect"
	"testing"

	"github.com/pokemmohub/companion/backend/internal/models"
)

func intp(n int) *int { return &n }

// testIndex builds a small synthetic dataset exercising the interesting
// shapes: route maps, colliding simplified names (Eterna City / Eterna
// Forest), a Lure-as-rarity record, hordes and time-of-day variants.
func testIndex() *Index {
	species := []models.Species{
		{
			ID:          399,
			Name:        "Bidoof",
			Types:       []string{"Normal"},
			HeldItems:   []models.HeldItem{{Name: "Oran Berry"}},
			RegionalDex: map[string]int{"sinnoh": 13},
			Locations: []models.RawLocation{
				{RegionName: "Sinnoh", Location: "Route 201", Type: "Grass", Rarity: "Very Common", MinLevel: intp(2), MaxLevel: intp(4)},
				{RegionName: "Sinnoh", Location: "Route 202", Type: "Grass (Morning)", Rarity: "Common", MinLevel: intp(3), MaxLevel: intp(5)},
				{RegionName: "Sinnoh", Location: "Route 202", Type: "Grass (Night)", Rarity: "Rare", MinLevel: intp(4), MaxLevel: intp(7)},
			},
		},
		{
			ID:    427,
			Name:  "Buneary",
			Types: []string{"Normal"},
			Locations: []models.RawLocation{
				{RegionName: "Sinnoh", Location: "Eterna Forest", Type: "Grass", Rarity: "Uncommon", MinLevel: intp(5), MaxLevel: intp(7)},
				{RegionName: "Sinnoh", Location: "Eterna Forest", Type: "Hordes", MinLevel: intp(10), MaxLevel: intp(10)},
			},
		},
		{
			ID:    41,
			Name:  "Zubat",
			Types: []string{"Poison", "Flying"},
			Locations: []models.RawLocation{
				{RegionName: "Sinnoh", Location: "Mt. Coronet", Type: "Cave", Rarity: "Common"},
				{RegionName: "Sinnoh", Location: "Eterna City", Type: "Super Rod", Rarity: "Rare"},
				{RegionName: "Sinnoh", Location: "Route 201", Type: "Grass", Rarity: "Lure"},
			},
		},
	}
	hordes := models.HordeDataset{Regions: []models.HordeRegion{{
		Region: "Sinnoh",
		Areas: []models.HordeArea{{
			Name:             "Eterna Forest",
			DefaultHordeSize: 5,
			Pokemon:          []models.HordePokemon{{Name: "Buneary"}},
		}},
	}}}
	return NewIndex(species, hordes, nil)
}

func TestSpeciesLookup(t *testing.T) {
	idx := testIndex()
	if mon := idx.SpeciesByKey("bidoof"); mon == nil || mon.ID != 399 {
		t.Fatalf("SpeciesByKey(bidoof) = %+v, want Bidoof", mon)
	}
	if mon := idx.SpeciesByKey("BIDOOF"); mon == nil {
		t.Error("lookup should be case-insensitive")
	}
	if mon := idx.SpeciesByKey("missingno"); mon != nil {
		t.Errorf("unknown species = %+v, want nil", mon)
	}
	if mon := idx.SpeciesByID(41); mon == nil || mon.Name != "Zubat" {
		t.Errorf("SpeciesByID(41) = %+v, want Zubat", mon)
	}
}

func TestEncountersForSpecies(t *testing.T) {
	idx := testIndex()
	got := idx.EncountersForSpecies("bidoof")
	if len(got) != 2 {
		t.Fatalf("expected 2 areas, got %d: %+v", len(got), got)
	}

	r201 := got[0]
	if r201.Region != "Sinnoh" || r201.Map != "Route 201" {
		t.Fatalf("first area = %s/%s, want Sinnoh/Route 201", r201.Region, r201.Map)
	}
	if len(r201.Encounters) != 1 {
		t.Fatalf("Route 201 encounters = %+v, want one merged Grass entry", r201.Encounters)
	}
	enc := r201.Encounters[0]
	if enc.Method != "Grass" || !reflect.DeepEqual(enc.Rarities, []string{"Very Common"}) {
		t.Errorf("Route 201 = %+v, want Grass / [Very Common]", enc)
	}
	if enc.MinLevel == nil || *enc.MinLevel != 2 || enc.MaxLevel == nil || *enc.MaxLevel != 4 {
		t.Errorf("Route 201 levels = %v-%v, want 2-4", enc.MinLevel, enc.MaxLevel)
	}
	if !reflect.DeepEqual(enc.Items, []string{"Oran Berry"}) {
		t.Errorf("Route 201 items = %v, want held items", enc.Items)
	}

	r202 := got[1]
	if r202.Map != "Route 202" || len(r202.Encounters) != 1 {
		t.Fatalf("second area = %+v, want single merged Route 202 entry", r202)
	}
	enc = r202.Encounters[0]
	if enc.Method != "Grass (Morning/Night)" {
		t.Errorf("Route 202 method = %q, want Grass (Morning/Night)", enc.Method)
	}
	if !reflect.DeepEqual(enc.Rarities, []string{"Rare"}) {
		t.Errorf("Route 202 rarities = %v, want collapsed to [Rare]", enc.Rarities)
	}
	if enc.MinLevel == nil || *enc.MinLevel != 3 || enc.MaxLevel == nil || *enc.MaxLevel != 7 {
		t.Errorf("Route 202 levels = %v-%v, want 3-7", enc.MinLevel, enc.MaxLevel)
	}
}

func TestEncountersForSpeciesHorde(t *testing.T) {
	idx := testIndex()
	got := idx.EncountersForSpecies("Buneary")
	if len(got) != 1 {
		t.Fatalf("expected 1 area, got %+v", got)
	}
	var horde *models.Encounter
	for i := range got[0].Encounters {
		if got[0].Encounters[i].Method == "Horde" {
			horde = &got[0].Encounters[i]
		}
	}
	if horde == nil {
		t.Fatalf("no Horde encounter in %+v", got[0].Encounters)
	}
	if horde.HordeSize != 5 {
		t.Errorf("horde size = %d, want 5 (area default)", horde.HordeSize)
	}
}

func TestEncountersForSpeciesUnknown(t *testing.T) {
	idx := testIndex()
	if got := idx.EncountersForSpecies("missingno"); got != nil {
		t.Errorf("unknown species = %+v, want nil", got)
	}
}

func TestSpeciesForArea(t *testing.T) {
	idx := testIndex()

	hits := idx.SpeciesForArea("Sinnoh", "route 201", nil)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %+v", hits)
	}
	if hits[0].Map != "Route 201" || hits[0].Count != 2 {
		t.Fatalf("hit = %+v, want Route 201 with 2 species", hits[0])
	}
	if hits[0].Species[0].SpeciesName != "Bidoof" || hits[0].Species[1].SpeciesName != "Zubat" {
		t.Errorf("species = %q, %q; want Bidoof, Zubat",
			hits[0].Species[0].SpeciesName, hits[0].Species[1].SpeciesName)
	}
}

func TestSpeciesForAreaLureFilter(t *testing.T) {
	idx := testIndex()

	// "grass" overlaps Zubat's "Lure (Grass)" as a substring, but lure
	// encounters only surface when Lure itself is enabled.
	hits := idx.SpeciesForArea("Sinnoh", "route 201", []string{"Grass"})
	if len(hits) != 1 || hits[0].Count != 1 || hits[0].Species[0].SpeciesName != "Bidoof" {
		t.Fatalf("grass filter hits = %+v, want only Bidoof", hits)
	}

	hits = idx.SpeciesForArea("Sinnoh", "route 201", []string{"Lure"})
	if len(hits) != 1 || hits[0].Count != 1 || hits[0].Species[0].SpeciesName != "Zubat" {
		t.Fatalf("lure filter hits = %+v, want only Zubat", hits)
	}
}

func TestSpeciesForAreaTypingGuards(t *testing.T) {
	idx := testIndex()
	for _, q := range []string{"", "r", "ro", "rout", "route"} {
		if hits := idx.SpeciesForArea("", q, nil); len(hits) != 0 {
			t.Errorf("query %q should return nothing, got %+v", q, hits)
		}
	}
	if hits := idx.SpeciesForArea("Kanto", "route 201", nil); len(hits) != 0 {
		t.Errorf("wrong region should return nothing, got %+v", hits)
	}
}

func TestRegionalDexNumber(t *testing.T) {
	idx := testIndex()
	if n, ok := idx.RegionalDexNumber("Bidoof", "Sinnoh"); !ok || n != 13 {
		t.Errorf("RegionalDexNumber(Bidoof, Sinnoh) = %d, %v; want 13, true", n, ok)
	}
	if _, ok := idx.RegionalDexNumber("Bidoof", "Kanto"); ok {
		t.Error("Bidoof has no Kanto number")
	}
	if _, ok := idx.RegionalDexNumber("missingno", "Sinnoh"); ok {
		t.Error("unknown species should not resolve")
	}
}

func TestAreasForSpecies(t *testing.T) {
	idx := testIndex()
	areas := idx.AreasForSpecies(399)
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas for Bidoof, got %+v", areas)
	}
	if idx.AreasForSpecies(9999) != nil {
		t.Error("unknown id should yield nil")
	}
}

func TestSearchSpecies(t *testing.T) {
	idx := testIndex()

	res := idx.SearchSpecies("bid")
	if res.TotalCount != 1 || len(res.Species) != 1 || res.Species[0].Name != "Bidoof" {
		t.Fatalf("SearchSpecies(bid) = %+v, want Bidoof", res)
	}

	res = idx.SearchSpecies("Zubat")
	if len(res.Species) != 1 || res.Species[0].ID != 41 {
		t.Fatalf("SearchSpecies(Zubat) = %+v, want exact match", res)
	}

	res = idx.SearchSpecies("")
	if len(res.Species) != 0 {
		t.Errorf("empty query = %+v, want no results", res)
	}
}

func TestEncounterTypes(t *testing.T) {
	idx := testIndex()
	want := []string{"Cave", "Grass", "Grass (Morning)", "Grass (Night)", "Horde", "Lure", "Super Rod"}
	if got := idx.EncounterTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("EncounterTypes() = %v, want %v", got, want)
	}
}
