package dex

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pokemmohub/companion/backend/internal/models"
)

// Record is one cleaned per-species location row: region and map as they
// appear in the dataset (season tags stripped), method/rarity after the Lure
// reinterpretation pass, and the species' held items.
type Record struct {
	Region   string
	Map      string
	Method   string
	Rarity   string
	MinLevel *int
	MaxLevel *int
	Items    []string
}

var lureRe = regexp.MustCompile(`(?i)lure`)

// reinterpretLure applies the Lure normalization exactly once, at ingestion.
// The raw data stores some Lure encounters as a rarity rather than a method;
// those are promoted to a proper method with the original method in parens.
// Any record whose method is already a Lure variant carries no rarity.
func reinterpretLure(method, rarity string) (string, string) {
	if rarity != "" && lureRe.MatchString(rarity) {
		if method != "" {
			method = fmt.Sprintf("Lure (%s)", method)
		} else {
			method = "Lure"
		}
		rarity = ""
	}
	if method != "" && lureRe.MatchString(method) {
		rarity = ""
	}
	return method, rarity
}

func levelString(l *int) string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%d", *l)
}

// buildLocationIndex transforms the per-species location arrays into the raw
// record index keyed by normalized species name.
func buildLocationIndex(species []models.Species) map[string][]Record {
	idx := make(map[string][]Record, len(species))
	for i := range species {
		mon := &species[i]
		key := NormalizeKey(mon.Name)
		items := heldItemNames(mon)
		seen := make(map[string]bool)
		var records []Record
		for _, l := range mon.Locations {
			method, rarity := reinterpretLure(l.Type, l.Rarity)
			mapName := StripSeason(l.Location)
			dedupeKey := strings.Join([]string{
				l.RegionName, mapName, method, rarity,
				levelString(l.MinLevel), levelString(l.MaxLevel),
			}, "|")
			if seen[dedupeKey] {
				continue
			}
			seen[dedupeKey] = true
			records = append(records, Record{
				Region:   l.RegionName,
				Map:      mapName,
				Method:   method,
				Rarity:   rarity,
				MinLevel: l.MinLevel,
				MaxLevel: l.MaxLevel,
				Items:    items,
			})
		}
		idx[key] = records
	}
	return idx
}

func heldItemNames(mon *models.Species) []string {
	var names []string
	for _, h := range mon.HeldItems {
		if h.Name != "" {
			names = append(names, h.Name)
		}
	}
	return names
}

// buildAreaIndex inverts the per-species location arrays into the per-area
// table: region -> raw map name -> entries. Method labels are cleaned here so
// every downstream consumer sees balanced parentheses and canonical Horde
// casing.
func buildAreaIndex(species []models.Species, hordes hordeTable) map[string]map[string][]Entry {
	out := make(map[string]map[string][]Entry)
	for i := range species {
		mon := &species[i]
		items := heldItemNames(mon)
		seen := make(map[string]bool)
		for _, loc := range mon.Locations {
			region := loc.RegionName
			if region == "" {
				region = "Unknown"
			}
			mapName := StripSeason(loc.Location)
			if mapName == "" {
				continue
			}
			method := CleanMethodLabel(loc.Type)
			rarity := loc.Rarity
			if rarity != "" && lureRe.MatchString(rarity) {
				if method != "" {
					method = CleanMethodLabel(fmt.Sprintf("Lure (%s)", method))
				} else {
					method = "Lure"
				}
				rarity = ""
			}
			if method != "" && lureRe.MatchString(method) {
				rarity = ""
			}
			dedupeKey := strings.Join([]string{
				region, mapName, method, rarity,
				levelString(loc.MinLevel), levelString(loc.MaxLevel),
			}, "|")
			if seen[dedupeKey] {
				continue
			}
			seen[dedupeKey] = true
			entry := Entry{
				SpeciesID:   mon.ID,
				SpeciesName: mon.Name,
				Method:      method,
				Rarity:      rarity,
				MinLevel:    loc.MinLevel,
				MaxLevel:    loc.MaxLevel,
				Items:       items,
			}
			if size := hordes.size(region, mapName, mon.Name); size != 0 {
				entry.HordeSize = size
			}
			if out[region] == nil {
				out[region] = make(map[string][]Entry)
			}
			out[region][mapName] = append(out[region][mapName], entry)
		}
	}
	return out
}

// hordeTable maps lowercase region -> area -> species to a horde size.
type hordeTable map[string]map[string]map[string]int

func buildHordeTable(ds models.HordeDataset) hordeTable {
	table := make(hordeTable)
	for _, region := range ds.Regions {
		rKey := strings.ToLower(region.Region)
		if table[rKey] == nil {
			table[rKey] = make(map[string]map[string]int)
		}
		for _, area := range region.Areas {
			aKey := strings.ToLower(area.Name)
			if table[rKey][aKey] == nil {
				table[rKey][aKey] = make(map[string]int)
			}
			for _, p := range area.Pokemon {
				size := p.HordeSize
				if size == 0 {
					size = area.DefaultHordeSize
				}
				table[rKey][aKey][strings.ToLower(p.Name)] = size
			}
		}
	}
	return table
}

// normalizeAreaName is the loose fallback key for horde lookups: lowercase
// with parenthetical groups removed.
func normalizeAreaName(area string) string {
	return strings.TrimSpace(parenRe.ReplaceAllString(strings.ToLower(area), ""))
}

func (t hordeTable) size(region, area, species string) int {
	rKey := strings.ToLower(region)
	pKey := strings.ToLower(species)
	byArea, ok := t[rKey]
	if !ok {
		return 0
	}
	if size, ok := byArea[strings.ToLower(area)][pKey]; ok {
		return size
	}
	return byArea[normalizeAreaName(area)][pKey]
}

// LoadIndex reads the static datasets from dataDir and builds the Index.
// Expected files: dex.json (species array), hordes.json (horde-size table)
// and items.json (item catalog, optional).
func LoadIndex(dataDir string) (*Index, error) {
	var species []models.Species
	if err := readJSONFile(filepath.Join(dataDir, "dex.json"), &species); err != nil {
		return nil, fmt.Errorf("failed to load species dataset: %w", err)
	}

	var hordes models.HordeDataset
	if err := readJSONFile(filepath.Join(dataDir, "hordes.json"), &hordes); err != nil {
		// Horde sizes are an enrichment, not a requirement.
		log.Printf("Warning: failed to load horde dataset: %v", err)
	}

	var items []models.Item
	if err := readJSONFile(filepath.Join(dataDir, "items.json"), &items); err != nil {
		log.Printf("Warning: failed to load item dataset: %v", err)
	}

	idx := NewIndex(species, hordes, items)
	log.Printf("Dex data loaded: %d species, %d regions, %d encounter types",
		len(species), len(idx.regionOrder), len(idx.encounterTypes))
	return idx, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// collectEncounterTypes gathers the distinct cleaned method labels across the
// dataset, adding "Lure" when any record stores it as a rarity. This drives
// the method-filter UI.
func collectEncounterTypes(species []models.Species) []string {
	set := newOrderedSet()
	for i := range species {
		for _, loc := range species[i].Locations {
			if loc.Type != "" {
				set.add(CleanMethodLabel(loc.Type))
			}
			if loc.Rarity != "" && lureRe.MatchString(loc.Rarity) {
				set.add("Lure")
			}
		}
	}
	types := set.values()
	sort.Strings(types)
	return types
}
