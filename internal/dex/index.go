package dex

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pokemmohub/companion/backend/internal/models"
)

// Index holds every precomputed structure the query facade reads: the
// species list and its lookup maps, the cleaned location and area tables,
// the horde-size table, and the species -> areas reverse index. It is built
// once from the immutable dataset and never mutated afterwards, so no
// locking is needed.
type Index struct {
	species     []models.Species
	byKey       map[string]*models.Species
	byID        map[int]*models.Species
	locIndex    map[string][]Record
	areas       map[string]map[string][]Entry
	regionOrder []string
	mapOrder    map[string][]string
	hordes      hordeTable
	revAreas    map[int][]models.SpeciesEncounters

	encounterTypes []string
	items          []models.Item
}

// NewIndex builds the full index from in-memory datasets. LoadIndex is the
// file-backed entry point; tests construct synthetic datasets and call this
// directly.
func NewIndex(species []models.Species, hordes models.HordeDataset, items []models.Item) *Index {
	idx := &Index{
		species:  species,
		byKey:    make(map[string]*models.Species),
		byID:     make(map[int]*models.Species),
		hordes:   buildHordeTable(hordes),
		items:    items,
		mapOrder: make(map[string][]string),
	}
	for i := range species {
		mon := &species[i]
		idx.byKey[NormalizeKey(mon.Name)] = mon
		if mon.ID != 0 {
			idx.byID[mon.ID] = mon
		}
		for j := range mon.Forms {
			form := &mon.Forms[j]
			idx.byKey[NormalizeKey(form.Name)] = form
		}
	}
	idx.locIndex = buildLocationIndex(species)
	idx.areas = buildAreaIndex(species, idx.hordes)

	for region, maps := range idx.areas {
		idx.regionOrder = append(idx.regionOrder, region)
		for mapName := range maps {
			idx.mapOrder[region] = append(idx.mapOrder[region], mapName)
		}
		sort.Strings(idx.mapOrder[region])
	}
	sort.Strings(idx.regionOrder)

	idx.encounterTypes = collectEncounterTypes(species)
	idx.buildReverseIndex()
	return idx
}

// buildReverseIndex runs the grouping pipeline over every (region, map)
// bucket once and inverts the result into species -> areas. Stable for the
// lifetime of the index; queries never recompute it.
func (idx *Index) buildReverseIndex() {
	idx.revAreas = make(map[int][]models.SpeciesEncounters)
	for _, region := range idx.regionOrder {
		for _, mapName := range idx.mapOrder[region] {
			grouped := GroupAreaEntries(idx.areas[region][mapName])
			display := NormalizeMapName(region, mapName)
			for _, g := range grouped {
				idx.revAreas[g.SpeciesID] = append(idx.revAreas[g.SpeciesID], models.SpeciesEncounters{
					Region:     region,
					Map:        display,
					Encounters: g.Encounters,
				})
			}
		}
	}
}

// SpeciesByKey resolves a species (or form) by any spelling of its name.
// Returns nil on a miss.
func (idx *Index) SpeciesByKey(key string) *models.Species {
	return idx.byKey[NormalizeKey(key)]
}

// SpeciesByID resolves a species by its numeric dex id.
func (idx *Index) SpeciesByID(id int) *models.Species {
	return idx.byID[id]
}

func (idx *Index) SpeciesCount() int { return len(idx.species) }

// EncounterTypes returns the sorted distinct method labels in the dataset.
func (idx *Index) EncounterTypes() []string { return idx.encounterTypes }

// Items returns the static item catalog.
func (idx *Index) Items() []models.Item { return idx.items }

// Regions returns the region names present in the area table.
func (idx *Index) Regions() []string { return idx.regionOrder }

// AreaCount returns the number of (region, map) pairs in the area table.
func (idx *Index) AreaCount() int {
	n := 0
	for _, maps := range idx.mapOrder {
		n += len(maps)
	}
	return n
}

// RegionalDexNumber returns a species' per-region dex number, if the dataset
// carries one for that region.
func (idx *Index) RegionalDexNumber(speciesKey, region string) (int, bool) {
	mon := idx.SpeciesByKey(speciesKey)
	if mon == nil {
		return 0, false
	}
	want := NormalizeRegion(region)
	for r, n := range mon.RegionalDex {
		if NormalizeRegion(r) == want {
			return n, true
		}
	}
	return 0, false
}

// AreasForSpecies returns the precomputed reverse index entry for a species.
func (idx *Index) AreasForSpecies(speciesID int) []models.SpeciesEncounters {
	return idx.revAreas[speciesID]
}

var displayRegionOrder = []string{"Kanto", "Johto", "Hoenn", "Sinnoh", "Unova", "Unknown"}

func regionRank(region string) int {
	for i, r := range displayRegionOrder {
		if r == region {
			return i
		}
	}
	return len(displayRegionOrder)
}

// EncountersForSpecies merges every raw source for one species into a single
// encounter list per (region, canonical map) pair. Returns nil when the
// species is unknown.
func (idx *Index) EncountersForSpecies(speciesKey string) []models.SpeciesEncounters {
	mon := idx.SpeciesByKey(speciesKey)
	if mon == nil {
		return nil
	}

	type bucket struct {
		region  string
		mapName string
		entries []Entry
	}
	var order []string
	buckets := make(map[string]*bucket)
	add := func(region, mapName string, e Entry) {
		if mapName == "" {
			return
		}
		key := region + "|" + mapName
		b, ok := buckets[key]
		if !ok {
			b = &bucket{region: region, mapName: mapName}
			buckets[key] = b
			order = append(order, key)
		}
		b.entries = append(b.entries, e)
	}

	for _, rec := range idx.locIndex[NormalizeKey(mon.Name)] {
		region := rec.Region
		if region == "" {
			region = "Unknown"
		}
		display := NormalizeMapName(region, rec.Map)
		baseMap, method := foldMapTimeTag(display, rec.Method)
		e := Entry{
			SpeciesID:   mon.ID,
			SpeciesName: mon.Name,
			Method:      method,
			Rarity:      rec.Rarity,
			MinLevel:    rec.MinLevel,
			MaxLevel:    rec.MaxLevel,
			Items:       rec.Items,
			HordeSize:   idx.hordes.size(region, display, mon.Name),
		}
		add(TitleCase(region), baseMap, e)
	}

	for _, area := range idx.revAreas[mon.ID] {
		baseMap, _ := foldMapTimeTag(area.Map, "")
		for _, enc := range area.Encounters {
			_, method := foldMapTimeTag(area.Map, enc.Method)
			base := Entry{
				SpeciesID:   mon.ID,
				SpeciesName: mon.Name,
				Method:      method,
				MinLevel:    enc.MinLevel,
				MaxLevel:    enc.MaxLevel,
				Items:       enc.Items,
				HordeSize:   enc.HordeSize,
			}
			if len(enc.Rarities) == 0 {
				add(TitleCase(area.Region), baseMap, base)
				continue
			}
			for _, r := range enc.Rarities {
				e := base
				e.Rarity = r
				add(TitleCase(area.Region), baseMap, e)
			}
		}
	}

	out := make([]models.SpeciesEncounters, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		out = append(out, models.SpeciesEncounters{
			Region:     b.region,
			Map:        b.mapName,
			Encounters: GroupEncounters(b.entries),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := regionRank(out[i].Region), regionRank(out[j].Region)
		if ri != rj {
			return ri < rj
		}
		return out[i].Map < out[j].Map
	})
	return out
}

// foldMapTimeTag moves a trailing time tag on a map name into the method
// label, so "Route 4 (Night)" and "Route 4" land in the same bucket with the
// time information preserved on the method.
func foldMapTimeTag(mapName, method string) (string, string) {
	tag := ExtractTimeTag(mapName)
	if tag == "" {
		return mapName, method
	}
	base := StripTimeTag(mapName)
	if method == "" {
		return base, "(" + tag + ")"
	}
	return base, method + " (" + tag + ")"
}

// lookupRarity finds a fallback rarity for a species at one map from the
// per-species location table, used when the area table carries none.
func (idx *Index) lookupRarity(speciesName, region, mapName string) string {
	records := idx.locIndex[NormalizeKey(speciesName)]
	regNorm := NormalizeRegion(region)
	mapNorm := StripTimeTag(NormalizeMapName(region, mapName))
	for _, rec := range records {
		if NormalizeRegion(rec.Region) == regNorm &&
			StripTimeTag(NormalizeMapName(rec.Region, rec.Map)) == mapNorm &&
			rec.Rarity != "" {
			return rec.Rarity
		}
	}
	return ""
}

var routeNumRe = regexp.MustCompile(`^route\s*\d+`)

const maxAreaHits = 30

// SpeciesForArea resolves a free-text map query against the area table and
// returns the grouped per-species encounter lists, filtered by the enabled
// method set. Lure encounters are only visible when "Lure" itself is an
// enabled filter. An empty filter set disables filtering. Region may be
// empty or "All" to search every region.
func (idx *Index) SpeciesForArea(region, mapQuery string, methodFilters []string) []models.AreaHit {
	q := strings.ToLower(strings.TrimSpace(mapQuery))
	if len(q) < 2 {
		return nil
	}
	// Suppress results while the user is typing the word "route"
	if strings.HasPrefix("route", q) {
		return nil
	}
	if strings.HasPrefix(q, "route") && !routeNumRe.MatchString(q) {
		return nil
	}

	regionKey := NormalizeRegion(region)
	if regionKey == "" {
		regionKey = "all"
	}

	type bucket struct {
		region  string
		mapName string
		entries []Entry
	}
	var order []string
	buckets := make(map[string]*bucket)

	for _, reg := range idx.regionOrder {
		if regionKey != "all" && NormalizeRegion(reg) != regionKey {
			continue
		}
		for _, mapName := range idx.mapOrder[reg] {
			display := NormalizeMapName(reg, mapName)
			if !MapNameMatches(display, q) {
				continue
			}
			timeTag := strings.ToLower(ExtractTimeTag(display))
			baseMap := StripTimeTag(display)
			key := reg + "|||" + baseMap
			b, ok := buckets[key]
			if !ok {
				b = &bucket{region: reg, mapName: baseMap}
				buckets[key] = b
				order = append(order, key)
			}
			for _, e := range idx.areas[reg][mapName] {
				if timeTag != "" {
					if e.Method != "" {
						e.Method = e.Method + " (" + timeTag + ")"
					} else {
						e.Method = "(" + timeTag + ")"
					}
				}
				b.entries = append(b.entries, e)
			}
		}
	}

	var filters []string
	for _, f := range methodFilters {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			filters = append(filters, f)
		}
	}

	var hits []models.AreaHit
	for _, key := range order {
		b := buckets[key]
		grouped := GroupAreaEntries(b.entries)
		for gi := range grouped {
			for ei := range grouped[gi].Encounters {
				enc := &grouped[gi].Encounters[ei]
				if len(enc.Rarities) == 0 {
					if fb := idx.lookupRarity(grouped[gi].SpeciesName, b.region, b.mapName); fb != "" {
						enc.Rarities = []string{fb}
					}
				}
			}
		}
		if len(filters) > 0 {
			grouped = filterByMethods(grouped, filters)
		}
		if len(grouped) == 0 {
			continue
		}
		hits = append(hits, models.AreaHit{
			Region:  b.region,
			Map:     b.mapName,
			Count:   len(grouped),
			Species: grouped,
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Region != hits[j].Region {
			return hits[i].Region < hits[j].Region
		}
		return hits[i].Map < hits[j].Map
	})
	if len(hits) > maxAreaHits {
		hits = hits[:maxAreaHits]
	}
	return hits
}

func filterByMethods(grouped []models.AreaSpecies, filters []string) []models.AreaSpecies {
	hasLure := false
	for _, f := range filters {
		if f == "lure" {
			hasLure = true
		}
	}
	var out []models.AreaSpecies
	for _, g := range grouped {
		var kept []models.Encounter
		for _, enc := range g.Encounters {
			method := strings.ToLower(enc.Method)
			isLure := strings.Contains(method, "lure")
			for _, r := range enc.Rarities {
				if strings.Contains(strings.ToLower(r), "lure") {
					isLure = true
				}
			}
			if isLure {
				// Lure encounters are only shown when the Lure filter itself
				// is enabled, never via substring overlap with other filters.
				if hasLure {
					kept = append(kept, enc)
				}
				continue
			}
			for _, f := range filters {
				if strings.Contains(method, f) || raritiesContain(enc.Rarities, f) {
					kept = append(kept, enc)
					break
				}
			}
		}
		if len(kept) > 0 {
			g.Encounters = kept
			out = append(out, g)
		}
	}
	return out
}

func raritiesContain(rarities []string, needle string) bool {
	for _, r := range rarities {
		if strings.Contains(strings.ToLower(r), needle) {
			return true
		}
	}
	return false
}

// SearchSpecies ranks species by name match quality: exact name, variant
// prefix, word prefix, then substring. At most 50 results are returned.
func (idx *Index) SearchSpecies(query string) *models.SpeciesSearchResult {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return &models.SpeciesSearchResult{Species: []models.SpeciesSummary{}}
	}

	type scoredMatch struct {
		idx   int
		score int
	}
	var scored []scoredMatch
	for i := range idx.species {
		nameLower := strings.ToLower(idx.species[i].Name)
		score := 0
		switch {
		case nameLower == queryLower:
			score = 1000
		case strings.HasPrefix(nameLower, queryLower+" "):
			score = 800
		case strings.HasPrefix(nameLower, queryLower):
			score = 700
		case strings.Contains(nameLower, " "+queryLower):
			score = 600
		case strings.Contains(nameLower, queryLower):
			score = 500
		case strings.Contains(NormalizeKey(idx.species[i].Name), NormalizeKey(query)):
			score = 400
		}
		if score > 0 {
			scored = append(scored, scoredMatch{idx: i, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return idx.species[scored[i].idx].Name < idx.species[scored[j].idx].Name
	})

	maxResults := 50
	if len(scored) < maxResults {
		maxResults = len(scored)
	}
	out := make([]models.SpeciesSummary, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		mon := &idx.species[scored[i].idx]
		out = append(out, models.SpeciesSummary{
			ID:    mon.ID,
			Name:  mon.Name,
			Types: mon.Types,
		})
	}
	return &models.SpeciesSearchResult{
		Species:    out,
		TotalCount: len(scored),
		HasMore:    len(scored) > maxResults,
	}
}
