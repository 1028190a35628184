package dex

import (
	"regexp"
	"strings"

	"github.com/pokemmohub/companion/backend/internal/models"
)

var methodSplitRe = regexp.MustCompile(`^(.*?)(?:\s*\(([^()]+)\))?$`)

// splitMethod separates a method label into its base method and normalized
// time tag, e.g. "Grass (Morning/Day)" -> ("Grass", "Morning/Day").
func splitMethod(method string) (base, timeTag string) {
	clean := CleanMethodLabel(method)
	m := methodSplitRe.FindStringSubmatch(clean)
	if m == nil {
		return clean, ""
	}
	base = strings.TrimSpace(m[1])
	if m[2] != "" {
		timeTag = NormalizeTimeTag(m[2])
	}
	return base, timeTag
}

// timeVariant accumulates one (base method, time tag) bucket while grouping.
type timeVariant struct {
	method    string
	timeTag   string
	rarities  *orderedSet
	minLvl    *int
	maxLvl    *int
	items     *orderedSet
	hordeSize int
}

func (v *timeVariant) absorb(e Entry) {
	if e.Rarity != "" {
		v.rarities.add(e.Rarity)
	}
	v.minLvl = minLevel(v.minLvl, e.MinLevel)
	v.maxLvl = maxLevel(v.maxLvl, e.MaxLevel)
	v.items.addAll(e.Items)
	if e.HordeSize != 0 && v.hordeSize == 0 {
		v.hordeSize = e.HordeSize
	}
}

func (v *timeVariant) merge(from *timeVariant) {
	v.rarities.addAll(from.rarities.values())
	v.minLvl = minLevel(v.minLvl, from.minLvl)
	v.maxLvl = maxLevel(v.maxLvl, from.maxLvl)
	v.items.addAll(from.items.values())
	if from.hordeSize != 0 && v.hordeSize == 0 {
		v.hordeSize = from.hordeSize
	}
}

// methodGroup holds the time variants of one base method, in first-seen order.
type methodGroup struct {
	base     string
	variants []*timeVariant
}

func (g *methodGroup) variant(timeTag string) *timeVariant {
	for _, v := range g.variants {
		if v.timeTag == timeTag {
			return v
		}
	}
	return nil
}

// GroupEncounters collapses a flat list of raw contributions for one species
// within one map into the display-ready encounter list. An "all day" entry
// (no time tag) is folded into every time-specific entry for the same method;
// remaining multi-time variants combine into a single encounter whose label
// unions the time tags in first-seen order.
func GroupEncounters(entries []Entry) []models.Encounter {
	var groups []*methodGroup
	byKey := make(map[string]*methodGroup)

	for _, e := range entries {
		base, timeTag := splitMethod(e.Method)
		key := strings.ToLower(base)
		g, ok := byKey[key]
		if !ok {
			g = &methodGroup{base: base}
			byKey[key] = g
			groups = append(groups, g)
		}
		v := g.variant(timeTag)
		if v == nil {
			v = &timeVariant{
				method:   base,
				timeTag:  timeTag,
				rarities: newOrderedSet(),
				items:    newOrderedSet(),
			}
			g.variants = append(g.variants, v)
		}
		v.absorb(e)
	}

	var out []models.Encounter
	for _, g := range groups {
		// An all-day listing applies universally: merge it into every
		// time-specific variant, then drop it.
		if allDay := g.variant(""); allDay != nil && len(g.variants) > 1 {
			kept := g.variants[:0]
			for _, v := range g.variants {
				if v.timeTag == "" {
					continue
				}
				v.merge(allDay)
				kept = append(kept, v)
			}
			g.variants = kept
		}

		if len(g.variants) > 1 {
			combo := &timeVariant{
				method:   g.variants[0].method,
				rarities: newOrderedSet(),
				items:    newOrderedSet(),
			}
			var times []string
			timeSeen := make(map[string]bool)
			for _, v := range g.variants {
				// A variant may itself carry a combined tag such as
				// "Morning/Night" when an already-grouped encounter is folded
				// back in; union the individual tokens.
				for _, tok := range strings.Split(v.timeTag, "/") {
					if tok == "" || timeSeen[tok] {
						continue
					}
					timeSeen[tok] = true
					times = append(times, tok)
				}
				combo.merge(v)
			}
			label := combo.method + " (" + strings.Join(times, "/") + ")"
			out = append(out, buildEncounter(label, combo))
		} else {
			for _, v := range g.variants {
				label := v.method
				if v.timeTag != "" {
					label = v.method + " (" + v.timeTag + ")"
				}
				out = append(out, buildEncounter(label, v))
			}
		}
	}
	return out
}

var hordeMethodRe = regexp.MustCompile(`(?i)^horde`)

func buildEncounter(label string, v *timeVariant) models.Encounter {
	enc := models.Encounter{
		Method:   label,
		Rarities: SelectRarest(v.rarities.values()),
		MinLevel: v.minLvl,
		MaxLevel: v.maxLvl,
		Items:    v.items.values(),
	}
	if enc.Rarities == nil {
		enc.Rarities = []string{}
	}
	if enc.Items == nil {
		enc.Items = []string{}
	}
	// Horde size is only meaningful on horde methods.
	if v.hordeSize != 0 && hordeMethodRe.MatchString(label) {
		enc.HordeSize = v.hordeSize
	}
	return enc
}

// GroupAreaEntries groups a map's flat entry list by species, then collapses
// each species' contributions through GroupEncounters.
func GroupAreaEntries(entries []Entry) []models.AreaSpecies {
	var order []int
	bySpecies := make(map[int][]Entry)
	names := make(map[int]string)
	for _, e := range entries {
		if _, ok := bySpecies[e.SpeciesID]; !ok {
			order = append(order, e.SpeciesID)
			names[e.SpeciesID] = e.SpeciesName
		}
		bySpecies[e.SpeciesID] = append(bySpecies[e.SpeciesID], e)
	}
	out := make([]models.AreaSpecies, 0, len(order))
	for _, id := range order {
		out = append(out, models.AreaSpecies{
			SpeciesID:   id,
			SpeciesName: names[id],
			Encounters:  GroupEncounters(bySpecies[id]),
		})
	}
	return out
}
