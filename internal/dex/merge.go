package dex

import (
	"strings"
)

// RarityOrder ranks the known rarity labels from most to least common.
// Labels not on this scale (percentage-style rarities and other free text)
// are off-scale and always preserved by SelectRarest.
var RarityOrder = []string{"very common", "common", "uncommon", "rare", "very rare"}

func rarityKey(r string) string {
	return strings.TrimSpace(strings.ToLower(r))
}

func rarityRank(r string) int {
	k := rarityKey(r)
	for i, known := range RarityOrder {
		if k == known {
			return i
		}
	}
	return -1
}

// SelectRarest collapses a rarity list to its single rarest on-scale label,
// keeping any off-scale labels alongside it. With at most one on-scale label
// the input is returned deduplicated but otherwise untouched.
func SelectRarest(rarities []string) []string {
	var unique []string
	seen := make(map[string]bool, len(rarities))
	for _, r := range rarities {
		if !seen[r] {
			seen[r] = true
			unique = append(unique, r)
		}
	}
	var known []string
	for _, r := range unique {
		if rarityRank(r) >= 0 {
			known = append(known, r)
		}
	}
	if len(known) < 2 {
		return unique
	}
	rarest := known[0]
	for _, r := range known[1:] {
		if rarityRank(r) > rarityRank(rarest) {
			rarest = r
		}
	}
	out := []string{rarest}
	for _, r := range unique {
		if rarityRank(r) < 0 {
			out = append(out, r)
		}
	}
	return out
}

// Entry is one raw encounter contribution for a species within one map,
// after ingestion cleanup. The grouper consumes these.
type Entry struct {
	SpeciesID   int
	SpeciesName string
	Method      string
	Rarity      string
	MinLevel    *int
	MaxLevel    *int
	Items       []string
	HordeSize   int
}

// minLevel and maxLevel merge nullable level bounds.
func minLevel(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *b < *a {
		return b
	}
	return a
}

func maxLevel(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if *b > *a {
		return b
	}
	return a
}

// orderedSet is a small insertion-ordered string set used while unioning
// method, rarity and item labels across records.
type orderedSet struct {
	order []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.order = append(s.order, v)
}

func (s *orderedSet) addAll(vs []string) {
	for _, v := range vs {
		s.add(v)
	}
}

func (s *orderedSet) values() []string {
	return s.order
}
