package dex

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AreaMatch is a resolved free-text area query: the region and canonical
// display map plus the raw dataset map name that produced it.
type AreaMatch struct {
	Region     string `json:"region"`
	DisplayMap string `json:"display_map"`
	RawMap     string `json:"raw_map"`
	Score      int    `json:"score"`
}

const matchThreshold = 35

var (
	routeTokenRe    = regexp.MustCompile(`(?:^|\b)route\s*(\d+)`)
	routeKeyRe      = regexp.MustCompile(`(?:^|\b)route(\d+)\b`)
	leadingRouteRe  = regexp.MustCompile(`^(?:route\s*)?(\d+)\b`)
	candRouteRe     = regexp.MustCompile(`^route\s*(\d+)\b`)
	routeNumQueryRe = regexp.MustCompile(`(?i)^route\s*\d+`)
	routeWordRe     = regexp.MustCompile(`(?i)^route\b`)
	bareNumberRe    = regexp.MustCompile(`^\d+$`)
	digitRunRe      = regexp.MustCompile(`\d+`)
	alnumRe         = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	lettersRe       = regexp.MustCompile(`[^a-zA-Z]+`)
	mtWordRe        = regexp.MustCompile(`(?i)^mt\.?$`)
)

// ScoreNames scores the similarity of two already-normalized name strings.
// Exact equality scores 100; otherwise prefix (+25), substring (+20), equal
// non-empty digit sequences (+30) and a length-ratio bonus for multi-word
// pairs (up to +15) accumulate. Differing route numbers force the score to 0
// regardless of other signals.
func ScoreNames(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	routeA := routeTokenRe.FindStringSubmatch(a)
	routeB := routeTokenRe.FindStringSubmatch(b)
	if routeA != nil && routeB != nil && routeA[1] != routeB[1] {
		return 0
	}

	score := 0
	if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
		score += 25
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		score += 20
	}
	numsA := strings.Join(digitRunRe.FindAllString(a, -1), ",")
	numsB := strings.Join(digitRunRe.FindAllString(b, -1), ",")
	if numsA != "" && numsA == numsB {
		score += 30
	}
	if strings.Contains(a, " ") && strings.Contains(b, " ") {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		score += int(math.Round(float64(shorter) / float64(longer) * 15))
	}
	return score
}

// MapNameMatches reports whether a candidate map name satisfies a free-text
// query. Route-number queries require the exact same route number; strict
// prefixes of the word "route" never match (the user is still typing); short
// non-route queries never match.
func MapNameMatches(candidate, needle string) bool {
	candRaw := strings.ToLower(StripTimeTag(candidate))
	searchRaw := strings.ToLower(StripTimeTag(needle))

	if strings.HasPrefix("route", searchRaw) {
		return false
	}

	if m := leadingRouteRe.FindStringSubmatch(searchRaw); m != nil {
		cm := candRouteRe.FindStringSubmatch(candRaw)
		if cm == nil {
			return false
		}
		want, _ := strconv.Atoi(m[1])
		got, _ := strconv.Atoi(cm[1])
		return got == want
	}

	if len(searchRaw) < 3 {
		return false
	}
	if strings.HasPrefix(searchRaw, "route") {
		return false
	}

	if strings.Contains(AliasKey(candRaw), AliasKey(searchRaw)) {
		return true
	}
	return strings.Contains(candRaw, searchRaw)
}

// MatchArea resolves a free-text query to the best-matching area across all
// regions, or nil when nothing clears the acceptance threshold.
func (idx *Index) MatchArea(query string) *AreaMatch {
	raw := strings.TrimSpace(query)
	if raw == "" {
		return nil
	}
	// "Route" with no number is not a fuzzy search
	if routeWordRe.MatchString(raw) && !routeNumQueryRe.MatchString(raw) {
		return nil
	}
	lower := strings.ToLower(raw)
	isRoute := routeNumQueryRe.MatchString(raw) || bareNumberRe.MatchString(raw)
	if !isRoute && len(alnumRe.ReplaceAllString(raw, "")) < 3 {
		return nil
	}
	if !isRoute {
		words := strings.Fields(raw)
		if len(words) > 0 && mtWordRe.MatchString(words[0]) {
			next := ""
			if len(words) > 1 {
				next = words[1]
			}
			if len(lettersRe.ReplaceAllString(next, "")) < 3 {
				return nil
			}
		}
	}

	needleKey := AliasKey(raw)
	if isRoute {
		needleKey = lower
	}
	needleTokens := TokenizeName(raw)
	needleFull := strings.Join(needleTokens, " ")
	var routeNeedle []string
	if isRoute {
		routeNeedle = leadingRouteRe.FindStringSubmatch(needleKey)
	} else {
		routeNeedle = routeKeyRe.FindStringSubmatch(needleKey)
	}

	var best *AreaMatch
	bestScore := -1
	for _, region := range idx.regionOrder {
		for _, mapName := range idx.mapOrder[region] {
			if isRoute {
				if !MapNameMatches(mapName, raw) {
					continue
				}
				return &AreaMatch{
					Region:     region,
					DisplayMap: NormalizeMapName(region, mapName),
					RawMap:     mapName,
					Score:      100,
				}
			}
			candidateKey := AliasKey(mapName)
			candTokens := TokenizeName(mapName)
			// First tokens equal but second tokens differ: distinct places
			// that the aggressive key would wrongly unify.
			if len(needleTokens) > 1 && len(candTokens) > 1 &&
				candTokens[0] == needleTokens[0] && candTokens[1] != needleTokens[1] {
				continue
			}
			candFull := strings.Join(candTokens, " ")
			if routeNeedle != nil {
				rc := routeKeyRe.FindStringSubmatch(candidateKey)
				if rc == nil || rc[1] != routeNeedle[1] {
					continue
				}
			}
			exact := candidateKey == needleKey
			if exact && len(needleTokens) > 1 && len(candTokens) > 1 && needleTokens[1] != candTokens[1] {
				exact = false
			}
			if exact {
				if 100 > bestScore || (bestScore == 100 && best != nil && len(mapName) < len(best.RawMap)) {
					bestScore = 100
					best = &AreaMatch{
						Region:     region,
						DisplayMap: NormalizeMapName(region, mapName),
						RawMap:     mapName,
						Score:      100,
					}
				}
				continue
			}
			if s := ScoreNames(candFull, needleFull); s > bestScore {
				bestScore = s
				best = &AreaMatch{
					Region:     region,
					DisplayMap: NormalizeMapName(region, mapName),
					RawMap:     mapName,
					Score:      s,
				}
			}
		}
	}
	if best != nil && best.Score >= matchThreshold {
		return best
	}
	return nil
}

// MatchAreaInText slides a window over the space-split words of an arbitrary
// text blob (e.g. parsed HUD text) and returns the matched substring plus the
// highest-scoring area match, letting unrelated leading words be discarded.
func (idx *Index) MatchAreaInText(text string) (string, *AreaMatch) {
	words := strings.Fields(text)
	var bestMatch *AreaMatch
	bestClean := text
	bestScore := -1
	for i := range words {
		candidate := strings.Join(words[i:], " ")
		match := idx.MatchArea(candidate)
		if match == nil {
			continue
		}
		if s := ScoreNames(AliasKey(match.RawMap), AliasKey(candidate)); s > bestScore {
			bestScore = s
			bestMatch = match
			bestClean = candidate
		}
	}
	return bestClean, bestMatch
}
