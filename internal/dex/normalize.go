// Package dex implements the encounter/location normalization and matching
// subsystem: canonical name keys, raw record ingestion, fuzzy area matching,
// merge/dedupe of encounter records, and time-of-day grouping. All state is
// held in an Index value built once from the static dataset; nothing here
// panics on malformed input — absent data degrades to empty values.
package dex

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe     = regexp.MustCompile(`[^\w\s-]+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	dashRunRe     = regexp.MustCompile(`-+`)
	chapterRe     = regexp.MustCompile(`(?i)\s+Ch\.?\s*\d+\b`)
	currencyRe    = regexp.MustCompile(`\$[\d,\.]+`)
	weekdayRe     = regexp.MustCompile(`(?i)\b(Sun|Mon|Tue|Tues|Wed|Thu|Thur|Fri|Sat|Sunday|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday)\b`)
	clockRe       = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	mountRe       = regexp.MustCompile(`(?i)\bmt\b\.?`)
	parenRe       = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	floorRe       = regexp.MustCompile(`(?i)\b(?:b\d+f|\d+f)\b`)
	nonAlnumSpRe  = regexp.MustCompile(`[^a-z0-9 ]+`)
	genericWordRe = regexp.MustCompile(`\b(city|town|forest|cave|road|gate|outside|inside|entrance|exit)\b`)
	titleBoundRe  = regexp.MustCompile(`(^|[\s(-])([a-z])`)
)

// NormalizeKey canonicalizes a free-form label (species name, method, rarity)
// into a lowercase, diacritic-stripped, hyphen-joined key suitable for map
// lookups. Gender symbols become -f/-m suffixes. Empty input yields "".
func NormalizeKey(s string) string {
	s = strings.ToLower(s)
	s = norm.NFKD.String(s)
	s = strings.ReplaceAll(s, "♀", "-f")
	s = strings.ReplaceAll(s, "♂", "-m")
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}

// NormalizeRegion lowercases a region label and removes all whitespace.
func NormalizeRegion(r string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(r), ""))
}

// TitleCase lowercases the string then capitalizes the first letter of each
// word, including after "(" and "-".
func TitleCase(s string) string {
	return titleBoundRe.ReplaceAllStringFunc(strings.ToLower(s), func(m string) string {
		return m[:len(m)-1] + strings.ToUpper(m[len(m)-1:])
	})
}

// cleanAreaWords applies the shared area-name cleanup: chapter markers,
// currency, weekdays, clock times, "Mt." expansion, parenthetical asides and
// floor numbers are stripped; the result is lowercase with single spaces.
func cleanAreaWords(s string) string {
	s = chapterRe.ReplaceAllString(s, "")
	s = currencyRe.ReplaceAllString(s, "")
	s = weekdayRe.ReplaceAllString(s, "")
	s = clockRe.ReplaceAllString(s, "")
	s = mountRe.ReplaceAllString(s, "mount")
	s = parenRe.ReplaceAllString(s, " ")
	s = floorRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = nonAlnumSpRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SimplifyName turns an area name into a minimal comparable key. Generic
// suffix words (city/town/forest/...) and all whitespace are removed, so
// "Eterna Forest" and "Eterna" collide deliberately; TokenizeName exists to
// disambiguate such collisions.
func SimplifyName(s string) string {
	s = cleanAreaWords(s)
	s = genericWordRe.ReplaceAllString(s, "")
	return whitespaceRe.ReplaceAllString(s, "")
}

// TokenizeName runs the same cleanup as SimplifyName but stops before
// suffix-stripping, returning the lowercase word tokens. Used to catch
// "Eterna Forest" vs. "Eterna City" where the simplified keys would unify.
func TokenizeName(s string) []string {
	return strings.Fields(cleanAreaWords(s))
}

var (
	seasonSlashBefore = regexp.MustCompile(`(?i)/SEASON\d+`)
	seasonSlashAfter  = regexp.MustCompile(`(?i)SEASON\d+/`)
	seasonParenRe     = regexp.MustCompile(`(?i)\(SEASON\d+\)`)
	emptyParenRe      = regexp.MustCompile(`\(\s*\)`)
)

// StripSeason removes SEASON# markers from a map name, cleaning up any
// parenthetical group they leave empty.
func StripSeason(s string) string {
	s = seasonSlashBefore.ReplaceAllString(s, "")
	s = seasonSlashAfter.ReplaceAllString(s, "")
	s = seasonParenRe.ReplaceAllString(s, "")
	s = emptyParenRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var timeTagRe = regexp.MustCompile(`(?i)\s*\(((?:Morning|Day|Night|Season\d+)(?:/(?:Morning|Day|Night|Season\d+))*)\)\s*$`)

// ExtractTimeTag returns a trailing time-of-day/season tag like "Night" from
// "Route 4 (Night)", or "" when none is present.
func ExtractTimeTag(name string) string {
	m := timeTagRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// StripTimeTag removes a trailing time-of-day/season tag from a map name.
func StripTimeTag(name string) string {
	return strings.TrimSpace(timeTagRe.ReplaceAllString(name, ""))
}

var seasonTokenRe = regexp.MustCompile(`^season\d+$`)

// NormalizeTimeTag canonicalizes a parenthetical tag: recognized time tokens
// come first in Morning/Day/Night order, season tokens are dropped (seasonal
// encounters are uniform), and any other words are appended title-cased.
func NormalizeTimeTag(tag string) string {
	var parts []string
	for _, p := range strings.Split(strings.ToLower(tag), "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	has := make(map[string]bool, len(parts))
	for _, p := range parts {
		has[p] = true
	}
	var out []string
	for _, t := range []string{"morning", "day", "night"} {
		if has[t] {
			out = append(out, TitleCase(t))
		}
	}
	for _, p := range parts {
		if p == "morning" || p == "day" || p == "night" || seasonTokenRe.MatchString(p) {
			continue
		}
		out = append(out, TitleCase(p))
	}
	return strings.Join(out, "/")
}

var (
	hordePrefixRe  = regexp.MustCompile(`(?i)^hordes?\b`)
	parenGroupRe   = regexp.MustCompile(`\(([^)]+)\)`)
	trailingParens = regexp.MustCompile(`\)+$`)
)

// CleanMethodLabel repairs a raw method label: unbalanced parentheses from
// bad source rows are fixed, horde casing is normalized to the literal
// "Horde", and embedded time tags are canonicalized.
func CleanMethodLabel(method string) string {
	m := strings.TrimSpace(method)
	m = trailingParens.ReplaceAllString(m, "")
	if strings.Count(m, "(") > strings.Count(m, ")") {
		m += ")"
	}
	if hordePrefixRe.MatchString(m) {
		m = "Horde"
	}
	m = parenGroupRe.ReplaceAllStringFunc(m, func(g string) string {
		tag := NormalizeTimeTag(g[1 : len(g)-1])
		if tag == "" {
			return ""
		}
		return "(" + tag + ")"
	})
	return strings.TrimSpace(m)
}

var (
	mojibakePokemonRe = regexp.MustCompile(`(?i)POK\x{00C3}\x{00A9}MON`)
	pokemonVariantRe  = regexp.MustCompile(`(?i)Pok(?:e|\x{00e9}|\x{00c9})mon`)
	routePrefixRe     = regexp.MustCompile(`(?i)^route\s*\d+\b`)
	routeHalfRe       = regexp.MustCompile(`(?i)\s*\((north|south|east|west)\)\s*`)
	victoryRoadRe     = regexp.MustCompile(`(?i)victory\s*road`)
)

// NormalizeMapName produces the canonical display map name: mis-encoded
// accented "Pokemon" variants are repaired, split route halves like
// "Route 212 (North)"/"(South)" are merged, and Sinnoh's several Victory
// Road labels are unified. All records referring to one physical place must
// come out identical here or downstream merging silently fails.
func NormalizeMapName(region, mapName string) string {
	r := strings.TrimSpace(strings.ToLower(region))
	m := strings.TrimSpace(mapName)

	m = mojibakePokemonRe.ReplaceAllString(m, "Pokemon")
	m = pokemonVariantRe.ReplaceAllString(m, "Pokemon")

	if routePrefixRe.MatchString(m) {
		m = strings.TrimSpace(routeHalfRe.ReplaceAllString(m, ""))
	}
	if r == "sinnoh" && victoryRoadRe.MatchString(m) {
		return "Victory Road"
	}
	return m
}
