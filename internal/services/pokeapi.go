package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pokemmohub/companion/backend/internal/metrics"
)

const (
	pokeAPIBaseURL        = "https://pokeapi.co/api/v2"
	pokeAPIDefaultTimeout = 10 * time.Second
	abilityCacheSize      = 256
)

// AbilityService looks up ability descriptions from PokeAPI. Descriptions
// are immutable per ability, so results (including negative ones) are cached
// in an LRU keyed by the slugged ability name.
type AbilityService struct {
	client  *http.Client
	baseURL string
	cache   *lru.Cache[string, string]
}

// NewAbilityService creates a new ability lookup service.
func NewAbilityService() *AbilityService {
	cache, err := lru.New[string, string](abilityCacheSize)
	if err != nil {
		panic(err)
	}
	return &AbilityService{
		client: &http.Client{
			Timeout: pokeAPIDefaultTimeout,
		},
		baseURL: pokeAPIBaseURL,
		cache:   cache,
	}
}

type abilityResponse struct {
	EffectEntries []struct {
		ShortEffect string `json:"short_effect"`
		Effect      string `json:"effect"`
		Language    struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"effect_entries"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
}

var abilitySlugRe = regexp.MustCompile(`[^a-z0-9]+`)

func abilitySlug(name string) string {
	slug := abilitySlugRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}

// GetDescription returns the English description for an ability name as it
// appears in the dex dataset. Returns "" without error when PokeAPI has no
// entry for it.
func (s *AbilityService) GetDescription(ctx context.Context, name string) (string, error) {
	slug := abilitySlug(name)
	if slug == "" {
		return "", fmt.Errorf("ability name is required")
	}

	if cached, ok := s.cache.Get(slug); ok {
		metrics.AbilityLookupsTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}
	metrics.AbilityLookupsTotal.WithLabelValues("api").Inc()

	reqURL := fmt.Sprintf("%s/ability/%s", s.baseURL, slug)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch ability: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		s.cache.Add(slug, "")
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PokeAPI returned status %d", resp.StatusCode)
	}

	var body abilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode ability: %w", err)
	}

	desc := ""
	for _, e := range body.EffectEntries {
		if e.Language.Name != "en" {
			continue
		}
		if e.ShortEffect != "" {
			desc = e.ShortEffect
			break
		}
		if desc == "" {
			desc = e.Effect
		}
	}
	if desc == "" {
		for _, e := range body.FlavorTextEntries {
			if e.Language.Name == "en" && e.FlavorText != "" {
				desc = strings.Join(strings.Fields(e.FlavorText), " ")
				break
			}
		}
	}

	s.cache.Add(slug, desc)
	return desc, nil
}
