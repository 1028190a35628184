package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pokemmohub/companion/backend/internal/metrics"
)

const (
	smogonBaseURL        = "https://data.pkmn.cc"
	smogonDefaultTimeout = 15 * time.Second
	smogonCacheSize      = 16 // per-format set files, a handful per generation
)

// SmogonService fetches competitive moveset data from the pkmn.cc data
// mirror. Each format file (e.g. "gen5ou") maps species name to its named
// sets; files change rarely, so fetched formats are kept in an LRU cache.
type SmogonService struct {
	client  *http.Client
	baseURL string
	cache   *lru.Cache[string, map[string]map[string]json.RawMessage]
}

// NewSmogonService creates a new moveset fetcher.
func NewSmogonService() *SmogonService {
	cache, err := lru.New[string, map[string]map[string]json.RawMessage](smogonCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &SmogonService{
		client: &http.Client{
			Timeout: smogonDefaultTimeout,
		},
		baseURL: smogonBaseURL,
		cache:   cache,
	}
}

// GetFormat fetches (or serves from cache) the full species→sets table for
// one format, e.g. "gen5ou".
func (s *SmogonService) GetFormat(ctx context.Context, format string) (map[string]map[string]json.RawMessage, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return nil, fmt.Errorf("format is required")
	}

	if cached, ok := s.cache.Get(format); ok {
		metrics.SmogonFetchesTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}
	metrics.SmogonFetchesTotal.WithLabelValues("api").Inc()

	reqURL := fmt.Sprintf("%s/sets/%s.json", s.baseURL, format)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movesets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moveset endpoint returned status %d", resp.StatusCode)
	}

	var table map[string]map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to decode movesets: %w", err)
	}

	s.cache.Add(format, table)
	return table, nil
}

// GetSets returns the named sets for one species within a format. Species
// matching is case-insensitive since dataset and dex spellings differ in
// casing only.
func (s *SmogonService) GetSets(ctx context.Context, format, species string) (map[string]json.RawMessage, error) {
	table, err := s.GetFormat(ctx, format)
	if err != nil {
		return nil, err
	}
	if sets, ok := table[species]; ok {
		return sets, nil
	}
	want := strings.ToLower(species)
	for name, sets := range table {
		if strings.ToLower(name) == want {
			return sets, nil
		}
	}
	return nil, nil
}
