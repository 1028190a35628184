package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pokemmohub/companion/backend/internal/metrics"
	"github.com/pokemmohub/companion/backend/internal/models"
)

const (
	marketDefaultTimeout = 10 * time.Second
	marketRatePerSecond  = 2
	marketBurst          = 4
)

// MarketService fetches item listings from a GTL (Global Trade Link) style
// endpoint. Community mirrors of this endpoint disagree on response layout,
// so decoding is deliberately tolerant. When no endpoint is configured or a
// request fails, the static item catalog is served instead so the item view
// still works offline.
type MarketService struct {
	client     *http.Client
	endpoint   string
	authHeader string
	limiter    *rate.Limiter
	fallback   []models.Item
}

// NewMarketService creates a market client. endpoint may be empty, in which
// case every call serves the static fallback catalog.
func NewMarketService(endpoint, authHeader string, fallback []models.Item) *MarketService {
	return &MarketService{
		client: &http.Client{
			Timeout: marketDefaultTimeout,
		},
		endpoint:   endpoint,
		authHeader: authHeader,
		limiter:    rate.NewLimiter(marketRatePerSecond, marketBurst),
		fallback:   fallback,
	}
}

// GetListings fetches listings matching query. An empty query returns
// everything the endpoint sends back (capped by the endpoint itself).
func (s *MarketService) GetListings(ctx context.Context, query string) ([]models.MarketItem, error) {
	if s.endpoint == "" {
		return s.fallbackListings(query), nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqURL := s.endpoint
	if query != "" {
		params := url.Values{}
		params.Set("q", query)
		sep := "?"
		if strings.Contains(reqURL, "?") {
			sep = "&"
		}
		reqURL = reqURL + sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.authHeader != "" {
		req.Header.Set("Authorization", s.authHeader)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// Endpoint unreachable: degrade to the static catalog.
		metrics.MarketRequestsTotal.WithLabelValues("fallback").Inc()
		return s.fallbackListings(query), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.MarketRequestsTotal.WithLabelValues("fallback").Inc()
		return s.fallbackListings(query), nil
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		metrics.MarketRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode market response: %w", err)
	}
	metrics.MarketRequestsTotal.WithLabelValues("ok").Inc()

	items := coerceListings(extractListings(raw))
	if query != "" {
		items = filterListings(items, query)
	}
	return items, nil
}

func (s *MarketService) fallbackListings(query string) []models.MarketItem {
	items := make([]models.MarketItem, 0, len(s.fallback))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, it := range s.fallback {
		if q != "" && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		items = append(items, models.MarketItem{ID: it.ID, Name: it.Name})
	}
	return items
}

// extractListings digs the listing array out of whichever envelope the
// endpoint used: a bare array, or an object wrapping it under data/items/
// results/listings, possibly one level deep.
func extractListings(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		for _, key := range []string{"data", "items", "results", "listings"} {
			if inner, ok := v[key]; ok {
				if list := extractListings(inner); list != nil {
					return list
				}
			}
		}
	}
	return nil
}

func coerceListings(list []any) []models.MarketItem {
	items := make([]models.MarketItem, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := models.MarketItem{
			ID:    intField(m, "id", "item_id", "itemId"),
			Name:  stringField(m, "name", "item_name", "itemName", "i"),
			Price: floatField(m, "price", "min_price", "lowest_price", "p"),
		}
		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func filterListings(items []models.MarketItem, query string) []models.MarketItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	filtered := make([]models.MarketItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func intField(m map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

func floatField(m map[string]any, keys ...string) float64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
