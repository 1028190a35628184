package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pokemmohub/companion/backend/internal/models"
)

const tmFetchTimeout = 15 * time.Second

// TMLocationService serves the TM/HM location dataset: a JSON object keyed
// by region name, each holding a list of {tm, location} rows. The dataset is
// loaded once on first use, from a URL or a local file, and cached for the
// process lifetime.
type TMLocationService struct {
	client *http.Client
	source string

	once     sync.Once
	byRegion map[string][]models.TMLocation
	loadErr  error
}

// NewTMLocationService creates the service. source is either an http(s) URL
// or a local file path; empty means no dataset is available.
func NewTMLocationService(source string) *TMLocationService {
	return &TMLocationService{
		client: &http.Client{
			Timeout: tmFetchTimeout,
		},
		source: source,
	}
}

func (s *TMLocationService) load(ctx context.Context) {
	if s.source == "" {
		s.loadErr = fmt.Errorf("no TM location source configured")
		return
	}

	var data []byte
	if strings.HasPrefix(s.source, "http://") || strings.HasPrefix(s.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, "GET", s.source, nil)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to create request: %w", err)
			return
		}
		req.Header.Set("Accept", "application/json")
		resp, err := s.client.Do(req)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to fetch TM locations: %w", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			s.loadErr = fmt.Errorf("TM location endpoint returned status %d", resp.StatusCode)
			return
		}
		if err := json.NewDecoder(resp.Body).Decode(&s.byRegion); err != nil {
			s.loadErr = fmt.Errorf("failed to decode TM locations: %w", err)
			return
		}
	} else {
		var err error
		data, err = os.ReadFile(s.source)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to read TM locations: %w", err)
			return
		}
		if err := json.Unmarshal(data, &s.byRegion); err != nil {
			s.loadErr = fmt.Errorf("failed to parse TM locations: %w", err)
			return
		}
	}

	// Stamp the region onto each row so flattened results stay attributable.
	for region, rows := range s.byRegion {
		for i := range rows {
			rows[i].Region = region
		}
		s.byRegion[region] = rows
	}
}

// ByRegion returns the full dataset keyed by region.
func (s *TMLocationService) ByRegion(ctx context.Context) (map[string][]models.TMLocation, error) {
	s.once.Do(func() { s.load(ctx) })
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.byRegion, nil
}

// Search returns the rows whose TM label contains query (case-insensitive),
// across all regions, sorted by region then TM.
func (s *TMLocationService) Search(ctx context.Context, query string) ([]models.TMLocation, error) {
	byRegion, err := s.ByRegion(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.TMLocation
	for _, rows := range byRegion {
		for _, row := range rows {
			if q == "" || strings.Contains(strings.ToLower(row.TM), q) {
				out = append(out, row)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].TM < out[j].TM
	})
	return out, nil
}
