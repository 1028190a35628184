package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const tmTestData = `{
	"Kanto": [
		{"tm": "TM13 Ice Beam", "location": "Celadon Dept. Store"},
		{"tm": "TM26 Earthquake", "location": "Viridian Gym"}
	],
	"Sinnoh": [
		{"tm": "TM13 Ice Beam", "location": "Route 216"}
	]
}`

func TestTMLocationsFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tmTestData))
	}))
	defer server.Close()

	svc := NewTMLocationService(server.URL)
	byRegion, err := svc.ByRegion(context.Background())
	if err != nil {
		t.Fatalf("ByRegion failed: %v", err)
	}
	if len(byRegion["Kanto"]) != 2 || len(byRegion["Sinnoh"]) != 1 {
		t.Fatalf("byRegion = %+v", byRegion)
	}
	if byRegion["Kanto"][0].Region != "Kanto" {
		t.Errorf("region not stamped onto rows: %+v", byRegion["Kanto"][0])
	}
}

func TestTMLocationsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tms.json")
	if err := os.WriteFile(path, []byte(tmTestData), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewTMLocationService(path)
	rows, err := svc.Search(context.Background(), "ice beam")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want Ice Beam in both regions", rows)
	}
	if rows[0].Region != "Kanto" || rows[1].Region != "Sinnoh" {
		t.Errorf("rows not sorted by region: %+v", rows)
	}
}

func TestTMLocationsNoSource(t *testing.T) {
	svc := NewTMLocationService("")
	if _, err := svc.ByRegion(context.Background()); err == nil {
		t.Error("expected error with no source configured")
	}
}

func TestTMLocationsFetchedOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(tmTestData))
	}))
	defer server.Close()

	svc := NewTMLocationService(server.URL)
	for i := 0; i < 3; i++ {
		if _, err := svc.ByRegion(context.Background()); err != nil {
			t.Fatalf("ByRegion failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("dataset fetched %d times, want 1", calls)
	}
}
