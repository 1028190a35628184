package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pokemmohub/companion/backend/internal/models"
)

func TestExtractListings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"name":"Leftovers"}]`, 1},
		{"data envelope", `{"data":[{"name":"Leftovers"},{"name":"Everstone"}]}`, 2},
		{"nested items", `{"data":{"items":[{"name":"Leftovers"}]}}`, 1},
		{"results envelope", `{"results":[{"name":"Leftovers"}]}`, 1},
		{"listings envelope", `{"listings":[{"name":"Leftovers"}]}`, 1},
		{"unknown shape", `{"foo":"bar"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw any
			if err := json.Unmarshal([]byte(tt.body), &raw); err != nil {
				t.Fatalf("bad test body: %v", err)
			}
			if got := extractListings(raw); len(got) != tt.want {
				t.Errorf("extractListings = %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestCoerceListings(t *testing.T) {
	body := `[
		{"id": 104, "name": "Leftovers", "price": 42000},
		{"item_id": "105", "item_name": "Everstone", "min_price": "1500.5"},
		{"price": 99}
	]`
	var raw any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("bad test body: %v", err)
	}
	items := coerceListings(extractListings(raw))
	if len(items) != 2 {
		t.Fatalf("expected 2 items (nameless entry dropped), got %+v", items)
	}
	if items[0].ID != 104 || items[0].Name != "Leftovers" || items[0].Price != 42000 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].ID != 105 || items[1].Price != 1500.5 {
		t.Errorf("second item (string fields) = %+v", items[1])
	}
}

func TestGetListingsFromEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"name":"Leftovers","price":42000},{"id":2,"name":"Everstone","price":900}]}`))
	}))
	defer server.Close()

	svc := NewMarketService(server.URL, "Bearer test-token", nil)
	items, err := svc.GetListings(context.Background(), "left")
	if err != nil {
		t.Fatalf("GetListings failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Leftovers" {
		t.Fatalf("items = %+v, want filtered to Leftovers", items)
	}
}

func TestGetListingsFallback(t *testing.T) {
	fallback := []models.Item{
		{ID: 1, Name: "Leftovers"},
		{ID: 2, Name: "Everstone"},
	}

	t.Run("no endpoint", func(t *testing.T) {
		svc := NewMarketService("", "", fallback)
		items, err := svc.GetListings(context.Background(), "ever")
		if err != nil {
			t.Fatalf("GetListings failed: %v", err)
		}
		if len(items) != 1 || items[0].Name != "Everstone" {
			t.Fatalf("items = %+v, want Everstone from static catalog", items)
		}
	})

	t.Run("endpoint failing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := NewMarketService(server.URL, "", fallback)
		items, err := svc.GetListings(context.Background(), "")
		if err != nil {
			t.Fatalf("GetListings failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("items = %+v, want full static catalog", items)
		}
	})
}
