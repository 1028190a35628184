package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAbilitySlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Intimidate", "intimidate"},
		{"Sand Stream", "sand-stream"},
		{"Lightning Rod", "lightning-rod"},
		{"  Moody  ", "moody"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := abilitySlug(tt.input); got != tt.want {
			t.Errorf("abilitySlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetDescription(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Path {
		case "/ability/intimidate":
			w.Write([]byte(`{
				"effect_entries": [
					{"short_effect": "Senkt Angriff.", "language": {"name": "de"}},
					{"short_effect": "Lowers opponents' Attack one stage.", "language": {"name": "en"}}
				]
			}`))
		case "/ability/flavor-only":
			w.Write([]byte(`{
				"effect_entries": [],
				"flavor_text_entries": [
					{"flavor_text": "Intimidates foes\nupon entry.", "language": {"name": "en"}}
				]
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	svc := NewAbilityService()
	svc.baseURL = server.URL

	desc, err := svc.GetDescription(context.Background(), "Intimidate")
	if err != nil {
		t.Fatalf("GetDescription failed: %v", err)
	}
	if desc != "Lowers opponents' Attack one stage." {
		t.Errorf("description = %q, want the English effect entry", desc)
	}

	// Second lookup comes from cache.
	if _, err := svc.GetDescription(context.Background(), "intimidate"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("API called %d times, want 1", calls)
	}

	desc, err = svc.GetDescription(context.Background(), "Flavor Only")
	if err != nil {
		t.Fatalf("GetDescription failed: %v", err)
	}
	if desc != "Intimidates foes upon entry." {
		t.Errorf("flavor fallback = %q", desc)
	}

	if desc, err := svc.GetDescription(context.Background(), "No Such Ability"); err != nil || desc != "" {
		t.Errorf("missing ability = (%q, %v), want empty without error", desc, err)
	}
}
