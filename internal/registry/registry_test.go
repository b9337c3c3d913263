package registry

import (
	"testing"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/domain"
)

func TestHeroRegistryLookup(t *testing.T) {
	r := NewHeroRegistry()
	r.Add(domain.Hero{
		Name:        "Countess",
		DisplayName: "Countess",
		Slug:        "countess",
		IconURL:     "https://pred.gg/assets/abc123.png",
		IconAssetID: "abc123",
	})

	if h, ok := r.ByName("countess"); !ok || h.Slug != "countess" {
		t.Errorf("ByName lookup failed: %+v, %v", h, ok)
	}
	if _, ok := r.BySlug("COUNTESS"); !ok {
		t.Error("BySlug should be case-insensitive")
	}
	if got := r.IconURL("Countess"); got != "https://pred.gg/assets/abc123.png" {
		t.Errorf("IconURL = %q", got)
	}
	if got := r.IconURL("Iggy & Scorch"); got != "https://pred.gg/heroes/iggy-scorch.png" {
		t.Errorf("unregistered hero should fall back to slug URL, got %q", got)
	}
}

func TestHeroFromRaw(t *testing.T) {
	h := heroFromRaw(api.RawHero{
		ID:   "1",
		Name: "Lt. Belica",
		Slug: "lt-belica",
		Data: &struct {
			Icon        string `json:"icon"`
			DisplayName string `json:"displayName"`
		}{Icon: "asset42", DisplayName: "Lt. Belica"},
	})
	if h.IconURL != "https://pred.gg/assets/asset42.png" {
		t.Errorf("IconURL = %q", h.IconURL)
	}
	if h.Slug != "lt-belica" {
		t.Errorf("Slug = %q", h.Slug)
	}

	// No slug from the API falls back to the canonical slug.
	h = heroFromRaw(api.RawHero{Name: "Iggy & Scorch"})
	if h.Slug != "iggy-scorch" {
		t.Errorf("fallback Slug = %q", h.Slug)
	}
	if h.IconURL != "https://pred.gg/heroes/iggy-scorch.png" {
		t.Errorf("fallback IconURL = %q", h.IconURL)
	}
}

func TestItemRegistryLookup(t *testing.T) {
	r := NewItemRegistry()
	r.Add(domain.Item{ID: "10", Name: "Tainted Scepter", Slug: "tainted-scepter"})

	if _, ok := r.ByID("10"); !ok {
		t.Error("ByID lookup failed")
	}
	if _, ok := r.BySlug("Tainted-Scepter"); !ok {
		t.Error("BySlug should be case-insensitive")
	}
	if _, ok := r.ByID("missing"); ok {
		t.Error("ByID should miss for unknown id")
	}
}
