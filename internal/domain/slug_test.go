package domain

import "testing"

func TestNameToSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Countess", "countess"},
		{"space", "Feng Mao", "feng-mao"},
		{"ampersand", "Iggy & Scorch", "iggy-scorch"},
		{"apostrophe and period", "Lt. Belica", "lt-belica"},
		{"period", "GRIM.exe", "grim-exe"},
		{"alternate period casing", "Grim.exe", "grim-exe"},
		{"the fey", "The Fey", "the-fey"},
		{"already slugged", "iggy-scorch", "iggy-scorch"},
		{"empty", "", ""},
		{"only separators", " .&. ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameToSlug(tt.in)
			if got != tt.want {
				t.Errorf("NameToSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameToSlugIdempotent(t *testing.T) {
	names := []string{"Iggy & Scorch", "Lt. Belica", "GRIM.exe", "Feng Mao", "The Fey", "Wraith"}
	for _, name := range names {
		once := NameToSlug(name)
		twice := NameToSlug(once)
		if once != twice {
			t.Errorf("NameToSlug not idempotent for %q: %q != %q", name, once, twice)
		}
	}
}

func TestEmojiName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Iggy & Scorch", "iggyscorch"},
		{"Lt. Belica", "ltbelica"},
		{"Feng Mao", "fengmao"},
		{"Countess", "countess"},
	}
	for _, tt := range tests {
		if got := EmojiName(tt.in); got != tt.want {
			t.Errorf("EmojiName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
