package render

import (
	"bytes"
	"image/png"
	"testing"
	"unicode/utf8"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/config"

	"github.com/rs/zerolog"
)

func testGenerator(scale float64) *Generator {
	cfg := &config.Config{
		IconsDir:   "testdata/icons",
		FontsDir:   "testdata/fonts",
		ImageScale: scale,
	}
	return NewGenerator(cfg, zerolog.Nop())
}

func testMatch(playerCount int) *api.RawMatch {
	raw := &api.RawMatch{
		UUID:        "440d3105-6a25-465c-9c47-23129ec6d453",
		Duration:    2820,
		EndTime:     "2025-06-01T18:30:00Z",
		WinningTeam: "DUSK",
	}
	roles := []string{"CARRY", "SUPPORT", "MIDLANE", "JUNGLE", "OFFLANE"}
	for i := 0; i < playerCount; i++ {
		team := "DAWN"
		if i%2 == 0 {
			team = "DUSK"
		}
		raw.MatchPlayers = append(raw.MatchPlayers, api.RawMatchPlayer{
			Player: &api.RawPlayerRef{UUID: "p", Name: "player"},
			Team:   team,
			Role:   roles[i%len(roles)],
			Kills:  i, Deaths: 2, Assists: 3,
			HeroDamage: 15000, HeroDamageTaken: 12000,
			MinionsKilled: 120, Gold: 11000,
		})
	}
	return raw
}

func TestImageHeightClosedForm(t *testing.T) {
	for _, scale := range []float64{1.0, 1.5, 2.0} {
		l := newLayout(scale)
		want := l.headerHeight + 2*l.teamHeaderHeight + 10*l.rowHeight + l.padding
		if got := l.imageHeight(10); got != want {
			t.Errorf("scale %v: imageHeight(10) = %d, want %d", scale, got, want)
		}
	}

	// At base scale the formula resolves to fixed pixel values.
	l := newLayout(1.0)
	if got := l.imageHeight(10); got != 30+2*25+10*50+8 {
		t.Errorf("imageHeight(10) at scale 1.0 = %d", got)
	}
	if l.width != 1020 {
		t.Errorf("width at scale 1.0 = %d", l.width)
	}
}

func TestGenerateProducesDecodablePNG(t *testing.T) {
	g := testGenerator(1.5)
	raw := testMatch(10)

	data, err := g.Generate(raw)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}

	l := newLayout(1.5)
	bounds := img.Bounds()
	if bounds.Dx() != l.width {
		t.Errorf("image width = %d, want %d", bounds.Dx(), l.width)
	}
	if bounds.Dy() != l.imageHeight(10) {
		t.Errorf("image height = %d, want %d", bounds.Dy(), l.imageHeight(10))
	}
}

func TestSortPlayersByRole(t *testing.T) {
	players := []api.RawMatchPlayer{
		{Role: "OFFLANE"},
		{Role: "CARRY"},
		{Role: "UNKNOWN_ROLE"},
		{Role: "MIDLANE"},
		{Role: "SUPPORT"},
	}

	sorted := sortPlayersByRole(players, duskRoleOrder)
	got := make([]string, len(sorted))
	for i, p := range sorted {
		got[i] = p.Role
	}
	want := []string{"CARRY", "SUPPORT", "MIDLANE", "OFFLANE", "UNKNOWN_ROLE"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dusk order = %v, want %v", got, want)
		}
	}

	sorted = sortPlayersByRole(players, dawnRoleOrder)
	if sorted[0].Role != "OFFLANE" || sorted[len(sorted)-1].Role != "UNKNOWN_ROLE" {
		t.Errorf("dawn order = %v", sorted)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Shade", 15, "Shade"},
		{"abcdefghijklmnop", 15, "abcdefghijklmno"},
		{"ヴァンガードプレイヤー名前長い", 10, "ヴァンガードプレイヤ"},
		{"名前が長いプレイヤーです確認用", 15, "名前が長いプレイヤーです確認用"},
		{"", 15, ""},
	}
	for _, tt := range tests {
		got := truncateRunes(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		// Output stays valid UTF-8 even when the cut lands inside a
		// multi-byte sequence of the byte slice.
		if !utf8.ValidString(got) {
			t.Errorf("truncateRunes(%q, %d) produced invalid UTF-8", tt.in, tt.n)
		}
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{15342, "15,342"},
		{1234567, "1,234,567"},
		{-12000, "-12,000"},
	}
	for _, tt := range tests {
		if got := formatThousands(tt.in); got != tt.want {
			t.Errorf("formatThousands(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
