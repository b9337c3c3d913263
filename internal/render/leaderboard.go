package render

import (
	"bytes"
	"fmt"
	"image/png"
	"sort"
	"time"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/config"

	"github.com/fogleman/gg"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Generator composes leaderboard PNGs from detailed match payloads. Output is
// deterministic given identical inputs and identical local icon/font assets.
type Generator struct {
	layout layout
	fonts  fontSet
	icons  *iconCache
	logger zerolog.Logger
}

func NewGenerator(cfg *config.Config, logger zerolog.Logger) *Generator {
	log := logger.With().Str("component", "render").Logger()
	return &Generator{
		layout: newLayout(cfg.ImageScale),
		fonts:  loadFonts(cfg.FontsDir, cfg.ImageScale, log),
		icons:  newIconCache(cfg.IconsDir),
		logger: log,
	}
}

// Generate renders the leaderboard for a detailed match payload and returns
// PNG bytes.
func (g *Generator) Generate(raw *api.RawMatch) ([]byte, error) {
	renderID, _ := gonanoid.New()
	start := time.Now()

	dusk := sortPlayersByRole(filterTeam(raw.MatchPlayers, "DUSK"), duskRoleOrder)
	dawn := sortPlayersByRole(filterTeam(raw.MatchPlayers, "DAWN"), dawnRoleOrder)

	height := g.layout.imageHeight(len(dusk) + len(dawn))
	dc := gg.NewContext(g.layout.width, height)
	dc.SetColor(bgColor)
	dc.Clear()

	y := g.drawColumnHeaders(dc, 0, raw.Duration, raw.EndTime)

	if raw.WinningTeam == "DUSK" {
		y = g.drawTeamSection(dc, y, "VICTORY", "DUSK", dusk, raw.Duration, true)
		g.drawTeamSection(dc, y, "DEFEAT", "DAWN", dawn, raw.Duration, false)
	} else {
		y = g.drawTeamSection(dc, y, "VICTORY", "DAWN", dawn, raw.Duration, true)
		g.drawTeamSection(dc, y, "DEFEAT", "DUSK", dusk, raw.Duration, false)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode leaderboard png: %w", err)
	}

	g.logger.Debug().
		Str("render_id", renderID).
		Str("match_uuid", raw.UUID).
		Int("width", g.layout.width).
		Int("height", height).
		Dur("elapsed", time.Since(start)).
		Msg("leaderboard rendered")

	return buf.Bytes(), nil
}

// Height exposes the closed-form canvas height for a player count.
func (g *Generator) Height(playerRows int) int {
	return g.layout.imageHeight(playerRows)
}

func filterTeam(players []api.RawMatchPlayer, team string) []api.RawMatchPlayer {
	var out []api.RawMatchPlayer
	for _, p := range players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// sortPlayersByRole orders players by the team's role ordering; unknown roles
// sort last. The sort is stable so equal roles keep payload order.
func sortPlayersByRole(players []api.RawMatchPlayer, roleOrder []string) []api.RawMatchPlayer {
	index := func(role string) int {
		for i, r := range roleOrder {
			if r == role {
				return i
			}
		}
		return len(roleOrder)
	}
	sorted := make([]api.RawMatchPlayer, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return index(sorted[i].Role) < index(sorted[j].Role)
	})
	return sorted
}

func (g *Generator) drawColumnHeaders(dc *gg.Context, y int, durationSeconds int, endTime string) int {
	l := g.layout

	durationText := fmt.Sprintf("%d:%02d", durationSeconds/60, durationSeconds%60)
	timeText := "Match lasted " + durationText
	if t, err := time.Parse(time.RFC3339, endTime); err == nil {
		if eastern, err := time.LoadLocation("America/New_York"); err == nil {
			timeText = fmt.Sprintf("%s ET - match lasted %s", t.In(eastern).Format("2006-01-02 03:04 PM"), durationText)
		}
	}

	g.drawText(dc, timeText, l.padding, y+l.s(8), g.fonts.small, textSecondary)

	headers := []struct{ col, text string }{
		{"kda", "K / D / A"},
		{"dmg_dealt", "DMG DEALT"},
		{"dmg_taken", "DMG TAKEN"},
		{"wards", "WARDS"},
		{"cs", "CS"},
		{"gold", "GOLD"},
		{"augments", "AUGS"},
		{"items", "ITEMS"},
	}
	for _, h := range headers {
		g.drawText(dc, h.text, l.columns[h.col].x+l.padding, y+l.s(8), g.fonts.small, textMuted)
	}

	return y + l.headerHeight
}

func (g *Generator) drawTeamSection(dc *gg.Context, y int, result, team string, players []api.RawMatchPlayer, durationSeconds int, isWinner bool) int {
	l := g.layout

	headerColor := defeatHeader
	if isWinner {
		headerColor = victoryHeader
	}
	dc.SetColor(headerColor)
	dc.DrawRectangle(0, float64(y), float64(l.width), float64(l.teamHeaderHeight))
	dc.Fill()

	var kills, deaths, assists int
	for _, p := range players {
		kills += p.Kills
		deaths += p.Deaths
		assists += p.Assists
	}

	headerText := fmt.Sprintf("%s - %s  %d / %d / %d", result, team, kills, deaths, assists)
	g.drawText(dc, headerText, l.padding, y+l.s(5), g.fonts.medium, textPrimary)

	y += l.teamHeaderHeight

	for i, p := range players {
		rowColor := rowColor1
		if i%2 == 1 {
			rowColor = rowColor2
		}
		y = g.drawPlayerRow(dc, y, p, durationSeconds, rowColor)
	}
	return y
}

var Module = fx.Provide(NewGenerator)
