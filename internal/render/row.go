package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/domain"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

func (g *Generator) drawPlayerRow(dc *gg.Context, y int, p api.RawMatchPlayer, durationSeconds int, rowColor color.RGBA) int {
	l := g.layout

	dc.SetColor(rowColor)
	dc.DrawRectangle(0, float64(y), float64(l.width), float64(l.rowHeight))
	dc.Fill()

	var playerName, playerUUID string
	if p.Player != nil {
		playerName = p.Player.Name
		playerUUID = p.Player.UUID
	}
	displayName := truncateRunes(domain.FormatPlayerDisplayName(playerName, playerUUID), 15)

	heroName := "Unknown"
	switch {
	case p.HeroData != nil && p.HeroData.DisplayName != "":
		heroName = p.HeroData.DisplayName
	case p.HeroData != nil && p.HeroData.Name != "":
		heroName = p.HeroData.Name
	case p.Hero != nil && p.Hero.Name != "":
		heroName = p.Hero.Name
	}

	var rankName, tierName string
	var victoryPoints int
	if p.Rating != nil {
		if p.Rating.Rank != nil {
			rankName = p.Rating.Rank.Name
			tierName = p.Rating.Rank.TierName
		}
		if p.Rating.NewPoints != nil {
			victoryPoints = *p.Rating.NewPoints
		}
	}

	minions := p.MinionsKilled + p.NeutralMinionsKilled
	kda := float64(p.Kills+p.Assists) / float64(max(p.Deaths, 1))
	dpsDealt := domain.CalculatePerMinute(float64(p.HeroDamage), durationSeconds)
	dpsTaken := domain.CalculatePerMinute(float64(p.HeroDamageTaken), durationSeconds)
	csPerMin := domain.CalculatePerMinute(float64(minions), durationSeconds)
	goldPerMin := domain.CalculatePerMinute(float64(p.Gold), durationSeconds)

	rowCenterY := y + l.rowHeight/2

	// Rank badge
	if rankName != "" {
		rankColor := textSecondary
		if c, ok := rankColors[tierName]; ok {
			rankColor = c
		}
		x := l.columns["rank"].x
		g.drawText(dc, rankName, x+l.padding, rowCenterY-l.s(10), g.fonts.small, rankColor)
		g.drawText(dc, fmt.Sprintf("%d VP", victoryPoints), x+l.padding, rowCenterY+l.s(2), g.fonts.small, textMuted)
	}

	// Hero icon with role overlay
	if icon := g.icons.hero(heroName, l.iconSize); icon != nil {
		iconX := l.columns["hero"].x + l.s(4)
		iconY := rowCenterY - l.iconSize/2
		dc.DrawImage(icon, iconX, iconY)

		if roleIcon := g.icons.role(p.Role, l.s(baseRoleIconSize)); roleIcon != nil {
			g.drawRoleOverlay(dc, roleIcon, iconX, iconY)
		}
	}

	// Player name
	g.drawText(dc, displayName, l.columns["name"].x+l.padding, rowCenterY-l.s(8), g.fonts.medium, textPrimary)

	// K/D/A with ratio
	x := l.columns["kda"].x
	g.drawText(dc, fmt.Sprintf("%d / %d / %d", p.Kills, p.Deaths, p.Assists), x+l.padding, rowCenterY-l.s(10), g.fonts.medium, textPrimary)
	g.drawText(dc, fmt.Sprintf("%.1f KDA", kda), x+l.padding, rowCenterY+l.s(4), g.fonts.small, textSecondary)

	// Damage dealt
	x = l.columns["dmg_dealt"].x
	g.drawText(dc, formatThousands(p.HeroDamage), x+l.padding, rowCenterY-l.s(10), g.fonts.medium, dmgDealtColor)
	g.drawText(dc, fmt.Sprintf("%.0f DPS", dpsDealt), x+l.padding, rowCenterY+l.s(4), g.fonts.small, textMuted)

	// Damage taken
	x = l.columns["dmg_taken"].x
	g.drawText(dc, formatThousands(p.HeroDamageTaken), x+l.padding, rowCenterY-l.s(10), g.fonts.medium, dmgTakenColor)
	g.drawText(dc, fmt.Sprintf("%.0f DPS", dpsTaken), x+l.padding, rowCenterY+l.s(4), g.fonts.small, textMuted)

	// Wards placed / destroyed
	x = l.columns["wards"].x
	g.drawText(dc, fmt.Sprintf("%d / %d", p.WardsPlaced, p.WardsDestroyed), x+l.padding, rowCenterY-l.s(6), g.fonts.medium, textPrimary)

	// Creep score
	x = l.columns["cs"].x
	g.drawText(dc, strconv.Itoa(minions), x+l.padding, rowCenterY-l.s(10), g.fonts.medium, textPrimary)
	g.drawText(dc, fmt.Sprintf("%.1f/m", csPerMin), x+l.padding, rowCenterY+l.s(4), g.fonts.small, textMuted)

	// Gold
	x = l.columns["gold"].x
	g.drawText(dc, formatThousands(p.Gold), x+l.padding, rowCenterY-l.s(10), g.fonts.medium, goldColor)
	g.drawText(dc, fmt.Sprintf("%.0f/m", goldPerMin), x+l.padding, rowCenterY+l.s(4), g.fonts.small, textMuted)

	g.drawAugments(dc, p.PerkData, rowCenterY)
	g.drawItems(dc, p.InventoryItemData, rowCenterY)

	return y + l.rowHeight
}

// drawRoleOverlay composites the role icon onto the bottom-right corner of a
// hero icon with a circular black backing.
func (g *Generator) drawRoleOverlay(dc *gg.Context, roleIcon image.Image, iconX, iconY int) {
	l := g.layout
	roleSize := roleIcon.Bounds().Dx()
	roleX := iconX + l.iconSize - roleSize
	roleY := iconY + l.iconSize - roleSize

	bgRadius := float64(roleSize+l.s(4)) / 2
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(float64(roleX+roleSize/2), float64(roleY+roleSize/2), bgRadius)
	dc.Fill()

	dc.DrawImage(roleIcon, roleX, roleY)
}

var perkSlotOrder = map[string]int{
	"HERO_SPECIFIC_1": 0,
	"COMMON_1":        1,
	"COMMON_2":        2,
}

// drawAugments renders up to three augment icons in slot-priority order.
func (g *Generator) drawAugments(dc *gg.Context, perks []api.RawPerk, rowCenterY int) {
	l := g.layout

	sorted := make([]api.RawPerk, len(perks))
	copy(sorted, perks)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && slotRank(sorted[j].Slot) < slotRank(sorted[j-1].Slot); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	augX := l.columns["augments"].x + l.padding
	augY := rowCenterY - l.augmentIconSize/2
	spacing := l.s(2)

	for i, perk := range sorted {
		if i >= 3 {
			break
		}
		if perk.DisplayName != "" {
			if icon := g.icons.augment(perk.DisplayName, l.augmentIconSize); icon != nil {
				dc.DrawImage(icon, augX, augY)
			}
		}
		augX += l.augmentIconSize + spacing
	}
}

func slotRank(slot string) int {
	if r, ok := perkSlotOrder[slot]; ok {
		return r
	}
	return 99
}

// drawItems renders the crest, up to six build items in two rows of three,
// then the active item over the trinket in a fourth column.
func (g *Generator) drawItems(dc *gg.Context, items []api.RawInventoryItem, rowCenterY int) {
	l := g.layout

	var crest, active, trinket *api.RawInventoryItem
	var passives []api.RawInventoryItem
	for i := range items {
		switch items[i].SlotType {
		case "CREST":
			crest = &items[i]
		case "ACTIVE":
			active = &items[i]
		case "TRINKET":
			trinket = &items[i]
		default:
			passives = append(passives, items[i])
		}
	}

	spacing := l.s(2)
	crestX := l.columns["items"].x + l.padding

	if crest != nil && crest.DisplayName != "" {
		if icon := g.icons.item(crest.DisplayName, l.crestIconSize); icon != nil {
			dc.DrawImage(icon, crestX, rowCenterY-l.crestIconSize/2)
		}
	}

	itemsStartX := crestX + l.crestIconSize + spacing + l.s(2)
	row1Y := rowCenterY - l.itemIconSize - l.s(1)
	row2Y := rowCenterY + l.s(1)

	drawRow := func(row []api.RawInventoryItem, rowY int) {
		x := itemsStartX
		for _, item := range row {
			if item.DisplayName != "" {
				if icon := g.icons.item(item.DisplayName, l.itemIconSize); icon != nil {
					dc.DrawImage(icon, x, rowY)
				}
			}
			x += l.itemIconSize + spacing
		}
	}
	drawRow(passives[:min(3, len(passives))], row1Y)
	if len(passives) > 3 {
		drawRow(passives[3:min(6, len(passives))], row2Y)
	}

	consumableX := itemsStartX + 3*(l.itemIconSize+spacing)
	if active != nil && active.DisplayName != "" {
		if icon := g.icons.item(active.DisplayName, l.itemIconSize); icon != nil {
			dc.DrawImage(icon, consumableX, row1Y)
		}
	}
	if trinket != nil && trinket.DisplayName != "" {
		if icon := g.icons.item(trinket.DisplayName, l.itemIconSize); icon != nil {
			dc.DrawImage(icon, consumableX, row2Y)
		}
	}
}

// drawText draws a string with its top-left corner at (x, y).
func (g *Generator) drawText(dc *gg.Context, text string, x, y int, face font.Face, col color.RGBA) {
	dc.SetFontFace(face)
	dc.SetColor(col)
	ascent := face.Metrics().Ascent.Ceil()
	dc.DrawString(text, float64(x), float64(y+ascent))
}

// truncateRunes shortens a string to at most n characters without splitting
// a multi-byte rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// formatThousands renders an integer with comma separators.
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
