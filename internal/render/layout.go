package render

import "image/color"

// Base layout constants at scale 1.0. Every pixel offset in the renderer is
// one of these values multiplied by the runtime scale factor.
const (
	baseWidth            = 1020
	baseRowHeight        = 50
	baseHeaderHeight     = 30
	baseTeamHeaderHeight = 25
	baseIconSize         = 36
	baseItemIconSize     = 18
	baseCrestIconSize    = 38
	baseAugmentIconSize  = 20
	basePadding          = 8

	baseFontLarge  = 16
	baseFontMedium = 13
	baseFontSmall  = 10

	baseRoleIconSize = 12
)

var (
	bgColor       = color.RGBA{26, 26, 46, 255}
	victoryHeader = color.RGBA{34, 52, 43, 255}
	defeatHeader  = color.RGBA{52, 34, 38, 255}
	rowColor1     = color.RGBA{32, 34, 44, 255}
	rowColor2     = color.RGBA{38, 40, 52, 255}
	textPrimary   = color.RGBA{255, 255, 255, 255}
	textSecondary = color.RGBA{160, 160, 170, 255}
	textMuted     = color.RGBA{100, 100, 110, 255}
	dmgDealtColor = color.RGBA{255, 140, 90, 255}
	dmgTakenColor = color.RGBA{100, 160, 255, 255}
	goldColor     = color.RGBA{255, 215, 0, 255}
)

var rankColors = map[string]color.RGBA{
	"Bronze":      {180, 110, 70, 255},
	"Silver":      {160, 170, 180, 255},
	"Gold":        {255, 200, 80, 255},
	"Platinum":    {80, 200, 180, 255},
	"Diamond":     {120, 180, 255, 255},
	"Master":      {180, 100, 220, 255},
	"Grandmaster": {255, 80, 80, 255},
}

// column is an x-offset and width pair at base scale.
type column struct {
	x     int
	width int
}

var baseColumns = map[string]column{
	"rank":      {0, 80},
	"hero":      {80, 50},
	"name":      {130, 120},
	"kda":       {250, 100},
	"dmg_dealt": {350, 100},
	"dmg_taken": {450, 100},
	"wards":     {550, 70},
	"cs":        {620, 80},
	"gold":      {700, 100},
	"augments":  {800, 80},
	"items":     {880, 140},
}

// Role sort orders differ per team so mirrored roles line up vertically
// across the team boundary.
var (
	duskRoleOrder = []string{"CARRY", "SUPPORT", "MIDLANE", "JUNGLE", "OFFLANE"}
	dawnRoleOrder = []string{"OFFLANE", "JUNGLE", "MIDLANE", "SUPPORT", "CARRY"}
)

// layout holds every dimension pre-multiplied by the runtime scale.
type layout struct {
	scale float64

	width            int
	rowHeight        int
	headerHeight     int
	teamHeaderHeight int
	iconSize         int
	itemIconSize     int
	crestIconSize    int
	augmentIconSize  int
	padding          int
	columns          map[string]column
}

func newLayout(scale float64) layout {
	s := func(v int) int { return int(float64(v) * scale) }

	columns := make(map[string]column, len(baseColumns))
	for name, c := range baseColumns {
		columns[name] = column{x: s(c.x), width: s(c.width)}
	}

	return layout{
		scale:            scale,
		width:            s(baseWidth),
		rowHeight:        s(baseRowHeight),
		headerHeight:     s(baseHeaderHeight),
		teamHeaderHeight: s(baseTeamHeaderHeight),
		iconSize:         s(baseIconSize),
		itemIconSize:     s(baseItemIconSize),
		crestIconSize:    s(baseCrestIconSize),
		augmentIconSize:  s(baseAugmentIconSize),
		padding:          s(basePadding),
		columns:          columns,
	}
}

// s scales a base pixel value.
func (l layout) s(v int) int {
	return int(float64(v) * l.scale)
}

// imageHeight is the closed-form canvas height for a player count.
func (l layout) imageHeight(playerRows int) int {
	return l.headerHeight + 2*l.teamHeaderHeight + playerRows*l.rowHeight + l.padding
}
