package domain

// TeamSide is one of the two sides in a Predecessor match.
type TeamSide string

const (
	TeamDawn TeamSide = "Dawn"
	TeamDusk TeamSide = "Dusk"
)

// GameMode is the queue a match was played in.
type GameMode string

const (
	ModeRanked   GameMode = "Ranked"
	ModeStandard GameMode = "Standard"
	ModeCustom   GameMode = "Custom"
	ModePractice GameMode = "Practice"
	ModeSolo     GameMode = "Solo"
	ModeArena    GameMode = "Arena"
	ModeRush     GameMode = "Rush"
	ModeARAM     GameMode = "ARAM"
)

// Region is the server region a match was played on.
type Region string

const (
	RegionEurope Region = "Europe"
	RegionNAEast Region = "NA East"
	RegionNAWest Region = "NA West"
	RegionNA     Region = "North America"
	RegionAsia   Region = "Asia"
	RegionOCE    Region = "Oceania"
	RegionSEA    Region = "Southeast Asia"
	RegionMENA   Region = "Middle East"
	RegionSA     Region = "South America"
)

// Role is a player's assigned lane in a match.
type Role string

const (
	RoleNone    Role = "none"
	RoleCarry   Role = "carry"
	RoleOfflane Role = "offlane"
	RoleMidlane Role = "midlane"
	RoleSupport Role = "support"
	RoleJungle  Role = "jungle"
	RoleFill    Role = "fill"
)

var gameModeByAPIValue = map[string]GameMode{
	"RANKED":   ModeRanked,
	"STANDARD": ModeStandard,
	"CUSTOM":   ModeCustom,
	"PRACTICE": ModePractice,
	"SOLO":     ModeSolo,
	"ARENA":    ModeArena,
	"RUSH":     ModeRush,
	"ARAM":     ModeARAM,
}

var regionByAPIValue = map[string]Region{
	"EUROPE":  RegionEurope,
	"NA_EAST": RegionNAEast,
	"NA_WEST": RegionNAWest,
	"NA":      RegionNA,
	"ASIA":    RegionAsia,
	"OCE":     RegionOCE,
	"SEA":     RegionSEA,
	"MENA":    RegionMENA,
	"SA":      RegionSA,
}

var roleByAPIValue = map[string]Role{
	"NONE":    RoleNone,
	"CARRY":   RoleCarry,
	"OFFLANE": RoleOfflane,
	"MIDLANE": RoleMidlane,
	"SUPPORT": RoleSupport,
	"JUNGLE":  RoleJungle,
	"FILL":    RoleFill,
}

// MapGameMode resolves an API game mode string. Unknown values fall back to
// Standard; the second return reports whether the value was recognized.
func MapGameMode(s string) (GameMode, bool) {
	if m, ok := gameModeByAPIValue[s]; ok {
		return m, true
	}
	return ModeStandard, false
}

// MapRegion resolves an API region string, defaulting to North America.
func MapRegion(s string) (Region, bool) {
	if r, ok := regionByAPIValue[s]; ok {
		return r, true
	}
	return RegionNA, false
}

// MapTeamSide resolves an API team string, defaulting to Dawn.
func MapTeamSide(s string) (TeamSide, bool) {
	switch s {
	case "DAWN":
		return TeamDawn, true
	case "DUSK":
		return TeamDusk, true
	}
	return TeamDawn, false
}

// MapRole resolves an API role string, defaulting to none.
func MapRole(s string) (Role, bool) {
	if r, ok := roleByAPIValue[s]; ok {
		return r, true
	}
	return RoleNone, false
}
