package api

// Raw GraphQL payload shapes. Optional nested objects are pointers so the
// transformation layer can distinguish absent from zero.

type RawPlayerRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type RawHeroRef struct {
	Name string `json:"name"`
}

type RawHeroData struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

type RawRank struct {
	Name     string `json:"name"`
	TierName string `json:"tierName"`
}

type RawRating struct {
	Points    *int     `json:"points"`
	NewPoints *int     `json:"newPoints"`
	Rank      *RawRank `json:"rank"`
}

type RawPerk struct {
	DisplayName string `json:"displayName"`
	Slot        string `json:"slot"`
}

type RawInventoryItem struct {
	DisplayName string `json:"displayName"`
	SlotType    string `json:"slotType"`
}

type RawMatchPlayer struct {
	Player   *RawPlayerRef `json:"player"`
	Hero     *RawHeroRef   `json:"hero"`
	HeroData *RawHeroData  `json:"heroData"`
	Team     string        `json:"team"`
	Role     string        `json:"role"`
	Kills    int           `json:"kills"`
	Deaths   int           `json:"deaths"`
	Assists  int           `json:"assists"`

	MinionsKilled int        `json:"minionsKilled"`
	Gold          int        `json:"gold"`
	Rating        *RawRating `json:"rating"`

	// Detailed-query fields, zero on the summary query.
	HeroDamage           int                `json:"heroDamage"`
	HeroDamageTaken      int                `json:"heroDamageTaken"`
	WardsPlaced          int                `json:"wardsPlaced"`
	WardsDestroyed       int                `json:"wardsDestroyed"`
	NeutralMinionsKilled int                `json:"neutralMinionsKilled"`
	PerkData             []RawPerk          `json:"perkData"`
	InventoryItemData    []RawInventoryItem `json:"inventoryItemData"`

	PerformanceScore *float64 `json:"performanceScore"`
}

type RawMatch struct {
	ID           string           `json:"id"`
	UUID         string           `json:"uuid"`
	Duration     int              `json:"duration"`
	EndTime      string           `json:"endTime"`
	GameMode     string           `json:"gameMode"`
	Region       string           `json:"region"`
	WinningTeam  string           `json:"winningTeam"`
	MatchPlayers []RawMatchPlayer `json:"matchPlayers"`
}

type RawHero struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Data *struct {
		Icon        string `json:"icon"`
		DisplayName string `json:"displayName"`
	} `json:"data"`
}

type RawItem struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Slug string       `json:"slug"`
	Data *RawItemData `json:"data"`
}

type RawItemData struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Icon           string `json:"icon"`
	SmallIcon      string `json:"smallIcon"`
	Price          int    `json:"price"`
	TotalPrice     int    `json:"totalPrice"`
	GameID         string `json:"gameId"`
	AggressionType string `json:"aggressionType"`
	Class          string `json:"class"`
	Rarity         string `json:"rarity"`
	SlotType       string `json:"slotType"`
	IsEvolved      bool   `json:"isEvolved"`
	IsHidden       bool   `json:"isHidden"`

	Stats []struct {
		ID          string  `json:"id"`
		Stat        string  `json:"stat"`
		Value       float64 `json:"value"`
		ShowPercent bool    `json:"showPercent"`
	} `json:"stats"`

	Effects []struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Text      string  `json:"text"`
		Active    bool    `json:"active"`
		Condition string  `json:"condition"`
		Cooldown  float64 `json:"cooldown"`
	} `json:"effects"`

	BuildsFrom []RawItemRef `json:"buildsFrom"`
	BuildsInto []RawItemRef `json:"buildsInto"`
	Blocks     []RawItemRef `json:"blocks"`
	BlockedBy  []RawItemRef `json:"blockedBy"`
}

type RawItemRef struct {
	ID string `json:"id"`
}
