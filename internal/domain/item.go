package domain

// ItemStat is a single stat line on an item.
type ItemStat struct {
	ID          string
	Stat        string
	Value       float64
	ShowPercent bool
}

// ItemEffect is a passive or active effect on an item.
type ItemEffect struct {
	ID        string
	Name      string
	Text      string
	Active    bool
	Condition string
	Cooldown  float64
}

// ItemData is the version-specific data for an item. Related items are
// carried by id only to keep the graph acyclic.
type ItemData struct {
	ID             string
	Name           string
	DisplayName    string
	Icon           string
	SmallIcon      string
	Price          int
	TotalPrice     int
	GameID         string
	AggressionType string
	Class          string
	Rarity         string
	SlotType       string
	IsEvolved      bool
	IsHidden       bool
	Stats          []ItemStat
	Effects        []ItemEffect
	BuildsFromIDs  []string
	BuildsIntoIDs  []string
	BlocksIDs      []string
	BlockedByIDs   []string
}

// Item is a purchasable item; Data is nil when the API returned no
// version-specific payload.
type Item struct {
	ID   string
	Name string
	Slug string
	Data *ItemData
}
