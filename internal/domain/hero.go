package domain

// Hero is a playable hero with its resolved icon URL.
type Hero struct {
	Name        string
	DisplayName string
	Slug        string
	IconURL     string
	IconAssetID string
}

// HeroIconURL builds the pred.gg asset URL for an icon asset id, or the
// slug-based fallback when the API returned none.
func HeroIconURL(assetID, slug string) string {
	if assetID != "" {
		return "https://pred.gg/assets/" + assetID + ".png"
	}
	return "https://pred.gg/heroes/" + slug + ".png"
}
