package domain

import "strings"

// NameToSlug converts a display name to its canonical slug. The slug keys
// icon filenames, registry lookups, and (via EmojiName) Discord emoji names,
// so every consumer must go through this one routine.
//
// "Iggy & Scorch" -> "iggy-scorch", "Lt. Belica" -> "lt-belica",
// "GRIM.exe" -> "grim-exe". Idempotent.
func NameToSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, ".", "-")
	slug = strings.ReplaceAll(slug, "&", "")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// EmojiName is the slug with hyphens removed; Discord emoji names cannot
// contain hyphens.
func EmojiName(name string) string {
	return strings.ReplaceAll(NameToSlug(name), "-", "")
}
