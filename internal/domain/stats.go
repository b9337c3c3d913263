package domain

import "fmt"

// CalculatePerMinute converts a match total into a per-minute rate.
// A zero or negative duration yields 0.
func CalculatePerMinute(value float64, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return value / (float64(durationSeconds) / 60)
}

// FormatPlayerDisplayName picks the best display name for a player,
// falling back to a truncated UUID when the API returned no name.
func FormatPlayerDisplayName(name, uuid string) string {
	if name != "" {
		return name
	}
	if uuid != "" {
		if len(uuid) > 8 {
			uuid = uuid[:8]
		}
		return fmt.Sprintf("user-%s...", uuid)
	}
	return "Unknown"
}
