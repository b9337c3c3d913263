package domain

import (
	"fmt"
	"strings"
)

// NormalizeUUID canonicalizes a UUID to lowercase dashed form. It accepts
// both dashed and undashed 32-hex input.
func NormalizeUUID(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	bare := strings.ReplaceAll(s, "-", "")
	if len(bare) != 32 {
		return "", fmt.Errorf("invalid uuid %q", s)
	}
	for _, c := range bare {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("invalid uuid %q", s)
		}
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", bare[:8], bare[8:12], bare[12:16], bare[16:20], bare[20:]), nil
}

// ValidUUID reports whether s is a well-formed UUID in either form.
func ValidUUID(s string) bool {
	_, err := NormalizeUUID(s)
	return err == nil
}
