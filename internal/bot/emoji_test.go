package bot

import (
	"testing"

	"predecessor-tracker/internal/domain"

	"github.com/bwmarrin/discordgo"
)

func TestHeroEmojiLookup(t *testing.T) {
	r := &EmojiResolver{byName: map[string]*discordgo.Emoji{
		"iggyscorch": {ID: "123", Name: "iggyscorch"},
	}}

	// Discord strips hyphens from emoji names, so the lookup key for
	// "Iggy & Scorch" is the slug with hyphens removed.
	got := r.Hero("Iggy & Scorch")
	if got != "<:iggyscorch:123>" {
		t.Errorf("Hero(\"Iggy & Scorch\") = %q", got)
	}
}

func TestHeroEmojiFallsBackToItalicName(t *testing.T) {
	r := &EmojiResolver{}

	if got := r.Hero("Countess"); got != "*Countess*" {
		t.Errorf("Hero with no emoji = %q, want italic name", got)
	}
}

func TestRoleEmojiLookup(t *testing.T) {
	r := &EmojiResolver{byName: map[string]*discordgo.Emoji{
		"carry": {ID: "456", Name: "carry"},
	}}

	if got := r.Role(domain.RoleCarry); got != "<:carry:456>" {
		t.Errorf("Role(carry) = %q", got)
	}
	if got := r.Role(domain.RoleJungle); got != "" {
		t.Errorf("Role with no emoji = %q, want empty", got)
	}
	if got := r.Role(domain.RoleNone); got != "" {
		t.Errorf("Role(none) = %q, want empty", got)
	}
	if got := r.Role(domain.RoleFill); got != "" {
		t.Errorf("Role(fill) = %q, want empty", got)
	}
}
