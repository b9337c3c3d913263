package bot

import (
	"fmt"
	"sync"

	"predecessor-tracker/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// EmojiResolver maps hero and role names onto the application emojis uploaded
// for the bot. Discord strips hyphens from emoji names, so lookups use the
// canonical slug with hyphens removed.
type EmojiResolver struct {
	session *discordgo.Session

	mu     sync.RWMutex
	byName map[string]*discordgo.Emoji
}

func NewEmojiResolver(session *discordgo.Session) *EmojiResolver {
	return &EmojiResolver{
		session: session,
		byName:  make(map[string]*discordgo.Emoji),
	}
}

// Refresh reloads the application emoji list. Failures leave the previous
// mapping in place.
func (r *EmojiResolver) Refresh() error {
	emojis, err := r.session.ApplicationEmojis(r.session.State.Application.ID)
	if err != nil {
		return fmt.Errorf("list application emojis: %w", err)
	}
	byName := make(map[string]*discordgo.Emoji, len(emojis))
	for _, e := range emojis {
		byName[e.Name] = e
	}

	r.mu.Lock()
	r.byName = byName
	r.mu.Unlock()
	return nil
}

func (r *EmojiResolver) lookup(name string) (*discordgo.Emoji, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	return e, ok
}

// Hero returns the hero's emoji reference, or the italicized hero name when
// no emoji is uploaded.
func (r *EmojiResolver) Hero(heroName string) string {
	if e, ok := r.lookup(domain.EmojiName(heroName)); ok {
		return e.MessageFormat()
	}
	return "*" + heroName + "*"
}

// Role returns the role's emoji reference, or "" for roles without one.
func (r *EmojiResolver) Role(role domain.Role) string {
	if role == domain.RoleNone || role == domain.RoleFill {
		return ""
	}
	if e, ok := r.lookup(string(role)); ok {
		return e.MessageFormat()
	}
	return ""
}
