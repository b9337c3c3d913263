package registry

import (
	"context"
	"strings"
	"sync"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/domain"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// HeroRegistry caches the hero roster for name, slug, and icon lookups. It is
// populated once at startup; a failed population leaves it empty and lookups
// fall back to slug-derived URLs.
type HeroRegistry struct {
	mu     sync.RWMutex
	byName map[string]domain.Hero
	bySlug map[string]domain.Hero
}

func NewHeroRegistry() *HeroRegistry {
	return &HeroRegistry{
		byName: make(map[string]domain.Hero),
		bySlug: make(map[string]domain.Hero),
	}
}

func (r *HeroRegistry) Add(hero domain.Hero) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[strings.ToLower(hero.Name)] = hero
	r.bySlug[strings.ToLower(hero.Slug)] = hero
}

func (r *HeroRegistry) ByName(name string) (domain.Hero, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byName[strings.ToLower(name)]
	return h, ok
}

func (r *HeroRegistry) BySlug(slug string) (domain.Hero, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.bySlug[strings.ToLower(slug)]
	return h, ok
}

// IconURL resolves a hero's icon by name, falling back to a slug-derived URL
// for heroes the registry never saw.
func (r *HeroRegistry) IconURL(heroName string) string {
	if h, ok := r.ByName(heroName); ok {
		return h.IconURL
	}
	return domain.HeroIconURL("", domain.NameToSlug(heroName))
}

func (r *HeroRegistry) All() []domain.Hero {
	r.mu.RLock()
	defer r.mu.RUnlock()
	heroes := make([]domain.Hero, 0, len(r.byName))
	for _, h := range r.byName {
		heroes = append(heroes, h)
	}
	return heroes
}

func (r *HeroRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// ItemRegistry caches the item catalog keyed by id and slug.
type ItemRegistry struct {
	mu     sync.RWMutex
	byID   map[string]domain.Item
	bySlug map[string]domain.Item
}

func NewItemRegistry() *ItemRegistry {
	return &ItemRegistry{
		byID:   make(map[string]domain.Item),
		bySlug: make(map[string]domain.Item),
	}
}

func (r *ItemRegistry) Add(item domain.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	if item.Slug != "" {
		r.bySlug[strings.ToLower(item.Slug)] = item
	}
}

func (r *ItemRegistry) ByID(id string) (domain.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	return i, ok
}

func (r *ItemRegistry) BySlug(slug string) (domain.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.bySlug[strings.ToLower(slug)]
	return i, ok
}

func (r *ItemRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Populate fills both registries from the API in parallel. Failures are
// logged and swallowed so bot startup continues with fallback URLs.
func Populate(ctx context.Context, client *api.Client, heroes *HeroRegistry, items *ItemRegistry, logger zerolog.Logger) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := client.FetchAllHeroes(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to populate hero registry, using fallback icon URLs")
			return nil
		}
		for _, h := range raw {
			if h.Data == nil {
				continue
			}
			heroes.Add(heroFromRaw(h))
		}
		logger.Info().Int("heroes", heroes.Len()).Msg("hero registry populated")
		return nil
	})

	g.Go(func() error {
		raw, err := client.FetchAllItems(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to populate item registry")
			return nil
		}
		for _, i := range raw {
			items.Add(itemFromRaw(i))
		}
		logger.Info().Int("items", items.Len()).Msg("item registry populated")
		return nil
	})

	g.Wait()
}

func heroFromRaw(raw api.RawHero) domain.Hero {
	slug := strings.ToLower(raw.Slug)
	if slug == "" {
		slug = domain.NameToSlug(raw.Name)
	}
	displayName := raw.Name
	var assetID string
	if raw.Data != nil {
		if raw.Data.DisplayName != "" {
			displayName = raw.Data.DisplayName
		}
		assetID = raw.Data.Icon
	}
	return domain.Hero{
		Name:        raw.Name,
		DisplayName: displayName,
		Slug:        slug,
		IconURL:     domain.HeroIconURL(assetID, slug),
		IconAssetID: assetID,
	}
}

func itemFromRaw(raw api.RawItem) domain.Item {
	item := domain.Item{
		ID:   raw.ID,
		Name: raw.Name,
		Slug: strings.ToLower(raw.Slug),
	}
	if raw.Data == nil {
		return item
	}

	data := &domain.ItemData{
		ID:             raw.Data.ID,
		Name:           raw.Data.Name,
		DisplayName:    raw.Data.DisplayName,
		Icon:           raw.Data.Icon,
		SmallIcon:      raw.Data.SmallIcon,
		Price:          raw.Data.Price,
		TotalPrice:     raw.Data.TotalPrice,
		GameID:         raw.Data.GameID,
		AggressionType: raw.Data.AggressionType,
		Class:          raw.Data.Class,
		Rarity:         raw.Data.Rarity,
		SlotType:       raw.Data.SlotType,
		IsEvolved:      raw.Data.IsEvolved,
		IsHidden:       raw.Data.IsHidden,
	}
	for _, s := range raw.Data.Stats {
		data.Stats = append(data.Stats, domain.ItemStat{
			ID:          s.ID,
			Stat:        s.Stat,
			Value:       s.Value,
			ShowPercent: s.ShowPercent,
		})
	}
	for _, e := range raw.Data.Effects {
		data.Effects = append(data.Effects, domain.ItemEffect{
			ID:        e.ID,
			Name:      e.Name,
			Text:      e.Text,
			Active:    e.Active,
			Condition: e.Condition,
			Cooldown:  e.Cooldown,
		})
	}
	data.BuildsFromIDs = refIDs(raw.Data.BuildsFrom)
	data.BuildsIntoIDs = refIDs(raw.Data.BuildsInto)
	data.BlocksIDs = refIDs(raw.Data.Blocks)
	data.BlockedByIDs = refIDs(raw.Data.BlockedBy)
	item.Data = data
	return item
}

func refIDs(refs []api.RawItemRef) []string {
	if len(refs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

var Module = fx.Provide(NewHeroRegistry, NewItemRegistry)
