package api

import (
	"context"
	"strings"
	"time"
)

const matchPlayersFragment = `
        matchPlayers {
            player {
                uuid
                name
            }
            hero {
                name
            }
            heroData {
                name
                displayName
                icon
            }
            team
            role
            kills
            deaths
            assists
            minionsKilled
            gold
            rating {
                points
                newPoints
            }
            performanceScore
        }`

const getMatchQuery = `
    query GetMatch($matchKey: MatchKey!) {
        match(by: $matchKey) {
            id
            uuid
            duration
            endTime
            gameMode
            region
            winningTeam` + matchPlayersFragment + `
        }
    }`

const getDetailedMatchQuery = `
    query GetDetailedMatch($matchKey: MatchKey!) {
        match(by: $matchKey) {
            id
            uuid
            duration
            endTime
            gameMode
            region
            winningTeam
            matchPlayers {
                player {
                    uuid
                    name
                }
                hero {
                    name
                }
                heroData {
                    name
                    displayName
                    icon
                }
                team
                role
                kills
                deaths
                assists
                minionsKilled
                neutralMinionsKilled
                gold
                heroDamage
                heroDamageTaken
                wardsPlaced
                wardsDestroyed
                rating {
                    points
                    newPoints
                    rank {
                        name
                        tierName
                    }
                }
                performanceScore
                perkData {
                    displayName
                    slot
                }
                inventoryItemData {
                    displayName
                    slotType
                }
            }
        }
    }`

const getPlayerMatchesQuery = `
    query GetPlayerMatches($playerKey: PlayerKey!, $filter: PlayerMatchesFilterInput, $limit: Int, $offset: Int) {
        player(by: $playerKey) {
            matchesPaginated(filter: $filter, limit: $limit, offset: $offset) {
                results {
                    match {
                        id
                        uuid
                        duration
                        endTime
                        gameMode
                        region
                        winningTeam` + matchPlayersFragment + `
                    }
                }
                totalCount
            }
        }
    }`

const getPlayerQuery = `
    query GetPlayer($playerKey: PlayerKey!) {
        player(by: $playerKey) {
            uuid
            name
        }
    }`

const getAllHeroesQuery = `
    query GetAllHeroes {
        heroes {
            id
            name
            slug
            data {
                icon
                displayName
            }
        }
    }`

const getAllItemsQuery = `
    query GetAllItems {
        items {
            id
            name
            slug
            data {
                id
                name
                displayName
                icon
                smallIcon
                price
                totalPrice
                gameId
                aggressionType
                class
                rarity
                slotType
                isEvolved
                isHidden
                stats {
                    id
                    stat
                    value
                    showPercent
                }
                effects {
                    id
                    name
                    text
                    active
                    condition
                    cooldown
                }
                buildsFrom {
                    id
                }
                buildsInto {
                    id
                }
                blocks {
                    id
                }
                blockedBy {
                    id
                }
            }
        }
    }`

// MatchKey normalizes a user-supplied match identifier into the GraphQL
// MatchKey shape. A 32-hex-character value, dashed or not, is treated as a
// UUID and re-dashed canonically; anything else is passed through as a
// legacy numeric id.
func MatchKey(matchID string) map[string]any {
	clean := strings.ReplaceAll(strings.TrimSpace(matchID), "-", "")
	if len(clean) == 32 && isHex(clean) {
		clean = strings.ToLower(clean)
		dashed := clean[:8] + "-" + clean[8:12] + "-" + clean[12:16] + "-" + clean[16:20] + "-" + clean[20:]
		return map[string]any{"id": dashed}
	}
	return map[string]any{"id": strings.TrimSpace(matchID)}
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

type matchEnvelope struct {
	Match *RawMatch `json:"match"`
}

type playerMatchesEnvelope struct {
	Player *struct {
		MatchesPaginated struct {
			Results []struct {
				Match *RawMatch `json:"match"`
			} `json:"results"`
			TotalCount int `json:"totalCount"`
		} `json:"matchesPaginated"`
	} `json:"player"`
}

type playerEnvelope struct {
	Player *RawPlayerRef `json:"player"`
}

type heroesEnvelope struct {
	Heroes []RawHero `json:"heroes"`
}

type itemsEnvelope struct {
	Items []RawItem `json:"items"`
}

// FetchMatch fetches the summary view of a match. Returns nil when the API
// knows no such match.
func (c *Client) FetchMatch(ctx context.Context, matchID string) (*RawMatch, error) {
	result, err := queryInto[matchEnvelope](ctx, c, getMatchQuery, map[string]any{"matchKey": MatchKey(matchID)})
	if err != nil {
		return nil, err
	}
	return result.Match, nil
}

// FetchDetailedMatch fetches the full per-player stat view used by the
// leaderboard renderer.
func (c *Client) FetchDetailedMatch(ctx context.Context, matchID string) (*RawMatch, error) {
	result, err := queryInto[matchEnvelope](ctx, c, getDetailedMatchQuery, map[string]any{"matchKey": MatchKey(matchID)})
	if err != nil {
		return nil, err
	}
	return result.Match, nil
}

// FetchPlayerMatches fetches matches for one player, newest first, optionally
// bounded to a time window.
func (c *Client) FetchPlayerMatches(ctx context.Context, playerUUID string, startTime, endTime *time.Time, limit int) ([]RawMatch, error) {
	variables := map[string]any{
		"playerKey": map[string]any{"uuid": playerUUID},
		"limit":     limit,
		"offset":    0,
	}
	if startTime != nil || endTime != nil {
		timeframe := map[string]any{}
		if startTime != nil {
			timeframe["startTime"] = startTime.UTC().Format(time.RFC3339)
		}
		if endTime != nil {
			timeframe["endTime"] = endTime.UTC().Format(time.RFC3339)
		}
		variables["filter"] = map[string]any{"timeframe": timeframe}
	}

	result, err := queryInto[playerMatchesEnvelope](ctx, c, getPlayerMatchesQuery, variables)
	if err != nil {
		return nil, err
	}
	if result.Player == nil {
		return nil, nil
	}

	matches := make([]RawMatch, 0, len(result.Player.MatchesPaginated.Results))
	for _, r := range result.Player.MatchesPaginated.Results {
		if r.Match != nil {
			matches = append(matches, *r.Match)
		}
	}
	return matches, nil
}

// FetchPlayer fetches a player's profile by UUID. Returns nil when the API
// knows no such player.
func (c *Client) FetchPlayer(ctx context.Context, playerUUID string) (*RawPlayerRef, error) {
	result, err := queryInto[playerEnvelope](ctx, c, getPlayerQuery, map[string]any{
		"playerKey": map[string]any{"uuid": playerUUID},
	})
	if err != nil {
		return nil, err
	}
	return result.Player, nil
}

// FetchAllHeroes fetches the hero roster.
func (c *Client) FetchAllHeroes(ctx context.Context) ([]RawHero, error) {
	result, err := queryInto[heroesEnvelope](ctx, c, getAllHeroesQuery, nil)
	if err != nil {
		return nil, err
	}
	return result.Heroes, nil
}

// FetchAllItems fetches the item catalog.
func (c *Client) FetchAllItems(ctx context.Context) ([]RawItem, error) {
	result, err := queryInto[itemsEnvelope](ctx, c, getAllItemsQuery, nil)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}
