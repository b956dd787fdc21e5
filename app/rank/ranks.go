// Package rank holds the Apex Legends rank catalog and the public rank panel
// that lets players self-assign their rank role.
package rank

import "strings"

// Rank is one entry of the Apex ladder. Slug is the stable identifier used
// in button custom IDs and event payloads; Name is the role/display name.
type Rank struct {
	Slug  string
	Name  string
	Emoji string
	Color int
}

var ranks = []Rank{
	{Slug: "bronce", Name: "Bronce", Emoji: "🥉", Color: 0xcd7f32},
	{Slug: "plata", Name: "Plata", Emoji: "🥈", Color: 0xc0c0c0},
	{Slug: "oro", Name: "Oro", Emoji: "🥇", Color: 0xffd700},
	{Slug: "platino", Name: "Platino", Emoji: "💠", Color: 0x43e6cf},
	{Slug: "diamante", Name: "Diamante", Emoji: "💎", Color: 0x2e9cf0},
	{Slug: "maestro", Name: "Maestro", Emoji: "🟣", Color: 0x9b59b6},
	{Slug: "predator", Name: "Apex Predator", Emoji: "🔴", Color: 0xe74c3c},
}

const buttonCustomIDPrefix = "rank_"

// Ranks returns the ladder in ascending order.
func Ranks() []Rank {
	return ranks
}

// ButtonCustomID returns the component custom ID for a rank button.
func ButtonCustomID(r Rank) string {
	return buttonCustomIDPrefix + r.Slug
}

// FromCustomID resolves a rank from a button custom ID.
func FromCustomID(customID string) (Rank, bool) {
	slug := strings.TrimPrefix(customID, buttonCustomIDPrefix)
	if slug == customID {
		return Rank{}, false
	}
	for _, r := range ranks {
		if r.Slug == slug {
			return r, true
		}
	}
	return Rank{}, false
}

// IsRankRoleName reports whether a role name belongs to the ladder.
func IsRankRoleName(name string) bool {
	for _, r := range ranks {
		if r.Name == name {
			return true
		}
	}
	return false
}
