package model

import "time"

// GameID uniquely identifies a game
type GameID string

// Player count and hand size bounds for a game
const (
	MinPlayers = 2
	MaxPlayers = 6

	MinFactionsPerPlayer = 3
	MaxFactionsPerPlayer = 4
)

// Game is the root aggregate. It is created once (all hands dealt and
// committed before any player authenticates), mutated only by authentication
// and selection, and terminal once Revealed is true.
type Game struct {
	ID                GameID
	Players           []Player
	FactionsPerPlayer int

	// AllSelected is derived from the players; Revealed is set the instant
	// AllSelected becomes true and never reverts.
	AllSelected bool
	Revealed    bool

	CreatedAt time.Time

	// CreatorFingerprint identifies the creating caller (originating
	// network address). Used only for the per-caller game limit and
	// deletion authorization.
	CreatorFingerprint string
}

// Player returns the player with the given name, or nil.
// Names are case-sensitive and unique within the game.
func (g *Game) Player(name string) *Player {
	for i := range g.Players {
		if g.Players[i].Name == name {
			return &g.Players[i]
		}
	}
	return nil
}

// EveryPlayerSelected reports whether all players have a selection
func (g *Game) EveryPlayerSelected() bool {
	for i := range g.Players {
		if !g.Players[i].HasSelected() {
			return false
		}
	}
	return true
}

// Summary returns a lightweight record of the game for creator listings
func (g *Game) Summary() GameSummary {
	return GameSummary{
		ID:          g.ID,
		CreatedAt:   g.CreatedAt,
		PlayerCount: len(g.Players),
		Revealed:    g.Revealed,
	}
}

// Clone returns a deep copy of the game, so callers can hand out or mutate
// a snapshot without aliasing the stored record
func (g *Game) Clone() *Game {
	out := *g
	out.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		cp := p
		cp.Factions = make([]Faction, len(p.Factions))
		copy(cp.Factions, p.Factions)
		if p.SelectedFaction != nil {
			f := *p.SelectedFaction
			cp.SelectedFaction = &f
		}
		out.Players[i] = cp
	}
	return &out
}

// GameSummary is a lightweight record of a game, used when listing a
// creator's games
type GameSummary struct {
	ID          GameID
	CreatedAt   time.Time
	PlayerCount int
	Revealed    bool
}
