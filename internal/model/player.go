package model

// Player is a game participant, owned exclusively by its Game.
//
// The assignment fields (Factions, AssignmentSalt, AssignmentCommitment) are
// written once at game creation. The selection fields (SelectedFaction,
// SelectionSalt, SelectionCommitment) are written once at selection time.
// Neither group is ever overwritten after being set.
type Player struct {
	Name string

	// Credential state. CredentialHash is a bcrypt hash, empty until the
	// player authenticates for the first time. HasSetCredential flips to
	// true exactly once, with the first committed hash.
	CredentialHash   string
	HasSetCredential bool

	// Dealt hand, fixed at game creation.
	Factions             []Faction
	AssignmentSalt       string
	AssignmentCommitment string

	// Selection, absent until the player picks one of their dealt factions.
	SelectedFaction     *Faction
	SelectionSalt       string
	SelectionCommitment string
}

// HasSelected returns true if the player has made their one-shot selection
func (p *Player) HasSelected() bool {
	return p.SelectedFaction != nil
}

// FactionByID looks up a faction in the player's dealt hand
func (p *Player) FactionByID(id FactionID) (Faction, bool) {
	for _, f := range p.Factions {
		if f.ID == id {
			return f, true
		}
	}
	return Faction{}, false
}

// FactionNames returns the names of the player's dealt factions in hand order
func (p *Player) FactionNames() []string {
	names := make([]string, len(p.Factions))
	for i, f := range p.Factions {
		names[i] = f.Name
	}
	return names
}
