package model

// FactionID uniquely identifies a faction in the catalog
type FactionID string

// Faction is an immutable catalog entry. The catalog is loaded once at
// process start and never mutated.
type Faction struct {
	ID   FactionID `json:"id"`
	Name string    `json:"name"`
	Set  string    `json:"set"`
}
