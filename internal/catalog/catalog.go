// Package catalog holds the fixed, ordered faction catalog. It is loaded
// once at process start and read-only thereafter.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/faircommit/factiondraft/internal/model"
)

//go:embed factions.json
var embeddedFactions []byte

// Catalog is a fixed ordered sequence of factions
type Catalog struct {
	factions []model.Faction
	byID     map[model.FactionID]int
}

// New builds a catalog from an ordered faction list, rejecting duplicate ids
func New(factions []model.Faction) (*Catalog, error) {
	if len(factions) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	byID := make(map[model.FactionID]int, len(factions))
	for i, f := range factions {
		if f.ID == "" || f.Name == "" {
			return nil, fmt.Errorf("catalog entry %d is missing id or name", i)
		}
		if _, ok := byID[f.ID]; ok {
			return nil, fmt.Errorf("duplicate faction id %q in catalog", f.ID)
		}
		byID[f.ID] = i
	}

	return &Catalog{
		factions: factions,
		byID:     byID,
	}, nil
}

// Load returns the embedded default catalog
func Load() (*Catalog, error) {
	return parse(embeddedFactions)
}

// LoadFromFile loads a catalog from a JSON file
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var factions []model.Faction
	if err := json.Unmarshal(data, &factions); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(factions)
}

// Size returns the number of factions in the catalog
func (c *Catalog) Size() int {
	return len(c.factions)
}

// Factions returns a copy of the catalog in its fixed order
func (c *Catalog) Factions() []model.Faction {
	out := make([]model.Faction, len(c.factions))
	copy(out, c.factions)
	return out
}

// ByID looks up a faction by its id
func (c *Catalog) ByID(id model.FactionID) (model.Faction, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Faction{}, false
	}
	return c.factions[i], true
}
