package redis

import (
	"fmt"

	"github.com/faircommit/factiondraft/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "fdraft"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// creatorIndexKey returns the Redis key for the SET of game ids created by
// a caller fingerprint
func creatorIndexKey(fingerprint string) string {
	return fmt.Sprintf("%s:idx:creator:%s", keyPrefix, fingerprint)
}
