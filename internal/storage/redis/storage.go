package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/storage"
)

// maxUpdateRetries bounds optimistic transaction retries in UpdateGame
const maxUpdateRetries = 10

// Storage is a Redis-backed implementation of the game store
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.GameStore = (*Storage)(nil)

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, gameKey(game.ID), data, s.cfg.GameTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrGameExists
	}

	if game.CreatorFingerprint != "" {
		idxKey := creatorIndexKey(game.CreatorFingerprint)
		pipe := s.client.Pipeline()
		pipe.SAdd(ctx, idxKey, string(game.ID))
		if s.cfg.GameTTL > 0 {
			pipe.Expire(ctx, idxKey, s.cfg.GameTTL)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// UpdateGame runs fn inside a WATCH transaction: if another writer touches
// the game key between the read and the write, the transaction aborts and
// the read-modify-write cycle is retried against the fresh record.
func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn func(*model.Game) error) (*model.Game, error) {
	key := gameKey(id)

	var updated *model.Game
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return model.ErrGameNotFound
		}
		if err != nil {
			return err
		}

		var game model.Game
		if err := json.Unmarshal(data, &game); err != nil {
			return err
		}

		if err := fn(&game); err != nil {
			return err
		}

		out, err := json.Marshal(&game)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &game
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update game %s: too many concurrent modifications", id)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) (bool, error) {
	// Fetch first so the creator index entry can be cleaned up
	game, err := s.GetGame(ctx, id)
	if errors.Is(err, model.ErrGameNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := s.client.Pipeline()
	del := pipe.Del(ctx, gameKey(id))
	if game.CreatorFingerprint != "" {
		pipe.SRem(ctx, creatorIndexKey(game.CreatorFingerprint), string(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	n, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) ListGamesByCreator(ctx context.Context, fingerprint string) ([]model.GameSummary, error) {
	ids, err := s.client.SMembers(ctx, creatorIndexKey(fingerprint)).Result()
	if err != nil {
		return nil, err
	}

	var summaries []model.GameSummary
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if errors.Is(err, model.ErrGameNotFound) {
			// Game expired; drop the stale index entry
			_ = s.client.SRem(ctx, creatorIndexKey(fingerprint), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, game.Summary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}
