package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"timekeeper/internal/config"
	"timekeeper/internal/lib/sl"
)

// Storage is the key-value cache behind scenarios, sessions, handbooks and
// report projections. Values are JSON-encoded maps; writing an empty map
// deletes the key.
type Storage struct {
	rdb *redis.Client
	log *slog.Logger
}

func New(conf *config.Config, log *slog.Logger) (*Storage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Storage{
		rdb: rdb,
		log: log.With(sl.Module("storage")),
	}, nil
}

// GetData loads the map stored under key. A missing key yields an empty map
// and no error.
func (s *Storage) GetData(ctx context.Context, key string) (map[string]any, error) {
	value, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}

	data := map[string]any{}
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return data, nil
}

// SetData stores the map under key with an optional ttl (zero keeps the key
// forever). An empty or nil map deletes the key.
func (s *Storage) SetData(ctx context.Context, key string, data map[string]any, ttl time.Duration) error {
	if len(data) == 0 {
		return s.DelKeys(ctx, key)
	}

	value, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// DelKeys removes the given keys.
func (s *Storage) DelKeys(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting keys: %w", err)
	}
	return nil
}
