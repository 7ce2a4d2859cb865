package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/emberforge/adventure-engine/pkg/game"
)

// RedisStorage persists game sessions as JSON snapshots in Redis.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis-backed session store. Sessions expire
// after ttl of inactivity; every save refreshes the expiry.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
		ttl:    ttl,
	}, nil
}

func gameKey(id uuid.UUID) string {
	return "game:" + id.String()
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) SaveGame(ctx context.Context, g *game.Game) error {
	g.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(g)
	if err != nil {
		r.logger.Error("Failed to marshal game", "id", g.ID, "error", err)
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	if err := r.client.Set(ctx, gameKey(g.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save game", "id", g.ID, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGame(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	data, err := r.client.Get(ctx, gameKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Game not found", "id", id)
			return nil, nil
		}
		r.logger.Error("Failed to load game", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	var g game.Game
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		r.logger.Error("Failed to unmarshal game", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &g, nil
}

func (r *RedisStorage) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, gameKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete game", "id", id, "error", err)
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}
