// Package cache publishes game move records to Redis pub/sub so other
// processes can follow a game as it is played.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MoveRecord is one entry of a game's move log as published to Redis.
type MoveRecord struct {
	ID          uuid.UUID      `json:"id"`
	GameID      uuid.UUID      `json:"gameId"`
	ActionIndex int            `json:"actionIndex"`
	Round       int            `json:"round"`
	ActorID     int            `json:"actorId"`
	ActionType  string         `json:"actionType"`
	Payload     map[string]any `json:"payload,omitempty"`
	Timestamp   int64          `json:"timestamp"` // unix millis
}

// Channel returns the pub/sub channel carrying moves for a game.
func Channel(gameID uuid.UUID) string {
	return fmt.Sprintf("game:%s:moves", gameID)
}

// publisher is the subset of redis.Cmdable used here.
type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Publisher sends MoveRecords to Redis.
type Publisher struct {
	rdb publisher
}

// NewPublisher wraps a Redis client, or anything exposing Publish.
func NewPublisher(rdb publisher) *Publisher {
	return &Publisher{rdb: rdb}
}

// Connect dials Redis and verifies the connection with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// PublishMove encodes rec as JSON and publishes it on the game's channel.
func (p *Publisher) PublishMove(ctx context.Context, rec MoveRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode move %d: %w", rec.ActionIndex, err)
	}
	if err := p.rdb.Publish(ctx, Channel(rec.GameID), data).Err(); err != nil {
		return fmt.Errorf("publish move %d: %w", rec.ActionIndex, err)
	}
	return nil
}
