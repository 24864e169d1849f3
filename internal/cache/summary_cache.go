package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Generation identifies one state of a room's summary inputs. Every
// Invalidate moves the room to a new generation, and entries written under an
// older one are never read again.
type Generation int64

// SummaryCache keeps computed room summaries between writes.
//
// Get reports the room's current generation together with the cached summary,
// or a nil summary on a miss. A caller that computes a summary after a miss
// passes that generation to Set, so a write that invalidates the room while
// the summary is being computed makes the stored entry unreachable.
type SummaryCache interface {
	Get(ctx context.Context, roomID uuid.UUID) (*models.RoomSummary, Generation, error)
	Set(ctx context.Context, roomID uuid.UUID, gen Generation, summary *models.RoomSummary) error
	Invalidate(ctx context.Context, roomID uuid.UUID) error
}

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, redisUrl string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}

type redisSummaryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisSummaryCache(client redis.Cmdable, ttl time.Duration) SummaryCache {
	return &redisSummaryCache{client: client, ttl: ttl}
}

func generationKey(roomID uuid.UUID) string {
	return "room_summary_gen:" + roomID.String()
}

func summaryKey(roomID uuid.UUID, gen Generation) string {
	return fmt.Sprintf("room_summary:%s:%d", roomID, gen)
}

func (c *redisSummaryCache) Get(ctx context.Context, roomID uuid.UUID) (*models.RoomSummary, Generation, error) {
	n, err := c.client.Get(ctx, generationKey(roomID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("failed to read summary generation: %w", err)
	}
	gen := Generation(n)

	raw, err := c.client.Get(ctx, summaryKey(roomID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, fmt.Errorf("failed to read cached summary: %w", err)
	}
	var summary models.RoomSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, gen, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, gen, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, roomID uuid.UUID, gen Generation, summary *models.RoomSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(roomID, gen), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// Invalidate bumps the generation. The generation key never expires, so a
// room cannot fall back to an older generation; old entries expire by TTL.
func (c *redisSummaryCache) Invalidate(ctx context.Context, roomID uuid.UUID) error {
	if err := c.client.Incr(ctx, generationKey(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary: %w", err)
	}
	return nil
}

type nopSummaryCache struct{}

// NewNopSummaryCache returns a cache that never stores anything.
func NewNopSummaryCache() SummaryCache { return nopSummaryCache{} }

func (nopSummaryCache) Get(context.Context, uuid.UUID) (*models.RoomSummary, Generation, error) {
	return nil, 0, nil
}

func (nopSummaryCache) Set(context.Context, uuid.UUID, Generation, *models.RoomSummary) error {
	return nil
}

func (nopSummaryCache) Invalidate(context.Context, uuid.UUID) error { return nil }
