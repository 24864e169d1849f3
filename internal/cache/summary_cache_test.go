package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/c0sm0thecoder/scorecard-api/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func TestNopSummaryCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNopSummaryCache()
	roomID := uuid.New()

	if err := c.Set(ctx, roomID, 0, &models.RoomSummary{RoomName: "Room"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, err := c.Get(ctx, roomID)
	if err != nil || got != nil {
		t.Fatalf("expected a miss, got %+v, %v", got, err)
	}
	if err := c.Invalidate(ctx, roomID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("7f2c1a9e-3b4d-4e5f-8a6b-1c2d3e4f5a6b")
	if got := summaryKey(id, 3); got != "room_summary:7f2c1a9e-3b4d-4e5f-8a6b-1c2d3e4f5a6b:3" {
		t.Fatalf("unexpected summary key %q", got)
	}
	if got := generationKey(id); got != "room_summary_gen:7f2c1a9e-3b4d-4e5f-8a6b-1c2d3e4f5a6b" {
		t.Fatalf("unexpected generation key %q", got)
	}
}

// redisCache connects to TEST_REDIS_URL, e.g. redis://localhost:6379/15.
func redisCache(t *testing.T) (SummaryCache, *redis.Client, uuid.UUID) {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := NewRedisClient(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	roomID := uuid.New()
	t.Cleanup(func() {
		client.Del(ctx, generationKey(roomID))
		client.Close()
	})
	return NewRedisSummaryCache(client, time.Minute), client, roomID
}

func TestRedisSummaryCache(t *testing.T) {
	ctx := context.Background()
	c, client, roomID := redisCache(t)

	got, gen, err := c.Get(ctx, roomID)
	if err != nil || got != nil {
		t.Fatalf("expected a miss, got %+v, %v", got, err)
	}
	if gen != 0 {
		t.Fatalf("expected generation 0 for a fresh room, got %d", gen)
	}

	want := &models.RoomSummary{
		RoomName:     "Friday Game",
		GameType:     models.GameTally,
		PlayerTotals: map[string]int{"Alice": 50, "Bob": 20},
		TotalRounds:  2,
	}
	if err := c.Set(ctx, roomID, gen, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, err = c.Get(ctx, roomID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RoomName != want.RoomName || got.PlayerTotals["Alice"] != 50 || got.TotalRounds != 2 {
		t.Fatalf("unexpected cached summary %+v", got)
	}

	if ttl := client.TTL(ctx, summaryKey(roomID, gen)).Val(); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	if err := c.Invalidate(ctx, roomID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	got, next, err := c.Get(ctx, roomID)
	if err != nil || got != nil {
		t.Fatalf("expected a miss after invalidate, got %+v, %v", got, err)
	}
	if next != gen+1 {
		t.Fatalf("expected generation %d, got %d", gen+1, next)
	}
}

func TestRedisSummaryCacheDropsSetFromOldGeneration(t *testing.T) {
	ctx := context.Background()
	c, _, roomID := redisCache(t)

	_, gen, err := c.Get(ctx, roomID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// A write invalidates between the read and the store.
	if err := c.Invalidate(ctx, roomID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := c.Set(ctx, roomID, gen, &models.RoomSummary{RoomName: "stale"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, _, err := c.Get(ctx, roomID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected the old-generation entry to be unreachable, got %+v", got)
	}
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not a url"); err == nil {
		t.Fatal("expected an error for a malformed URL")
	}
}
