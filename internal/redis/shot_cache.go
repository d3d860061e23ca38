package redis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// ShotEventsChannel is the pub/sub channel every instance relays shots from.
const ShotEventsChannel = "shot_events"

// ShotKey derives the cache key of a shot request. The engine is
// deterministic, so equal request bodies always produce equal responses.
func ShotKey(body []byte) string {
	sum := blake2b.Sum256(body)
	return "shot:" + hex.EncodeToString(sum[:])
}

// ShotCache stores rendered shot responses. A cache without a client is a
// no-op that always misses.
type ShotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewShotCache(rdb *redis.Client, ttl time.Duration) *ShotCache {
	return &ShotCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached response stored under key.
func (c *ShotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] get %s failed: %v", key, err)
		}
		return nil, false
	}
	return val, true
}

// Set stores val under key for the cache TTL.
func (c *ShotCache) Set(ctx context.Context, key string, val []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		log.Printf("[CACHE] set %s failed: %v", key, err)
	}
}

// ShotEvent is the envelope published for every completed shot.
type ShotEvent struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel"`
	Shot    json.RawMessage `json:"shot"`
}

// Publisher fans shot results out through Redis pub/sub.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Enabled reports whether a Redis client backs the publisher.
func (p *Publisher) Enabled() bool {
	return p != nil && p.rdb != nil
}

// PublishShot sends payload to every instance subscribed to shot events.
func (p *Publisher) PublishShot(ctx context.Context, payload []byte) error {
	if !p.Enabled() {
		return errors.New("redis publisher not configured")
	}
	return p.rdb.Publish(ctx, ShotEventsChannel, payload).Err()
}
