package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache stores JSON values in Redis; a nil client turns every call into a miss
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps rdb with a default TTL
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Enabled reports whether a Redis client is configured
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GenerationKey holds a per-user counter bumped on every write
func GenerationKey(userID string) string {
	return "gen:user:" + userID
}

// BalanceKey is the cache key for a user's running balance at generation gen
func BalanceKey(userID string, gen int64) string {
	return "balance:user:" + userID + ":" + strconv.FormatInt(gen, 10)
}

// TransactionsKey is the cache key for a user's full transaction list at generation gen
func TransactionsKey(userID string, gen int64) string {
	return "txlist:user:" + userID + ":" + strconv.FormatInt(gen, 10)
}

// Generation returns the user's current cache generation, 0 if none was recorded.
// Read it before loading from the database and key the cached value with it.
func (c *Cache) Generation(ctx context.Context, userID string) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, GenerationKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil // No write recorded yet
	}
	return gen, err
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// InvalidateUser moves userID to a new generation and drops the current entries.
// A read that loaded data before the bump can only write under the old generation,
// which no later read looks up.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) error {
	if !c.Enabled() {
		return nil
	}
	gen, err := c.Generation(ctx, userID)
	if err != nil {
		return err
	}
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, GenerationKey(userID))                                // New generation
	pipe.Del(ctx, BalanceKey(userID, gen), TransactionsKey(userID, gen)) // Old entries
	_, err = pipe.Exec(ctx)
	return err
}
