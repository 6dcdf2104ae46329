package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout = 5 * time.Second
	redisOpTimeout   = 2 * time.Second
	// Snapshots of an abandoned run expire instead of lingering forever.
	snapshotTTL = 24 * time.Hour
)

// RedisSink stores the latest snapshot as JSON under a single key.
type RedisSink struct {
	rdb *redis.Client
	key string
}

// NewRedisSink connects to addr and verifies the connection with PING.
func NewRedisSink(ctx context.Context, addr, key string) (*RedisSink, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: redisDialTimeout,
	})

	pctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return &RedisSink{rdb: rdb, key: key}, nil
}

// Publish SETs the snapshot under the sink's key.
func (r *RedisSink) Publish(s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.rdb.Set(ctx, r.key, data, snapshotTTL).Err()
}

// Close closes the connection pool.
func (r *RedisSink) Close() error {
	return r.rdb.Close()
}
