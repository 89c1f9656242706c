package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/grvbrk/vidshelf/internal/extractor"
)

func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "ping redis %s", addr)
	}
	return client, nil
}

const enrichmentKeyPrefix = "vidshelf:vimeo:"

// RedisEnrichmentCache keeps Vimeo enrichments in Redis for a fixed TTL.
type RedisEnrichmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEnrichmentCache(client *redis.Client, ttl time.Duration) *RedisEnrichmentCache {
	return &RedisEnrichmentCache{client: client, ttl: ttl}
}

func (c *RedisEnrichmentCache) Get(ctx context.Context, id string) (extractor.Enrichment, bool, error) {
	b, err := c.client.Get(ctx, enrichmentKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return extractor.Enrichment{}, false, nil
	}
	if err != nil {
		return extractor.Enrichment{}, false, errors.Wrap(err, "redis get")
	}

	var e extractor.Enrichment
	if err := json.Unmarshal(b, &e); err != nil {
		return extractor.Enrichment{}, false, errors.Wrap(err, "decode cached enrichment")
	}
	return e, true, nil
}

func (c *RedisEnrichmentCache) Set(ctx context.Context, id string, e extractor.Enrichment) error {
	b, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode enrichment")
	}
	if err := c.client.Set(ctx, enrichmentKeyPrefix+id, b, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
