// Package cache puts a redis read-through cache in front of the catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/port"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	keyPrefix    = "catalog:"
	defaultTTL   = 15 * time.Minute
	maxJitter    = 5 * time.Minute
	writeTimeout = time.Second
)

// CatalogCache decorates a CatalogReader. Loads for the same key are
// collapsed so a cold cache sends one query per key to the database.
type CatalogCache struct {
	next    port.CatalogReader
	client  *redis.Client
	logger  *zap.Logger
	baseTTL time.Duration
	sfg     singleflight.Group
}

var _ port.CatalogReader = (*CatalogCache)(nil)

func NewCatalogCache(next port.CatalogReader, client *redis.Client, logger *zap.Logger) *CatalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogCache{
		next:    next,
		client:  client,
		logger:  logger,
		baseTTL: defaultTTL,
	}
}

func (c *CatalogCache) ListItems(ctx context.Context, page domain.Page) (domain.ItemPage, error) {
	page = page.Normalize()

	return load(ctx, c, pageKey(page), func() (domain.ItemPage, error) {
		return c.next.ListItems(ctx, page)
	})
}

func (c *CatalogCache) GetItem(ctx context.Context, itemID uuid.UUID) (domain.CatalogItem, error) {
	return load(ctx, c, itemKey(itemID), func() (domain.CatalogItem, error) {
		return c.next.GetItem(ctx, itemID)
	})
}

// Invalidate drops every cached catalog entry, e.g. after a catalog import.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func load[T any](ctx context.Context, c *CatalogCache, key string, fetch func() (T, error)) (T, error) {
	var zero T

	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		var cached T
		err := c.get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn("catalog cache get failed", zap.String("key", key), zap.Error(err))
		}

		fresh, err := fetch()
		if err != nil {
			return nil, err
		}

		setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
		defer cancel()
		if err := c.set(setCtx, key, fresh); err != nil {
			c.logger.Warn("catalog cache set failed", zap.String("key", key), zap.Error(err))
		}

		return fresh, nil
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

func (c *CatalogCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal catalog entry failed: %w", err)
	}

	return nil
}

func (c *CatalogCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal catalog entry failed: %w", err)
	}

	ttl := c.baseTTL + time.Duration(rand.Int64N(int64(maxJitter)))
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func pageKey(p domain.Page) string {
	return fmt.Sprintf("%sitems:%d:%d", keyPrefix, p.Limit, p.Offset)
}

func itemKey(itemID uuid.UUID) string {
	return fmt.Sprintf("%sitem:%s", keyPrefix, itemID)
}
