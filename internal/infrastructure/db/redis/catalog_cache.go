package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

const (
	catalogListKey = "catalog:list"
	catalogListTTL = 30 * time.Second
)

// CatalogCache caches the full product listing in Redis. Every catalog
// mutation invalidates the key; a short TTL bounds staleness if an
// invalidation is lost.
type CatalogCache struct {
	client *redis.Client
}

func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

func (c *CatalogCache) GetList(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, catalogListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return products, true, nil
}

func (c *CatalogCache) SetList(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, catalogListKey, raw, catalogListTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogListKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
