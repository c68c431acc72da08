package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minseo-cho/gomall/internal/domain/model"
	"github.com/minseo-cho/gomall/internal/domain/repository"
)

const (
	productTTL = 5 * time.Minute
	listTTL    = time.Minute
)

// CachedProductRepository is a cache-aside decorator over the catalog
// repository. Cache failures degrade to the database; they are logged,
// never returned.
type CachedProductRepository struct {
	next   repository.ProductRepository
	client *redis.Client
	logger *slog.Logger
}

// NewCachedProductRepository wraps repo with a redis cache.
func NewCachedProductRepository(next repository.ProductRepository, client *redis.Client, logger *slog.Logger) *CachedProductRepository {
	return &CachedProductRepository{next: next, client: client, logger: logger}
}

// ProductKey is the cache key for a single product.
func ProductKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// ListKey is the cache key for one listing page. Only unfiltered first pages
// are worth caching; everything else goes straight to the database.
func ListKey(filter repository.ProductFilter) (string, bool) {
	if filter.Query != "" || filter.Offset != 0 {
		return "", false
	}
	status := filter.Status
	if status == "" {
		status = model.ProductStatusActive
	}
	return fmt.Sprintf("products:%s:limit=%d", status, filter.Limit), true
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	key := ProductKey(id)
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p model.Product
		if jsonErr := json.Unmarshal(data, &p); jsonErr == nil {
			return &p, nil
		}
		c.logger.Warn("drop corrupted cache entry", slog.String("key", key))
		_ = c.client.Del(ctx, key).Err()
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("product cache read failed", slog.String("error", err.Error()))
	}

	p, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p, productTTL)
	return p, nil
}

func (c *CachedProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	key, cacheable := ListKey(filter)
	if !cacheable {
		return c.next.List(ctx, filter)
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var products []model.Product
		if jsonErr := json.Unmarshal(data, &products); jsonErr == nil {
			return products, nil
		}
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("listing cache read failed", slog.String("error", err.Error()))
	}

	products, err := c.next.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, products, listTTL)
	return products, nil
}

func (c *CachedProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	created, err := c.next.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	c.invalidateListings(ctx)
	return created, nil
}

func (c *CachedProductRepository) GetByName(ctx context.Context, categoryID int64, name string) (*model.Product, error) {
	return c.next.GetByName(ctx, categoryID, name)
}

func (c *CachedProductRepository) UpdateStatusBulk(ctx context.Context, ids []int64, status model.ProductStatus) (int64, error) {
	n, err := c.next.UpdateStatusBulk(ctx, ids, status)
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, ProductKey(id))
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("product cache invalidation failed", slog.String("error", err.Error()))
		}
	}
	c.invalidateListings(ctx)
	return n, nil
}

func (c *CachedProductRepository) store(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", slog.String("error", err.Error()))
	}
}

func (c *CachedProductRepository) invalidateListings(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "products:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("listing cache scan failed", slog.String("error", err.Error()))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("listing cache invalidation failed", slog.String("error", err.Error()))
		}
	}
}
