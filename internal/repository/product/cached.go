package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"storefront/internal/domain"
)

const (
	cacheIDsKey        = "catalog:product_ids"
	cacheCategoriesKey = "catalog:categories"
)

var errCacheMiss = errors.New("catalog cache miss")

func productKey(id int) string {
	return "catalog:product:" + strconv.Itoa(id)
}

type cachedRepo struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewCached puts a Redis cache-aside layer in front of inner. Cache errors
// are logged and fall through to inner; they never reach the caller.
func NewCached(inner Repository, client *redis.Client, ttl time.Duration, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &cachedRepo{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedRepo) List(ctx context.Context) ([]domain.Product, error) {
	products, err := r.listFromCache(ctx)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, errCacheMiss) {
		r.logger.Printf("catalog cache: list error=%v", err)
	}

	products, err = r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.populate(ctx, products); err != nil {
		r.logger.Printf("catalog cache: populate error=%v", err)
	}
	return products, nil
}

func (r *cachedRepo) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	raw, err := r.client.Get(ctx, productKey(id)).Bytes()
	if err == nil {
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Printf("catalog cache: get id=%d error=%v", id, err)
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(p); err == nil {
		if err := r.client.Set(ctx, productKey(id), data, r.ttl).Err(); err != nil {
			r.logger.Printf("catalog cache: set id=%d error=%v", id, err)
		}
	}
	return p, nil
}

func (r *cachedRepo) Categories(ctx context.Context) ([]string, error) {
	raw, err := r.client.Get(ctx, cacheCategoriesKey).Bytes()
	if err == nil {
		var categories []string
		if err := json.Unmarshal(raw, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := r.inner.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(categories); err == nil {
		if err := r.client.Set(ctx, cacheCategoriesKey, data, r.ttl).Err(); err != nil {
			r.logger.Printf("catalog cache: set categories error=%v", err)
		}
	}
	return categories, nil
}

// listFromCache returns products in the order the catalog listed them. Any
// missing member is a miss so the caller refetches the whole catalog instead
// of serving a partial list.
func (r *cachedRepo) listFromCache(ctx context.Context) ([]domain.Product, error) {
	ids, err := r.client.LRange(ctx, cacheIDsKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errCacheMiss
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, errCacheMiss
		}
		keys = append(keys, productKey(n))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, errCacheMiss
		}
		var p domain.Product
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, errCacheMiss
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *cachedRepo) populate(ctx context.Context, products []domain.Product) error {
	pipe := r.client.TxPipeline()
	ids := make([]interface{}, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode product %d: %w", p.ID, err)
		}
		pipe.Set(ctx, productKey(p.ID), data, r.ttl)
		ids = append(ids, strconv.Itoa(p.ID))
	}
	pipe.Del(ctx, cacheIDsKey)
	if len(ids) > 0 {
		pipe.RPush(ctx, cacheIDsKey, ids...)
		if r.ttl > 0 {
			pipe.Expire(ctx, cacheIDsKey, r.ttl)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}
