package cart

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"storefront/internal/domain"
)

const redisKeyPrefix = "cart:slot:"

type redisRepo struct {
	client *redis.Client
}

// NewRedis stores each slot as a plain string key without expiry.
func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}
	data, err := r.client.Get(ctx, redisKeyPrefix+slot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *redisRepo) Save(ctx context.Context, slot string, payload []byte) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+slot, payload, 0).Err()
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
