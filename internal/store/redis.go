package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/loveawm50-hub/otp-bots.com/internal/domain"
)

// RedisOrderStore keeps pending orders in redis. A zero ttl means entries
// never expire, matching the memory backend.
type RedisOrderStore struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRedisOrderStore(client *RedisClient, ttlHours int) *RedisOrderStore {
	return &RedisOrderStore{client: client, ttl: time.Duration(ttlHours) * time.Hour}
}

func (s *RedisOrderStore) Put(ctx context.Context, key string, order domain.PendingOrder) error {
	return s.client.Set(ctx, s.client.key("order", key), order, s.ttl)
}

func (s *RedisOrderStore) Get(ctx context.Context, key string) (domain.PendingOrder, error) {
	var order domain.PendingOrder
	if err := s.client.Get(ctx, s.client.key("order", key), &order); err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PendingOrder{}, domain.ErrOrderNotFound
		}
		return domain.PendingOrder{}, err
	}
	return order, nil
}

func (s *RedisOrderStore) Take(ctx context.Context, key string) (domain.PendingOrder, error) {
	var order domain.PendingOrder
	if err := s.client.GetDel(ctx, s.client.key("order", key), &order); err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PendingOrder{}, domain.ErrOrderNotFound
		}
		return domain.PendingOrder{}, err
	}
	return order, nil
}

func (s *RedisOrderStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.client.key("order", key))
}

type RedisKeyStore struct {
	client *RedisClient
	ttl    time.Duration
}

func NewRedisKeyStore(client *RedisClient, ttlHours int) *RedisKeyStore {
	return &RedisKeyStore{client: client, ttl: time.Duration(ttlHours) * time.Hour}
}

func (s *RedisKeyStore) Put(ctx context.Context, code string, key domain.ActivationKey) error {
	return s.client.Set(ctx, s.client.key("actkey", code), key, s.ttl)
}

func (s *RedisKeyStore) Get(ctx context.Context, code string) (domain.ActivationKey, error) {
	var key domain.ActivationKey
	if err := s.client.Get(ctx, s.client.key("actkey", code), &key); err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ActivationKey{}, domain.ErrKeyNotFound
		}
		return domain.ActivationKey{}, err
	}
	return key, nil
}

func (s *RedisKeyStore) Delete(ctx context.Context, code string) error {
	return s.client.Del(ctx, s.client.key("actkey", code))
}
