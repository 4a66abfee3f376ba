package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const scanBatchSize = 100

// RedisStore compartilha o cache entre instâncias; a expiração fica a cargo do próprio Redis
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key Key) (*Entry, error) {
	payload, err := s.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler cache no redis: %w", err)
	}

	return &Entry{Payload: payload}, nil
}

func (s *RedisStore) Set(ctx context.Context, key Key, payload []byte) error {
	if err := s.client.Set(ctx, key.String(), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar cache no redis: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteBusiness(ctx context.Context, businessID string) (int, error) {
	var (
		cursor  uint64
		removed int
	)

	pattern := businessPattern(businessID)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return removed, fmt.Errorf("erro ao listar chaves do cache: %w", err)
		}

		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("erro ao remover chaves do cache: %w", err)
			}
			removed += int(n)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"business_id": businessID,
		"removed":     removed,
	}).Debug("Cache do negócio invalidado no redis")

	return removed, nil
}

// Sweep não faz nada: as chaves são gravadas com PX e expiram sozinhas
func (s *RedisStore) Sweep(context.Context) (int, error) {
	return 0, nil
}
