package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cartao/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService is a thin JSON read-through cache in front of postgres.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Card caching. A card is reachable by id and by number, so both keys
// are written and both are dropped on invalidation.
func (s *CacheService) CacheCard(ctx context.Context, card *models.Card) error {
	if card == nil {
		return errors.New("cannot cache nil card")
	}

	keys := []string{
		s.GenerateKey("card", "id", card.ID),
		s.GenerateKey("card", "number", card.Number),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, card); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetCard(ctx context.Context, key string) (*models.Card, error) {
	var card models.Card
	found, err := s.Get(ctx, key, &card)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("card not found in cache")
	}
	return &card, nil
}

func (s *CacheService) InvalidateCard(ctx context.Context, card *models.Card) error {
	if card == nil {
		return nil
	}
	return s.Delete(ctx,
		s.GenerateKey("card", "id", card.ID),
		s.GenerateKey("card", "number", card.Number),
	)
}

// HealthCheck pings redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll flushes all keys from the cache.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
