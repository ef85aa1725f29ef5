package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sjfs/internal/models"

	"github.com/redis/go-redis/v9"
)

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
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
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

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, userID uint) (*models.User, bool, error) {
	var user models.User
	found, err := s.Get(ctx, s.GenerateKey("user", "id", userID), &user)
	if err != nil || !found {
		return nil, false, err
	}
	return &user, true, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", userID))
}

// Order caching
func (s *CacheService) CacheOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return errors.New("cannot cache nil order")
	}
	return s.Set(ctx, s.GenerateKey("order", "id", order.ID), order)
}

func (s *CacheService) GetOrder(ctx context.Context, orderID uint) (*models.Order, bool, error) {
	var order models.Order
	found, err := s.Get(ctx, s.GenerateKey("order", "id", orderID), &order)
	if err != nil || !found {
		return nil, false, err
	}
	return &order, true, nil
}

func (s *CacheService) InvalidateOrder(ctx context.Context, orderID uint) error {
	return s.Delete(ctx, s.GenerateKey("order", "id", orderID))
}

// Unread notification counters. Counters change often, so they live under a
// much shorter TTL than the entity caches.
const unreadCountTTL = time.Minute

func (s *CacheService) CacheUnreadCount(ctx context.Context, userID uint, count int64) error {
	return s.SetWithTTL(ctx, s.GenerateKey("notifications", "unread", userID), count, unreadCountTTL)
}

func (s *CacheService) GetUnreadCount(ctx context.Context, userID uint) (int64, bool, error) {
	var count int64
	found, err := s.Get(ctx, s.GenerateKey("notifications", "unread", userID), &count)
	if err != nil || !found {
		return 0, false, err
	}
	return count, true, nil
}

func (s *CacheService) InvalidateUnreadCount(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("notifications", "unread", userID))
}
