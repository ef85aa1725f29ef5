package repositories

import (
	"context"
	"testing"

	"sjfs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderCache is a minimal in-memory orderCache. The repository under test
// carries a nil *gorm.DB, so any database access in a cache-hit path would
// panic and fail the test.
type stubOrderCache struct {
	orders      map[uint]*models.Order
	gets        int
	stored      []uint
	invalidated []uint
}

func newStubOrderCache() *stubOrderCache {
	return &stubOrderCache{orders: map[uint]*models.Order{}}
}

func (c *stubOrderCache) GetOrder(_ context.Context, orderID uint) (*models.Order, bool, error) {
	c.gets++
	order, found := c.orders[orderID]
	return order, found, nil
}

func (c *stubOrderCache) CacheOrder(_ context.Context, order *models.Order) error {
	c.orders[order.ID] = order
	c.stored = append(c.stored, order.ID)
	return nil
}

func (c *stubOrderCache) InvalidateOrder(_ context.Context, orderID uint) error {
	delete(c.orders, orderID)
	c.invalidated = append(c.invalidated, orderID)
	return nil
}

func TestOrderGetByID_ServedFromCache(t *testing.T) {
	cached := &models.Order{
		OrderNumber: "ORD-CACHED",
		Status:      models.OrderStatusPending,
		MerchantID:  7,
	}
	cached.ID = 100

	cache := newStubOrderCache()
	cache.orders[100] = cached

	repo := &orderRepository{cache: cache}

	got, err := repo.GetByID(100)

	require.NoError(t, err)
	assert.Equal(t, "ORD-CACHED", got.OrderNumber)
	assert.Equal(t, 1, cache.gets)
	assert.Empty(t, cache.stored)
}

func TestNewOrderRepository_NilCacheStaysNil(t *testing.T) {
	repo := NewOrderRepository(nil, nil).(*orderRepository)
	assert.Nil(t, repo.cache)
}
