package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStockRepo struct {
	mock.Mock
}

func (m *MockStockRepo) ListTracked() ([]models.StockItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockItem), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, input notification.Input) ([]models.Notification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotifier) MarkRead(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotifier) MarkAllRead(ctx context.Context, userID uint, role string) (int64, error) {
	args := m.Called(ctx, userID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotifier) List(ctx context.Context, userID uint, role string, offset, limit int) ([]models.Notification, int64, error) {
	args := m.Called(ctx, userID, role, offset, limit)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotifier) CountUnread(ctx context.Context, userID uint, role string) (int64, error) {
	args := m.Called(ctx, userID, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotifier) PurgeRead(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func stockItem(available, reorder int, expiry *time.Time) models.StockItem {
	item := models.StockItem{
		ProductID:         3,
		Product:           &models.Product{Name: "Widget", SKU: "WID-1"},
		WarehouseID:       5,
		MerchantID:        7,
		Quantity:          available,
		AvailableQuantity: available,
		ReorderLevel:      reorder,
		ExpiryDate:        expiry,
	}
	item.ID = 1
	return item
}

func sweepWith(t *testing.T, items []models.StockItem) (*SweepSummary, []notification.Input) {
	t.Helper()

	repo := new(MockStockRepo)
	notifier := new(MockNotifier)
	svc := NewService(repo, notifier)

	repo.On("ListTracked").Return(items, nil)

	var dispatched []notification.Input
	notifier.On("Dispatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { dispatched = append(dispatched, args.Get(1).(notification.Input)) }).
		Return([]models.Notification{{}}, nil)

	summary, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	return summary, dispatched
}

func alertsByTitle(inputs []notification.Input) map[string][]notification.Input {
	out := make(map[string][]notification.Input)
	for _, in := range inputs {
		out[in.Title] = append(out[in.Title], in)
	}
	return out
}

func TestSweep_OutOfStock(t *testing.T) {
	summary, dispatched := sweepWith(t, []models.StockItem{stockItem(0, 10, nil)})

	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 1, summary.OutOfStock)
	assert.Equal(t, 0, summary.LowStock)

	byTitle := alertsByTitle(dispatched)
	require.Len(t, byTitle["Out of Stock"], 1)
	out := byTitle["Out of Stock"][0]
	assert.Equal(t, models.RoleMerchantAdmin, out.Target.Role)
	assert.Equal(t, uint(7), out.Target.MerchantID)
	assert.Equal(t, models.PriorityHigh, out.Priority)
	assert.Equal(t, models.NotificationTypeStockAlert, out.Type)

	// zero available is also at or below the critical threshold
	require.Len(t, byTitle["Stock Critical"], 1)
	critical := byTitle["Stock Critical"][0]
	assert.Equal(t, models.RoleWarehouseStaff, critical.Target.Role)
	assert.Equal(t, models.PriorityUrgent, critical.Priority)

	assert.Empty(t, byTitle["Low Stock"])
}

func TestSweep_LowStockAboveCriticalThreshold(t *testing.T) {
	summary, dispatched := sweepWith(t, []models.StockItem{stockItem(8, 10, nil)})

	assert.Equal(t, 1, summary.LowStock)
	assert.Equal(t, 0, summary.OutOfStock)

	byTitle := alertsByTitle(dispatched)
	require.Len(t, byTitle["Low Stock"], 1)
	assert.Equal(t, models.PriorityMedium, byTitle["Low Stock"][0].Priority)
	assert.Empty(t, byTitle["Stock Critical"])
}

func TestSweep_LowStockAtCriticalThreshold(t *testing.T) {
	summary, dispatched := sweepWith(t, []models.StockItem{stockItem(5, 10, nil)})

	assert.Equal(t, 1, summary.LowStock)

	byTitle := alertsByTitle(dispatched)
	require.Len(t, byTitle["Low Stock"], 1)
	require.Len(t, byTitle["Stock Critical"], 1)
	assert.Equal(t, models.RoleWarehouseStaff, byTitle["Stock Critical"][0].Target.Role)
}

func TestSweep_HealthyItemRaisesNothing(t *testing.T) {
	summary, dispatched := sweepWith(t, []models.StockItem{stockItem(20, 10, nil)})

	assert.Equal(t, 1, summary.Scanned)
	assert.Equal(t, 0, summary.OutOfStock)
	assert.Equal(t, 0, summary.LowStock)
	assert.Equal(t, 0, summary.Expired)
	assert.Empty(t, dispatched)
}

func TestSweep_ExpiredWithStockAlertsBothRoles(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	summary, dispatched := sweepWith(t, []models.StockItem{stockItem(12, 5, &yesterday)})

	assert.Equal(t, 1, summary.Expired)
	assert.Equal(t, 0, summary.LowStock)

	byTitle := alertsByTitle(dispatched)
	expired := byTitle["Stock Expired"]
	require.Len(t, expired, 2)
	roles := []string{expired[0].Target.Role, expired[1].Target.Role}
	assert.ElementsMatch(t, []string{models.RoleMerchantAdmin, models.RoleWarehouseStaff}, roles)
	for _, in := range expired {
		assert.Equal(t, models.PriorityHigh, in.Priority)
	}
}

func TestSweep_ExpiredWithNoStockNotFlagged(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	summary, dispatched := sweepWith(t, []models.StockItem{stockItem(0, 5, &yesterday)})

	// out-of-stock wins; an empty expired batch needs no disposal alert
	assert.Equal(t, 1, summary.OutOfStock)
	assert.Equal(t, 0, summary.Expired)
	assert.Empty(t, alertsByTitle(dispatched)["Stock Expired"])
}

func TestSweep_FutureExpiryNotFlagged(t *testing.T) {
	nextMonth := time.Now().Add(30 * 24 * time.Hour)
	summary, _ := sweepWith(t, []models.StockItem{stockItem(20, 10, &nextMonth)})

	assert.Equal(t, 0, summary.Expired)
}

func TestSweep_MetadataIdentifiesItem(t *testing.T) {
	_, dispatched := sweepWith(t, []models.StockItem{stockItem(0, 10, nil)})

	require.NotEmpty(t, dispatched)
	meta := dispatched[0].Metadata
	assert.Equal(t, uint(1), meta["stock_item_id"])
	assert.Equal(t, uint(3), meta["product_id"])
	assert.Equal(t, uint(5), meta["warehouse_id"])
	assert.Equal(t, 0, meta["available"])
}

func TestSweep_RepositoryErrorAborts(t *testing.T) {
	repo := new(MockStockRepo)
	notifier := new(MockNotifier)
	svc := NewService(repo, notifier)

	repo.On("ListTracked").Return(nil, errors.New("db down"))

	summary, err := svc.Sweep(context.Background())

	require.Error(t, err)
	assert.Nil(t, summary)
	notifier.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestSweep_CountsAcrossItems(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	summary, _ := sweepWith(t, []models.StockItem{
		stockItem(0, 10, nil),
		stockItem(3, 10, nil),
		stockItem(50, 10, nil),
		stockItem(9, 5, &yesterday),
	})

	assert.Equal(t, 4, summary.Scanned)
	assert.Equal(t, 1, summary.OutOfStock)
	assert.Equal(t, 1, summary.LowStock)
	assert.Equal(t, 1, summary.Expired)
}
