package repositories

import (
	"errors"
	"time"

	"sjfs/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines notification database operations
type NotificationRepository interface {
	Create(n *models.Notification) error

	// CreateAll inserts a batch of notifications (role fan-out)
	CreateAll(ns []*models.Notification) error

	GetByID(id uint) (*models.Notification, error)

	// MarkRead flips a single notification to read
	MarkRead(id uint, at time.Time) error

	// MarkAllReadForUser flips every unread notification visible to the user:
	// rows addressed to them directly, to their role, or global.
	MarkAllReadForUser(userID uint, role string, at time.Time) (int64, error)

	// ListForUser returns notifications visible to the user, newest first
	ListForUser(userID uint, role string, offset, limit int) ([]models.Notification, int64, error)

	// CountUnread counts unread notifications visible to the user
	CountUnread(userID uint, role string) (int64, error)

	// DeleteReadBefore purges read notifications older than the cutoff.
	// Unread rows are never touched.
	DeleteReadBefore(cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) CreateAll(ns []*models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Create(ns).Error
}

func (r *notificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) MarkRead(id uint, at time.Time) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

func (r *notificationRepository) MarkAllReadForUser(userID uint, role string, at time.Time) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Where(r.visibleTo(userID, role)).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) ListForUser(userID uint, role string, offset, limit int) ([]models.Notification, int64, error) {
	var ns []models.Notification
	var total int64

	query := r.db.Model(&models.Notification{}).Where(r.visibleTo(userID, role))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ns).Error
	if err != nil {
		return nil, 0, err
	}
	return ns, total, nil
}

func (r *notificationRepository) CountUnread(userID uint, role string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("is_read = ?", false).
		Where(r.visibleTo(userID, role)).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) DeleteReadBefore(cutoff time.Time) (int64, error) {
	result := r.db.Unscoped().
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) visibleTo(userID uint, role string) *gorm.DB {
	return r.db.Where("recipient_id = ? OR recipient_role = ? OR is_global = ?", userID, role, true)
}
