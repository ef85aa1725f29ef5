// Package notification creates and manages persisted in-app notifications.
package notification

import (
	"context"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
)

// UnreadCountCache caches per-user unread counters. Dispatch and the read
// operations invalidate; CountUnread reads through it.
type UnreadCountCache interface {
	GetUnreadCount(ctx context.Context, userID uint) (int64, bool, error)
	CacheUnreadCount(ctx context.Context, userID uint, count int64) error
	InvalidateUnreadCount(ctx context.Context, userID uint) error
}

type Service interface {
	// Dispatch creates one or more notification rows for the input's target.
	// A role target fans out to one row per active user holding the role.
	Dispatch(ctx context.Context, input Input) ([]models.Notification, error)

	// MarkRead flips a notification to read. Only the recipient may do so;
	// global notifications may be marked read by anyone.
	MarkRead(ctx context.Context, id, userID uint) error

	// MarkAllRead flips every unread notification visible to the user.
	MarkAllRead(ctx context.Context, userID uint, role string) (int64, error)

	// List returns notifications visible to the user, newest first.
	List(ctx context.Context, userID uint, role string, offset, limit int) ([]models.Notification, int64, error)

	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID uint, role string) (int64, error)

	// PurgeRead removes read notifications older than the retention window.
	// Unread notifications are never purged regardless of age.
	PurgeRead(ctx context.Context) (int64, error)
}

type service struct {
	repo      repositories.NotificationRepository
	users     repositories.UserRepository
	cache     UnreadCountCache
	retention time.Duration
}

// NewService creates the notification dispatcher. The cache may be nil.
func NewService(repo repositories.NotificationRepository, users repositories.UserRepository, cache UnreadCountCache, retention time.Duration) Service {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &service{repo: repo, users: users, cache: cache, retention: retention}
}

func (s *service) Dispatch(ctx context.Context, input Input) ([]models.Notification, error) {
	if input.Title == "" {
		return nil, ErrMissingTitle
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}

	base := models.Notification{
		Title:    input.Title,
		Message:  input.Message,
		Type:     input.Type,
		Priority: input.Priority,
		Metadata: input.Metadata,
	}

	switch input.Target.Mode {
	case TargetByID:
		n := base
		id := input.Target.UserID
		n.RecipientID = &id
		if err := s.repo.Create(&n); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
		return []models.Notification{n}, nil

	case TargetByRole:
		users, err := s.users.ListActiveByRole(input.Target.MerchantID, input.Target.Role)
		if err != nil {
			return nil, err
		}
		ns := make([]*models.Notification, 0, len(users))
		for i := range users {
			n := base
			id := users[i].ID
			n.RecipientID = &id
			ns = append(ns, &n)
		}
		if err := s.repo.CreateAll(ns); err != nil {
			return nil, err
		}
		out := make([]models.Notification, 0, len(ns))
		for i := range ns {
			s.invalidate(ctx, *ns[i].RecipientID)
			out = append(out, *ns[i])
		}
		return out, nil

	case TargetGlobal:
		n := base
		n.IsGlobal = true
		if err := s.repo.Create(&n); err != nil {
			return nil, err
		}
		return []models.Notification{n}, nil

	default:
		return nil, ErrInvalidTarget
	}
}

func (s *service) MarkRead(ctx context.Context, id, userID uint) error {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !n.IsGlobal && (n.RecipientID == nil || *n.RecipientID != userID) {
		return ErrNotRecipient
	}
	if n.IsRead {
		return nil
	}
	if err := s.repo.MarkRead(id, time.Now()); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uint, role string) (int64, error) {
	count, err := s.repo.MarkAllReadForUser(userID, role, time.Now())
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, userID)
	return count, nil
}

func (s *service) List(ctx context.Context, userID uint, role string, offset, limit int) ([]models.Notification, int64, error) {
	return s.repo.ListForUser(userID, role, offset, limit)
}

func (s *service) CountUnread(ctx context.Context, userID uint, role string) (int64, error) {
	if s.cache != nil {
		if count, found, err := s.cache.GetUnreadCount(ctx, userID); err == nil && found {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(userID, role)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.CacheUnreadCount(ctx, userID, count)
	}
	return count, nil
}

func (s *service) PurgeRead(ctx context.Context) (int64, error) {
	return s.repo.DeleteReadBefore(time.Now().Add(-s.retention))
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if s.cache != nil {
		_ = s.cache.InvalidateUnreadCount(ctx, userID)
	}
}
