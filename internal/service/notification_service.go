package service

import (
	"context"

	"learning-service/internal/models"

	"go.uber.org/zap"
)

// NotificationService persists in-app notifications and mirrors them onto
// the event exchange. Both writes are best effort: a notification must
// never fail the request that produced it.
type NotificationService struct {
	Store     NotificationStore
	Publisher Publisher
	Logger    *zap.Logger
}

func NewNotificationService(store NotificationStore, publisher Publisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{Store: store, Publisher: publisher, Logger: logger}
}

// Notify creates a notification for one user, fire-and-forget.
func (s *NotificationService) Notify(ctx context.Context, userID, message, link string) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Link:    link,
	}
	if err := s.Store.Create(ctx, notification); err != nil {
		s.Logger.Warn("failed to persist notification",
			zap.String("user_id", userID), zap.Error(err))
		return
	}
	if s.Publisher != nil {
		if err := s.Publisher.Publish("notification.created", notification); err != nil {
			s.Logger.Warn("failed to publish notification event",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Store.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.Store.MarkRead(ctx, id, userID)
}
