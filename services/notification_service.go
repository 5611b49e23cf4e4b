package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"marketplace-backend/models"
	"marketplace-backend/repository"
)

// Notifier is the ephemeral user-facing message channel. A new Show preempts
// any pending notification rather than queuing behind it.
type Notifier interface {
	Show(ctx context.Context, userID, text, kind string)
	Current(ctx context.Context, userID string) (*models.Notification, error)
	Dismiss(ctx context.Context, userID string) error
}

// NotificationService implements Notifier on the single-slot store. Show is
// best-effort: losing a toast is never worth failing the operation that
// produced it.
type NotificationService struct {
	repo   *repository.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

func (s *NotificationService) Show(ctx context.Context, userID, text, kind string) {
	if userID == "" {
		return
	}
	n := models.Notification{
		Text:      text,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Set(ctx, userID, n); err != nil {
		s.logger.Warn("Failed to show notification",
			zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *NotificationService) Current(ctx context.Context, userID string) (*models.Notification, error) {
	return s.repo.Get(ctx, userID)
}

func (s *NotificationService) Dismiss(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
