package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/validate"
)

var _ ports.NotificationService = (*NotificationService)(nil)

// NotificationService — приём уведомлений из брокера и выдача их адресату.
type NotificationService struct {
	repo ports.NotificationRepository
	log  ports.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log ports.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// HandleMessage — сохранить уведомление из Kafka (raw JSON).
// Невалидное сообщение возвращает ошибку с domain.ErrInvalidArgument: консьюмер его пропустит.
func (s *NotificationService) HandleMessage(ctx context.Context, raw []byte) error {
	n, err := validate.FromJSON(raw, validate.Notification)
	if err != nil {
		s.log.Warnf(ctx, "invalid notification message err=%v", err)
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Save(ctx, n); err != nil {
		s.log.Errorf(ctx, "repo.Save failed notification=%s err=%v", n.ID, err)
		return fmt.Errorf("failed to save notification: %w", err)
	}
	s.log.Infof(ctx, "notification stored id=%s user=%s offer=%s", n.ID, n.UserID, n.OfferID)
	return nil
}
