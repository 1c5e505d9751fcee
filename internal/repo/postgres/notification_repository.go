package postgres

import (
	"context"
	"errors"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/jackc/pgx/v5"
)

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

type NotificationRepository struct {
	executor
}

func NewNotificationRepository(pool DB) *NotificationRepository {
	return &NotificationRepository{executor{pool: pool}}
}

// Save — повторная доставка того же сообщения не создаёт дубль.
func (r *NotificationRepository) Save(ctx context.Context, n *domain.Notification) error {
	if n == nil || n.ID == "" {
		return errors.New("notification id is required")
	}
	if _, err := r.db(ctx).Exec(ctx, `
		INSERT INTO notifications (id, creation_timestamp, message, offer_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, n.ID, n.CreatedAt, n.Message, n.OfferID, n.UserID); err != nil {
		return mapErr("notification", n.ID, "insert", err)
	}
	return nil
}

// ListByUser — постранично, новые сверху.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db(ctx).Query(ctx, `
		SELECT id, creation_timestamp, message, offer_id, user_id
		FROM notifications
		WHERE user_id = $1
		ORDER BY creation_timestamp DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, mapErr("notification", "", "select", err)
	}
	return collect(rows, func(row pgx.Row) (*domain.Notification, error) {
		var n domain.Notification
		if err := row.Scan(&n.ID, &n.CreatedAt, &n.Message, &n.OfferID, &n.UserID); err != nil {
			return nil, err
		}
		return &n, nil
	})
}
