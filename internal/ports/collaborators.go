package ports

import (
	"context"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

// NotificationPublisher — публикация уведомления в топик брокера.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// UserDirectory — внешний каталог пользователей.
type UserDirectory interface {
	// GetUserByID — пользователь по id; domain.ErrNotFound, если его нет.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// AssetStorage — внешнее хранилище файлов (изображений).
type AssetStorage interface {
	Upload(ctx context.Context, asset *domain.Asset) (string, error)
	Delete(ctx context.Context, assetID string) error
}
