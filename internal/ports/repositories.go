package ports

import (
	"context"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

// Репозитории возвращают domain.ErrNotFound (через errors.Is) при отсутствии записи.
// Вложенные ссылки (Job.Category, Advert.Job, Offer.Advert) заполняются только идентификатором.
// Save назначает ID и временные метки при вставке (пустой ID) и обновляет запись иначе.

type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
	DeleteByID(ctx context.Context, id string) error
}

type JobRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindAll(ctx context.Context) ([]*domain.Job, error)
	FindByCategoryID(ctx context.Context, categoryID string) ([]*domain.Job, error)
	// FindIDsByKey — id работ, у которых есть ключ, содержащий keyword без учёта регистра.
	FindIDsByKey(ctx context.Context, keyword string) ([]string, error)
	Save(ctx context.Context, job *domain.Job) error
	DeleteByID(ctx context.Context, id string) error
}

type AdvertRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Advert, error)
	FindAll(ctx context.Context) ([]*domain.Advert, error)
	FindByUser(ctx context.Context, userID string, advertiser domain.Advertiser) ([]*domain.Advert, error)
	Save(ctx context.Context, advert *domain.Advert) error
	DeleteByID(ctx context.Context, id string) error
}

type OfferRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	FindByAdvertID(ctx context.Context, advertID string) ([]*domain.Offer, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Offer, error)
	Save(ctx context.Context, offer *domain.Offer) error
	DeleteByID(ctx context.Context, id string) error
}

type NotificationRepository interface {
	// Save — идемпотентная вставка по ID (повторная доставка сообщения не создаёт дубль).
	Save(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
}
