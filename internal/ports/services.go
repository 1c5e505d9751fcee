package ports

import (
	"context"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

// Контракты прикладных сервисов, на которые опирается транспортный слой.

type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, req *domain.CreateCategoryRequest, asset *domain.Asset) (*domain.Category, error)
	Update(ctx context.Context, req *domain.UpdateCategoryRequest, asset *domain.Asset) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type JobService interface {
	List(ctx context.Context) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Job, error)
	Search(ctx context.Context, needs string) ([]*domain.Job, error)
	Create(ctx context.Context, req *domain.CreateJobRequest, asset *domain.Asset) (*domain.Job, error)
	Update(ctx context.Context, req *domain.UpdateJobRequest, asset *domain.Asset) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}

type AdvertService interface {
	List(ctx context.Context) ([]*domain.Advert, error)
	Get(ctx context.Context, id string) (*domain.Advert, error)
	ListByUser(ctx context.Context, userID string, advertiser domain.Advertiser) ([]*domain.Advert, error)
	Create(ctx context.Context, req *domain.CreateAdvertRequest, asset *domain.Asset) (*domain.Advert, error)
	Update(ctx context.Context, req *domain.UpdateAdvertRequest, asset *domain.Asset) (*domain.Advert, error)
	Delete(ctx context.Context, id string) error
	Authorize(ctx context.Context, id, principal string) (bool, error)
}

type OfferService interface {
	MakeOffer(ctx context.Context, req *domain.MakeOfferRequest) (*domain.Offer, error)
	Get(ctx context.Context, id string) (*domain.Offer, error)
	ListByAdvert(ctx context.Context, advertID string) ([]*domain.Offer, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Offer, error)
	Update(ctx context.Context, req *domain.UpdateOfferRequest) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
	Authorize(ctx context.Context, id, principal string) (bool, error)
}

type NotificationService interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
}

// SessionService — привязка токена сессии к имени пользователя.
type SessionService interface {
	Bind(ctx context.Context, token, username string) (bool, error)
	Resolve(ctx context.Context, token string) (string, error)
}
