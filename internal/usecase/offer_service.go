package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/Gunvolt24/jobboard/pkg/validate"
	"github.com/google/uuid"
)

var _ ports.OfferService = (*OfferService)(nil)

// OfferNotificationMessage — текст уведомления владельцу объявления о новом предложении.
const OfferNotificationMessage = "You have received an offer for your advertising."

// OfferService — предложения по объявлениям.
type OfferService struct {
	repo      ports.OfferRepository
	adverts   advertReader
	users     ports.UserDirectory
	publisher ports.NotificationPublisher
	tx        ports.TxManager
	cache     readThrough[domain.Offer]
	log       ports.Logger
	now       func() time.Time
}

func NewOfferService(
	repo ports.OfferRepository,
	adverts ports.AdvertService,
	users ports.UserDirectory,
	publisher ports.NotificationPublisher,
	tx ports.TxManager,
	cache ports.Cache,
	log ports.Logger,
	ttl time.Duration,
) *OfferService {
	return &OfferService{
		repo:      repo,
		adverts:   adverts,
		users:     users,
		publisher: publisher,
		tx:        tx,
		cache:     newReadThrough[domain.Offer](domain.KindOffer, cache, ttl, log),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// MakeOffer — создаёт открытое предложение; после коммита владельцу объявления уходит уведомление.
func (s *OfferService) MakeOffer(ctx context.Context, req *domain.MakeOfferRequest) (*domain.Offer, error) {
	if err := validate.MakeOffer(req); err != nil {
		return nil, err
	}

	var out *domain.Offer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
			return fmt.Errorf("resolve user %s: %w", req.UserID, err)
		}
		advert, err := s.adverts.Get(ctx, req.AdvertID)
		if err != nil {
			return err
		}
		o := &domain.Offer{
			UserID:       req.UserID,
			OfferedPrice: req.OfferedPrice,
			Status:       domain.OfferOpen,
			Advert:       advert,
		}
		if err := s.repo.Save(ctx, o); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(o.ID))

		n := &domain.Notification{
			ID:        uuid.NewString(),
			CreatedAt: s.now(),
			Message:   OfferNotificationMessage,
			OfferID:   o.ID,
			UserID:    advert.UserID,
		}
		s.tx.AfterCommit(ctx, func(ctx context.Context) { s.notify(ctx, n) })
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof(ctx, "offer made id=%s advert=%s price=%d", out.ID, out.AdvertID(), out.OfferedPrice)
	return out, nil
}

// notify — ошибка публикации не отменяет уже закоммиченное предложение.
func (s *OfferService) notify(ctx context.Context, n *domain.Notification) {
	if err := s.publisher.Publish(ctx, n); err != nil {
		metrics.NotificationsPublished.WithLabelValues("error").Inc()
		s.log.Warnf(ctx, "publish notification offer=%s user=%s err=%v", n.OfferID, n.UserID, err)
		return
	}
	metrics.NotificationsPublished.WithLabelValues("ok").Inc()
}

func (s *OfferService) Get(ctx context.Context, id string) (*domain.Offer, error) {
	o, err := s.cache.get(ctx, id, true, s.repo.FindByID)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, []*domain.Offer{o}, offerAdvertID, s.adverts.Get, setOfferAdvert); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByAdvert — NotFound, если объявления нет.
func (s *OfferService) ListByAdvert(ctx context.Context, advertID string) ([]*domain.Offer, error) {
	advert, err := s.adverts.Get(ctx, advertID)
	if err != nil {
		return nil, err
	}
	offers, err := s.repo.FindByAdvertID(ctx, advertID)
	if err != nil {
		return nil, err
	}
	for _, o := range offers {
		o.Advert = advert
	}
	return offers, nil
}

func (s *OfferService) ListByUser(ctx context.Context, userID string) ([]*domain.Offer, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	offers, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, offers, offerAdvertID, s.adverts.Get, setOfferAdvert); err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *OfferService) Update(ctx context.Context, req *domain.UpdateOfferRequest) (*domain.Offer, error) {
	if err := validate.UpdateOffer(req); err != nil {
		return nil, err
	}

	var out *domain.Offer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		s.cache.evict(ctx, req.ID)

		o, err := s.cache.get(ctx, req.ID, false, s.repo.FindByID)
		if err != nil {
			return err
		}
		req.ApplyTo(o)
		if err := s.repo.Save(ctx, o); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(o.ID))
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, []*domain.Offer{out}, offerAdvertID, s.adverts.Get, setOfferAdvert); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OfferService) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(id))
		return nil
	})
}

// Authorize — principal совпадает с именем автора предложения.
func (s *OfferService) Authorize(ctx context.Context, id, principal string) (bool, error) {
	o, err := s.cache.get(ctx, id, true, s.repo.FindByID)
	if err != nil {
		return false, err
	}
	return isOwner(ctx, s.users, o.UserID, principal)
}
