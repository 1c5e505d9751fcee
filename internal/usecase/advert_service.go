package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/validate"
)

var _ ports.AdvertService = (*AdvertService)(nil)

// AdvertService — объявления пользователей.
type AdvertService struct {
	repo   ports.AdvertRepository
	offers ports.OfferRepository
	jobs   jobReader
	users  ports.UserDirectory
	tx     ports.TxManager
	assets assetKeeper
	cache  readThrough[domain.Advert]
	log    ports.Logger
}

func NewAdvertService(
	repo ports.AdvertRepository,
	offers ports.OfferRepository,
	jobs ports.JobService,
	users ports.UserDirectory,
	tx ports.TxManager,
	cache ports.Cache,
	assets ports.AssetStorage,
	log ports.Logger,
	ttl time.Duration,
) *AdvertService {
	return &AdvertService{
		repo:   repo,
		offers: offers,
		jobs:   jobs,
		users:  users,
		tx:     tx,
		assets: newAssetKeeper(assets, tx, log),
		cache:  newReadThrough[domain.Advert](domain.KindAdvert, cache, ttl, log),
		log:    log,
	}
}

func (s *AdvertService) List(ctx context.Context) ([]*domain.Advert, error) {
	adverts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, adverts, advertJobID, s.jobs.Get, setAdvertJob); err != nil {
		return nil, err
	}
	return adverts, nil
}

func (s *AdvertService) Get(ctx context.Context, id string) (*domain.Advert, error) {
	a, err := s.cache.get(ctx, id, true, s.repo.FindByID)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, []*domain.Advert{a}, advertJobID, s.jobs.Get, setAdvertJob); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByUser — объявления пользователя; пустой advertiser означает любой.
func (s *AdvertService) ListByUser(ctx context.Context, userID string, advertiser domain.Advertiser) ([]*domain.Advert, error) {
	if advertiser != "" && !advertiser.Valid() {
		return nil, domain.InvalidArgument("advertiser", string(advertiser))
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	adverts, err := s.repo.FindByUser(ctx, userID, advertiser)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, adverts, advertJobID, s.jobs.Get, setAdvertJob); err != nil {
		return nil, err
	}
	return adverts, nil
}

// Create — пользователь и работа должны существовать; новое объявление открыто.
func (s *AdvertService) Create(ctx context.Context, req *domain.CreateAdvertRequest, asset *domain.Asset) (*domain.Advert, error) {
	if err := validate.CreateAdvert(req); err != nil {
		return nil, err
	}

	var out *domain.Advert
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
			return fmt.Errorf("resolve user %s: %w", req.UserID, err)
		}
		job, err := s.jobs.Get(ctx, req.JobID)
		if err != nil {
			return err
		}
		imageID, err := s.assets.upload(ctx, asset)
		if err != nil {
			return err
		}
		a := &domain.Advert{
			UserID:       req.UserID,
			Name:         req.Name,
			Description:  req.Description,
			DeliveryTime: req.DeliveryTime,
			Price:        req.Price,
			ImageID:      imageID,
			Status:       domain.AdvertOpen,
			Advertiser:   req.Advertiser,
			Job:          job,
		}
		if err := s.repo.Save(ctx, a); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(a.ID))
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof(ctx, "advert created id=%s user=%s job=%s", out.ID, out.UserID, out.JobID())
	return out, nil
}

func (s *AdvertService) Update(ctx context.Context, req *domain.UpdateAdvertRequest, asset *domain.Asset) (*domain.Advert, error) {
	if err := validate.UpdateAdvert(req); err != nil {
		return nil, err
	}

	var out *domain.Advert
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		s.cache.evict(ctx, req.ID)

		a, err := s.cache.get(ctx, req.ID, false, s.repo.FindByID)
		if err != nil {
			return err
		}
		req.ApplyTo(a)
		if err := s.assets.replace(ctx, &a.ImageID, asset); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, a); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(a.ID))
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, []*domain.Advert{out}, advertJobID, s.jobs.Get, setAdvertJob); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete — предложения удаляются каскадно в той же транзакции, поэтому
// их ключи кэша тоже сбрасываются после коммита.
func (s *AdvertService) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		offers, err := s.offers.FindByAdvertID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(id))
		for _, o := range offers {
			s.tx.Invalidate(ctx, domain.KindOffer.CacheKey(o.ID))
		}
		return nil
	})
}

// Authorize — principal совпадает с именем владельца объявления.
func (s *AdvertService) Authorize(ctx context.Context, id, principal string) (bool, error) {
	a, err := s.cache.get(ctx, id, true, s.repo.FindByID)
	if err != nil {
		return false, err
	}
	return isOwner(ctx, s.users, a.UserID, principal)
}

func isOwner(ctx context.Context, users ports.UserDirectory, userID, principal string) (bool, error) {
	if principal == "" {
		return false, nil
	}
	owner, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("resolve owner %s: %w", userID, err)
	}
	return owner.Username == principal, nil
}
