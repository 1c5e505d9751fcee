package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/validate"
)

var _ ports.CategoryService = (*CategoryService)(nil)

// CategoryService — категории: read-through кэш, транзакционная запись, инвалидация после коммита.
type CategoryService struct {
	repo   ports.CategoryRepository
	tx     ports.TxManager
	assets assetKeeper
	cache  readThrough[domain.Category]
	log    ports.Logger
}

// NewCategoryService — DI-конструктор. assets может быть nil (изображения отключены).
func NewCategoryService(
	repo ports.CategoryRepository,
	tx ports.TxManager,
	cache ports.Cache,
	assets ports.AssetStorage,
	log ports.Logger,
	ttl time.Duration,
) *CategoryService {
	return &CategoryService{
		repo:   repo,
		tx:     tx,
		assets: newAssetKeeper(assets, tx, log),
		cache:  newReadThrough[domain.Category](domain.KindCategory, cache, ttl, log),
		log:    log,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.FindAll(ctx)
}

// Get — категория по id через кэш.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.cache.get(ctx, id, true, s.repo.FindByID)
}

// GetMany — категории по набору id; отсутствующих в результате нет.
func (s *CategoryService) GetMany(ctx context.Context, ids []string) (map[string]*domain.Category, error) {
	return s.cache.getMany(ctx, ids, s.repo.FindByIDs, func(c *domain.Category) string { return c.ID })
}

func (s *CategoryService) Create(ctx context.Context, req *domain.CreateCategoryRequest, asset *domain.Asset) (*domain.Category, error) {
	if err := validate.CreateCategory(req); err != nil {
		return nil, err
	}

	var out *domain.Category
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		imageID, err := s.assets.upload(ctx, asset)
		if err != nil {
			return err
		}
		c := &domain.Category{Name: req.Name, Description: req.Description, ImageID: imageID}
		if err := s.repo.Save(ctx, c); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(c.ID))
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof(ctx, "category created id=%s", out.ID)
	return out, nil
}

// Update — частичное обновление; ключ удаляется сразу и ещё раз после коммита.
func (s *CategoryService) Update(ctx context.Context, req *domain.UpdateCategoryRequest, asset *domain.Asset) (*domain.Category, error) {
	if err := validate.UpdateCategory(req); err != nil {
		return nil, err
	}

	var out *domain.Category
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		s.cache.evict(ctx, req.ID)

		c, err := s.cache.get(ctx, req.ID, false, s.repo.FindByID)
		if err != nil {
			return err
		}
		req.ApplyTo(c)
		if err := s.assets.replace(ctx, &c.ImageID, asset); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, c); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(c.ID))
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete — удаление отсутствующей категории возвращает NotFound.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(id))
		return nil
	})
}
