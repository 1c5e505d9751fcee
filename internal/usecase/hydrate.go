package usecase

import (
	"context"
	"errors"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

// Связанные сущности хранятся в кэше и репозиториях только идентификатором,
// полные значения подставляются при чтении через Get владельца (тоже read-through).

type categoryReader interface {
	Get(ctx context.Context, id string) (*domain.Category, error)
	GetMany(ctx context.Context, ids []string) (map[string]*domain.Category, error)
}

type jobReader interface {
	Get(ctx context.Context, id string) (*domain.Job, error)
}

type advertReader interface {
	Get(ctx context.Context, id string) (*domain.Advert, error)
}

// attach — для каждого уникального refID один вызов get; отсутствующая ссылка остаётся заглушкой.
func attach[T, R any](ctx context.Context, items []*T, refID func(*T) string,
	get func(context.Context, string) (*R, error), set func(*T, *R)) error {
	memo := make(map[string]*R)
	for _, item := range items {
		id := refID(item)
		if id == "" {
			continue
		}
		ref, ok := memo[id]
		if !ok {
			var err error
			ref, err = get(ctx, id)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			memo[id] = ref
		}
		if ref != nil {
			set(item, ref)
		}
	}
	return nil
}

func jobCategoryID(j *domain.Job) string { return j.CategoryID() }
func setJobCategory(j *domain.Job, c *domain.Category) { j.Category = c }
func advertJobID(a *domain.Advert) string { return a.JobID() }
func setAdvertJob(a *domain.Advert, j *domain.Job) { a.Job = j }
func offerAdvertID(o *domain.Offer) string { return o.AdvertID() }
func setOfferAdvert(o *domain.Offer, a *domain.Advert) { o.Advert = a }
