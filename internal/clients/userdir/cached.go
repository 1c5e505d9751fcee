package userdir

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/viccon/sturdyc"
)

var _ ports.UserDirectory = (*Cached)(nil)

type CacheConfig struct {
	Capacity int
	TTL      time.Duration
}

// Cached — read-through кэш над каталогом пользователей.
// Отсутствующие пользователи тоже запоминаются, повторный запрос не уходит в сеть.
// Одновременные запросы одного id склеиваются в один вызов.
type Cached struct {
	next  ports.UserDirectory
	cache *sturdyc.Client[*domain.User]
}

func NewCached(next ports.UserDirectory, cfg CacheConfig) *Cached {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 10_000
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	const (
		numShards          = 16
		evictionPercentage = 10
	)
	return &Cached{
		next: next,
		cache: sturdyc.New[*domain.User](cfg.Capacity, numShards, cfg.TTL, evictionPercentage,
			sturdyc.WithMissingRecordStorage(),
		),
	}
}

func (c *Cached) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := c.cache.GetOrFetch(ctx, domain.KindUser.CacheKey(id), func(ctx context.Context) (*domain.User, error) {
		u, err := c.next.GetUserByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, sturdyc.ErrNotFound
		}
		return u, err
	})
	if errors.Is(err, sturdyc.ErrNotFound) || errors.Is(err, sturdyc.ErrMissingRecord) {
		return nil, domain.NotFound(domain.KindUser, id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
