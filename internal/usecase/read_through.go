package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
)

// DefaultEntityTTL — время жизни записи сущности в кэше.
const DefaultEntityTTL = 10 * time.Minute

// readThrough — read-through кэш сущностей одного вида, ключи "namespace:id", значения в JSON.
// Любая проблема кэша (недоступен, битые данные) сводится к промаху.
type readThrough[T any] struct {
	kind  domain.Kind
	cache ports.Cache
	ttl   time.Duration
	log   ports.Logger
}

func newReadThrough[T any](kind domain.Kind, cache ports.Cache, ttl time.Duration, log ports.Logger) readThrough[T] {
	if ttl <= 0 {
		ttl = DefaultEntityTTL
	}
	return readThrough[T]{kind: kind, cache: cache, ttl: ttl, log: log}
}

func (r readThrough[T]) key(id string) string { return r.kind.CacheKey(id) }

// get — при useCache сначала кэш; иначе (или при промахе) load и запись результата в кэш.
func (r readThrough[T]) get(ctx context.Context, id string, useCache bool,
	load func(context.Context, string) (*T, error)) (*T, error) {
	key := r.key(id)
	if useCache {
		if v, ok := r.lookup(ctx, key); ok {
			return v, nil
		}
	}

	start := time.Now()
	v, err := load(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, v)
	r.log.Infof(ctx, "db fetch key=%s took=%s", key, time.Since(start))
	return v, nil
}

// getMany — попадания берутся из кэша, промахи догружаются одним запросом loadMany.
// Отсутствующие в хранилище id просто не попадают в результат.
func (r readThrough[T]) getMany(ctx context.Context, ids []string,
	loadMany func(context.Context, []string) ([]*T, error), idOf func(*T) string) (map[string]*T, error) {
	out := make(map[string]*T, len(ids))
	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen || id == "" {
			continue
		}
		if v, ok := r.lookup(ctx, r.key(id)); ok {
			out[id] = v
			continue
		}
		out[id] = nil
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		loaded, err := loadMany(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, v := range loaded {
			id := idOf(v)
			out[id] = v
			r.store(ctx, r.key(id), v)
		}
	}

	for id, v := range out {
		if v == nil {
			delete(out, id)
		}
	}
	return out, nil
}

func (r readThrough[T]) lookup(ctx context.Context, key string) (*T, bool) {
	raw, found, err := r.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheOps.WithLabelValues(string(r.kind), "get_error").Inc()
		r.log.Warnf(ctx, "cache.Get failed key=%s err=%v", key, err)
		return nil, false
	}
	if !found {
		metrics.CacheOps.WithLabelValues(string(r.kind), "miss").Inc()
		return nil, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		metrics.CacheOps.WithLabelValues(string(r.kind), "corrupt").Inc()
		r.log.Warnf(ctx, "cache payload unreadable key=%s err=%v", key, err)
		return nil, false
	}
	metrics.CacheOps.WithLabelValues(string(r.kind), "hit").Inc()
	return &v, true
}

// store — best-effort: ошибка записи только логируется.
func (r readThrough[T]) store(ctx context.Context, key string, v *T) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = r.cache.Set(ctx, key, raw, r.ttl)
	}
	if err != nil {
		metrics.CacheOps.WithLabelValues(string(r.kind), "set_error").Inc()
		r.log.Warnf(ctx, "cache.Set failed key=%s err=%v", key, err)
	}
}

// evict — немедленное удаление ключа перед изменением записи.
func (r readThrough[T]) evict(ctx context.Context, id string) {
	key := r.key(id)
	if err := r.cache.Delete(ctx, key); err != nil {
		metrics.CacheInvalidations.WithLabelValues("failed").Inc()
		r.log.Warnf(ctx, "eager cache delete failed key=%s err=%v", key, err)
		return
	}
	metrics.CacheInvalidations.WithLabelValues("eager").Inc()
}
