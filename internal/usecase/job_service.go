package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/Gunvolt24/jobboard/pkg/validate"
	"golang.org/x/sync/errgroup"
)

var _ ports.JobService = (*JobService)(nil)

// searchParallelism — сколько запросов по ключевым словам выполняется одновременно.
const searchParallelism = 4

// JobService — работы. Обновление защищено неблокирующей именованной блокировкой.
type JobService struct {
	repo       ports.JobRepository
	categories categoryReader
	locker     ports.Locker
	tx         ports.TxManager
	assets     assetKeeper
	cache      readThrough[domain.Job]
	log        ports.Logger
}

func NewJobService(
	repo ports.JobRepository,
	categories *CategoryService,
	locker ports.Locker,
	tx ports.TxManager,
	cache ports.Cache,
	assets ports.AssetStorage,
	log ports.Logger,
	ttl time.Duration,
) *JobService {
	return &JobService{
		repo:       repo,
		categories: categories,
		locker:     locker,
		tx:         tx,
		assets:     newAssetKeeper(assets, tx, log),
		cache:      newReadThrough[domain.Job](domain.KindJob, cache, ttl, log),
		log:        log,
	}
}

// List — все работы, категории подгружаются одним пакетом.
func (s *JobService) List(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.get(ctx, id, true)
}

func (s *JobService) get(ctx context.Context, id string, useCache bool) (*domain.Job, error) {
	j, err := s.cache.get(ctx, id, useCache, s.repo.FindByID)
	if err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, []*domain.Job{j}); err != nil {
		return nil, err
	}
	return j, nil
}

// ListByCategory — NotFound, если категории нет.
func (s *JobService) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Job, error) {
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		j.Category = category
	}
	return jobs, nil
}

// Search — работы, ключи которых содержат слова из needs (без учёта регистра).
// Сначала работы с наибольшим числом совпавших слов, при равенстве — по id.
func (s *JobService) Search(ctx context.Context, needs string) ([]*domain.Job, error) {
	keywords := splitKeywords(needs)
	if len(keywords) == 0 {
		return []*domain.Job{}, nil
	}

	matches := make([][]string, len(keywords))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchParallelism)
	for i, keyword := range keywords {
		g.Go(func() error {
			ids, err := s.repo.FindIDsByKey(gctx, keyword)
			if err != nil {
				return fmt.Errorf("search keyword %q: %w", keyword, err)
			}
			matches[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := rankByMatches(matches)
	out := make([]*domain.Job, 0, len(ranked))
	for _, id := range ranked {
		j, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			// удалена между поиском и чтением
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

// Create — категория должна существовать.
func (s *JobService) Create(ctx context.Context, req *domain.CreateJobRequest, asset *domain.Asset) (*domain.Job, error) {
	if err := validate.CreateJob(req); err != nil {
		return nil, err
	}

	var out *domain.Job
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.categories.Get(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		imageID, err := s.assets.upload(ctx, asset)
		if err != nil {
			return err
		}
		j := &domain.Job{
			Name:        req.Name,
			Description: req.Description,
			ImageID:     imageID,
			Category:    category,
			Keys:        normalizeKeys(req.Keys),
		}
		if err := s.repo.Save(ctx, j); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(j.ID))
		out = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof(ctx, "job created id=%s category=%s keys=%d", out.ID, out.CategoryID(), len(out.Keys))
	return out, nil
}

// Update — если блокировка "update:job:<id>" уже занята, сразу Conflict без изменений.
// Взятая блокировка снимается при любом исходе.
func (s *JobService) Update(ctx context.Context, req *domain.UpdateJobRequest, asset *domain.Asset) (*domain.Job, error) {
	if err := validate.UpdateJob(req); err != nil {
		return nil, err
	}

	lockName := domain.KindJob.UpdateLockName(req.ID)
	token, acquired, err := s.locker.TryAcquire(ctx, lockName)
	if err != nil {
		metrics.LockAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("acquire lock %s: %w", lockName, err)
	}
	if !acquired {
		metrics.LockAttempts.WithLabelValues("conflict").Inc()
		s.log.Warnf(ctx, "job update refused: lock %s is held", lockName)
		return nil, domain.Conflict(domain.KindJob, req.ID)
	}
	metrics.LockAttempts.WithLabelValues("acquired").Inc()
	defer func() {
		if relErr := s.locker.Release(context.WithoutCancel(ctx), lockName, token); relErr != nil {
			s.log.Warnf(ctx, "release lock %s: %v", lockName, relErr)
		}
	}()

	var out *domain.Job
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		s.cache.evict(ctx, req.ID)

		j, err := s.cache.get(ctx, req.ID, false, s.repo.FindByID)
		if err != nil {
			return err
		}
		req.ApplyTo(j)
		j.Keys = normalizeKeys(j.Keys)
		if err := s.assets.replace(ctx, &j.ImageID, asset); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, j); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(j.ID))
		out = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, []*domain.Job{out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		s.tx.Invalidate(ctx, s.cache.key(id))
		return nil
	})
}

func (s *JobService) attachCategories(ctx context.Context, jobs []*domain.Job) error {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if id := j.CategoryID(); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	byID, err := s.categories.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	return attach(ctx, jobs, jobCategoryID,
		func(_ context.Context, id string) (*domain.Category, error) {
			if c, ok := byID[id]; ok {
				return c, nil
			}
			return nil, domain.NotFound(domain.KindCategory, id)
		},
		setJobCategory)
}

// splitKeywords — кавычки отбрасываются, слова разделяются пробелами, повторы (без учёта регистра) схлопываются.
func splitKeywords(needs string) []string {
	fields := strings.Fields(strings.ReplaceAll(needs, `"`, ""))
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		low := strings.ToLower(f)
		if _, ok := seen[low]; ok {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, f)
	}
	return out
}

// rankByMatches — id по убыванию числа совпадений, при равенстве по возрастанию id.
func rankByMatches(matches [][]string) []string {
	counts := make(map[string]int)
	for _, ids := range matches {
		for _, id := range ids {
			counts[id]++
		}
	}
	ranked := make([]string, 0, len(counts))
	for id := range counts {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}

// normalizeKeys — без пустых и повторяющихся ключей, порядок сохраняется.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
