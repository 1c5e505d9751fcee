package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/jobboard/internal/cache/memory"
	"github.com/Gunvolt24/jobboard/internal/domain"
	locklocal "github.com/Gunvolt24/jobboard/internal/lock/local"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/internal/ports/mocks"
	"github.com/Gunvolt24/jobboard/internal/txn"
	"github.com/Gunvolt24/jobboard/internal/usecase"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// harness — настоящие кэш и менеджер транзакций (поверх pgxmock), моки хранилищ и внешних сервисов.
type harness struct {
	ctrl  *gomock.Controller
	pool  pgxmock.PgxPoolIface
	cache *cachemem.LRUCacheTTL
	tx    *txn.Manager

	categoryRepo *mocks.MockCategoryRepository
	jobRepo      *mocks.MockJobRepository
	advertRepo   *mocks.MockAdvertRepository
	offerRepo    *mocks.MockOfferRepository
	users        *mocks.MockUserDirectory
	publisher    *mocks.MockNotificationPublisher
	assets       *mocks.MockAssetStorage

	categories *usecase.CategoryService
	jobs       *usecase.JobService
	adverts    *usecase.AdvertService
	offers     *usecase.OfferService
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithLocker(t, locklocal.New())
}

func newHarnessWithLocker(t *testing.T, locker ports.Locker) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	h := &harness{
		ctrl:         ctrl,
		pool:         pool,
		cache:        cachemem.NewLRUCacheTTL(100, time.Minute),
		categoryRepo: mocks.NewMockCategoryRepository(ctrl),
		jobRepo:      mocks.NewMockJobRepository(ctrl),
		advertRepo:   mocks.NewMockAdvertRepository(ctrl),
		offerRepo:    mocks.NewMockOfferRepository(ctrl),
		users:        mocks.NewMockUserDirectory(ctrl),
		publisher:    mocks.NewMockNotificationPublisher(ctrl),
		assets:       mocks.NewMockAssetStorage(ctrl),
	}
	log := noopLogger{}
	h.tx = txn.NewManager(pool, h.cache, log)
	h.categories = usecase.NewCategoryService(h.categoryRepo, h.tx, h.cache, h.assets, log, time.Minute)
	h.jobs = usecase.NewJobService(h.jobRepo, h.categories, locker, h.tx, h.cache, h.assets, log, time.Minute)
	h.adverts = usecase.NewAdvertService(h.advertRepo, h.offerRepo, h.jobs, h.users, h.tx, h.cache, h.assets, log, time.Minute)
	h.offers = usecase.NewOfferService(h.offerRepo, h.adverts, h.users, h.publisher, h.tx, h.cache, log, time.Minute)

	t.Cleanup(func() { require.NoError(t, pool.ExpectationsWereMet()) })
	return h
}

func (h *harness) expectCommit() {
	h.pool.ExpectBegin()
	h.pool.ExpectCommit()
}

func (h *harness) expectRollback() {
	h.pool.ExpectBegin()
	h.pool.ExpectRollback()
}

func (h *harness) cached(key string) bool {
	_, ok, _ := h.cache.Get(context.Background(), key)
	return ok
}

func category(id, name string) *domain.Category {
	return &domain.Category{Base: domain.Base{ID: id}, Name: name, Description: name + " description"}
}

func job(id, categoryID string, keys ...string) *domain.Job {
	return &domain.Job{
		Base:     domain.Base{ID: id},
		Name:     "job " + id,
		Category: &domain.Category{Base: domain.Base{ID: categoryID}},
		Keys:     keys,
	}
}

func advert(id, userID, jobID string) *domain.Advert {
	return &domain.Advert{
		Base:       domain.Base{ID: id},
		UserID:     userID,
		Name:       "advert " + id,
		Price:      100,
		Status:     domain.AdvertOpen,
		Advertiser: domain.AdvertiserCustomer,
		Job:        &domain.Job{Base: domain.Base{ID: jobID}},
	}
}

func ptr[T any](v T) *T { return &v }
