package usecase_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

func TestAdvertCreate_OpenWithResolvedJob(t *testing.T) {
	h := newHarness(t)

	h.expectCommit()
	h.users.EXPECT().GetUserByID(gomock.Any(), "U9").Return(&domain.User{ID: "U9", Username: "alice"}, nil)
	h.jobRepo.EXPECT().FindByID(gomock.Any(), "J1").Return(job("J1", "C1"), nil)
	h.categoryRepo.EXPECT().FindByIDs(gomock.Any(), []string{"C1"}).Return([]*domain.Category{category("C1", "Repairs")}, nil)
	h.advertRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Advert) error {
		assert.Equal(t, domain.AdvertOpen, a.Status)
		assert.Equal(t, "J1", a.JobID())
		a.ID = "A1"
		return nil
	})

	got, err := h.adverts.Create(context.Background(), &domain.CreateAdvertRequest{
		UserID: "U9", JobID: "J1", Name: "Fix sink", Price: 150, Advertiser: domain.AdvertiserCustomer,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.ID)
	assert.Equal(t, "job J1", got.Job.Name)
}

func TestAdvertCreate_UnknownUser(t *testing.T) {
	h := newHarness(t)

	h.expectRollback()
	h.users.EXPECT().GetUserByID(gomock.Any(), "U404").Return(nil, domain.NotFound(domain.KindUser, "U404"))

	_, err := h.adverts.Create(context.Background(), &domain.CreateAdvertRequest{
		UserID: "U404", JobID: "J1", Name: "Fix sink", Advertiser: domain.AdvertiserCustomer,
	}, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvertCreate_SaveConflictRollsBack(t *testing.T) {
	h := newHarness(t)
	h.expectRollback()
	h.users.EXPECT().GetUserByID(gomock.Any(), "U9").Return(&domain.User{ID: "U9"}, nil)
	h.jobRepo.EXPECT().FindByID(gomock.Any(), "J1").Return(job("J1", "C1"), nil)
	h.categoryRepo.EXPECT().FindByIDs(gomock.Any(), []string{"C1"}).Return([]*domain.Category{category("C1", "Repairs")}, nil)
	asset := &domain.Asset{Name: "a.png", Data: []byte{1}}
	h.assets.EXPECT().Upload(gomock.Any(), asset).Return("img-1", nil)
	h.advertRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.ErrConflict)
	// загруженный файл не должен пережить откат
	h.assets.EXPECT().Delete(gomock.Any(), "img-1").Return(nil)

	_, err := h.adverts.Create(context.Background(), &domain.CreateAdvertRequest{
		UserID: "U9", JobID: "J1", Name: "Fix sink", Advertiser: domain.AdvertiserCustomer,
	}, asset)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdvertListByUser(t *testing.T) {
	h := newHarness(t)

	h.users.EXPECT().GetUserByID(gomock.Any(), "U9").Return(&domain.User{ID: "U9"}, nil)
	h.advertRepo.EXPECT().FindByUser(gomock.Any(), "U9", domain.AdvertiserEmployee).
		Return([]*domain.Advert{advert("A1", "U9", "J1"), advert("A2", "U9", "J1")}, nil)
	h.jobRepo.EXPECT().FindByID(gomock.Any(), "J1").Return(job("J1", "C1"), nil).Times(1)
	h.categoryRepo.EXPECT().FindByIDs(gomock.Any(), []string{"C1"}).Return([]*domain.Category{category("C1", "Repairs")}, nil)

	got, err := h.adverts.ListByUser(context.Background(), "U9", domain.AdvertiserEmployee)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "job J1", got[1].Job.Name)
}

func TestAdvertListByUser_BadAdvertiser(t *testing.T) {
	h := newHarness(t)

	_, err := h.adverts.ListByUser(context.Background(), "U9", "ROBOT")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAdvertUpdate_StatusOnly(t *testing.T) {
	h := newHarness(t)

	h.expectCommit()
	h.advertRepo.EXPECT().FindByID(gomock.Any(), "A1").Return(advert("A1", "U9", "J1"), nil)
	h.advertRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Advert) error {
		assert.Equal(t, domain.AdvertClosed, a.Status)
		assert.Equal(t, 100, a.Price)
		assert.Equal(t, "advert A1", a.Name)
		return nil
	})
	h.jobRepo.EXPECT().FindByID(gomock.Any(), "J1").Return(job("J1", "C1"), nil)
	h.categoryRepo.EXPECT().FindByIDs(gomock.Any(), []string{"C1"}).Return([]*domain.Category{category("C1", "Repairs")}, nil)

	got, err := h.adverts.Update(context.Background(), &domain.UpdateAdvertRequest{ID: "A1", Status: ptr(domain.AdvertClosed)}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AdvertClosed, got.Status)
	assert.False(t, h.cached("advert:A1"))
}

func TestAdvertAuthorize_UsesCachedAdvert(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.advertRepo.EXPECT().FindByID(gomock.Any(), "A1").Return(advert("A1", "U9", "J1"), nil).Times(1)
	h.users.EXPECT().GetUserByID(gomock.Any(), "U9").Return(&domain.User{ID: "U9", Username: "alice"}, nil).Times(2)

	ok, err := h.adverts.Authorize(ctx, "A1", "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.adverts.Authorize(ctx, "A1", "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Удаление объявления каскадом удаляет предложения: их записи в кэше не должны пережить коммит.
func TestAdvertDelete_InvalidatesCascadedOffers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.offerRepo.EXPECT().FindByID(gomock.Any(), "O1").Return(&domain.Offer{
		Base: domain.Base{ID: "O1"}, UserID: "U1", OfferedPrice: 90, Status: domain.OfferOpen,
		Advert: &domain.Advert{Base: domain.Base{ID: "A1"}},
	}, nil)
	expectAdvertA1(h)
	_, err := h.offers.Get(ctx, "O1")
	require.NoError(t, err)
	require.True(t, h.cached("offer:O1"))
	require.True(t, h.cached("advert:A1"))

	h.expectCommit()
	h.offerRepo.EXPECT().FindByAdvertID(gomock.Any(), "A1").
		Return([]*domain.Offer{{Base: domain.Base{ID: "O1"}}, {Base: domain.Base{ID: "O2"}}}, nil)
	h.advertRepo.EXPECT().DeleteByID(gomock.Any(), "A1").Return(nil)
	require.NoError(t, h.adverts.Delete(ctx, "A1"))

	assert.False(t, h.cached("offer:O1"))
	assert.False(t, h.cached("advert:A1"))

	h.offerRepo.EXPECT().FindByID(gomock.Any(), "O1").Return(nil, domain.NotFound(domain.KindOffer, "O1"))
	_, err = h.offers.Get(ctx, "O1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvertDelete_MissingKeepsOfferCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.cache.Set(ctx, "offer:O7", []byte(`{"id":"O7"}`), 0))

	h.expectRollback()
	h.offerRepo.EXPECT().FindByAdvertID(gomock.Any(), "A404").Return([]*domain.Offer{{Base: domain.Base{ID: "O7"}}}, nil)
	h.advertRepo.EXPECT().DeleteByID(gomock.Any(), "A404").Return(domain.NotFound(domain.KindAdvert, "A404"))

	require.ErrorIs(t, h.adverts.Delete(ctx, "A404"), domain.ErrNotFound)
	assert.True(t, h.cached("offer:O7"), "откат не сбрасывает кэш")
}
