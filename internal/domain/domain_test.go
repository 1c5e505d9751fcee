package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestKind_Keys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "job:J1", domain.KindJob.CacheKey("J1"))
	assert.Equal(t, "category:C7", domain.KindCategory.CacheKey("C7"))
	assert.Equal(t, "update:job:J1", domain.KindJob.UpdateLockName("J1"))
}

func TestErrors_IsSentinels(t *testing.T) {
	t.Parallel()

	nf := fmt.Errorf("wrap: %w", domain.NotFound(domain.KindCategory, "C7"))
	require.ErrorIs(t, nf, domain.ErrNotFound)
	assert.NotErrorIs(t, nf, domain.ErrConflict)

	cf := domain.Conflict(domain.KindJob, "J1")
	require.ErrorIs(t, cf, domain.ErrConflict)
	assert.Contains(t, cf.Error(), "J1")

	var ce *domain.ConflictError
	require.True(t, errors.As(cf, &ce))
	assert.Equal(t, "J1", ce.ID)

	require.ErrorIs(t, domain.InvalidArgument("advertiser", "x"), domain.ErrInvalidArgument)

	ref := fmt.Errorf("wrap: %w", &domain.ReferenceError{Kind: domain.KindJob, ID: "J1", Constraint: "jobs_category_id_fkey"})
	require.ErrorIs(t, ref, domain.ErrReferenced)
	assert.NotErrorIs(t, ref, domain.ErrConflict)
	assert.Contains(t, ref.Error(), "references a missing record")
}

func TestUpdateJobRequest_ApplyTo_OnlySetFields(t *testing.T) {
	t.Parallel()

	job := &domain.Job{
		Base:        domain.Base{ID: "J1"},
		Name:        "plumbing",
		Description: "fix pipes",
		ImageID:     "img-1",
		Keys:        []string{"pipe"},
	}
	req := &domain.UpdateJobRequest{ID: "J1", Description: ptr("fix pipes fast")}
	req.ApplyTo(job)

	assert.Equal(t, "plumbing", job.Name)
	assert.Equal(t, "fix pipes fast", job.Description)
	assert.Equal(t, "img-1", job.ImageID)
	assert.Equal(t, []string{"pipe"}, job.Keys)

	keys := []string{"sink", "tap"}
	(&domain.UpdateJobRequest{Keys: &keys}).ApplyTo(job)
	keys[0] = "mutated"
	assert.Equal(t, []string{"sink", "tap"}, job.Keys)
}

func TestUpdateAdvertRequest_ApplyTo_OnlySetFields(t *testing.T) {
	t.Parallel()

	ad := &domain.Advert{Name: "n", Description: "d", DeliveryTime: 3, Price: 100, Status: domain.AdvertOpen}
	(&domain.UpdateAdvertRequest{Price: ptr(150), Status: ptr(domain.AdvertAssigned)}).ApplyTo(ad)

	assert.Equal(t, "n", ad.Name)
	assert.Equal(t, "d", ad.Description)
	assert.Equal(t, 3, ad.DeliveryTime)
	assert.Equal(t, 150, ad.Price)
	assert.Equal(t, domain.AdvertAssigned, ad.Status)
}

func TestUpdateCategoryAndOfferRequests_ApplyTo(t *testing.T) {
	t.Parallel()

	c := &domain.Category{Name: "a", Description: "b"}
	(&domain.UpdateCategoryRequest{Name: ptr("a2")}).ApplyTo(c)
	assert.Equal(t, "a2", c.Name)
	assert.Equal(t, "b", c.Description)

	o := &domain.Offer{OfferedPrice: 10, Status: domain.OfferOpen}
	(&domain.UpdateOfferRequest{Status: ptr(domain.OfferAccepted)}).ApplyTo(o)
	assert.Equal(t, 10, o.OfferedPrice)
	assert.Equal(t, domain.OfferAccepted, o.Status)
}

func TestParseAdvertiser(t *testing.T) {
	t.Parallel()

	a, err := domain.ParseAdvertiser(" customer ")
	require.NoError(t, err)
	assert.Equal(t, domain.AdvertiserCustomer, a)

	_, err = domain.ParseAdvertiser("robot")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}
