//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeCategory — новая категория без ID (ID назначит репозиторий).
func MakeCategory(opts ...func(*domain.Category)) domain.Category {
	c := domain.Category{
		Name:        "Repairs " + UniqSuffix(),
		Description: "home repairs",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// MakeJob — новая работа в категории categoryID.
func MakeJob(categoryID string, opts ...func(*domain.Job)) domain.Job {
	j := domain.Job{
		Name:        "Plumber " + UniqSuffix(),
		Description: "pipes and taps",
		Category:    &domain.Category{Base: domain.Base{ID: categoryID}},
		Keys:        []string{"plumbing", "pipes"},
	}
	for _, opt := range opts {
		opt(&j)
	}
	return j
}

// WithKeys — ключевые слова работы.
func WithKeys(keys ...string) func(*domain.Job) {
	return func(j *domain.Job) { j.Keys = keys }
}

// MakeAdvert — открытое объявление пользователя по работе jobID.
func MakeAdvert(userID, jobID string) domain.Advert {
	return domain.Advert{
		UserID:       userID,
		Name:         "Fix my sink " + UniqSuffix(),
		Description:  "kitchen sink leaks",
		DeliveryTime: 3,
		Price:        150,
		Status:       domain.AdvertOpen,
		Advertiser:   domain.AdvertiserCustomer,
		Job:          &domain.Job{Base: domain.Base{ID: jobID}},
	}
}

// MakeOffer — открытое предложение по объявлению advertID.
func MakeOffer(userID, advertID string, price int) domain.Offer {
	return domain.Offer{
		UserID:       userID,
		OfferedPrice: price,
		Status:       domain.OfferOpen,
		Advert:       &domain.Advert{Base: domain.Base{ID: advertID}},
	}
}

// MakeNotification — уведомление для пользователя userID с уникальными id и offer_id.
func MakeNotification(userID string) domain.Notification {
	return domain.Notification{
		ID:        "ntf-" + UniqSuffix(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Message:   "You have received an offer for your advertising.",
		OfferID:   "offer-" + UniqSuffix(),
		UserID:    userID,
	}
}
