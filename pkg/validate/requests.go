// Package validate — проверка входных запросов (ozzo-validation) и строгий разбор JSON/JSONL.
package validate

import (
	"errors"
	"fmt"

	"github.com/Gunvolt24/jobboard/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidRequest — базовая (sentinel error) ошибка валидации запроса.
// Всегда оборачивается вместе с domain.ErrInvalidArgument.
var ErrInvalidRequest = errors.New("request validation failed")

var (
	nameRules        = []validation.Rule{validation.Required, validation.Length(1, 255)}
	descriptionRules = []validation.Rule{validation.Length(0, 4096)}
	keyRules         = validation.Each(validation.Required, validation.Length(1, 64))
	advertStatusRule = validation.In(domain.AdvertOpen, domain.AdvertClosed, domain.AdvertCancelled,
		domain.AdvertAssigned, domain.AdvertReviewed)
	offerStatusRule = validation.In(domain.OfferOpen, domain.OfferClosed, domain.OfferAccepted, domain.OfferRejected)
	advertiserRule  = validation.In(domain.AdvertiserEmployee, domain.AdvertiserCustomer)
)

// keysPtr — Each не разыменовывает *[]string, поэтому частичное обновление ключей проверяем вручную.
func keysPtr(value any) error {
	keys, _ := value.(*[]string)
	if keys == nil {
		return nil
	}
	return validation.Validate(*keys, keyRules)
}

// wrap — validation.Errors остаётся доступной через errors.As.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w: %w", ErrInvalidRequest, domain.ErrInvalidArgument, err)
}

func CreateCategory(r *domain.CreateCategoryRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Description, descriptionRules...),
	))
}

func UpdateCategory(r *domain.UpdateCategoryRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, descriptionRules...),
	))
}

func CreateJob(r *domain.CreateJobRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Description, descriptionRules...),
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.Keys, keyRules),
	))
}

func UpdateJob(r *domain.UpdateJobRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, descriptionRules...),
		validation.Field(&r.Keys, validation.By(keysPtr)),
	))
}

func CreateAdvert(r *domain.CreateAdvertRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.JobID, validation.Required),
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.Description, descriptionRules...),
		validation.Field(&r.DeliveryTime, validation.Min(0)),
		validation.Field(&r.Price, validation.Min(0)),
		validation.Field(&r.Advertiser, validation.Required, advertiserRule),
	))
}

func UpdateAdvert(r *domain.UpdateAdvertRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, descriptionRules...),
		validation.Field(&r.DeliveryTime, validation.Min(0)),
		validation.Field(&r.Price, validation.Min(0)),
		validation.Field(&r.Status, advertStatusRule),
	))
}

func MakeOffer(r *domain.MakeOfferRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.AdvertID, validation.Required),
		validation.Field(&r.OfferedPrice, validation.Required, validation.Min(1)),
	))
}

func UpdateOffer(r *domain.UpdateOfferRequest) error {
	if r == nil {
		return wrap(errors.New("empty request"))
	}
	return wrap(validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.OfferedPrice, validation.Min(1)),
		validation.Field(&r.Status, offerStatusRule),
	))
}

// Notification — уведомление, пришедшее из брокера.
func Notification(n *domain.Notification) error {
	if n == nil {
		return wrap(errors.New("empty notification"))
	}
	return wrap(validation.ValidateStruct(n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.UserID, validation.Required),
		validation.Field(&n.OfferID, validation.Required),
		validation.Field(&n.Message, validation.Required),
	))
}
