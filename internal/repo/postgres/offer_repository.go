package postgres

import (
	"context"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ ports.OfferRepository = (*OfferRepository)(nil)

const offerColumns = `id, user_id, offered_price, status, advert_id, creation_timestamp, update_timestamp`

type OfferRepository struct {
	executor
}

func NewOfferRepository(pool DB) *OfferRepository {
	return &OfferRepository{executor{pool: pool}}
}

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	var (
		o        domain.Offer
		advertID string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.OfferedPrice, &o.Status, &advertID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Advert = &domain.Advert{Base: domain.Base{ID: advertID}}
	return &o, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	o, err := scanOffer(r.db(ctx).QueryRow(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(domain.KindOffer, id, "select", err)
	}
	return o, nil
}

func (r *OfferRepository) FindByAdvertID(ctx context.Context, advertID string) ([]*domain.Offer, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE advert_id = $1 ORDER BY creation_timestamp, id`, advertID)
	if err != nil {
		return nil, mapErr(domain.KindOffer, "", "select", err)
	}
	return collect(rows, scanOffer)
}

func (r *OfferRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Offer, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE user_id = $1 ORDER BY creation_timestamp, id`, userID)
	if err != nil {
		return nil, mapErr(domain.KindOffer, "", "select", err)
	}
	return collect(rows, scanOffer)
}

func (r *OfferRepository) Save(ctx context.Context, o *domain.Offer) error {
	now := time.Now().UTC()

	if o.ID == "" {
		id := uuid.NewString()
		if _, err := r.db(ctx).Exec(ctx, `
			INSERT INTO offers (id, user_id, offered_price, status, advert_id, creation_timestamp, update_timestamp)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
		`, id, o.UserID, o.OfferedPrice, string(o.Status), o.AdvertID(), now); err != nil {
			return mapErr(domain.KindOffer, id, "insert", err)
		}
		o.ID, o.CreatedAt, o.UpdatedAt = id, now, now
		return nil
	}

	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE offers SET offered_price = $2, status = $3, update_timestamp = $4
		WHERE id = $1
	`, o.ID, o.OfferedPrice, string(o.Status), now)
	if err != nil {
		return mapErr(domain.KindOffer, o.ID, "update", err)
	}
	if err := affectedOrNotFound(tag, domain.KindOffer, o.ID); err != nil {
		return err
	}
	o.UpdatedAt = now
	return nil
}

func (r *OfferRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return mapErr(domain.KindOffer, id, "delete", err)
	}
	return affectedOrNotFound(tag, domain.KindOffer, id)
}
